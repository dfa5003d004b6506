package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	maker := NewMaker("test-secret-key", time.Hour)

	token, err := maker.GenerateToken("user-uid-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uid, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-uid-123", uid)
}

func TestParseToken_Expired(t *testing.T) {
	maker := NewMaker("test-secret-key", -time.Minute)

	token, err := maker.GenerateToken("user-uid-123")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	maker := NewMaker("test-secret-key", time.Hour)
	other := NewMaker("another-secret-key", time.Hour)

	token, err := maker.GenerateToken("user-uid-123")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	maker := NewMaker("test-secret-key", time.Hour)

	_, err := maker.ParseToken("not.a.token")
	assert.Error(t, err)
}
