package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken создает JWT с claim Subject равным UID пользователя,
// подписывая его секретным ключом. Время жизни определяется tokenTTL.
func (j *MakerImpl) GenerateToken(userUID string) (string, error) {
	const op = "jwt.GenerateToken"
	claims := jwt.RegisteredClaims{
		Subject:   userUID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken парсит JWT, проверяет его подпись и срок действия,
// возвращает UID пользователя из claim Subject, если токен корректен.
func (j *MakerImpl) ParseToken(tokenStr string) (string, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("%s: invalid token", op)
	}
	return claims.Subject, nil
}
