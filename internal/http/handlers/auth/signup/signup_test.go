package signup

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/apperror"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// MockService реализует интерфейс signup.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SignUp(ctx context.Context, req models.DummySignUp) (*models.AuthResult, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.AuthResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSignUpHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"name":"Test User","email":"test@example.com","password":"secret123"}`,
			setupMock: func(m *MockService) {
				result := &models.AuthResult{
					Token: "signed-token",
					User:  &models.User{UID: "some-uuid", Name: "Test User", Email: "test@example.com", Role: models.RoleUser},
				}
				m.On("SignUp", mock.Anything, mock.MatchedBy(func(req models.DummySignUp) bool {
					return req.Email == "test@example.com"
				})).Return(result, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"token":"signed-token"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"name":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:           "слишком короткий пароль",
			body:           `{"name":"Test User","email":"test@example.com","password":"123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Password is too short",
		},
		{
			name:           "невалидный email",
			body:           `{"name":"Test User","email":"not-an-email","password":"secret123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Email must be a valid email address",
		},
		{
			name: "занятый email",
			body: `{"name":"Test User","email":"taken@example.com","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("SignUp", mock.Anything, mock.Anything).
					Return(nil, apperror.Conflict("user already exists"))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   "user already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}

	t.Run("в ответе нет хэша пароля", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("SignUp", mock.Anything, mock.Anything).Return(&models.AuthResult{
			Token: "signed-token",
			User:  &models.User{UID: "some-uuid", Email: "test@example.com", PasswordHash: "bcrypt-hash"},
		}, nil)

		handler := New(logger, mockService)

		req := httptest.NewRequest(http.MethodPost, "/auth/signup",
			strings.NewReader(`{"name":"Test User","email":"test@example.com","password":"secret123"}`))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "bcrypt-hash")
	})
}
