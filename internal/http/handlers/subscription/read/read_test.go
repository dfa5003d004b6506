package read

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/apperror"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Get(ctx context.Context, identity models.Identity, id int) (*models.Subscription, error) {
	args := m.Called(ctx, identity, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	identity := models.Identity{UID: "owner-uid", Role: models.RoleUser}

	tests := []struct {
		name           string
		id             string
		withIdentity   bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:         "успешное чтение подписки",
			id:           "42",
			withIdentity: true,
			setupMock: func(m *MockService) {
				sub := &models.Subscription{
					ID:          42,
					UserUID:     "owner-uid",
					ServiceName: "Netflix",
					Plan:        "premium",
					Price:       15,
					Status:      models.SubscriptionActive,
				}
				m.On("Get", mock.Anything, identity, 42).Return(sub, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"service_name":"Netflix"`,
		},
		{
			name:           "без аутентификации",
			id:             "42",
			withIdentity:   false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Unauthorized",
		},
		{
			name:           "некорректный id в URL",
			id:             "abc",
			withIdentity:   true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "subscription not found",
		},
		{
			name:         "чужая подписка",
			id:           "42",
			withIdentity: true,
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, identity, 42).Return(nil, apperror.Forbidden())
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   "Forbidden",
		},
		{
			name:         "несуществующая подписка",
			id:           "777",
			withIdentity: true,
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, identity, 777).Return(nil, apperror.NotFound("subscription"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "subscription not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/subscriptions/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.withIdentity {
				ctx = context.WithValue(ctx, middlewarectx.IdentityKey, identity)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
