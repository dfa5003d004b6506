package subscription_test

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/apperror"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/services/subscription"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// Мок для storage.Repository
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateUser(ctx context.Context, u models.User) (string, error) {
	args := m.Called(ctx, u)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) GetUser(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *RepoMock) UpdateUser(ctx context.Context, u models.User) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) RemoveUser(ctx context.Context, uid string) (int64, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) CreateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *RepoMock) GetSubscription(ctx context.Context, id int) (*models.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *RepoMock) ListSubscriptions(ctx context.Context, limit, offset int) ([]*models.Subscription, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func (m *RepoMock) UpdateSubscription(ctx context.Context, sub models.Subscription) (int64, error) {
	args := m.Called(ctx, sub)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) RemoveSubscription(ctx context.Context, id int) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// Мок для subscription.Store
type StoreMock struct {
	repo *RepoMock
}

func (m *StoreMock) GetSubscription(ctx context.Context, id int) (*models.Subscription, error) {
	return m.repo.GetSubscription(ctx, id)
}

func (m *StoreMock) ListSubscriptions(ctx context.Context, limit, offset int) ([]*models.Subscription, error) {
	return m.repo.ListSubscriptions(ctx, limit, offset)
}

func (m *StoreMock) WithinTx(_ context.Context, fn storage.TxFunc) error {
	return fn(m.repo)
}

// Мок для subscription.Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// newMissCache возвращает кеш, который ничего не находит и всё принимает.
func newMissCache() *CacheMock {
	c := new(CacheMock)
	c.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Maybe()
	c.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	c.On("Invalidate", mock.Anything, mock.Anything).Return(nil).Maybe()
	return c
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

var (
	adminIdentity    = models.Identity{UID: "admin-uid", Role: models.RoleAdmin}
	ownerIdentity    = models.Identity{UID: "owner-uid", Role: models.RoleUser}
	strangerIdentity = models.Identity{UID: "stranger-uid", Role: models.RoleUser}
)

func newSub() *models.Subscription {
	return &models.Subscription{
		ID:          42,
		UserUID:     "owner-uid",
		ServiceName: "Netflix",
		Plan:        "premium",
		Price:       15,
		Status:      models.SubscriptionActive,
		StartDate:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreate(t *testing.T) {
	t.Run("владелец берётся из токена, а не из запроса", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(s models.Subscription) bool {
			return s.UserUID == "owner-uid" &&
				s.ServiceName == "Netflix" &&
				s.Status == models.SubscriptionActive &&
				s.StartDate.Equal(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
		})).Return(newSub(), nil).Once()

		svc := subscription.New(&StoreMock{repo: repo}, newMissCache(), newTestLogger())

		created, err := svc.Create(context.Background(), ownerIdentity, models.DummySubscription{
			UserUID:     "somebody-else-uid",
			ServiceName: "Netflix",
			Plan:        "premium",
			Price:       15,
			StartDate:   "15-01-2026",
		})
		require.NoError(t, err)
		assert.Equal(t, "owner-uid", created.UserUID)
		repo.AssertExpectations(t)
	})

	t.Run("некорректная дата начала", func(t *testing.T) {
		repo := new(RepoMock)
		svc := subscription.New(&StoreMock{repo: repo}, newMissCache(), newTestLogger())

		_, err := svc.Create(context.Background(), ownerIdentity, models.DummySubscription{
			ServiceName: "Netflix",
			Plan:        "premium",
			Price:       15,
			StartDate:   "2026-01-15",
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.From(err).Status)
		repo.AssertNotCalled(t, "CreateSubscription", mock.Anything, mock.Anything)
	})

	t.Run("дата продления парсится", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(s models.Subscription) bool {
			return s.RenewalDate != nil &&
				s.RenewalDate.Equal(time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC))
		})).Return(newSub(), nil).Once()

		svc := subscription.New(&StoreMock{repo: repo}, newMissCache(), newTestLogger())

		_, err := svc.Create(context.Background(), ownerIdentity, models.DummySubscription{
			ServiceName: "Netflix",
			Plan:        "premium",
			Price:       15,
			StartDate:   "15-01-2026",
			RenewalDate: "15-02-2026",
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestList(t *testing.T) {
	t.Run("администратор получает список", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListSubscriptions", mock.Anything, 100, 0).
			Return([]*models.Subscription{newSub()}, nil).Once()

		svc := subscription.New(&StoreMock{repo: repo}, newMissCache(), newTestLogger())

		subs, err := svc.List(context.Background(), adminIdentity, 100, 0)
		require.NoError(t, err)
		assert.Len(t, subs, 1)
		repo.AssertExpectations(t)
	})

	t.Run("владение записями не даёт права на список", func(t *testing.T) {
		repo := new(RepoMock)
		svc := subscription.New(&StoreMock{repo: repo}, newMissCache(), newTestLogger())

		_, err := svc.List(context.Background(), ownerIdentity, 100, 0)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperror.From(err).Status)
		repo.AssertNotCalled(t, "ListSubscriptions", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGet(t *testing.T) {
	t.Run("владелец читает свою подписку", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetSubscription", mock.Anything, 42).Return(newSub(), nil).Once()

		svc := subscription.New(&StoreMock{repo: repo}, newMissCache(), newTestLogger())

		sub, err := svc.Get(context.Background(), ownerIdentity, 42)
		require.NoError(t, err)
		assert.Equal(t, 42, sub.ID)
	})

	t.Run("попадание в кеш не отключает авторизацию", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", mock.Anything, "subscription:42", mock.Anything).
			Run(func(args mock.Arguments) {
				ptr := args.Get(2).(**models.Subscription)
				*ptr = newSub()
			}).Return(true, nil).Once()

		svc := subscription.New(&StoreMock{repo: repo}, cache, newTestLogger())

		_, err := svc.Get(context.Background(), strangerIdentity, 42)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperror.From(err).Status)
		repo.AssertNotCalled(t, "GetSubscription", mock.Anything, mock.Anything)
		cache.AssertExpectations(t)
	})

	t.Run("ошибка кеша не ломает чтение", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetSubscription", mock.Anything, 42).Return(newSub(), nil).Once()

		cache := new(CacheMock)
		cache.On("Get", mock.Anything, "subscription:42", mock.Anything).
			Return(false, assert.AnError).Once()
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

		svc := subscription.New(&StoreMock{repo: repo}, cache, newTestLogger())

		sub, err := svc.Get(context.Background(), ownerIdentity, 42)
		require.NoError(t, err)
		assert.Equal(t, 42, sub.ID)
		repo.AssertExpectations(t)
	})

	t.Run("несуществующая подписка", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetSubscription", mock.Anything, 777).Return(nil, storage.ErrNotFound).Once()

		svc := subscription.New(&StoreMock{repo: repo}, newMissCache(), newTestLogger())

		_, err := svc.Get(context.Background(), ownerIdentity, 777)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.From(err).Status)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("владелец меняет поля, владелец записи не меняется", func(t *testing.T) {
		repo := new(RepoMock)
		updated := newSub()
		updated.Price = 20

		repo.On("GetSubscription", mock.Anything, 42).Return(newSub(), nil).Once()
		repo.On("UpdateSubscription", mock.Anything, mock.MatchedBy(func(s models.Subscription) bool {
			return s.ID == 42 && s.Price == 20 && s.UserUID == "owner-uid"
		})).Return(int64(1), nil).Once()
		repo.On("GetSubscription", mock.Anything, 42).Return(updated, nil).Once()

		cache := newMissCache()
		svc := subscription.New(&StoreMock{repo: repo}, cache, newTestLogger())

		got, err := svc.Update(context.Background(), ownerIdentity, 42,
			models.DummySubscriptionUpdate{Price: 20})
		require.NoError(t, err)
		assert.Equal(t, 20, got.Price)
		repo.AssertExpectations(t)
	})

	t.Run("чужая подписка запрещена", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetSubscription", mock.Anything, 42).Return(newSub(), nil).Once()

		svc := subscription.New(&StoreMock{repo: repo}, newMissCache(), newTestLogger())

		_, err := svc.Update(context.Background(), strangerIdentity, 42,
			models.DummySubscriptionUpdate{Price: 20})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperror.From(err).Status)
		repo.AssertNotCalled(t, "UpdateSubscription", mock.Anything, mock.Anything)
	})

	t.Run("обновление инвалидирует кеш", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetSubscription", mock.Anything, 42).Return(newSub(), nil).Twice()
		repo.On("UpdateSubscription", mock.Anything, mock.Anything).Return(int64(1), nil).Once()

		cache := new(CacheMock)
		cache.On("Invalidate", mock.Anything, "subscription:42").Return(nil).Once()

		svc := subscription.New(&StoreMock{repo: repo}, cache, newTestLogger())

		_, err := svc.Update(context.Background(), adminIdentity, 42,
			models.DummySubscriptionUpdate{Status: models.SubscriptionCancelled})
		require.NoError(t, err)
		cache.AssertExpectations(t)
	})

	t.Run("несуществующая подписка", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetSubscription", mock.Anything, 777).Return(nil, storage.ErrNotFound).Once()

		svc := subscription.New(&StoreMock{repo: repo}, newMissCache(), newTestLogger())

		_, err := svc.Update(context.Background(), adminIdentity, 777,
			models.DummySubscriptionUpdate{Price: 20})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.From(err).Status)
	})
}

func TestDelete(t *testing.T) {
	t.Run("владелец удаляет свою подписку", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetSubscription", mock.Anything, 42).Return(newSub(), nil).Once()
		repo.On("RemoveSubscription", mock.Anything, 42).Return(int64(1), nil).Once()

		cache := new(CacheMock)
		cache.On("Invalidate", mock.Anything, "subscription:42").Return(nil).Once()

		svc := subscription.New(&StoreMock{repo: repo}, cache, newTestLogger())

		deleted, err := svc.Delete(context.Background(), ownerIdentity, 42)
		require.NoError(t, err)
		assert.Equal(t, 42, deleted.ID)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("чужая подписка запрещена", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetSubscription", mock.Anything, 42).Return(newSub(), nil).Once()

		svc := subscription.New(&StoreMock{repo: repo}, newMissCache(), newTestLogger())

		_, err := svc.Delete(context.Background(), strangerIdentity, 42)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperror.From(err).Status)
		repo.AssertNotCalled(t, "RemoveSubscription", mock.Anything, mock.Anything)
	})

	t.Run("запись исчезла между чтением и удалением", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetSubscription", mock.Anything, 42).Return(newSub(), nil).Once()
		repo.On("RemoveSubscription", mock.Anything, 42).Return(int64(0), nil).Once()

		svc := subscription.New(&StoreMock{repo: repo}, newMissCache(), newTestLogger())

		_, err := svc.Delete(context.Background(), ownerIdentity, 42)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.From(err).Status)
	})
}
