// Package subscription содержит логику бизнес-уровня для управления
// подписками, включая кеширование горячих чтений. Владелец подписки
// всегда назначается из аутентифицированного пользователя; авторизация
// мутаций проверяется по владельцу уже прочитанной записи, а не по данным
// запроса.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/authz"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/apperror"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// dateLayout — формат дат в JSON-запросах.
const dateLayout = "02-01-2006"

// cacheTTL — время жизни закешированной подписки.
const cacheTTL = time.Hour

// Store описывает контракт хранилища, нужный сервису подписок.
type Store interface {
	// GetSubscription возвращает подписку по ID или storage.ErrNotFound.
	GetSubscription(ctx context.Context, id int) (*models.Subscription, error)
	// ListSubscriptions возвращает все подписки с пагинацией.
	ListSubscriptions(ctx context.Context, limit, offset int) ([]*models.Subscription, error)
	// WithinTx выполняет fn внутри транзакции хранилища.
	WithinTx(ctx context.Context, fn storage.TxFunc) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// Service реализует операции над подписками с проверкой политики доступа
// и кешированием чтений. Ошибки кеша не ломают запрос: чтение уходит
// в хранилище, в лог попадает предупреждение.
type Service struct {
	store Store
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(store Store, cache Cache, log *slog.Logger) *Service {
	return &Service{
		store: store,
		cache: cache,
		log:   log,
	}
}

// Create создает подписку для аутентифицированного пользователя.
// Владелец принудительно берётся из identity: поле user_uid в запросе
// игнорируется, чтобы нельзя было записать подписку на чужой аккаунт.
func (s *Service) Create(ctx context.Context, identity models.Identity, req models.DummySubscription) (*models.Subscription, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, apperror.Validation("invalid start_date")
	}
	var renewalDate *time.Time
	if req.RenewalDate != "" {
		parsed, err := time.Parse(dateLayout, req.RenewalDate)
		if err != nil {
			return nil, apperror.Validation("invalid renewal_date")
		}
		renewalDate = &parsed
	}

	sub := models.Subscription{
		UserUID:     identity.UID,
		ServiceName: req.ServiceName,
		Plan:        req.Plan,
		Price:       req.Price,
		Status:      req.Status,
		StartDate:   startDate,
		RenewalDate: renewalDate,
	}
	if sub.Status == "" {
		sub.Status = models.SubscriptionActive
	}

	var created *models.Subscription
	err = s.store.WithinTx(ctx, func(r storage.Repository) error {
		created, err = r.CreateSubscription(ctx, sub)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("created new subscription", slog.Int("id", created.ID))

	if err := s.cache.Set(ctx, cacheKey(created.ID), created, cacheTTL); err != nil {
		s.log.Warn("failed to cache subscription", sl.Err(err))
	}
	return created, nil
}

// List возвращает все подписки. Доступно только администратору;
// для остальных — отказ, а не фильтрация по владельцу.
func (s *Service) List(ctx context.Context, identity models.Identity, limit, offset int) ([]*models.Subscription, error) {
	if !authz.CanAccess(identity, "", authz.ActionList) {
		return nil, apperror.Forbidden()
	}
	return s.store.ListSubscriptions(ctx, limit, offset)
}

// Get возвращает подписку по ID, используя кеш или хранилище.
// Доступно владельцу записи или администратору.
func (s *Service) Get(ctx context.Context, identity models.Identity, id int) (*models.Subscription, error) {
	var sub *models.Subscription
	found, err := s.cache.Get(ctx, cacheKey(id), &sub)
	if err != nil {
		s.log.Warn("cache lookup failed", sl.Err(err))
		found = false
	}
	if !found {
		sub, err = s.store.GetSubscription(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, apperror.NotFound("subscription")
			}
			return nil, err
		}
		if err := s.cache.Set(ctx, cacheKey(id), sub, cacheTTL); err != nil {
			s.log.Warn("failed to cache subscription", sl.Err(err))
		}
	}

	if !authz.CanAccess(identity, sub.UserUID, authz.ActionRead) {
		return nil, apperror.Forbidden()
	}
	return sub, nil
}

// Update применяет переданные поля к подписке. Доступно владельцу или
// администратору; владелец проверяется по записи, прочитанной в той же
// транзакции. Исчезновение записи между чтением и записью — NotFound.
func (s *Service) Update(ctx context.Context, identity models.Identity, id int, req models.DummySubscriptionUpdate) (*models.Subscription, error) {
	var updated *models.Subscription
	err := s.store.WithinTx(ctx, func(r storage.Repository) error {
		existing, err := r.GetSubscription(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperror.NotFound("subscription")
			}
			return err
		}
		if !authz.CanAccess(identity, existing.UserUID, authz.ActionUpdate) {
			return apperror.Forbidden()
		}

		if req.ServiceName != "" {
			existing.ServiceName = req.ServiceName
		}
		if req.Plan != "" {
			existing.Plan = req.Plan
		}
		if req.Price != 0 {
			existing.Price = req.Price
		}
		if req.Status != "" {
			existing.Status = req.Status
		}
		if req.StartDate != "" {
			startDate, err := time.Parse(dateLayout, req.StartDate)
			if err != nil {
				return apperror.Validation("invalid start_date")
			}
			existing.StartDate = startDate
		}
		if req.RenewalDate != "" {
			renewalDate, err := time.Parse(dateLayout, req.RenewalDate)
			if err != nil {
				return apperror.Validation("invalid renewal_date")
			}
			existing.RenewalDate = &renewalDate
		}

		rows, err := r.UpdateSubscription(ctx, *existing)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperror.NotFound("subscription")
		}

		updated, err = r.GetSubscription(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("updated subscription", slog.Int("id", id))

	if err := s.cache.Invalidate(ctx, cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate cache", sl.Err(err))
	}
	return updated, nil
}

// Delete удаляет подписку и возвращает удалённую запись.
// Доступно владельцу или администратору.
func (s *Service) Delete(ctx context.Context, identity models.Identity, id int) (*models.Subscription, error) {
	var deleted *models.Subscription
	err := s.store.WithinTx(ctx, func(r storage.Repository) error {
		existing, err := r.GetSubscription(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperror.NotFound("subscription")
			}
			return err
		}
		if !authz.CanAccess(identity, existing.UserUID, authz.ActionDelete) {
			return apperror.Forbidden()
		}

		rows, err := r.RemoveSubscription(ctx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperror.NotFound("subscription")
		}

		deleted = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("deleted subscription", slog.Int("id", id))

	if err := s.cache.Invalidate(ctx, cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate cache", sl.Err(err))
	}
	return deleted, nil
}

func cacheKey(id int) string {
	return fmt.Sprintf("subscription:%d", id)
}
