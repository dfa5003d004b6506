// Package user содержит логику бизнес-уровня для управления пользователями.
// Каждая операция получает аутентифицированного пользователя явным параметром
// и проверяет политику авторизации до обращения к данным; все мутации идут
// внутри транзакционной сессии хранилища.
package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/subscription-tracker/internal/authz"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/apperror"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/password"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// Store описывает контракт хранилища, нужный сервису пользователей.
type Store interface {
	// GetUser возвращает пользователя по UID или storage.ErrNotFound.
	GetUser(ctx context.Context, uid string) (*models.User, error)
	// ListUsers возвращает всех пользователей.
	ListUsers(ctx context.Context) ([]*models.User, error)
	// WithinTx выполняет fn внутри транзакции хранилища.
	WithinTx(ctx context.Context, fn storage.TxFunc) error
}

// Registrar описывает создание пользователя с выпуском токена.
// Реализуется сервисом аутентификации: админское создание пользователя
// повторяет регистрацию, отличаясь только проверкой роли.
type Registrar interface {
	SignUp(ctx context.Context, req models.DummySignUp) (*models.AuthResult, error)
}

// Service реализует операции над пользователями с проверкой политики доступа.
type Service struct {
	store     Store
	registrar Registrar
	tokens    jwt.Maker
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(store Store, registrar Registrar, tokens jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		store:     store,
		registrar: registrar,
		tokens:    tokens,
		log:       log,
	}
}

// List возвращает всех пользователей. Доступно только администратору.
func (s *Service) List(ctx context.Context, identity models.Identity) ([]*models.User, error) {
	if !authz.CanAccess(identity, "", authz.ActionList) {
		return nil, apperror.Forbidden()
	}
	return s.store.ListUsers(ctx)
}

// Get возвращает пользователя по UID. Доступно владельцу или администратору.
func (s *Service) Get(ctx context.Context, identity models.Identity, targetUID string) (*models.User, error) {
	target, err := s.store.GetUser(ctx, targetUID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, err
	}
	if !authz.CanAccess(identity, target.UID, authz.ActionRead) {
		return nil, apperror.Forbidden()
	}
	return target, nil
}

// Create создает нового пользователя от имени администратора.
// Повторяет регистрацию, включая транзакцию и выпуск токена.
func (s *Service) Create(ctx context.Context, identity models.Identity, req models.DummySignUp) (*models.AuthResult, error) {
	if !authz.CanAccess(identity, "", authz.ActionCreate) {
		return nil, apperror.Forbidden()
	}
	return s.registrar.SignUp(ctx, req)
}

// Update применяет переданные поля из {name, email, password} к пользователю
// и выпускает свежий токен. Доступно владельцу или администратору.
//
// Чтение цели, проверка политики, запись и выпуск токена идут в одной
// транзакции: любая ошибка откатывает запись целиком.
func (s *Service) Update(ctx context.Context, identity models.Identity, targetUID string, req models.DummyUserUpdate) (*models.AuthResult, error) {
	var result *models.AuthResult
	err := s.store.WithinTx(ctx, func(r storage.Repository) error {
		target, err := r.GetUser(ctx, targetUID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperror.NotFound("user")
			}
			return err
		}
		if !authz.CanAccess(identity, target.UID, authz.ActionUpdate) {
			return apperror.Forbidden()
		}

		if req.Name != "" {
			target.Name = strings.TrimSpace(req.Name)
		}
		if req.Email != "" {
			target.Email = strings.ToLower(strings.TrimSpace(req.Email))
		}
		if req.Password != "" {
			hashed, err := password.Hash(req.Password)
			if err != nil {
				return apperror.Internal(err)
			}
			target.PasswordHash = hashed
		}

		rows, err := r.UpdateUser(ctx, *target)
		if err != nil {
			if errors.Is(err, storage.ErrEmailTaken) {
				return apperror.Conflict("email already taken")
			}
			return err
		}
		if rows == 0 {
			return apperror.NotFound("user")
		}

		updated, err := r.GetUser(ctx, target.UID)
		if err != nil {
			return err
		}

		token, err := s.tokens.GenerateToken(target.UID)
		if err != nil {
			return err
		}

		result = &models.AuthResult{Token: token, User: updated}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user updated", slog.String("uid", targetUID))
	return result, nil
}

// Delete удаляет пользователя и возвращает удалённую запись.
// Доступно владельцу или администратору. Подписки удалённого пользователя
// остаются: ссылка на владельца мягкая.
func (s *Service) Delete(ctx context.Context, identity models.Identity, targetUID string) (*models.User, error) {
	var deleted *models.User
	err := s.store.WithinTx(ctx, func(r storage.Repository) error {
		target, err := r.GetUser(ctx, targetUID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperror.NotFound("user")
			}
			return err
		}
		if !authz.CanAccess(identity, target.UID, authz.ActionDelete) {
			return apperror.Forbidden()
		}

		rows, err := r.RemoveUser(ctx, target.UID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperror.NotFound("user")
		}

		deleted = target
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user deleted", slog.String("uid", targetUID))
	return deleted, nil
}
