// Package auth содержит логику бизнес-уровня для регистрации и входа
// пользователей. Регистрация выполняется внутри транзакционной сессии:
// проверка занятости email, вставка записи и выпуск токена либо
// завершаются целиком, либо откатываются целиком.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/apperror"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/password"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// Store описывает контракт хранилища, нужный сервису аутентификации.
type Store interface {
	// GetUserByEmail возвращает пользователя по email или storage.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// WithinTx выполняет fn внутри транзакции хранилища.
	WithinTx(ctx context.Context, fn storage.TxFunc) error
}

// Service отвечает за регистрацию и аутентификацию пользователей.
type Service struct {
	store  Store
	tokens jwt.Maker
	log    *slog.Logger
}

// New создает новый экземпляр Service.
func New(store Store, tokens jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
		log:    log,
	}
}

// SignUp создает нового пользователя и выпускает для него токен.
//
// Вся операция идёт в одной транзакции: если выпуск токена не удался
// после вставки записи, вставка откатывается и в хранилище не остаётся
// частичной записи. Занятый email — apperror.Conflict.
func (s *Service) SignUp(ctx context.Context, req models.DummySignUp) (*models.AuthResult, error) {
	const op = "services.auth.SignUp"

	user := models.User{
		Name:  strings.TrimSpace(req.Name),
		Email: NormalizeEmail(req.Email),
		Role:  req.Role,
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	user.PasswordHash = hashed

	var result *models.AuthResult
	err = s.store.WithinTx(ctx, func(r storage.Repository) error {
		if _, err := r.GetUserByEmail(ctx, user.Email); err == nil {
			return apperror.Conflict("user already exists")
		} else if !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		uid, err := r.CreateUser(ctx, user)
		if err != nil {
			if errors.Is(err, storage.ErrEmailTaken) {
				return apperror.Conflict("user already exists")
			}
			return err
		}

		created, err := r.GetUser(ctx, uid)
		if err != nil {
			return err
		}

		token, err := s.tokens.GenerateToken(uid)
		if err != nil {
			return err
		}

		result = &models.AuthResult{Token: token, User: created}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user signed up", slog.String("op", op), slog.String("uid", result.User.UID))
	return result, nil
}

// SignIn проверяет учётные данные и выпускает токен.
//
// Неизвестный email и неверный пароль дают один и тот же отказ,
// чтобы ответ не раскрывал, что именно не совпало.
func (s *Service) SignIn(ctx context.Context, req models.DummySignIn) (*models.AuthResult, error) {
	const op = "services.auth.SignIn"

	user, err := s.store.GetUserByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperror.Unauthorized()
		}
		return nil, err
	}

	if err := password.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperror.Unauthorized()
	}

	token, err := s.tokens.GenerateToken(user.UID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	s.log.Info("user signed in", slog.String("op", op), slog.String("uid", user.UID))
	return &models.AuthResult{Token: token, User: user}, nil
}

// NormalizeEmail приводит email к каноническому виду хранения:
// без крайних пробелов и в нижнем регистре.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
