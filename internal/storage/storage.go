// Package storage реализует хранилище данных на основе PostgreSQL
// для управления пользователями и подписками. Предоставляет методы
// создания, чтения, обновления и удаления записей, а также
// транзакционную сессию WithinTx для атомарных многошаговых записей.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Сигнальные ошибки хранилища. Слои выше сопоставляют их с доменной
// таксономией, не заглядывая в текст ошибок базы.
var (
	// ErrNotFound — запись отсутствует.
	ErrNotFound = errors.New("record not found")
	// ErrEmailTaken — нарушена уникальность email.
	ErrEmailTaken = errors.New("email already taken")
)

// Repository описывает полный набор операций хранилища. Одни и те же
// методы доступны как вне транзакции (через Storage), так и внутри неё
// (через репозиторий, переданный в TxFunc).
type Repository interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	GetUser(ctx context.Context, uid string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, user models.User) (int64, error)
	RemoveUser(ctx context.Context, uid string) (int64, error)

	CreateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error)
	GetSubscription(ctx context.Context, id int) (*models.Subscription, error)
	ListSubscriptions(ctx context.Context, limit, offset int) ([]*models.Subscription, error)
	UpdateSubscription(ctx context.Context, sub models.Subscription) (int64, error)
	RemoveSubscription(ctx context.Context, id int) (int64, error)
}

// TxFunc выполняется внутри открытой транзакции. Любая ошибка из fn
// приводит к откату всех записей и распространяется вызывающему без изменений.
type TxFunc func(r Repository) error

// querier абстрагирует *sql.DB и *sql.Tx, чтобы методы репозитория
// одинаково работали вне и внутри транзакции.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repo реализует Repository поверх querier.
type Repo struct {
	db querier
}

// Storage инкапсулирует соединение с базой данных PostgreSQL.
// Вне транзакции методы Repository выполняются напрямую на пуле соединений.
type Storage struct {
	*Repo
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		Repo: &Repo{db: db},
		DB:   db,
	}, nil
}

// WithinTx открывает транзакцию, выполняет fn на репозитории, привязанном
// к этой транзакции, и фиксирует её. Ошибка из fn откатывает все записи,
// исходная ошибка распространяется без изменений. Отложенный Rollback
// гарантирует освобождение сессии на любом пути выхода, включая панику;
// после успешного Commit он не действует.
func (s *Storage) WithinTx(ctx context.Context, fn TxFunc) error {
	const op = "storage.WithinTx"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(&Repo{db: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// translate сопоставляет ошибки драйвера с сигнальными ошибками хранилища.
// 23505 — нарушение уникальности, 22P02 — нечитаемый идентификатор:
// запись с таким ключом существовать не может.
func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrEmailTaken
		case "22P02":
			return ErrNotFound
		}
	}
	return err
}
