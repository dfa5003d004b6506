package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает его UID.
func (r *Repo) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (name, email, password_hash, role)
			  VALUES ($1, $2, $3, $4)
			  RETURNING uid`
	if err := r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, translate(err))
	}
	return newUID, nil
}

// GetUser возвращает пользователя по его UID.
func (r *Repo) GetUser(ctx context.Context, uid string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, password_hash, role, created_at, updated_at
			  FROM users
			  WHERE uid = $1`
	u := &models.User{}
	row := r.db.QueryRowContext(ctx, query, uid)
	if err := row.Scan(&u.UID, &u.Name, &u.Email, &u.PasswordHash,
		&u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по его email.
func (r *Repo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, password_hash, role, created_at, updated_at
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	row := r.db.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.UID, &u.Name, &u.Email, &u.PasswordHash,
		&u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return u, nil
}

// ListUsers возвращает список всех пользователей.
func (r *Repo) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, password_hash, role, created_at, updated_at
			  FROM users
			  ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UID, &u.Name, &u.Email, &u.PasswordHash,
			&u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateUser обновляет имя, email и хэш пароля пользователя по его UID
// и возвращает количество изменённых строк.
func (r *Repo) UpdateUser(ctx context.Context, user models.User) (int64, error) {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET name = $1, email = $2, password_hash = $3, updated_at = now()
			  WHERE uid = $4`
	result, err := r.db.ExecContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.UID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, translate(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// RemoveUser удаляет пользователя по UID и возвращает количество удалённых строк.
// Подписки пользователя не трогаются: ссылка на владельца мягкая.
func (r *Repo) RemoveUser(ctx context.Context, uid string) (int64, error) {
	const op = "storage.RemoveUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM users WHERE uid = $1`
	result, err := r.db.ExecContext(ctx, query, uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, translate(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}
