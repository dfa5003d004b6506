package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// CreateSubscription вставляет новую запись подписки и возвращает её
// вместе с назначенными базой полями.
func (r *Repo) CreateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_uid, service_name, plan, price, status,
			      start_date, renewal_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, created_at, updated_at`
	if err := r.db.QueryRowContext(ctx, query,
		sub.UserUID, sub.ServiceName, sub.Plan, sub.Price, sub.Status,
		sub.StartDate, sub.RenewalDate).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return &sub, nil
}

// GetSubscription возвращает данные подписки по её ID.
func (r *Repo) GetSubscription(ctx context.Context, id int) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, service_name, plan, price, status,
			      start_date, renewal_date, created_at, updated_at
			  FROM subscriptions
			  WHERE id = $1`
	var result models.Subscription
	row := r.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&result.ID, &result.UserUID, &result.ServiceName, &result.Plan,
		&result.Price, &result.Status, &result.StartDate, &result.RenewalDate,
		&result.CreatedAt, &result.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return &result, nil
}

// ListSubscriptions возвращает список всех подписок с пагинацией.
func (r *Repo) ListSubscriptions(ctx context.Context, limit, offset int) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, service_name, plan, price, status,
			      start_date, renewal_date, created_at, updated_at
			  FROM subscriptions
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		var item models.Subscription
		if err := rows.Scan(&item.ID, &item.UserUID, &item.ServiceName, &item.Plan,
			&item.Price, &item.Status, &item.StartDate, &item.RenewalDate,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateSubscription обновляет данные подписки по её ID и возвращает
// количество изменённых строк. Владелец записи не изменяется.
func (r *Repo) UpdateSubscription(ctx context.Context, sub models.Subscription) (int64, error) {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET service_name = $1, plan = $2, price = $3, status = $4,
			      start_date = $5, renewal_date = $6, updated_at = now()
			  WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query,
		sub.ServiceName, sub.Plan, sub.Price, sub.Status,
		sub.StartDate, sub.RenewalDate, sub.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, translate(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// RemoveSubscription удаляет подписку по ID и возвращает количество удалённых строк.
func (r *Repo) RemoveSubscription(ctx context.Context, id int) (int64, error) {
	const op = "storage.RemoveSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}
