package models

import "time"

// Статусы подписки.
const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

// Subscription представляет запись о подписке пользователя.
// UserUID — владелец записи, назначается только из аутентифицированного
// пользователя при создании, не из тела запроса.
type Subscription struct {
	ID          int        `json:"id"`
	UserUID     string     `json:"user_uid"`
	ServiceName string     `json:"service_name"`
	Plan        string     `json:"plan,omitempty"`
	Price       int        `json:"price"`
	Status      string     `json:"status"`
	StartDate   time.Time  `json:"start_date"`
	RenewalDate *time.Time `json:"renewal_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DummySubscription используется для приёма данных подписки из JSON-запроса,
// прежде чем конвертировать их в Subscription. Даты приходят строками
// в формате 02-01-2006. Поле user_uid принимается, но игнорируется:
// владельцем всегда становится автор запроса.
type DummySubscription struct {
	UserUID     string `json:"user_uid,omitempty" validate:"omitempty"`
	ServiceName string `json:"service_name" validate:"required"`
	Plan        string `json:"plan,omitempty" validate:"omitempty"`
	Price       int    `json:"price" validate:"required,gt=0"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=active cancelled expired"`
	StartDate   string `json:"start_date" validate:"required"`
	RenewalDate string `json:"renewal_date,omitempty" validate:"omitempty"`
}

// DummySubscriptionUpdate используется для приёма частичного обновления подписки.
type DummySubscriptionUpdate struct {
	ServiceName string `json:"service_name,omitempty" validate:"omitempty"`
	Plan        string `json:"plan,omitempty" validate:"omitempty"`
	Price       int    `json:"price,omitempty" validate:"omitempty,gt=0"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=active cancelled expired"`
	StartDate   string `json:"start_date,omitempty" validate:"omitempty"`
	RenewalDate string `json:"renewal_date,omitempty" validate:"omitempty"`
}
