// Package models содержит доменные структуры трекера подписок:
// пользователей, подписки и вспомогательные типы для приёма данных
// из JSON-запросов до их валидации.
package models

import "time"

// Роли пользователей системы.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя системы.
// PasswordHash никогда не сериализуется в ответах (json:"-").
type User struct {
	UID          string    `json:"uid"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity — аутентифицированный пользователь, извлечённый из токена
// и разрешённый через хранилище. Живёт только в контексте одного запроса,
// хэш пароля сюда не попадает.
type Identity struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin сообщает, имеет ли identity административную роль.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// IdentityOf строит Identity из записи пользователя.
func IdentityOf(u *User) Identity {
	return Identity{
		UID:   u.UID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// DummySignUp используется для приёма данных регистрации из JSON-запроса.
// Роль опциональна, по умолчанию "user".
type DummySignUp struct {
	Name     string `json:"name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

// DummySignIn используется для приёма учётных данных из JSON-запроса.
type DummySignIn struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// DummyUserUpdate используется для приёма частичного обновления пользователя.
// Применяются только переданные поля.
type DummyUserUpdate struct {
	Name     string `json:"name,omitempty" validate:"omitempty,min=3,max=50"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
}

// AuthResult — результат операций, выпускающих токен: регистрация, вход,
// создание и обновление пользователя.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
