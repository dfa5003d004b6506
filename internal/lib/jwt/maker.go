// Package jwt реализует выпуск и проверку подписанных токенов доступа.
//
// Токен несёт идентификатор пользователя в стандартном claim Subject
// и ограничен временем жизни. Роль и прочие данные в токен не кладутся:
// шлюз аутентификации разрешает пользователя через хранилище при каждом запросе.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для выпуска и проверки токенов.
type Maker interface {
	// GenerateToken выпускает подписанный токен для пользователя с данным UID.
	GenerateToken(userUID string) (string, error)
	// ParseToken проверяет подпись и срок действия токена
	// и возвращает UID пользователя из claim Subject.
	ParseToken(tokenStr string) (string, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
