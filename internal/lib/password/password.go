// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// Hash создает bcrypt-хеш пароля для безопасного хранения.
// Compare сравнивает сохранённый bcrypt-хеш с введённым паролем.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash принимает пароль пользователя и возвращает его bcrypt-хэш.
func Hash(password string) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Compare сравнивает bcrypt-хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, иначе — ошибку.
func Compare(storedHash, rawPassword string) error {
	const op = "password.Compare"
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(rawPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
