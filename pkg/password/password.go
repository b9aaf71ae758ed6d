package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Cost задаёт стоимость bcrypt для новых хэшей.
const Cost = bcrypt.DefaultCost

// ErrMismatch возвращается, когда пароль не совпадает с хэшем.
var ErrMismatch = errors.New("password does not match")

// Hash хеширует пароль или одноразовый токен с использованием bcrypt.
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Compare сравнивает хэш и «сырой» пароль.
// Несовпадение возвращается как ErrMismatch, испорченный хэш — исходной ошибкой bcrypt.
func Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
