package domain

import (
	"strings"
	"time"
)

type UserID int64

type User struct {
	ID           UserID    `db:"id"`
	Email        string    `db:"email"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	ImageURL     *string   `db:"image_url"`
	CreatedAt    time.Time `db:"created_at"`
}

// Создает нового пользователя
// Ожидает уже посчитанный хеш пароля
func NewUser(email, username, passwordHash string, now time.Time) (*User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrInvalidUsername
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, ErrEmptyPasswordHash
	}

	return &User{
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}, nil
}

func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return ""
	}
	return email
}
