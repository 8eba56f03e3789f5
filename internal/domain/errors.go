package domain

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrNotParticipant = errors.New("user is not a room participant")
	ErrNotAuthor      = errors.New("user is not the message author")

	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUsernameTaken      = errors.New("user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidUsername   = errors.New("invalid username")
	ErrEmptyPasswordHash = errors.New("empty password hash")
	ErrEmptyMessage      = errors.New("empty message content")
	ErrMessageTooLong    = errors.New("message too long")
)
