package security

import "errors"

var (
	ErrTokenMissing   = errors.New("auth token is missing")
	ErrTokenMalformed = errors.New("auth credential is malformed")
	ErrTokenExpired   = errors.New("token expired or not valid yet")
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenInternal  = errors.New("token verification failed")

	ErrInvalidIssuer    = errors.New("invalid issuer")
	ErrInvalidSubject   = errors.New("invalid subject")
	ErrPasswordTooShort = errors.New("password too short")
)
