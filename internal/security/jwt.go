package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Nycles/chat-service/internal/domain"

	"github.com/golang-jwt/jwt"
)

// Используется SigningMethodHS256 с общим секретом
type JWTSigner struct {
	secret    []byte
	issuer    string
	ttl       time.Duration
	clockSkew time.Duration
}

func NewJWTSigner(secret []byte, issuer string, ttl, clockSkew time.Duration) *JWTSigner {
	return &JWTSigner{
		secret:    secret,
		issuer:    issuer,
		ttl:       ttl,
		clockSkew: clockSkew,
	}
}

func (s *JWTSigner) TTL() time.Duration {
	return s.ttl
}

type AccessClaims struct {
	jwt.StandardClaims // включает поля Issuer, ExpiresAt, NotBefore, IssuedAt, Subject
}

// SignAccessToken выпускает JWT с sub=userID и exp=now+ttl
func (s *JWTSigner) SignAccessToken(userID domain.UserID, now time.Time) (string, error) {
	claims := AccessClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   fmt.Sprint(int64(userID)),
			Issuer:    s.issuer,
			IssuedAt:  now.Unix(),
			NotBefore: now.Add(-s.clockSkew).Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}

// Verify проверяет подпись и клеймы и возвращает userID из sub.
// Ошибки сводятся к сентинелам ErrToken*: наружу не утекают детали парсинга.
func (s *JWTSigner) Verify(tokenStr string) (domain.UserID, error) {
	tokenStr = strings.TrimSpace(tokenStr)
	if tokenStr == "" {
		return 0, ErrTokenMissing
	}

	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, classifyJWTError(err)
	}
	if !token.Valid {
		return 0, ErrTokenInvalid
	}

	if !claims.VerifyIssuer(s.issuer, s.issuer != "") {
		return 0, ErrInvalidIssuer
	}

	// временные клеймы с допуском clockSkew
	now := time.Now()
	nbf := time.Unix(claims.NotBefore, 0).Add(-s.clockSkew)
	exp := time.Unix(claims.ExpiresAt, 0).Add(s.clockSkew)
	if now.Before(nbf) || now.After(exp) {
		return 0, ErrTokenExpired
	}

	return subjectAsUserID(claims)
}

func classifyJWTError(err error) error {
	var vErr *jwt.ValidationError
	if errors.As(err, &vErr) {
		if vErr.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}

	return ErrTokenInternal
}

func subjectAsUserID(claims *AccessClaims) (domain.UserID, error) {
	if claims == nil || claims.Subject == "" {
		return 0, ErrInvalidSubject
	}
	var id int64
	if _, err := fmt.Sscan(claims.Subject, &id); err != nil || id <= 0 {
		return 0, ErrInvalidSubject
	}

	return domain.UserID(id), nil
}

// BearerToken разбирает заголовок Authorization.
// Корректная форма — ровно две части через пробел: схема и токен.
func BearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrTokenMissing
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrTokenMalformed
	}

	return parts[1], nil
}
