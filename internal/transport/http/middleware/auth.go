package httpmw

import (
	"context"
	"errors"
	"net/http"

	"github.com/Nycles/chat-service/internal/domain"
	"github.com/Nycles/chat-service/internal/security"
	"github.com/Nycles/chat-service/pkg/httputil"
)

type ctxKey string

const ctxKeyUserID ctxKey = "user_id"

type TokenVerifier interface {
	Verify(token string) (domain.UserID, error)
}

// AuthMiddleware — проверка Bearer-токена; userID кладется в контекст запроса.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := security.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				httputil.Error(w, http.StatusUnauthorized, authErrorMessage(err), authErrorCode(err))
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				httputil.Error(w, http.StatusUnauthorized, authErrorMessage(err), authErrorCode(err))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UserIDFromCtx(ctx context.Context) domain.UserID {
	if v := ctx.Value(ctxKeyUserID); v != nil {
		if id, ok := v.(domain.UserID); ok {
			return id
		}
	}
	return 0
}

func authErrorCode(err error) string {
	switch {
	case errors.Is(err, security.ErrTokenMissing):
		return "token_missing"
	case errors.Is(err, security.ErrTokenMalformed):
		return "token_malformed"
	case errors.Is(err, security.ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, security.ErrTokenInvalid),
		errors.Is(err, security.ErrInvalidIssuer),
		errors.Is(err, security.ErrInvalidSubject):
		return "token_invalid"
	default:
		return "auth_internal"
	}
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, security.ErrTokenMissing):
		return "missing auth token"
	case errors.Is(err, security.ErrTokenMalformed):
		return "malformed authorization header"
	case errors.Is(err, security.ErrTokenExpired):
		return "token expired, please login again"
	default:
		return "invalid token"
	}
}
