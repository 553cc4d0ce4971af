package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/clinicare/clinic-backend/internal/domain"
	"github.com/clinicare/clinic-backend/internal/service"
)

type contextKey string

const userKey contextKey = "user"

// Auth gates protected routes behind a Bearer access token. Every failure
// mode - missing header, bad token, expired token, deleted account - is the
// same 401 with the same body, so nothing leaks to a probing client. The
// reason is still logged server-side.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Printf("ERROR [middleware.Auth] missing authorization header")
				unauthorized(w)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Printf("ERROR [middleware.Auth] invalid authorization header format")
				unauthorized(w)
				return
			}

			user, err := authService.Authenticate(r.Context(), parts[1])
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	http.Error(w, "Not authenticated", http.StatusUnauthorized)
}

// GetUser returns the authenticated user set by Auth. Handlers must use this
// as the sole source of the caller's identity.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}
