/* auth.go
 * JWT Bearer authentication for the callable endpoints. Token verification is
 * the identity provider's job; here we only check the signature and expiry
 * and extract the caller's uid and display name for the handlers.
 */

package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"matchroom/api/shared"
)

type contextKey string

const userContextKey contextKey = "user"

// authenticate wraps a handler and rejects requests without a valid Bearer
// token. The verified identity is placed in the request context.
func (s *Server) authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "Missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "Invalid authorization header format")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid signing method")
			}
			return []byte(s.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "Invalid token claims")
			return
		}

		user := shared.User{}
		if sub, ok := claims["sub"].(string); ok {
			user.UID = sub
		}
		if name, ok := claims["name"].(string); ok {
			user.Name = name
		}
		if user.UID == "" {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "Token missing subject")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// userFromContext returns the identity stored by the auth middleware.
func userFromContext(ctx context.Context) shared.User {
	user, _ := ctx.Value(userContextKey).(shared.User)
	return user
}
