package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey int

const identityKey ctxKey = iota

// Identity is what the upstream gateway attests about the caller.
type Identity struct {
	Sub   string
	Email string
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// RequireAuth unpacks the sub/email claims from the bearer token. Full
// verification (issuer, audience, expiry policy) belongs to the gateway in
// front of this service; here an absent or unparsable token is a 403.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" || raw == r.Header.Get("Authorization") {
				writeJSON(w, http.StatusForbidden, map[string]string{"error": "missing bearer token"})
				return
			}

			token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				writeJSON(w, http.StatusForbidden, map[string]string{"error": "invalid token"})
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				writeJSON(w, http.StatusForbidden, map[string]string{"error": "invalid token"})
				return
			}
			sub, _ := claims["sub"].(string)
			email, _ := claims["email"].(string)
			if sub == "" {
				writeJSON(w, http.StatusForbidden, map[string]string{"error": "token missing sub claim"})
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, Identity{Sub: sub, Email: email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
