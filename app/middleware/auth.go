package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"userbase/app/dto"
	jwtutil "userbase/app/jwt"
	"userbase/app/models"
	"userbase/app/session"
)

type ctxKey int

const claimsKey ctxKey = 1

type Auth struct{ Signer *jwtutil.Signer }

// RequireAuth accepts the session cookie or an Authorization bearer
// token and stores the parsed claims on the request context.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := tokenFrom(r)
		if !ok {
			deny(w, http.StatusUnauthorized, "authentication required")
			return
		}
		claims, err := a.Signer.Parse(token)
		if err != nil {
			deny(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin must run after RequireAuth.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())
		if claims == nil || claims.Role != models.RoleAdmin {
			deny(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetClaims(ctx context.Context) *jwtutil.Claims {
	if c, ok := ctx.Value(claimsKey).(*jwtutil.Claims); ok {
		return c
	}
	return nil
}

func tokenFrom(r *http.Request) (string, bool) {
	if token, ok := session.Read(r); ok {
		return token, true
	}
	authz := r.Header.Get("Authorization")
	if token, found := strings.CutPrefix(authz, "Bearer "); found && token != "" {
		return token, true
	}
	return "", false
}

func deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.Fail(msg))
}
