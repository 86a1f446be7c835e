package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"mikombo-backend/internal/auth"
	"mikombo-backend/internal/models"
	"mikombo-backend/internal/store"
	"mikombo-backend/internal/transport"
)

type UserLoader interface {
	GetByID(ctx context.Context, id string) (models.User, error)
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

type userKey struct{}
type claimsKey struct{}

// RequireUser resolves the bearer token to a stored user. A missing token is
// rejected before any store access.
func RequireUser(tokens TokenVerifier, users UserLoader, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				transport.WriteError(w, http.StatusUnauthorized, "not authenticated", nil)
				return
			}

			claims, err := tokens.Verify(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrExpiredToken):
					transport.WriteError(w, http.StatusUnauthorized, "token expired", nil)
				case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrRevokedToken):
					transport.WriteError(w, http.StatusUnauthorized, "invalid token", nil)
				default:
					log.Error("auth: token verification failed", slog.String("error", err.Error()))
					transport.WriteError(w, http.StatusInternalServerError, "auth error", nil)
				}
				return
			}

			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					transport.WriteError(w, http.StatusUnauthorized, "user not found", nil)
					return
				}
				log.Error("auth: user lookup failed", slog.String("user_id", claims.UserID), slog.String("error", err.Error()))
				transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
				return
			}

			ctx := context.WithValue(r.Context(), userKey{}, user)
			ctx = context.WithValue(ctx, claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin applies RequireUser, then rejects non-admin users.
func RequireAdmin(tokens TokenVerifier, users UserLoader, log *slog.Logger) func(http.Handler) http.Handler {
	requireUser := RequireUser(tokens, users, log)
	return func(next http.Handler) http.Handler {
		return requireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || !user.IsAdmin() {
				transport.WriteError(w, http.StatusForbidden, "forbidden", nil)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey{}).(models.User)
	return user, ok
}

func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
