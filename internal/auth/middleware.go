package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/madhava-poojari/mentorship-api/internal/config"
	"github.com/madhava-poojari/mentorship-api/internal/models"
	"github.com/madhava-poojari/mentorship-api/internal/utils"
)

type ctxKey string

const ctxUserKey ctxKey = "currentUser"

// UserLoader resolves the user named by a validated token.
type UserLoader interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

func GetUserFromCtx(ctx context.Context) *models.User {
	if u, ok := ctx.Value(ctxUserKey).(*models.User); ok {
		return u
	}
	return nil
}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, ctxUserKey, u)
}

// AuthMiddleware validates the bearer JWT, loads the user and sets it in context.
// The role always comes from the database, so role changes apply immediately.
func AuthMiddleware(cfg *config.Config, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if authz == "" {
				utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "missing authorization", nil, nil)
				return
			}
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "invalid authorization header", nil, nil)
				return
			}
			claims, err := ParseAndValidateToken(cfg, strings.TrimSpace(parts[1]))
			if err != nil {
				utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "invalid token", nil, nil)
				return
			}
			u, err := users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "user not found", nil, nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// RoleMiddleware allows multiple allowed roles; usage: RoleMiddleware(models.RoleAdmin, models.RoleSuperadmin)
func RoleMiddleware(allowedRoles ...models.Role) func(http.Handler) http.Handler {
	set := map[models.Role]struct{}{}
	for _, r := range allowedRoles {
		set[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := GetUserFromCtx(r.Context())
			if u == nil {
				utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
				return
			}
			if _, ok := set[u.Role]; !ok {
				utils.WriteJSONResponse(w, http.StatusForbidden, false, "forbidden", nil, nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
