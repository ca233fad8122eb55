package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/user-management/internal/tokengate"
	"github.com/frahmantamala/user-management/internal/user"
)

// UserLoader resolves the authenticated identity into a user with
// permissions. The gate itself never touches the store; this middleware is
// where the lookup happens for permission-guarded routes.
type UserLoader interface {
	GetByID(userID int64) (*user.User, error)
}

// RequirePermissions loads the authenticated user and checks that it holds
// at least one of the required permission names.
func RequirePermissions(loader UserLoader, logger *slog.Logger, permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := tokengate.IdentityFromContext(r.Context())
			if !ok || identity.UserID == "" {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			userID, err := strconv.ParseInt(identity.UserID, 10, 64)
			if err != nil {
				logger.Warn("failed to parse user id from identity", "value", identity.UserID, "error", err)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			u, err := loader.GetByID(userID)
			if err != nil {
				logger.Error("failed to load user for permission check", "user_id", userID, "error", err)
				writeJSONError(w, http.StatusUnauthorized, "user not found")
				return
			}

			if !u.HasAnyPermission(permissions) {
				logger.Warn("access denied: insufficient permissions",
					"user_id", u.ID,
					"required_permissions", permissions,
					"user_permissions", u.Permissions)
				writeJSONError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r.WithContext(user.ContextWithUser(r.Context(), u)))
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
