package tokengate

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/user-management/pkg/logger"
)

type ctxKey string

const identityKey ctxKey = "identity"

// IdentityFromContext returns the identity the gate attached to the request.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// ContextWithIdentity is exported for handler tests that bypass the gate.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Middleware validates the bearer token on every request whose path is not
// excluded, rejects with a structured JSON error on failure, and threads the
// identity through the request context on success.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.Excluded(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		identity, gerr := g.verifyRequest(r)
		if gerr != nil {
			g.logger.Warn("request rejected",
				"kind", string(gerr.Kind),
				"status", gerr.StatusCode(),
				"method", r.Method,
				"path", r.URL.Path)
			g.reject(w, gerr)
			return
		}

		ctx := ContextWithIdentity(r.Context(), identity)
		ctx = logger.With(ctx, "userID", identity.UserID, "username", identity.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// verifyRequest wraps Verify so that a failure nobody anticipated still
// comes back as a 401, never as an unhandled fault.
func (g *Gate) verifyRequest(r *http.Request) (identity Identity, gerr *GateError) {
	defer func() {
		if rec := recover(); rec != nil {
			g.logger.Error("token validation panicked", "panic", rec, "path", r.URL.Path)
			identity = Identity{}
			gerr = newGateError(KindValidationFailed, "token validation failed")
		}
	}()
	return g.Verify(r.Header.Get("Authorization"))
}

func (g *Gate) reject(w http.ResponseWriter, gerr *GateError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(gerr.StatusCode())
	if err := json.NewEncoder(w).Encode(map[string]string{"error": gerr.Message}); err != nil {
		g.logger.Error("failed to encode rejection response", "error", err)
	}
}
