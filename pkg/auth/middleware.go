package auth

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/circulation/pkg/httpx"
	"github.com/ghuser/circulation/pkg/logger"
)

const sessionName = "circulation_session"
const sessionUserIDKey = "user_id"
const sessionIsAdminKey = "is_admin"

// RequireAuth is a chi middleware that enforces authentication via session
// cookies. It reads the session, resolves the caller's Identity (user ID plus
// administrator flag), and injects it into the request context. Returns 401
// Unauthorized if the session is missing, invalid, or lacks a valid user_id.
//
// After this middleware, handlers can safely call auth.IdentityFromCtx(r.Context()).
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			userIDStr, ok := session.Values[sessionUserIDKey].(string)
			if !ok || userIDStr == "" {
				log.WarnContext(r.Context(), "session missing user_id")
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				log.WarnContext(r.Context(), "invalid user_id in session", "user_id", userIDStr, "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid session data"})
				return
			}

			isAdmin, _ := session.Values[sessionIsAdminKey].(bool)

			ctx := WithIdentity(r.Context(), Identity{UserID: userID, IsAdmin: isAdmin})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates administrative endpoints. It must run after RequireAuth;
// non-administrators get 403.
func RequireAdmin(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := IdentityFromCtx(r.Context())
			if err != nil {
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}
			if !id.IsAdmin {
				log.WarnContext(r.Context(), "admin endpoint denied", "user_id", id.UserID)
				httpx.JSON(w, http.StatusForbidden, map[string]string{"error": "administrator role required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
