package middleware

import (
	"net/http"
	"strings"

	"fleet-admin/internal/data/entity"
	"fleet-admin/internal/data/repository"
	"fleet-admin/pkg/utils"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// AuthSession validates the opaque session token in the Authorization header.
// Websocket upgrades may carry it in the access_token query parameter or as
// the "bearer, <token>" subprotocol pair instead.
func AuthSession(sessionRepo repository.SessionRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			var token string
			switch {
			case authHeader != "":
				scheme, value, found := strings.Cut(authHeader, " ")
				if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(value) == "" {
					utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
					return
				}
				token = strings.TrimSpace(value)
			case websocket.IsWebSocketUpgrade(r):
				token = upgradeToken(r)
			}
			if token == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			session, err := sessionRepo.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session == nil {
				logger.Warn("Invalid or expired session", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetUserContext(r.Context(), session.UserID)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// upgradeToken reads the session token a browser websocket client can send
func upgradeToken(r *http.Request) string {
	if token := strings.TrimSpace(r.URL.Query().Get("access_token")); token != "" {
		return token
	}
	protocols := websocket.Subprotocols(r)
	for i := 0; i+1 < len(protocols); i++ {
		if strings.EqualFold(protocols[i], "bearer") {
			return protocols[i+1]
		}
	}
	return ""
}

// Admin rejects authenticated users whose account is not an active admin
func Admin(userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Admin check: failed to get user",
					zap.Error(err), zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil || user.Role != entity.RoleAdmin || user.IsBlocked {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
