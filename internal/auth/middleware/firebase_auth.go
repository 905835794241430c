package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	authctx "github.com/error7buddy/KiLagbe.Com/internal/auth"
	"github.com/error7buddy/KiLagbe.Com/internal/httpx"
)

// TokenVerifier is satisfied by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseAuthMiddleware validates Firebase ID tokens and extracts user info.
// A nil verifier means authentication is not configured and every request is rejected.
func FirebaseAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			httpx.AbortFail(c, http.StatusUnauthorized, "authentication is not configured")
			return
		}

		token := extractToken(c)
		if token == "" {
			httpx.AbortFail(c, http.StatusUnauthorized, "missing authorization token")
			return
		}

		decodedToken, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			httpx.Log(c).WithError(err).Debug("id token rejected")
			httpx.AbortFail(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set(authctx.CtxFirebaseUID, decodedToken.UID)

		// Extract email from claims if available
		if email, ok := decodedToken.Claims["email"].(string); ok {
			c.Set(authctx.CtxEmail, email)
		}

		admin, _ := decodedToken.Claims["admin"].(bool)
		c.Set(authctx.CtxAdmin, admin)

		c.Next()
	}
}

// RequireAdmin must run after FirebaseAuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authctx.IsAdmin(c) {
			httpx.Log(c).WithField("firebase_uid", authctx.UserFirebaseUID(c)).Warn("admin route refused")
			httpx.AbortFail(c, http.StatusForbidden, "admin access required")
			return
		}
		c.Next()
	}
}

// AdminGuard returns the handler chain that protects admin routes. Without a
// verifier the routes stay open, matching deployments that have no Firebase
// service account configured.
func AdminGuard(verifier TokenVerifier) []gin.HandlerFunc {
	if verifier == nil {
		return nil
	}
	return []gin.HandlerFunc{FirebaseAuthMiddleware(verifier), RequireAdmin()}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
