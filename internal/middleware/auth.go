package middleware

import (
	"net/http"
	"strings"

	"findthem_backend/internal/auth"
	"findthem_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the only cookie the session token is accepted from.
const SessionCookieName = "token"

const claimsKey = "claims"

// extractToken pulls the session token from its designated channels: the
// HTTP-only session cookie, or the Authorization bearer header. A token
// arriving any other way is ignored.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// AuthMiddleware rejects requests without a valid session.
func AuthMiddleware(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := auth.ParseToken(tokenStr, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches claims when a valid session is present
// and lets the request through either way. Used on endpoints that accept
// anonymous callers per policy.
func OptionalAuthMiddleware(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr != "" {
			if claims, err := auth.ParseToken(tokenStr, jwtSecret); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(claimsKey, claims)
	c.Set("userID", claims.UserID)
	c.Set("role", string(claims.Role))

	ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
	c.Request = c.Request.WithContext(ctx)
}

// GetClaims extracts the session claims from the request context, or nil
// for an anonymous request.
func GetClaims(c *gin.Context) *auth.Claims {
	val, exists := c.Get(claimsKey)
	if !exists {
		return nil
	}
	claims, ok := val.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetUserID extracts the account id from the request context.
func GetUserID(c *gin.Context) string {
	if claims := GetClaims(c); claims != nil {
		return claims.UserID
	}
	return ""
}
