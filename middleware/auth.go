package middleware

import (
	"strings"

	"docvault/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates bearer tokens issued by the external auth
// collaborator and resolves the container scope into the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := extractClaims(c)
		if !ok {
			c.Abort()
			return
		}

		utils.SetClaimsInContext(c, claims)
		c.Next()
	}
}

// AdminMiddleware additionally requires the admin role used by the
// administration review collaborator.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := extractClaims(c)
		if !ok {
			c.Abort()
			return
		}

		if claims.Role != utils.RoleAdmin {
			utils.ForbiddenResponse(c, "Admin role required")
			c.Abort()
			return
		}

		utils.SetClaimsInContext(c, claims)
		c.Next()
	}
}

func extractClaims(c *gin.Context) (*utils.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		utils.UnauthorizedResponse(c, "Authorization header required")
		return nil, false
	}

	// Extract token from "Bearer <token>"
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		utils.UnauthorizedResponse(c, "Invalid authorization header format")
		return nil, false
	}

	claims, err := utils.ValidateToken(tokenParts[1])
	if err != nil {
		utils.UnauthorizedResponse(c, "Invalid or expired token")
		return nil, false
	}

	return claims, true
}
