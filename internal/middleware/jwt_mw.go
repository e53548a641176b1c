package middleware

import (
	"net/http"
	"strings"

	"book_catalog/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	AuthUserKey = "authUser"
	AuthRoleKey = "authRole"
)

// unauthorizedBody is the fixed envelope for every authentication failure,
// whether the token is missing, malformed, expired, or badly signed.
var unauthorizedBody = gin.H{
	"error": "Unauthorized: Access is denied due to invalid credentials",
	"code":  http.StatusUnauthorized,
}

// JWTAuthMiddleware verifies the bearer token and stores its claims on the
// context for downstream handlers. Register and login are routed outside
// this middleware.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, unauthorizedBody)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, unauthorizedBody)
			return
		}

		claims, err := jwtUtil.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, unauthorizedBody)
			return
		}

		c.Set(AuthUserKey, claims.UserID)
		c.Set(AuthRoleKey, claims.Role)

		c.Next()
	}
}
