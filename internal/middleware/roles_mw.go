package middleware

import (
	"net/http"

	"book_catalog/internal/model"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware restricts a route to the given roles. It must run after
// JWTAuthMiddleware, which puts the role claim on the context.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(AuthRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Forbidden: role not found in token",
				"code":  http.StatusForbidden,
			})
			return
		}

		userRole, ok := roleVal.(string)
		if ok {
			for _, allowed := range allowedRoles {
				if userRole == allowed {
					c.Next()
					return
				}
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Forbidden: you do not have permission to access this resource",
			"code":  http.StatusForbidden,
		})
	}
}

// AdminMiddleware allows only admins through.
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleAdmin)
}
