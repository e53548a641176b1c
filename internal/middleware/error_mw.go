package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler is the final translation stage of the pipeline: any error a
// handler attached via c.Error without writing a response becomes a
// uniform {error, code} body with the response's status (500 by default).
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{
			"error": c.Errors.Last().Error(),
			"code":  status,
		})
	}
}

// Recovery converts panics into a 500 with the same envelope instead of
// gin's default empty body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "Internal Server Error",
			"code":  http.StatusInternalServerError,
		})
	})
}
