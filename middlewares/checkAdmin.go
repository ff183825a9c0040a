package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckAdmin gates the moderation surface. Runs after CheckAuth.
func CheckAdmin(c *gin.Context) {
	isAdmin := c.MustGet("admin").(bool)

	if !isAdmin {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin access required"})
		return
	}
}
