package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/pedesim/backend/pkg/response"
)

// RequireRole returns a middleware that allows only the given perfis.
func RequireRole(perfis ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{})
	for _, p := range perfis {
		allowed[p] = struct{}{}
	}
	return func(c *gin.Context) {
		perfilVal, ok := c.Get(ContextUserPerfil)
		if !ok {
			response.Unauthorized(c, "missing user context")
			c.Abort()
			return
		}
		perfil, _ := perfilVal.(string)
		if _, ok := allowed[perfil]; !ok {
			response.Forbidden(c, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
