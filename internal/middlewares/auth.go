package middlewares

import (
	"customer-purchases/internal/lib/jwt"
	"github.com/gin-gonic/gin"
	"net/http"
	"strings"
)

const ClientIDKey = "client_id"

type AuthMiddleware struct {
	jwtGen *jwt.Generator
}

func NewAuthMiddleware(jwtGen *jwt.Generator) *AuthMiddleware {
	return &AuthMiddleware{jwtGen: jwtGen}
}

func (m *AuthMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrMissingToken.Error()})
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrMalformedToken.Error()})
			return
		}

		clientID, err := m.jwtGen.Parse(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(ClientIDKey, clientID)
		c.Next()
	}
}
