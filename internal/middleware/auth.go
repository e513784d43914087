package middleware

import (
	"net/http"
	"strings"

	"careerhub_backend/internal/auth"
	"careerhub_backend/internal/config"
	"careerhub_backend/internal/logger"
	"careerhub_backend/internal/models"
	"careerhub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware - middleware проверки JWT. Кладет auth.Principal в контекст;
// само ядро дальше работает только с principal, а не с сырым токеном.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr, cfg.JWT.Secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		principal := auth.PrincipalFromClaims(claims)
		c.Set(string(contextkeys.PrincipalContextKey), principal)

		// Дальше логи этого запроса несут идентификатор субъекта
		ctx := logger.WithUser(c.Request.Context(), principal.Email)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles - middleware для проверки нескольких возможных ролей
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		val, exists := c.Get(string(contextkeys.PrincipalContextKey))
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: not authenticated"})
			return
		}

		principal, ok := val.(auth.Principal)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: invalid principal type"})
			return
		}

		if !roleSet[principal.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient permissions"})
			return
		}

		c.Next()
	}
}
