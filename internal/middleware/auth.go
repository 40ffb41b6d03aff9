package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/rythmrun/pkg/auth"
)

const UserIDKey = "userID"

const unauthenticated = "unauthenticated"

// AccessVerifier проверка access токена; без обращения к базе
type AccessVerifier interface {
	VerifyAccess(token string) (*auth.Claims, error)
}

// AuthMiddleware проверяет bearer токен; любая ошибка даёт одинаковый 401
func AuthMiddleware(verifier AccessVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			abortUnauthenticated(c)
			return
		}
		authenticate(c, verifier, token)
	}
}

// WSAuthMiddleware специальный middleware для WebSocket: браузер не умеет
// ставить заголовки, поэтому токен можно передать в ?token=
func WSAuthMiddleware(verifier AccessVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.Query("token"))
		if token == "" {
			token, _ = auth.ExtractTokenFromHeader(c.Request)
		}
		if token == "" {
			abortUnauthenticated(c)
			return
		}
		authenticate(c, verifier, token)
	}
}

func authenticate(c *gin.Context, verifier AccessVerifier, token string) {
	claims, err := verifier.VerifyAccess(token)
	if err != nil {
		abortUnauthenticated(c)
		return
	}
	c.Set(UserIDKey, claims.UserID)
	c.Next()
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": unauthenticated})
}

// UserID достаёт идентификатор, выставленный AuthMiddleware
func UserID(c *gin.Context) uint {
	return c.GetUint(UserIDKey)
}
