package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"moodbite/models"
	"moodbite/storage"
	"moodbite/utils"

	"github.com/gin-gonic/gin"
)

// TokenCookie lets browser clients authenticate without setting a header.
const TokenCookie = "token"

// UserFinder resolves the account a token was issued for.
type UserFinder interface {
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware accepts a bearer token, or the token cookie when no
// Authorization header is sent, and stores userID and username on the context.
// The account must still exist, so tokens issued before a deletion stop working.
func AuthMiddleware(secret []byte, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := utils.ParseJWT(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user, err := users.FindUserByID(c.Request.Context(), claims.UserID)
		if errors.Is(err, storage.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set("userID", user.ID)
		c.Set("username", user.Username)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return "", false
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		return token, token != ""
	}
	if token, err := c.Cookie(TokenCookie); err == nil && token != "" {
		return token, true
	}
	return "", false
}
