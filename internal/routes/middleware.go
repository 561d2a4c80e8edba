package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-todo-api/backend/internal/services"
)

// AuthMiddleware はベアラートークンを検証し、ユーザーIDをコンテキストに設定するミドルウェアです。
// トークンの解決はすべてのハンドラー実行前に完了します。
func AuthMiddleware(tokenService *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}
		// "Bearer " プレフィックスを削除
		if !strings.HasPrefix(tokenString, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			c.Abort()
			return
		}
		tokenString = tokenString[len("Bearer "):]

		userID, err := tokenService.Validate(tokenString)
		if err != nil {
			// 不正と期限切れは区別せず401を返す
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
