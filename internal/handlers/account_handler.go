// Package handlers はHTTPハンドラーを提供します。
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-todo-api/backend/internal/models"
	"go-todo-api/backend/internal/repositories"
	"go-todo-api/backend/internal/services"
)

// AccountHandler はサインアップ・ログイン・ログアウトのハンドラーを管理します。
type AccountHandler struct {
	accountService *services.AccountService
	tokenService   *services.TokenService
}

// NewAccountHandler は新しいAccountHandlerを作成します。
func NewAccountHandler(accountService *services.AccountService, tokenService *services.TokenService) *AccountHandler {
	return &AccountHandler{accountService: accountService, tokenService: tokenService}
}

// SignupHandler はユーザー登録を処理します。
// メール重複は互換性のため409ではなく400を返します。
func (h *AccountHandler) SignupHandler(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	_, err := h.accountService.Register(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match."})
		case errors.Is(err, services.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password does not meet the strength policy."})
		case errors.Is(err, repositories.ErrDuplicateEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already registered."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signup successful."})
}

// LoginHandler はユーザーログインを処理し、トークンペアを返します。
func (h *AccountHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	user, err := h.accountService.Authenticate(req)
	if err != nil {
		// ユーザー不在とパスワード不一致は区別せず401を返す
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	session, err := h.tokenService.Issue(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    session.ExpiresAt,
	})
}

// LogoutHandler はログアウトの応答のみを返します。
// サーバー側の失効処理は行わず、トークンは自然に期限切れになります。
func (h *AccountHandler) LogoutHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful."})
}
