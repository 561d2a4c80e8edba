package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go-todo-api/backend/internal/models"
	"go-todo-api/backend/internal/repositories"
)

// トークンの有効期限。アクセストークン1時間、リフレッシュトークン14日。
const (
	AccessTokenTTL  = time.Hour
	RefreshTokenTTL = 14 * 24 * time.Hour
)

var (
	// ErrTokenInvalid は未知または不正な形式のトークンに対するエラーです。
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired は有効期限切れのトークンに対するエラーです。
	ErrTokenExpired = errors.New("token expired")
)

// TokenService は不透明なベアラートークンの発行と検証を扱います。
// トークン自体はクレームを含まないランダム文字列で、対応関係は
// 注入された SessionStore がサーバー側で保持します。
type TokenService struct {
	sessions repositories.SessionStore
}

// NewTokenService は新しいTokenServiceを作成します。
func NewTokenService(sessions repositories.SessionStore) *TokenService {
	return &TokenService{sessions: sessions}
}

// Issue は指定ユーザーに対してアクセストークンとリフレッシュトークンを発行し、
// セッションとして永続化します。
func (s *TokenService) Issue(userID int) (*models.Session, error) {
	accessToken, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now()
	session := &models.Session{
		UserID:           userID,
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		IssuedAt:         now,
		ExpiresAt:        now.Add(AccessTokenTTL),
		RefreshExpiresAt: now.Add(RefreshTokenTTL),
	}
	if err := s.sessions.Save(session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// Validate はアクセストークンを検証し、対応するユーザーIDを返します。
// 未知のトークンは ErrTokenInvalid、期限切れは ErrTokenExpired を返します。
func (s *TokenService) Validate(token string) (int, error) {
	if token == "" {
		return 0, ErrTokenInvalid
	}

	session, err := s.sessions.FindByAccessToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return 0, ErrTokenInvalid
		}
		return 0, err
	}

	if time.Now().After(session.ExpiresAt) {
		return 0, ErrTokenExpired
	}

	return session.UserID, nil
}

// generateToken は暗号論的乱数から不透明なトークン文字列を生成します。
func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
