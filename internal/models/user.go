// Package models はエンティティとリクエスト/レスポンス構造体を定義します。
package models

import "time"

// User はユーザーのデータベース構造体を表します。
// JSONタグ: クライアントとの通信用
type User struct {
	ID           int    `json:"id,omitempty"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // JSONに出さない
	// EmailConfirmed はサインアップ時に常にtrueで保存されます。
	// 確認メールのフローは存在しないため、ログイン時にも検査されません。
	EmailConfirmed bool      `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SignupRequest はサインアップリクエストの構造体です。
// パスワードは8〜30文字。文字種の要件は services.ValidatePassword が検査します。
type SignupRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8,max=30"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// LoginRequest はログインリクエストの構造体です。
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=30"`
}

// LoginResponse はログイン成功時のレスポンスです。
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
