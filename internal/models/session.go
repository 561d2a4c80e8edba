package models

import "time"

// Session は発行済みベアラートークンとユーザーの対応を表します。
// トークンは不透明なランダム文字列で、クレームを含みません。
type Session struct {
	ID               int       `json:"id"`
	UserID           int       `json:"user_id"`
	AccessToken      string    `json:"-"`
	RefreshToken     string    `json:"-"`
	IssuedAt         time.Time `json:"issued_at"`
	ExpiresAt        time.Time `json:"expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}
