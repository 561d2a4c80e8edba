package services

import (
	"errors"
	"unicode"
)

// パスワードポリシー: 8〜30文字、大文字・小文字・数字・記号を各1文字以上。
const (
	PasswordMinLength = 8
	PasswordMaxLength = 30
)

// ErrWeakPassword はパスワードが強度ポリシーを満たさない場合のエラーです。
var ErrWeakPassword = errors.New("password does not meet the strength policy")

// ValidatePassword はパスワードが強度ポリシーを満たすか検査します。
func ValidatePassword(password string) error {
	runes := []rune(password)
	if len(runes) < PasswordMinLength || len(runes) > PasswordMaxLength {
		return ErrWeakPassword
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return ErrWeakPassword
	}
	return nil
}
