package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"go-todo-api/backend/internal/models"
	"go-todo-api/backend/internal/repositories"
)

var (
	// ErrPasswordMismatch はパスワードと確認用パスワードが一致しない場合のエラーです。
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrInvalidCredentials はパスワードが一致しない場合のエラーです。
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AccountService はユーザー登録と認証のビジネスロジックを扱います。
type AccountService struct {
	userRepo *repositories.UserRepository
}

// NewAccountService は新しいAccountServiceを作成します。
func NewAccountService(userRepo *repositories.UserRepository) *AccountService {
	return &AccountService{userRepo: userRepo}
}

// Register はユーザーを登録します。メールアドレスは小文字に正規化して
// 大文字小文字を区別せずに一意性を判定します。
// 確認メールは送信せず、アカウントは登録直後から利用可能です。
func (s *AccountService) Register(req models.SignupRequest) (*models.User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	email := strings.ToLower(req.Email)

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, repositories.ErrDuplicateEmail
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := repositories.HashPassword(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &models.User{
		Email:          email,
		PasswordHash:   hashedPassword,
		EmailConfirmed: true, // 確認フローが無いため常にtrue
	}

	// 同時リクエストで重複した場合はUNIQUE制約が ErrDuplicateEmail を返す
	createdUser, err := s.userRepo.Create(newUser)
	if err != nil {
		return nil, err
	}
	createdUser.PasswordHash = "" // レスポンスにパスワードを含めない
	return createdUser, nil
}

// Authenticate はユーザーを認証し、成功したらユーザーを返します。
// ロックアウトカウンターは保持しません。
func (s *AccountService) Authenticate(req models.LoginRequest) (*models.User, error) {
	foundUser, err := s.userRepo.FindByEmail(strings.ToLower(req.Email))
	if err != nil {
		return nil, err
	}

	if err := repositories.VerifyPassword(foundUser.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	foundUser.PasswordHash = ""
	return foundUser, nil
}
