// Package repositories はデータベース操作を行うリポジトリを提供します。
package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"go-todo-api/backend/internal/models"

	"golang.org/x/crypto/bcrypt" // パスワードのハッシュ化用
)

var (
	ErrDuplicateEmail = errors.New("duplicate email")
	ErrUserNotFound   = errors.New("user not found")
)

// UserRepository はユーザーのデータベース操作を行うための構造体です。
type UserRepository struct {
	DB *sql.DB
}

// NewUserRepository は新しいUserRepositoryインスタンスを作成します。
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// HashPassword は与えられたパスワードをbcryptでハッシュ化します。
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedPassword), nil
}

// VerifyPassword はハッシュ化されたパスワードと平文のパスワードを比較します。
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// Create は新しいユーザーをデータベースに挿入します。
// メールアドレスは呼び出し側で小文字に正規化されている前提です。
func (r *UserRepository) Create(u *models.User) (*models.User, error) {
	query := "INSERT INTO users (email, password_hash, email_confirmed) VALUES (?, ?, ?)"
	result, err := r.DB.Exec(query, u.Email, u.PasswordHash, u.EmailConfirmed)
	if err != nil {
		// MySQLの重複エントリーエラーコード1062をチェック
		if mysqlErr, ok := err.(*mysql.MySQLError); ok && mysqlErr.Number == 1062 {
			return nil, ErrDuplicateEmail
		}
		log.Error().Err(err).Msg("failed to insert user")
		return nil, fmt.Errorf("could not insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}
	u.ID = int(id)

	return u, nil
}

// FindByEmail はメールアドレスでユーザーを検索します。
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	query := "SELECT id, email, password_hash, email_confirmed, created_at, updated_at FROM users WHERE email = ?"
	var u models.User
	err := r.DB.QueryRow(query, email).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.EmailConfirmed,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		log.Error().Err(err).Msg("failed to query user by email")
		return nil, fmt.Errorf("could not query user: %w", err)
	}
	return &u, nil
}
