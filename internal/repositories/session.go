package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"go-todo-api/backend/internal/models"
)

// ErrSessionNotFound はセッションが見つからない場合のエラーです。
var ErrSessionNotFound = errors.New("session not found")

// SessionStore はトークン→セッションの対応を保持するストアの抽象です。
// グローバルな可変状態を持たず、明示的に注入されます。
// MySQLのテーブルにもインメモリのマップにも差し替え可能です。
type SessionStore interface {
	Save(s *models.Session) error
	FindByAccessToken(token string) (*models.Session, error)
}

// MySQLSessionRepo は sessions テーブルを使った SessionStore の実装です。
type MySQLSessionRepo struct {
	DB *sql.DB
}

// NewMySQLSessionRepo は新しいMySQLSessionRepoインスタンスを作成します。
func NewMySQLSessionRepo(db *sql.DB) *MySQLSessionRepo {
	return &MySQLSessionRepo{DB: db}
}

func (r *MySQLSessionRepo) Save(s *models.Session) error {
	query := `
		INSERT INTO sessions (user_id, access_token, refresh_token, issued_at, expires_at, refresh_expires_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.DB.Exec(query,
		s.UserID, s.AccessToken, s.RefreshToken, s.IssuedAt, s.ExpiresAt, s.RefreshExpiresAt,
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to insert session")
		return fmt.Errorf("could not insert session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("could not get last insert ID: %w", err)
	}
	s.ID = int(id)

	return nil
}

func (r *MySQLSessionRepo) FindByAccessToken(token string) (*models.Session, error) {
	query := `
		SELECT id, user_id, access_token, refresh_token, issued_at, expires_at, refresh_expires_at
		FROM sessions WHERE access_token = ?`

	var s models.Session
	err := r.DB.QueryRow(query, token).Scan(
		&s.ID, &s.UserID, &s.AccessToken, &s.RefreshToken, &s.IssuedAt, &s.ExpiresAt, &s.RefreshExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		log.Error().Err(err).Msg("failed to query session")
		return nil, fmt.Errorf("could not query session: %w", err)
	}

	return &s, nil
}

// MemorySessionStore はマップを使った SessionStore の実装です。
// 単体テストや、永続化が不要な構成で使用します。
type MemorySessionStore struct {
	mu      sync.RWMutex
	byToken map[string]*models.Session
	nextID  int
}

// NewMemorySessionStore は新しいMemorySessionStoreインスタンスを作成します。
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{byToken: make(map[string]*models.Session)}
}

func (m *MemorySessionStore) Save(s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	s.ID = m.nextID
	stored := *s
	m.byToken[s.AccessToken] = &stored
	return nil
}

func (m *MemorySessionStore) FindByAccessToken(token string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.byToken[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	found := *s
	return &found, nil
}
