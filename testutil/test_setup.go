// Package testutil はテスト用のデータベース・ルーターのセットアップを提供します。
package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"go-todo-api/backend/internal/config"
	"go-todo-api/backend/internal/models"
	"go-todo-api/backend/internal/repositories"
	"go-todo-api/backend/internal/routes"

	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
)

// テスト用のシードユーザー。パスワードは強度ポリシーを満たす必要があります。
const (
	AliceEmail    = "alice@example.com"
	AlicePassword = "Aa1!alice"
	BobEmail      = "bob@example.com"
	BobPassword   = "Bb2?bobbo"
)

// SetupTestDB はテスト用のデータベース接続を確立し、テーブルを作り直し、
// シードユーザーを投入した上でルーターを構築します。
func SetupTestDB(t *testing.T) (*sql.DB, *gin.Engine) {
	t.Helper()

	_ = godotenv.Load("../../.env")

	dbUser := envOr("TEST_DB_USER", "root")
	dbPass := envOr("TEST_DB_PASS", "")
	dbHost := envOr("TEST_DB_HOST", "127.0.0.1")
	dbPort := envOr("TEST_DB_PORT", "3306")
	dbName := envOr("TEST_DB_NAME", "todo_test")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", dbUser, dbPass, dbHost, dbPort, dbName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("Failed to open database connection: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("Failed to ping database: %v", err)
	}

	createTables(t, db)
	truncateTables(t, db)
	seedUsers(t, db)

	router := SetupTestRouter(t, db)
	return db, router
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func createTables(t *testing.T, db *sql.DB) {
	t.Helper()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			email_confirmed BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS todos (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			title VARCHAR(255) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS todo_items (
			id INT AUTO_INCREMENT PRIMARY KEY,
			todo_id INT NOT NULL,
			name VARCHAR(255) NOT NULL,
			is_complete BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			FOREIGN KEY (todo_id) REFERENCES todos(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			access_token VARCHAR(64) NOT NULL UNIQUE,
			refresh_token VARCHAR(64) NOT NULL UNIQUE,
			issued_at DATETIME NOT NULL,
			expires_at DATETIME NOT NULL,
			refresh_expires_at DATETIME NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to create table: %v", err)
		}
	}
}

func truncateTables(t *testing.T, db *sql.DB) {
	t.Helper()

	// Foreign Key Constraint があるため一時的に無効化して子→親の順に空にする
	if _, err := db.Exec("SET FOREIGN_KEY_CHECKS=0;"); err != nil {
		t.Fatalf("Failed to disable foreign key checks: %v", err)
	}
	for _, table := range []string{"todo_items", "todos", "sessions", "users"} {
		if _, err := db.Exec("TRUNCATE TABLE " + table); err != nil {
			t.Fatalf("Failed to truncate %s table: %v", table, err)
		}
	}
	if _, err := db.Exec("SET FOREIGN_KEY_CHECKS=1;"); err != nil {
		t.Fatalf("Failed to enable foreign key checks: %v", err)
	}
}

func seedUsers(t *testing.T, db *sql.DB) {
	t.Helper()

	userRepo := repositories.NewUserRepository(db)
	CreateTestUser(t, userRepo, AliceEmail, AlicePassword)
	CreateTestUser(t, userRepo, BobEmail, BobPassword)
}

// SetupTestRouter はテスト用のGinルーターをセットアップします。
func SetupTestRouter(t *testing.T, db *sql.DB) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	cfg := &config.Config{FrontendOrigin: "http://localhost:3000"}
	return routes.SetupRouter(db, cfg)
}

// CreateTestUser はテスト用のユーザーをデータベースに直接作成します。
func CreateTestUser(t *testing.T, userRepo *repositories.UserRepository, email, password string) *models.User {
	t.Helper()

	hashedPassword, err := repositories.HashPassword(password)
	require.NoError(t, err)

	newUser := &models.User{
		Email:          email,
		PasswordHash:   hashedPassword,
		EmailConfirmed: true,
	}
	createdUser, err := userRepo.Create(newUser)
	require.NoError(t, err)
	require.NotZero(t, createdUser.ID)
	return createdUser
}

// LoginAndGetToken はログインしてアクセストークンを取得します。
func LoginAndGetToken(t *testing.T, router *gin.Engine, email, password string) (string, error) {
	t.Helper()

	loginPayload := map[string]string{
		"email":    email,
		"password": password,
	}
	body, _ := json.Marshal(loginPayload)

	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d: %s", resp.Code, resp.Body.String())
	}

	var loginRes models.LoginResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &loginRes); err != nil {
		return "", fmt.Errorf("failed to unmarshal login response: %w", err)
	}
	if loginRes.AccessToken == "" {
		return "", errors.New("access_token not found in login response")
	}
	return loginRes.AccessToken, nil
}

// CreateTestTodo はテスト用のTodoをAPI経由で作成し、割り当てられたIDを返します。
func CreateTestTodo(t *testing.T, router *gin.Engine, token, title string) int {
	t.Helper()

	payload := map[string]interface{}{"title": title}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost, "/todos", bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code, "Todo作成に失敗しました: %s", resp.Body.String())

	var created struct {
		ID int `json:"id"`
	}
	err := json.Unmarshal(resp.Body.Bytes(), &created)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	return created.ID
}

// CreateTestItem はテスト用のTodoItemをAPI経由で作成します。
func CreateTestItem(t *testing.T, router *gin.Engine, token string, todoID int, name string, isComplete bool) *models.TodoItem {
	t.Helper()

	payload := map[string]interface{}{"name": name, "is_complete": isComplete}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/todos/%d/items", todoID), bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code, "TodoItem作成に失敗しました: %s", resp.Body.String())

	var item models.TodoItem
	err := json.Unmarshal(resp.Body.Bytes(), &item)
	require.NoError(t, err)
	require.NotZero(t, item.ID)
	return &item
}
