package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"go-todo-api/backend/internal/models"
)

// ErrTodoNotFound はTodoが見つからない（または所有者でない）場合のエラーです。
var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository はTodoのデータベース操作を行うための構造体です。
type TodoRepository struct {
	DB *sql.DB
}

// NewTodoRepository は新しいTodoRepositoryインスタンスを作成します。
func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{DB: db}
}

// Create は新しいTodoをデータベースに挿入します。
func (r *TodoRepository) Create(t *models.Todo) (*models.Todo, error) {
	query := "INSERT INTO todos (user_id, title) VALUES (?, ?)"
	result, err := r.DB.Exec(query, t.UserID, t.Title)
	if err != nil {
		log.Error().Err(err).Msg("failed to insert todo")
		return nil, fmt.Errorf("could not insert todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}
	t.ID = int(id)
	t.Items = []*models.TodoItem{}

	return t, nil
}

// FindByUser は指定ユーザーが所有するすべてのTodoを、子アイテム込みで取得します。
func (r *TodoRepository) FindByUser(userID int) ([]*models.Todo, error) {
	query := "SELECT id, user_id, title, created_at, updated_at FROM todos WHERE user_id = ? ORDER BY id"

	rows, err := r.DB.Query(query, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to query todos")
		return nil, fmt.Errorf("could not query todos: %w", err)
	}
	defer rows.Close()

	todos := []*models.Todo{}
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("could not scan todo: %w", err)
		}
		todos = append(todos, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	for _, t := range todos {
		items, err := r.loadItems(t.ID)
		if err != nil {
			return nil, err
		}
		t.Items = items
	}

	return todos, nil
}

// FindByID は指定IDのTodoを取得します。userID が所有者でない場合も
// 存在しない場合と区別せず ErrTodoNotFound を返します。
func (r *TodoRepository) FindByID(id, userID int) (*models.Todo, error) {
	query := "SELECT id, user_id, title, created_at, updated_at FROM todos WHERE id = ? AND user_id = ?"

	var t models.Todo
	err := r.DB.QueryRow(query, id, userID).Scan(&t.ID, &t.UserID, &t.Title, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		log.Error().Err(err).Msg("failed to query todo by ID")
		return nil, fmt.Errorf("could not query todo: %w", err)
	}

	items, err := r.loadItems(t.ID)
	if err != nil {
		return nil, err
	}
	t.Items = items

	return &t, nil
}

// UpdateTitle は指定IDのTodoのタイトルのみを更新します。所有者は変更されません。
func (r *TodoRepository) UpdateTitle(id int, title string) error {
	query := "UPDATE todos SET title = ? WHERE id = ?"
	if _, err := r.DB.Exec(query, title, id); err != nil {
		log.Error().Err(err).Msg("failed to update todo")
		return fmt.Errorf("could not update todo: %w", err)
	}
	return nil
}

// Delete は指定IDのTodoを子アイテムもろとも削除します。
// 子→親の2段階削除を単一トランザクションで行い、部分的な状態を残しません。
func (r *TodoRepository) Delete(id int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM todo_items WHERE todo_id = ?", id); err != nil {
		log.Error().Err(err).Msg("failed to delete todo items")
		return fmt.Errorf("could not delete todo items: %w", err)
	}

	result, err := tx.Exec("DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete todo")
		return fmt.Errorf("could not delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTodoNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// loadItems は指定Todoの子アイテムを挿入順に取得します。
func (r *TodoRepository) loadItems(todoID int) ([]*models.TodoItem, error) {
	query := "SELECT id, todo_id, name, is_complete, created_at, updated_at FROM todo_items WHERE todo_id = ? ORDER BY id"

	rows, err := r.DB.Query(query, todoID)
	if err != nil {
		log.Error().Err(err).Msg("failed to query todo items")
		return nil, fmt.Errorf("could not query todo items: %w", err)
	}
	defer rows.Close()

	items := []*models.TodoItem{}
	for rows.Next() {
		var it models.TodoItem
		if err := rows.Scan(&it.ID, &it.TodoID, &it.Name, &it.IsComplete, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("could not scan todo item: %w", err)
		}
		items = append(items, &it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todo items: %w", err)
	}

	return items, nil
}
