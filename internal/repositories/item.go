package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"go-todo-api/backend/internal/models"
)

// ErrItemNotFound はTodoItemが見つからない（または親Todoの所有者でない）場合のエラーです。
var ErrItemNotFound = errors.New("todo item not found")

// TodoItemRepository はTodoItemのデータベース操作を行うための構造体です。
type TodoItemRepository struct {
	DB *sql.DB
}

// NewTodoItemRepository は新しいTodoItemRepositoryインスタンスを作成します。
func NewTodoItemRepository(db *sql.DB) *TodoItemRepository {
	return &TodoItemRepository{DB: db}
}

// Insert は新しいTodoItemをデータベースに挿入します。
// 親Todoの存在と所有権の検査は呼び出し側（サービス層）で済んでいる前提です。
func (r *TodoItemRepository) Insert(it *models.TodoItem) (*models.TodoItem, error) {
	query := "INSERT INTO todo_items (todo_id, name, is_complete) VALUES (?, ?, ?)"
	result, err := r.DB.Exec(query, it.TodoID, it.Name, it.IsComplete)
	if err != nil {
		log.Error().Err(err).Msg("failed to insert todo item")
		return nil, fmt.Errorf("could not insert todo item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}
	it.ID = int(id)

	return it, nil
}

// FindByID は指定のTodoItemを取得します。所有権は親Todoの user_id との
// JOINで導出されます。アイテムが存在しない、親が一致しない、所有者でない、の
// いずれの場合も ErrItemNotFound を返します。
func (r *TodoItemRepository) FindByID(itemID, todoID, userID int) (*models.TodoItem, error) {
	query := `
		SELECT i.id, i.todo_id, i.name, i.is_complete, i.created_at, i.updated_at
		FROM todo_items i
		JOIN todos t ON t.id = i.todo_id
		WHERE i.id = ? AND i.todo_id = ? AND t.user_id = ?`

	var it models.TodoItem
	err := r.DB.QueryRow(query, itemID, todoID, userID).Scan(
		&it.ID, &it.TodoID, &it.Name, &it.IsComplete, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		log.Error().Err(err).Msg("failed to query todo item")
		return nil, fmt.Errorf("could not query todo item: %w", err)
	}

	return &it, nil
}

// Update は指定IDのTodoItemの名前と完了状態を更新します。親Todoは変更されません。
func (r *TodoItemRepository) Update(id int, name string, isComplete bool) error {
	query := "UPDATE todo_items SET name = ?, is_complete = ? WHERE id = ?"
	if _, err := r.DB.Exec(query, name, isComplete, id); err != nil {
		log.Error().Err(err).Msg("failed to update todo item")
		return fmt.Errorf("could not update todo item: %w", err)
	}
	return nil
}

// Delete は指定IDのTodoItemを削除します。
func (r *TodoItemRepository) Delete(id int) error {
	query := "DELETE FROM todo_items WHERE id = ?"

	result, err := r.DB.Exec(query, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete todo item")
		return fmt.Errorf("could not delete todo item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}
