package models

import "time"

// Todo はTodoリストのデータベース構造体を表します。
// UserID は作成時に設定され、以後変更されません。
type Todo struct {
	ID        int         `json:"id,omitempty"` // 主キー
	UserID    int         `json:"user_id"`      // 所有者のユーザーID
	Title     string      `json:"title"`
	Items     []*TodoItem `json:"items"` // 挿入順に並んだ子アイテム
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at,omitempty"`
}

// TodoItem はTodoに属するタスクアイテムを表します。
// 所有者フィールドは持たず、所有権は親Todo経由で導出されます。
type TodoItem struct {
	ID         int       `json:"id,omitempty"` // 主キー
	TodoID     int       `json:"todo_id"`      // 親TodoのID
	Name       string    `json:"name"`
	IsComplete bool      `json:"is_complete"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// TodoRequest はTodoの作成・更新リクエストの構造体です。
type TodoRequest struct {
	Title string `json:"title" binding:"required"`
}

// TodoItemRequest はTodoItemの作成・更新リクエストの構造体です。
type TodoItemRequest struct {
	Name       string `json:"name" binding:"required"`
	IsComplete bool   `json:"is_complete"`
}
