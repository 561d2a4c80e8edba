package services

import (
	"go-todo-api/backend/internal/models"
	"go-todo-api/backend/internal/repositories"
)

// TodoService はTodoとTodoItemのビジネスロジックを扱います。
// すべての操作は対象を解決してから所有権を検査し、その後に変更を適用します。
// 他人の資源と存在しない資源は区別されず、どちらもNotFoundになります。
type TodoService struct {
	todoRepo *repositories.TodoRepository
	itemRepo *repositories.TodoItemRepository
}

// NewTodoService は新しいTodoServiceを作成します。
func NewTodoService(todoRepo *repositories.TodoRepository, itemRepo *repositories.TodoItemRepository) *TodoService {
	return &TodoService{todoRepo: todoRepo, itemRepo: itemRepo}
}

// List はユーザーが所有するTodoを子アイテム込みで取得します。
func (s *TodoService) List(userID int) ([]*models.Todo, error) {
	return s.todoRepo.FindByUser(userID)
}

// Create は新しいTodoを作成します。所有者は作成時に固定されます。
func (s *TodoService) Create(userID int, title string) (*models.Todo, error) {
	todo := &models.Todo{
		UserID: userID,
		Title:  title,
	}
	return s.todoRepo.Create(todo)
}

// Get は指定IDのTodoを取得します。所有者でなければ ErrTodoNotFound。
func (s *TodoService) Get(userID, id int) (*models.Todo, error) {
	return s.todoRepo.FindByID(id, userID)
}

// UpdateTitle はTodoのタイトルを更新します。所有者は変更されません。
func (s *TodoService) UpdateTitle(userID, id int, title string) error {
	if _, err := s.todoRepo.FindByID(id, userID); err != nil {
		return err
	}
	return s.todoRepo.UpdateTitle(id, title)
}

// Delete はTodoと子アイテムをまとめて削除します。
func (s *TodoService) Delete(userID, id int) error {
	if _, err := s.todoRepo.FindByID(id, userID); err != nil {
		return err
	}
	return s.todoRepo.Delete(id)
}

// GetItem は指定のTodoItemを取得します。所有権は親Todo経由で導出されます。
func (s *TodoService) GetItem(userID, todoID, itemID int) (*models.TodoItem, error) {
	return s.itemRepo.FindByID(itemID, todoID, userID)
}

// AddItem は親Todoに新しいアイテムを追加します。
// 親が存在しない、または所有者でない場合は ErrTodoNotFound。
func (s *TodoService) AddItem(userID, todoID int, name string, isComplete bool) (*models.TodoItem, error) {
	parent, err := s.todoRepo.FindByID(todoID, userID)
	if err != nil {
		return nil, err
	}

	item := &models.TodoItem{
		TodoID:     parent.ID,
		Name:       name,
		IsComplete: isComplete,
	}
	return s.itemRepo.Insert(item)
}

// UpdateItem はTodoItemの名前と完了状態を更新します。
func (s *TodoService) UpdateItem(userID, todoID, itemID int, name string, isComplete bool) error {
	if _, err := s.itemRepo.FindByID(itemID, todoID, userID); err != nil {
		return err
	}
	return s.itemRepo.Update(itemID, name, isComplete)
}

// DeleteItem はTodoItemを削除します。
func (s *TodoService) DeleteItem(userID, todoID, itemID int) error {
	if _, err := s.itemRepo.FindByID(itemID, todoID, userID); err != nil {
		return err
	}
	return s.itemRepo.Delete(itemID)
}
