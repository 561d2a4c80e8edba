package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-todo-api/backend/internal/models"
	"go-todo-api/backend/internal/repositories"
	"go-todo-api/backend/internal/services"
)

// TodoItemHandler はTodoItem関連のハンドラーを管理します。
type TodoItemHandler struct {
	todoService *services.TodoService
}

// NewTodoItemHandler は新しいTodoItemHandlerを作成します。
func NewTodoItemHandler(todoService *services.TodoService) *TodoItemHandler {
	return &TodoItemHandler{todoService: todoService}
}

// itemNotFound はNotFound系のサービスエラーを404へ変換します。
// 存在しない資源と他人の資源はクライアントからは区別できません。
func itemNotFound(err error) bool {
	return errors.Is(err, repositories.ErrTodoNotFound) || errors.Is(err, repositories.ErrItemNotFound)
}

// GetItemHandler は指定のTodoItemを取得します。
func (h *TodoItemHandler) GetItemHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	todoID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "iid")
	if !ok {
		return
	}

	item, err := h.todoService.GetItem(userID, todoID, itemID)
	if err != nil {
		if itemNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Todo item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todo item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// AddItemHandler は親Todoに新しいアイテムを追加します。
// 成功時は201と作成されたアイテムの場所を示すLocationヘッダーを返します。
func (h *TodoItemHandler) AddItemHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	todoID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.TodoItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	item, err := h.todoService.AddItem(userID, todoID, req.Name, req.IsComplete)
	if err != nil {
		if itemNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save todo item"})
		return
	}

	c.Header("Location", fmt.Sprintf("/todos/%d/items/%d", todoID, item.ID))
	c.JSON(http.StatusCreated, item)
}

// UpdateItemHandler はTodoItemの名前と完了状態を更新します。
func (h *TodoItemHandler) UpdateItemHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	todoID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "iid")
	if !ok {
		return
	}

	var req models.TodoItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := h.todoService.UpdateItem(userID, todoID, itemID, req.Name, req.IsComplete); err != nil {
		if itemNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Todo item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update todo item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo item updated successfully."})
}

// DeleteItemHandler はTodoItemを削除します。
func (h *TodoItemHandler) DeleteItemHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	todoID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "iid")
	if !ok {
		return
	}

	if err := h.todoService.DeleteItem(userID, todoID, itemID); err != nil {
		if itemNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Todo item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete todo item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo item deleted successfully."})
}
