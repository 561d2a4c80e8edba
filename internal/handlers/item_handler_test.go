package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"go-todo-api/backend/internal/models"
	"go-todo-api/backend/testutil"
)

func TestAddItemHandler(t *testing.T) {
	db, router := testutil.SetupTestDB(t)
	defer db.Close()

	tokenAlice, err := testutil.LoginAndGetToken(t, router, testutil.AliceEmail, testutil.AlicePassword)
	require.NoError(t, err)
	tokenBob, err := testutil.LoginAndGetToken(t, router, testutil.BobEmail, testutil.BobPassword)
	require.NoError(t, err)

	todoID := testutil.CreateTestTodo(t, router, tokenAlice, "Groceries")

	// --- 作成は201とLocationヘッダーを返すこと ---
	t.Run("create returns 201 with location", func(t *testing.T) {
		resp := doRequest(router, http.MethodPost, fmt.Sprintf("/todos/%d/items", todoID), tokenAlice,
			`{"name": "Milk", "is_complete": false}`)
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

		var item models.TodoItem
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &item))
		require.NotZero(t, item.ID)
		require.Equal(t, todoID, item.TodoID)
		require.Equal(t, "Milk", item.Name)
		require.False(t, item.IsComplete)

		location := resp.Header().Get("Location")
		require.Equal(t, fmt.Sprintf("/todos/%d/items/%d", todoID, item.ID), location)
	})

	// --- 他人のTodoへの追加は404 ---
	t.Run("cannot add to foreign todo", func(t *testing.T) {
		resp := doRequest(router, http.MethodPost, fmt.Sprintf("/todos/%d/items", todoID), tokenBob,
			`{"name": "Sneaky", "is_complete": false}`)
		require.Equal(t, http.StatusNotFound, resp.Code)
	})

	// --- 存在しないTodoへの追加は404 ---
	t.Run("cannot add to missing todo", func(t *testing.T) {
		resp := doRequest(router, http.MethodPost, "/todos/9999/items", tokenAlice,
			`{"name": "Nowhere", "is_complete": false}`)
		require.Equal(t, http.StatusNotFound, resp.Code)
	})

	// --- 名前の欠落は400 ---
	t.Run("missing name is rejected", func(t *testing.T) {
		resp := doRequest(router, http.MethodPost, fmt.Sprintf("/todos/%d/items", todoID), tokenAlice,
			`{"is_complete": true}`)
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestGetItemHandler(t *testing.T) {
	db, router := testutil.SetupTestDB(t)
	defer db.Close()

	tokenAlice, err := testutil.LoginAndGetToken(t, router, testutil.AliceEmail, testutil.AlicePassword)
	require.NoError(t, err)
	tokenBob, err := testutil.LoginAndGetToken(t, router, testutil.BobEmail, testutil.BobPassword)
	require.NoError(t, err)

	aliceTodo := testutil.CreateTestTodo(t, router, tokenAlice, "Alice Todo")
	bobTodo := testutil.CreateTestTodo(t, router, tokenBob, "Bob Todo")
	item := testutil.CreateTestItem(t, router, tokenAlice, aliceTodo, "Milk", false)

	// --- 所有者は取得できること ---
	t.Run("owner can get item", func(t *testing.T) {
		resp := doRequest(router, http.MethodGet, fmt.Sprintf("/todos/%d/items/%d", aliceTodo, item.ID), tokenAlice, "")
		require.Equal(t, http.StatusOK, resp.Code)

		var fetched models.TodoItem
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &fetched))
		require.Equal(t, item.ID, fetched.ID)
		require.Equal(t, "Milk", fetched.Name)
	})

	// --- 他人のアイテムは404 ---
	t.Run("non-owner gets 404", func(t *testing.T) {
		resp := doRequest(router, http.MethodGet, fmt.Sprintf("/todos/%d/items/%d", aliceTodo, item.ID), tokenBob, "")
		require.Equal(t, http.StatusNotFound, resp.Code)
	})

	// --- 親Todoが違えば404（アイテム自体は存在していても） ---
	t.Run("wrong parent todo yields 404", func(t *testing.T) {
		resp := doRequest(router, http.MethodGet, fmt.Sprintf("/todos/%d/items/%d", bobTodo, item.ID), tokenBob, "")
		require.Equal(t, http.StatusNotFound, resp.Code)
	})

	// --- 存在しないアイテムは404 ---
	t.Run("missing item yields 404", func(t *testing.T) {
		resp := doRequest(router, http.MethodGet, fmt.Sprintf("/todos/%d/items/9999", aliceTodo), tokenAlice, "")
		require.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestUpdateItemHandler(t *testing.T) {
	db, router := testutil.SetupTestDB(t)
	defer db.Close()

	tokenAlice, err := testutil.LoginAndGetToken(t, router, testutil.AliceEmail, testutil.AlicePassword)
	require.NoError(t, err)
	tokenBob, err := testutil.LoginAndGetToken(t, router, testutil.BobEmail, testutil.BobPassword)
	require.NoError(t, err)

	todoID := testutil.CreateTestTodo(t, router, tokenAlice, "Groceries")
	item := testutil.CreateTestItem(t, router, tokenAlice, todoID, "Milk", false)

	// --- 所有者は名前と完了状態を更新できること ---
	t.Run("owner can update item", func(t *testing.T) {
		resp := doRequest(router, http.MethodPut, fmt.Sprintf("/todos/%d/items/%d", todoID, item.ID), tokenAlice,
			`{"name": "Oat milk", "is_complete": true}`)
		require.Equal(t, http.StatusOK, resp.Code)

		resp = doRequest(router, http.MethodGet, fmt.Sprintf("/todos/%d/items/%d", todoID, item.ID), tokenAlice, "")
		var fetched models.TodoItem
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &fetched))
		require.Equal(t, "Oat milk", fetched.Name)
		require.True(t, fetched.IsComplete)
		require.Equal(t, todoID, fetched.TodoID) // 親Todoは変わらない
	})

	// --- 他人は更新できず404 ---
	t.Run("non-owner gets 404", func(t *testing.T) {
		resp := doRequest(router, http.MethodPut, fmt.Sprintf("/todos/%d/items/%d", todoID, item.ID), tokenBob,
			`{"name": "Hijacked", "is_complete": false}`)
		require.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestDeleteItemHandler(t *testing.T) {
	db, router := testutil.SetupTestDB(t)
	defer db.Close()

	tokenAlice, err := testutil.LoginAndGetToken(t, router, testutil.AliceEmail, testutil.AlicePassword)
	require.NoError(t, err)
	tokenBob, err := testutil.LoginAndGetToken(t, router, testutil.BobEmail, testutil.BobPassword)
	require.NoError(t, err)

	todoID := testutil.CreateTestTodo(t, router, tokenAlice, "Groceries")
	item := testutil.CreateTestItem(t, router, tokenAlice, todoID, "Milk", false)

	// --- 他人は削除できず404 ---
	t.Run("non-owner cannot delete", func(t *testing.T) {
		resp := doRequest(router, http.MethodDelete, fmt.Sprintf("/todos/%d/items/%d", todoID, item.ID), tokenBob, "")
		require.Equal(t, http.StatusNotFound, resp.Code)
	})

	// --- 所有者は削除できること ---
	t.Run("owner can delete", func(t *testing.T) {
		resp := doRequest(router, http.MethodDelete, fmt.Sprintf("/todos/%d/items/%d", todoID, item.ID), tokenAlice, "")
		require.Equal(t, http.StatusOK, resp.Code)

		// 親Todoは残っていること
		resp = doRequest(router, http.MethodGet, fmt.Sprintf("/todos/%d", todoID), tokenAlice, "")
		require.Equal(t, http.StatusOK, resp.Code)
		var fetched models.Todo
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &fetched))
		require.Empty(t, fetched.Items)
	})

	// --- すでに無いアイテムの削除は404 ---
	t.Run("deleting a missing item yields 404", func(t *testing.T) {
		resp := doRequest(router, http.MethodDelete, fmt.Sprintf("/todos/%d/items/%d", todoID, item.ID), tokenAlice, "")
		require.Equal(t, http.StatusNotFound, resp.Code)
	})
}
