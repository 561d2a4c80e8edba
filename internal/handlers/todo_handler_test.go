package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"go-todo-api/backend/internal/models"
	"go-todo-api/backend/testutil"
)

func doRequest(router http.Handler, method, path, token, payload string) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != "" {
		req, _ = http.NewRequest(method, path, strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestTodoLifecycle(t *testing.T) {
	db, router := testutil.SetupTestDB(t)
	defer db.Close()

	token, err := testutil.LoginAndGetToken(t, router, testutil.AliceEmail, testutil.AlicePassword)
	require.NoError(t, err)

	// 作成 → 200 と採番されたID
	resp := doRequest(router, http.MethodPost, "/todos", token, `{"title": "Groceries"}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var created struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	require.Equal(t, 1, created.ID)

	// アイテム追加 → 201
	item := testutil.CreateTestItem(t, router, token, created.ID, "Milk", false)
	require.Equal(t, 1, item.ID)
	require.Equal(t, created.ID, item.TodoID)
	require.False(t, item.IsComplete)

	// 取得 → アイテム込みで返る
	resp = doRequest(router, http.MethodGet, fmt.Sprintf("/todos/%d", created.ID), token, "")
	require.Equal(t, http.StatusOK, resp.Code)
	var fetched models.Todo
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &fetched))
	require.Equal(t, "Groceries", fetched.Title)
	require.Len(t, fetched.Items, 1)
	require.Equal(t, "Milk", fetched.Items[0].Name)

	// 削除 → 200
	resp = doRequest(router, http.MethodDelete, fmt.Sprintf("/todos/%d", created.ID), token, "")
	require.Equal(t, http.StatusOK, resp.Code)

	// 削除後はアイテムも辿れない → 404
	resp = doRequest(router, http.MethodGet, fmt.Sprintf("/todos/%d/items/%d", created.ID, item.ID), token, "")
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetTodosHandler_OwnershipIsolation(t *testing.T) {
	db, router := testutil.SetupTestDB(t)
	defer db.Close()

	tokenAlice, err := testutil.LoginAndGetToken(t, router, testutil.AliceEmail, testutil.AlicePassword)
	require.NoError(t, err)
	tokenBob, err := testutil.LoginAndGetToken(t, router, testutil.BobEmail, testutil.BobPassword)
	require.NoError(t, err)

	aliceTodo1 := testutil.CreateTestTodo(t, router, tokenAlice, "Alice Todo 1")
	aliceTodo2 := testutil.CreateTestTodo(t, router, tokenAlice, "Alice Todo 2")
	bobTodo := testutil.CreateTestTodo(t, router, tokenBob, "Bob Todo")

	// --- 自分のTodoだけが返ること ---
	t.Run("list returns only own todos", func(t *testing.T) {
		resp := doRequest(router, http.MethodGet, "/todos", tokenAlice, "")
		require.Equal(t, http.StatusOK, resp.Code)

		var todos []*models.Todo
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &todos))
		require.Len(t, todos, 2)
		require.Equal(t, aliceTodo1, todos[0].ID)
		require.Equal(t, aliceTodo2, todos[1].ID)
	})

	// --- 他人のTodoは404（403ではない） ---
	t.Run("foreign todo is indistinguishable from missing", func(t *testing.T) {
		resp := doRequest(router, http.MethodGet, fmt.Sprintf("/todos/%d", bobTodo), tokenAlice, "")
		require.Equal(t, http.StatusNotFound, resp.Code)
	})

	// --- トークン無しは401 ---
	t.Run("missing token yields unauthorized", func(t *testing.T) {
		resp := doRequest(router, http.MethodGet, "/todos", "", "")
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestUpdateTodoHandler(t *testing.T) {
	db, router := testutil.SetupTestDB(t)
	defer db.Close()

	tokenAlice, err := testutil.LoginAndGetToken(t, router, testutil.AliceEmail, testutil.AlicePassword)
	require.NoError(t, err)
	tokenBob, err := testutil.LoginAndGetToken(t, router, testutil.BobEmail, testutil.BobPassword)
	require.NoError(t, err)

	todoID := testutil.CreateTestTodo(t, router, tokenAlice, "Before")

	// --- 自分のTodoは更新できること ---
	t.Run("owner can update title", func(t *testing.T) {
		resp := doRequest(router, http.MethodPut, fmt.Sprintf("/todos/%d", todoID), tokenAlice, `{"title": "After"}`)
		require.Equal(t, http.StatusOK, resp.Code)

		resp = doRequest(router, http.MethodGet, fmt.Sprintf("/todos/%d", todoID), tokenAlice, "")
		var fetched models.Todo
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &fetched))
		require.Equal(t, "After", fetched.Title)
	})

	// --- 他人のTodoは更新できず404 ---
	t.Run("non-owner gets 404", func(t *testing.T) {
		resp := doRequest(router, http.MethodPut, fmt.Sprintf("/todos/%d", todoID), tokenBob, `{"title": "Hijacked"}`)
		require.Equal(t, http.StatusNotFound, resp.Code)
	})

	// --- 空のタイトルは400 ---
	t.Run("empty title is rejected", func(t *testing.T) {
		resp := doRequest(router, http.MethodPut, fmt.Sprintf("/todos/%d", todoID), tokenAlice, `{"title": ""}`)
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})

	// --- 所有者が変わらないことの確認 ---
	t.Run("owner is immutable", func(t *testing.T) {
		var ownerID int
		err := db.QueryRow("SELECT user_id FROM todos WHERE id = ?", todoID).Scan(&ownerID)
		require.NoError(t, err)

		resp := doRequest(router, http.MethodGet, "/todos", tokenAlice, "")
		var todos []*models.Todo
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &todos))
		require.Equal(t, ownerID, todos[0].UserID)
	})
}

func TestCreateTodoHandler_Validation(t *testing.T) {
	db, router := testutil.SetupTestDB(t)
	defer db.Close()

	token, err := testutil.LoginAndGetToken(t, router, testutil.AliceEmail, testutil.AlicePassword)
	require.NoError(t, err)

	// 空のタイトル → 400
	resp := doRequest(router, http.MethodPost, "/todos", token, `{"title": ""}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	// タイトル欠落 → 400
	resp = doRequest(router, http.MethodPost, "/todos", token, `{}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	// 不正なID → 400
	resp = doRequest(router, http.MethodGet, "/todos/abc", token, "")
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDeleteTodoHandler_Cascade(t *testing.T) {
	db, router := testutil.SetupTestDB(t)
	defer db.Close()

	tokenAlice, err := testutil.LoginAndGetToken(t, router, testutil.AliceEmail, testutil.AlicePassword)
	require.NoError(t, err)
	tokenBob, err := testutil.LoginAndGetToken(t, router, testutil.BobEmail, testutil.BobPassword)
	require.NoError(t, err)

	todoID := testutil.CreateTestTodo(t, router, tokenAlice, "Todo with items")
	item1 := testutil.CreateTestItem(t, router, tokenAlice, todoID, "Item 1", false)
	item2 := testutil.CreateTestItem(t, router, tokenAlice, todoID, "Item 2", true)
	item3 := testutil.CreateTestItem(t, router, tokenAlice, todoID, "Item 3", false)

	// --- 他人は削除できないこと ---
	t.Run("non-owner cannot delete", func(t *testing.T) {
		resp := doRequest(router, http.MethodDelete, fmt.Sprintf("/todos/%d", todoID), tokenBob, "")
		require.Equal(t, http.StatusNotFound, resp.Code)

		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM todo_items WHERE todo_id = ?", todoID).Scan(&count))
		require.Equal(t, 3, count)
	})

	// --- 削除はすべての子アイテムを道連れにすること ---
	t.Run("delete cascades to all items", func(t *testing.T) {
		resp := doRequest(router, http.MethodDelete, fmt.Sprintf("/todos/%d", todoID), tokenAlice, "")
		require.Equal(t, http.StatusOK, resp.Code)

		for _, itemID := range []int{item1.ID, item2.ID, item3.ID} {
			resp := doRequest(router, http.MethodGet, fmt.Sprintf("/todos/%d/items/%d", todoID, itemID), tokenAlice, "")
			require.Equal(t, http.StatusNotFound, resp.Code)
		}

		// 孤児アイテムがDBに残らないこと
		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM todo_items WHERE todo_id = ?", todoID).Scan(&count))
		require.Zero(t, count)
	})

	// --- すでに無いTodoの削除は404 ---
	t.Run("deleting a missing todo yields 404", func(t *testing.T) {
		resp := doRequest(router, http.MethodDelete, fmt.Sprintf("/todos/%d", todoID), tokenAlice, "")
		require.Equal(t, http.StatusNotFound, resp.Code)
	})
}
