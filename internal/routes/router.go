// Package routesはroutingを行います。
package routes

import (
	"database/sql"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go-todo-api/backend/internal/config"
	"go-todo-api/backend/internal/handlers"
	"go-todo-api/backend/internal/repositories"
	"go-todo-api/backend/internal/services"
)

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(db *sql.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// CORS対策
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendOrigin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	// リポジトリ
	userRepo := repositories.NewUserRepository(db)
	todoRepo := repositories.NewTodoRepository(db)
	itemRepo := repositories.NewTodoItemRepository(db)
	sessionRepo := repositories.NewMySQLSessionRepo(db)

	// サービス
	accountService := services.NewAccountService(userRepo)
	tokenService := services.NewTokenService(sessionRepo)
	todoService := services.NewTodoService(todoRepo, itemRepo)

	// ハンドラー
	accountHandler := handlers.NewAccountHandler(accountService, tokenService)
	todoHandler := handlers.NewTodoHandler(todoService)
	itemHandler := handlers.NewTodoItemHandler(todoService)

	// ルーティング
	r.GET("/api/hello", HelloHandler)
	r.GET("/api/dbcheck", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database connection failed", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Database connection is healthy"})
	})
	r.POST("/signup", accountHandler.SignupHandler)
	r.POST("/auth/login", accountHandler.LoginHandler)

	authorized := r.Group("/")
	authorized.Use(AuthMiddleware(tokenService))
	{
		authorized.GET("/auth/logout", accountHandler.LogoutHandler)

		authorized.GET("/todos", todoHandler.GetTodosHandler)
		authorized.POST("/todos", todoHandler.CreateTodoHandler)
		authorized.GET("/todos/:id", todoHandler.GetTodoByIDHandler)
		authorized.PUT("/todos/:id", todoHandler.UpdateTodoHandler)
		authorized.DELETE("/todos/:id", todoHandler.DeleteTodoHandler)

		authorized.GET("/todos/:id/items/:iid", itemHandler.GetItemHandler)
		authorized.POST("/todos/:id/items", itemHandler.AddItemHandler)
		authorized.PUT("/todos/:id/items/:iid", itemHandler.UpdateItemHandler)
		authorized.DELETE("/todos/:id/items/:iid", itemHandler.DeleteItemHandler)
	}

	return r
}

func HelloHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from Go Backend!"})
}
