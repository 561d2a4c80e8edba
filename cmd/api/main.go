package main

import (
	"github.com/rs/zerolog/log"

	"go-todo-api/backend/internal/config"
	"go-todo-api/backend/internal/database"
	"go-todo-api/backend/internal/logger"
	"go-todo-api/backend/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	log.Logger = logger.New(cfg.LogLevel)

	db, err := database.Init(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	r := routes.SetupRouter(db, cfg)

	// サーバー起動
	log.Info().Str("addr", cfg.ServerAddr).Msg("server listening")
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
