// Package config は環境変数からアプリケーション設定を読み込みます。
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定を表します。
// 各フィールドは環境変数から読み込まれます。
type Config struct {
	DBUser string `env:"DB_USER"`
	DBPass string `env:"DB_PASS"`
	DBHost string `env:"DB_HOST" envDefault:"127.0.0.1"`
	DBPort string `env:"DB_PORT" envDefault:"3306"`
	DBName string `env:"DB_NAME"`

	ServerAddr     string `env:"SERVER_ADDR" envDefault:":8080"`
	FrontendOrigin string `env:"FRONTEND_ORIGIN" envDefault:"http://localhost:3000"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load は .env ファイル（存在する場合）を読み込んだ上で、
// 環境変数をパースして Config を返します。
func Load() (*Config, error) {
	// .env が無くてもエラーにしない（本番環境では環境変数を直接設定する）
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DSN はMySQL接続文字列 (Data Source Name) を構築します。
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}
