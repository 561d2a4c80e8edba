// Package logger はzerologロガーの構築を行います。
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New は指定されたレベルで標準出力に書き込むロガーを作成します。
// レベルのパースに失敗した場合は info にフォールバックします。
func New(level string) zerolog.Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter は任意の io.Writer に書き込むロガーを作成します（テスト用）。
func NewWithWriter(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
