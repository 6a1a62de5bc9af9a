// Package logger configura a saída de log estruturado em JSON.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup cria um slog.Logger com saída JSON estruturada no writer indicado.
func Setup(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

// SetupDefault registra a saída JSON estruturada como logger global.
// Quando w é nil, usa os.Stdout (caso esperado em produção).
func SetupDefault(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	logger := Setup(w)
	slog.SetDefault(logger)
}
