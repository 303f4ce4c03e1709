// Package logger is a huma middleware that logs one line per HTTP request.
package logger

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
)

type Logger struct {
	log logging.Logger
}

func New(log logging.Logger) *Logger {
	return &Logger{log: log.With("module", "http_logger")}
}

func (l *Logger) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()
		method := ctx.Method()
		path := ctx.URL().Path

		next(ctx)

		l.log.Info(ctx.Context(), "HTTP request",
			"method", method,
			"path", path,
			"status", ctx.Status(),
			"duration", time.Since(start),
			"remote_addr", ctx.RemoteAddr(),
		)
	}
}
