package logger_adapter

import (
	"log/slog"
	"strings"
)

// ParseLevel переводит строку из конфигурации в уровень slog. Неизвестные значения - info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
