package logx

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

var Error = tint.Err //nolint:gochecknoglobals

const (
	FormatText = "text"
	FormatJSON = "json"
)

func Stringer(name string, value fmt.Stringer) slog.Attr {
	return slog.String(name, value.String())
}

// NewLogger собирает логгер приложения: tint для консоли, JSON для сбора логов.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	lvl := ParseLevel(level)

	if strings.EqualFold(format, FormatJSON) {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.DateTime,
	}))
}

// ParseLevel понимает debug/info/warn/error, всё остальное считается info.
func ParseLevel(level string) slog.Level {
	var lvl slog.Level

	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}

	return lvl
}
