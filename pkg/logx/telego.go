package logx

import (
	"fmt"
	"log/slog"
	"strings"
)

// TelegoLogger перенаправляет внутренние логи telego в slog. Токен бота
// вырезается из текста маскером.
//
// Отладочные сообщения telego содержат тела запросов и апдейтов, а в них
// текст, который пользователь вводит в /setup. Поэтому Debugf по умолчанию
// выключен.
type TelegoLogger struct {
	logger *slog.Logger
	masker SensitiveDataMaskerInterface
	debug  bool
}

func NewTelegoLogger(logger *slog.Logger) TelegoLogger {
	return TelegoLogger{
		logger: logger,
		masker: NewSensitiveDataMasker(),
	}
}

func (l TelegoLogger) WithDebug(debug bool) TelegoLogger {
	l.debug = debug
	return l
}

func (l TelegoLogger) Debugf(format string, args ...any) {
	if !l.debug {
		return
	}

	l.logger.Debug(l.format(format, args...))
}

func (l TelegoLogger) Errorf(format string, args ...any) {
	l.logger.Error(l.format(format, args...))
}

func (l TelegoLogger) format(format string, args ...any) string {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))

	return string(l.masker.Mask([]byte(msg)))
}
