package logger

import (
	"io"
	stdlog "log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger описывает минимальный интерфейс структурированного логгера,
// достаточный для использования в handler'ах, middleware и фоновых задачах.
type Logger interface {
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type zeroLogger struct {
	zl zerolog.Logger
}

// New создаёт логгер на базе zerolog.
// В development пишет человекочитаемый вывод в консоль, в остальных окружениях — JSON.
func New(appEnv string) Logger {
	var w io.Writer = os.Stdout
	if strings.EqualFold(appEnv, "development") {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return FromWriter(w)
}

// FromWriter создаёт логгер, пишущий в произвольный writer (удобно для тестов).
func FromWriter(w io.Writer) Logger {
	return &zeroLogger{zl: zerolog.New(w).With().Timestamp().Logger()}
}

// Nop возвращает логгер, который ничего не пишет.
func Nop() Logger {
	return &zeroLogger{zl: zerolog.Nop()}
}

// RedirectStdLog перенаправляет стандартный пакет log в тот же zerolog,
// чтобы вызовы log.Printf попадали в общий поток логов.
func RedirectStdLog(l Logger) {
	zl, ok := l.(*zeroLogger)
	if !ok {
		return
	}
	stdlog.SetFlags(0)
	stdlog.SetOutput(zl.zl.With().Str("source", "stdlog").Logger())
}

func (l *zeroLogger) Info(msg string, fields map[string]any) {
	l.zl.Info().Fields(fields).Msg(msg)
}

func (l *zeroLogger) Warn(msg string, fields map[string]any) {
	l.zl.Warn().Fields(fields).Msg(msg)
}

func (l *zeroLogger) Error(msg string, fields map[string]any) {
	l.zl.Error().Fields(fields).Msg(msg)
}
