package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// Init configures the global logger. Development mode writes human readable
// console output, everything else writes JSON lines.
func Init(level string, development bool) {
	var out io.Writer = os.Stdout
	if development {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	SetOutput(out)

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// SetOutput swaps the writer of the global logger.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log = zerolog.New(w).With().Timestamp().Logger()
}

func Debug(msg string, args ...any) {
	write(zerolog.DebugLevel, msg, args)
}

func Info(msg string, args ...any) {
	write(zerolog.InfoLevel, msg, args)
}

func Warn(msg string, args ...any) {
	write(zerolog.WarnLevel, msg, args)
}

func Error(msg string, args ...any) {
	write(zerolog.ErrorLevel, msg, args)
}

func write(level zerolog.Level, msg string, args []any) {
	mu.RLock()
	l := log
	mu.RUnlock()

	l.WithLevel(level).Fields(fields(args)).Msg(msg)
}

// fields turns a key/value list into a zerolog field map. A value that sits
// in a key position (e.g. logger.Error("Repo:Create", err)) is recorded under
// "error" for errors and "arg<i>" otherwise.
func fields(args []any) map[string]any {
	out := make(map[string]any, len(args)/2+1)
	for i := 0; i < len(args); i++ {
		key, ok := args[i].(string)
		if ok && i+1 < len(args) {
			out[key] = normalize(args[i+1])
			i++
			continue
		}
		if err, isErr := args[i].(error); isErr {
			out["error"] = err.Error()
			continue
		}
		out[fmt.Sprintf("arg%d", i)] = normalize(args[i])
	}
	return out
}

func normalize(v any) any {
	if err, ok := v.(error); ok && err != nil {
		return err.Error()
	}
	return v
}
