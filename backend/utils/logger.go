package utils

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	appName   = "examprep"
	logPrefix = "[ExamPrep] "
)

// LoggerConfig controls how InitLogger builds the process logger.
type LoggerConfig struct {
	// Format is "text" (default) or "json".
	Format string
	// Output defaults to os.Stdout.
	Output io.Writer
	// EnableColors tints the text prefix. Ignored for json.
	EnableColors bool
	// Now stamps json entries; defaults to time.Now.
	Now func() time.Time
}

// InitLogger creates the logger shared by middleware, controllers and GORM.
// Text output carries the prefix and caller; json output writes one object
// per entry so log shippers can parse it.
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	if strings.EqualFold(cfg.Format, "json") {
		if cfg.Now == nil {
			cfg.Now = time.Now
		}
		return log.New(&jsonLineWriter{out: cfg.Output, now: cfg.Now}, "", 0)
	}

	prefix := logPrefix
	if cfg.EnableColors {
		prefix = "\033[36m" + prefix + "\033[0m"
	}
	return log.New(cfg.Output, prefix, log.LstdFlags|log.Lshortfile|log.LUTC)
}

// DiscardLogger is used by tests that do not care about log output.
func DiscardLogger() *log.Logger {
	return log.New(io.Discard, logPrefix, 0)
}

type logEntry struct {
	Time    string `json:"time"`
	App     string `json:"app"`
	Level   string `json:"level,omitempty"`
	Message string `json:"msg"`
}

// jsonLineWriter turns each log.Logger write into a single JSON line. A
// leading "[LEVEL]" tag, as written by the GORM logger, becomes the level.
type jsonLineWriter struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

func (w *jsonLineWriter) Write(p []byte) (int, error) {
	entry := logEntry{
		Time:    w.now().UTC().Format(time.RFC3339Nano),
		App:     appName,
		Message: string(bytes.TrimRight(p, "\n")),
	}
	if strings.HasPrefix(entry.Message, "[") {
		if end := strings.IndexByte(entry.Message, ']'); end > 1 {
			entry.Level = strings.ToLower(entry.Message[1:end])
			entry.Message = strings.TrimSpace(entry.Message[end+1:])
		}
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return 0, err
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.out.Write(line); err != nil {
		return 0, err
	}
	return len(p), nil
}
