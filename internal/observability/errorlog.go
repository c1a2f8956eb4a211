package observability

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"github.com/commitgpt/commitgpt/internal/security"
)

var (
	initOnce sync.Once
	logFile  *os.File
	logPath  string
	logger   *log.Logger
	redactor = security.NewRedactor()
	initErr  error
)

// Init configures best-effort error logging to a local file.
//
// Default path is ./commitgpt-error.log, override with COMMITGPT_LOG_PATH.
// Everything written through this package is redacted first.
func Init() (path string, cleanup func(), err error) {
	initOnce.Do(func() {
		logPath = os.Getenv("COMMITGPT_LOG_PATH")
		if logPath == "" {
			logPath = "commitgpt-error.log"
		}

		if dir := filepath.Dir(logPath); dir != "." && dir != "" {
			_ = os.MkdirAll(dir, 0o755)
		}

		logFile, initErr = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if initErr != nil {
			return
		}
		logger = log.New(logFile, "", log.LstdFlags|log.Lmicroseconds)
	})

	cleanup = func() {
		if logFile != nil {
			_ = logFile.Close()
		}
	}
	return logPath, cleanup, initErr
}

// Logger returns the file logger. Before Init, or after a failed Init, log
// lines go nowhere; the log is best effort and must never pollute stderr.
func Logger() *log.Logger {
	if logger != nil {
		return logger
	}
	return discard
}

var discard = log.New(io.Discard, "", 0)

// RedactForLog scrubs secrets, emails and IPs out of a string destined for
// the log file.
func RedactForLog(s string) string {
	return redactor.RedactLog(s)
}

// Snip bounds a string to max bytes without splitting a rune.
func Snip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut + "…"
}
