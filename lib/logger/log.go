package logger

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"

	"github.com/artie-labs/credit-approval/lib/config"
	"github.com/artie-labs/credit-approval/lib/config/constants"
)

const sentryFlushTimeout = 2 * time.Second

// logFilePath returns the path of the per-run log file, named after the start time.
func logFilePath(directory string, now time.Time) string {
	return filepath.Join(directory, now.Format(constants.LogFileTimeLayout)+".log")
}

func openLogFile(directory string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logFilePath(directory, now), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

// NewLogger builds a logger writing to stderr and, unless disabled, to a timestamped file under the log directory.
// Errors are also forwarded to Sentry when a DSN is configured. The returned func flushes and closes every sink.
func NewLogger(settings *config.Settings) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if settings != nil && settings.VerboseLogging {
		level = slog.LevelDebug
	}

	handlers := []slog.Handler{
		tint.NewHandler(os.Stderr, &tint.Options{Level: level, NoColor: !isatty.IsTerminal(os.Stderr.Fd())}),
	}

	var closers []func()
	closeAll := func() {
		for _, closer := range closers {
			closer()
		}
	}

	if settings != nil && !settings.Config.Logging.DisableFile {
		file, err := openLogFile(cmp.Or(settings.Config.Logging.Directory, constants.DefaultLogDirectory), time.Now())
		if err != nil {
			return nil, nil, err
		}

		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level}))
		closers = append(closers, func() { _ = file.Close() })
	}

	if settings != nil && settings.Config.Reporting.Sentry != nil && settings.Config.Reporting.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: settings.Config.Reporting.Sentry.DSN}); err != nil {
			slog.New(handlers[0]).Warn("Failed to enable Sentry output", slog.Any("err", err))
		} else {
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
			closers = append(closers, func() { sentry.Flush(sentryFlushTimeout) })
		}
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0]), closeAll, nil
	}

	return slog.New(slogmulti.Fanout(handlers...)), closeAll, nil
}

func Fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}
