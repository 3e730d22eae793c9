package shadercache

import (
	"log/slog"

	"github.com/gogpu/shadercache/internal/logging"
)

// SetLogger configures the logger for shadercache and all its
// sub-packages. By default shadercache produces no log output.
//
// SetLogger is safe for concurrent use: it stores the new logger
// atomically. Pass nil to disable logging (restore default silent
// behavior).
//
// Log levels used by shadercache:
//   - [slog.LevelDebug]: internal diagnostics (variant compiles,
//     evictions, upload offsets)
//   - [slog.LevelWarn]: non-fatal issues (undefined stream-output
//     registers, unknown debug flags)
//
// Example:
//
//	// Enable debug-level logging to stderr:
//	shadercache.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by shadercache.
func Logger() *slog.Logger {
	return logging.Logger()
}
