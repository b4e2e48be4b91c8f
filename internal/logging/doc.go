// Package logging provides structured logging with per-module log level configuration.
//
// The logging system uses Go's slog package and writes to stdout, plus the
// systemd journal when journald is reachable.
//
// Initialize once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",
//		Format: "text", // or json
//		Modules: map[string]string{
//			"capture": "debug",
//			"api":     "warn",
//		},
//	})
//
// Then get a logger per module:
//
//	logger := logging.GetLogger("capture").With("device_id", id)
//	logger.Info("Negotiated sizes", "preview", preview)
//
// Loggers obtained before Initialize are cached and pick up the configured
// level afterwards. Levels can also be changed at runtime with SetModuleLevel.
//
// Journal entries are tagged with SYSLOG_IDENTIFIER=framefit:
//
//	journalctl -t framefit MODULE=capture
//
// Example TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//	capture = "debug"
//	api = "warn"
package logging
