// Package logging provides structured logging for taskroster.
//
// It wraps log/slog with a JSON handler. The TUI owns the terminal, so the
// interactive command always logs to a file; the CLI commands may log to
// stderr.
//
// # Usage
//
//	logger, err := logging.NewLogger(dir, "INFO", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	log := logger.WithRun(uuid.NewString()).WithComponent("roster")
//	log.Error("error deleting task", "task_id", 3, "error", err.Error())
//
// Output:
//
//	{"time":"...","level":"ERROR","msg":"error deleting task","run_id":"...","component":"roster","task_id":3,"error":"..."}
//
// # Rotation
//
// [RotatingWriter] rotates taskroster.log once it passes MaxSizeMB, keeping
// MaxBackups numbered backups (taskroster.log.1 is newest), optionally gzip
// compressed.
//
// # Testing
//
// Use [NopLogger] where a logger is required but output is irrelevant.
package logging
