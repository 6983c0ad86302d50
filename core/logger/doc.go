// Package logger builds the zap logger shared by the objectsync server and CLI.
//
// The level comes from log.level (debug, info, warn, error); debug also switches to
// zap's development preset. log.format selects json or console output.
//
// Request handlers log through WithRayID so every line of one request, including the
// refresh batches it waits on, carries the same ray_id:
//
//	l := logger.WithRayID(log, c)
//	l.Warn("Walk failed", zap.Error(err))
package logger
