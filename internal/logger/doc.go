// Package logger provides component-scoped structured logging.
//
// Usage:
//
//	log := logger.WithComponent(logger.ComponentDownload)
//	log.Info("Downloading video", map[string]interface{}{
//		"video_id": id,
//		"index":    3,
//	})
//
// The global logger writes text to stderr at INFO; replace it with
// SetGlobalLogger after reading settings.
package logger
