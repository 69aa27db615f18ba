package bootstrap

import (
	"github.com/wavesplatform/push-notifications/internal/core"
	"github.com/wavesplatform/push-notifications/pkg/logging"
)

// InitLogger builds the process-wide logger and installs it as the global
// logger consulted by pkg/logging's package-level convenience functions.
func InitLogger(levelStr string) core.ILogger {
	logger, _ := logging.NewZapLogger(levelStr)
	logging.SetGlobalLogger(logger)
	return logger
}
