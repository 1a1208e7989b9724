// Package logging builds the process-wide zap logger.
package logging

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// New returns a production logger in release mode and a human-readable
// development logger otherwise.
func New(mode string) *zap.Logger {
	if mode == gin.ReleaseMode {
		log, err := zap.NewProduction()
		if err != nil {
			return zap.NewNop()
		}
		return log
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
