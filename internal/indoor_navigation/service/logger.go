package service

import (
	"context"
	"log"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/api/http/middleware"
)

// Logger provides request-scoped key=value logging for services
type Logger struct {
	requestID string
}

// NewLogger creates a logger tagged with the request id set by middleware
func NewLogger(ctx context.Context) *Logger {
	rid := middleware.GetRequestID(ctx)
	if rid == "" {
		rid = "none"
	}
	return &Logger{requestID: rid}
}

func (l *Logger) LogError(operation string, err error) {
	log.Printf("[error] request_id=%s operation=%s error=%v", l.requestID, operation, err)
}

func (l *Logger) LogInfof(operation string, format string, args ...interface{}) {
	log.Printf("[info] request_id=%s operation=%s "+format, append([]interface{}{l.requestID, operation}, args...)...)
}

func (l *Logger) LogWarnf(operation string, format string, args ...interface{}) {
	log.Printf("[warn] request_id=%s operation=%s "+format, append([]interface{}{l.requestID, operation}, args...)...)
}
