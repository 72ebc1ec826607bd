package service

import (
	"context"

	"talenthub/internal/platform/middleware"
)

// Observability helpers for logging and metrics. These methods are on
// *Service to access logger and metrics.

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	requestID := middleware.GetRequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
}

// authFailure logs a failed authentication attempt and bumps the failure
// counter. Reasons stay server-side; callers return a non-enumerable message.
func (s *Service) authFailure(ctx context.Context, reason string, attributes ...any) {
	requestID := middleware.GetRequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", "auth_failed", "reason", reason, "log_type", "audit")
	s.logger.WarnContext(ctx, "auth_failed", args...)
	s.metrics.IncrementAuthFailures()
}
