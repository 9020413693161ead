package notify

import "spendtrack/internal/logger"

// LogSink writes breach alerts to the application log. It is the default sink
// when no message broker is configured.
type LogSink struct{}

// NewLogSink creates a new LogSink.
func NewLogSink() *LogSink {
	return &LogSink{}
}

// Publish logs the alert at warn level.
func (s *LogSink) Publish(alert BreachAlert) error {
	logger.Get().Warnw("budget limit exceeded",
		"user_id", alert.UserID,
		"category", alert.Category,
		"month", alert.Month,
		"year", alert.Year,
		"limit", alert.Limit.StringFixed(2),
		"total", alert.Total.StringFixed(2),
		"severity", alert.Severity,
	)
	return nil
}
