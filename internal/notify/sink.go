package notify

import (
	"log/slog"
	"time"
)

// Sink surfaces feedback for every mutating action. There is no queue:
// overlapping calls replace the visible notification, last call wins.
type Sink interface {
	NotifySuccess(message string, autoClose time.Duration)
	NotifyError(title, message string)
	Confirm(prompt string) bool
}

type logSink struct {
	log *slog.Logger
}

// NewLogSink returns a Sink that writes notifications to the logger. Confirm
// always answers no, so a non-interactive run can never destroy data.
func NewLogSink(log *slog.Logger) Sink {
	return &logSink{log: log}
}

func (s *logSink) NotifySuccess(message string, autoClose time.Duration) {
	s.log.Info(message, slog.Duration("auto_close", autoClose))
}

func (s *logSink) NotifyError(title, message string) {
	s.log.Error(message, slog.String("title", title))
}

func (s *logSink) Confirm(prompt string) bool {
	s.log.Warn("Confirmation declined (non-interactive)", slog.String("prompt", prompt))

	return false
}
