package testutils

import (
	"sync"
	"time"
)

// SinkRecorder implements notify.Sink and records every call. ConfirmAnswer
// controls what Confirm replies.
type SinkRecorder struct {
	mu            sync.Mutex
	successes     []string
	errors        []string
	prompts       []string
	ConfirmAnswer bool
}

func (r *SinkRecorder) NotifySuccess(message string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.successes = append(r.successes, message)
}

func (r *SinkRecorder) NotifyError(title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errors = append(r.errors, title+": "+message)
}

func (r *SinkRecorder) Confirm(prompt string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prompts = append(r.prompts, prompt)

	return r.ConfirmAnswer
}

func (r *SinkRecorder) Successes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string{}, r.successes...)
}

func (r *SinkRecorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string{}, r.errors...)
}

func (r *SinkRecorder) Prompts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string{}, r.prompts...)
}
