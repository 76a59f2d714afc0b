// Package notify carries user-facing failure signals out of the print
// pipeline. Everything that is not user-facing stays in the logs.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Notifier receives the transient, toast-style failure signal shown to the
// cashier when a print call fails past every fallback.
type Notifier interface {
	PrintFailed(transactionID, message string)
}

// LogNotifier is the default sink; the UI polls job history for the details.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notify")}
}

func (n *LogNotifier) PrintFailed(transactionID, message string) {
	n.logger.Error("print failed",
		zap.String("transaction_id", transactionID),
		zap.String("message", message))
}

// Capture records notifications for tests.
type Capture struct {
	mu       sync.Mutex
	Failures []string
}

func (c *Capture) PrintFailed(transactionID, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Failures = append(c.Failures, transactionID+": "+message)
}

// Count returns how many failures were captured.
func (c *Capture) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Failures)
}
