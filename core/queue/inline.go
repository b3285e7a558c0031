package queue

import (
	"context"
	"errors"

	"asset-sync/core/metrics"
	"asset-sync/core/notification"

	"go.uber.org/zap"
)

// Inline processes units synchronously in the publishing goroutine, in order.
type Inline struct {
	handle  Handler
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewInline creates an inline transport.
func NewInline(handle Handler, logger *zap.Logger, m *metrics.Metrics) *Inline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inline{handle: handle, logger: logger, metrics: m}
}

// Name implements Publisher.
func (i *Inline) Name() string { return DriverInline }

// Publish runs every unit through the handler. Failures of one unit do not stop the next;
// retryable failures are returned joined.
func (i *Inline) Publish(ctx context.Context, units []notification.Notification) error {
	if i.handle == nil {
		return errors.New("queue: inline transport has no handler")
	}
	var errs []error
	for _, unit := range units {
		err := i.handle(ctx, unit)
		if !settle(i.logger, i.metrics, DriverInline, err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close implements Publisher.
func (i *Inline) Close() error { return nil }
