package intake

import (
	"context"
	"fmt"

	"asset-sync/core/metrics"
	"asset-sync/core/notification"
	"asset-sync/core/queue"
	"asset-sync/core/storage"

	"go.uber.org/zap"
)

// Notification outcomes.
const (
	OutcomeAccepted  = "accepted"
	OutcomeIgnored   = "ignored"
	OutcomeMalformed = "malformed"
	OutcomeFailed    = "failed"
)

// Result summarizes one accepted notification.
type Result struct {
	Status     string `json:"status"`
	Type       string `json:"type,omitempty"`
	Units      int    `json:"units"`
	ArchiveKey string `json:"archiveKey,omitempty"`
}

// Service accepts inbound notifications and fans them out as single-asset units.
type Service struct {
	publisher queue.Publisher
	archive   *storage.Archive
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewService creates a new intake service. archive may be nil.
func NewService(publisher queue.Publisher, archive *storage.Archive, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{
		publisher: publisher,
		archive:   archive,
		metrics:   m,
		logger:    logger,
	}
}

// Accept archives the raw body, then splits metadata-change notifications into units and
// publishes them in order. Other notification types are ignored.
func (s *Service) Accept(ctx context.Context, body []byte) (*Result, error) {
	n, err := notification.Decode(body)
	if err != nil {
		s.metrics.ObserveNotification(OutcomeMalformed)
		return nil, err
	}

	result := &Result{Type: n.Type()}

	if s.archive != nil {
		key, err := s.archive.Store(ctx, body)
		if err != nil {
			s.logger.Warn("Failed to archive notification", zap.Error(err))
		} else {
			result.ArchiveKey = key
		}
	}

	return s.dispatch(ctx, n, result)
}

// Replay publishes an archived notification again without re-archiving it.
func (s *Service) Replay(ctx context.Context, body []byte) (*Result, error) {
	n, err := notification.Decode(body)
	if err != nil {
		s.metrics.ObserveNotification(OutcomeMalformed)
		return nil, err
	}
	return s.dispatch(ctx, n, &Result{Type: n.Type()})
}

func (s *Service) dispatch(ctx context.Context, n notification.Notification, result *Result) (*Result, error) {
	if result.Type != notification.TypeMetadataChanged {
		s.logger.Debug("Ignoring notification", zap.String("type", result.Type))
		s.metrics.ObserveNotification(OutcomeIgnored)
		result.Status = OutcomeIgnored
		return result, nil
	}

	units, err := n.Split()
	if err != nil {
		s.metrics.ObserveNotification(OutcomeMalformed)
		return nil, err
	}

	if len(units) > 0 {
		if err := s.publisher.Publish(ctx, units); err != nil {
			s.metrics.ObserveNotification(OutcomeFailed)
			return nil, fmt.Errorf("failed to publish %d units via %s: %w", len(units), s.publisher.Name(), err)
		}
		s.metrics.ObservePublished(s.publisher.Name(), len(units))
	}

	s.logger.Info("Notification accepted",
		zap.Int("units", len(units)),
		zap.String("transport", s.publisher.Name()),
		zap.String("archive_key", result.ArchiveKey))
	s.metrics.ObserveNotification(OutcomeAccepted)

	result.Status = OutcomeAccepted
	result.Units = len(units)
	return result, nil
}
