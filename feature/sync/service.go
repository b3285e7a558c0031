package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"asset-sync/core/logger"
	"asset-sync/core/metrics"
	"asset-sync/core/notification"
	"asset-sync/core/queue"
	"asset-sync/core/reconcile"
	"asset-sync/core/utils"
	"asset-sync/feature/sync/models"

	"go.uber.org/zap"
)

// CatalogFactory builds a catalog client authenticated with a caller-provided token.
type CatalogFactory func(ctx context.Context, token string) reconcile.Catalog

// Dependencies wires the service to its collaborators. Journal and Metrics are optional.
type Dependencies struct {
	Resolver   reconcile.Resolver
	Catalog    reconcile.Catalog
	CatalogFor CatalogFactory
	Planner    *reconcile.Planner
	Journal    Journal
	Metrics    *metrics.Metrics
	Logger     *zap.Logger
}

// Service reconciles assets into the catalog.
type Service struct {
	resolver   reconcile.Resolver
	catalog    reconcile.Catalog
	catalogFor CatalogFactory
	planner    *reconcile.Planner
	journal    Journal
	metrics    *metrics.Metrics
	logger     *zap.Logger

	now func() time.Time
}

// NewService creates a new sync service.
func NewService(deps Dependencies) *Service {
	journal := deps.Journal
	if journal == nil {
		journal = NopJournal{}
	}
	l := deps.Logger
	if l == nil {
		l = zap.NewNop()
	}
	planner := deps.Planner
	if planner == nil {
		planner = reconcile.NewPlanner(reconcile.Config{})
	}
	return &Service{
		resolver:   deps.Resolver,
		catalog:    deps.Catalog,
		catalogFor: deps.CatalogFor,
		planner:    planner,
		journal:    journal,
		metrics:    deps.Metrics,
		logger:     l,
		now:        time.Now,
	}
}

// Journal returns the journal entries are recorded in.
func (s *Service) Journal() Journal {
	return s.journal
}

// unitOfWork is one product reconciliation.
type unitOfWork struct {
	role     string
	publicID string
	sku      string
	mode     reconcile.Mode
	staged   bool
	plan     func(product *reconcile.ProductView) ([]reconcile.Action, error)
}

// ProcessNotification reconciles the asset named by a single-asset notification.
//
// When the asset's SKU changed since the previous metadata, the asset is first removed from the
// product carrying the old SKU, then reconciled into the product carrying the new one.
// Update failures are returned so the transport can redeliver.
func (s *Service) ProcessNotification(ctx context.Context, unit notification.Notification) (*NotificationResult, error) {
	res, err := unit.Resource()
	if err != nil {
		return nil, err
	}

	l := logger.WithAsset(s.logger, res.PublicID, "")

	asset, err := s.resolver.Resolve(ctx, res.ResourceType, res.PublicID)
	if errors.Is(err, reconcile.ErrAssetNotFound) {
		l.Warn("Asset not found on media host")
		return notFound(MsgAssetNotFound), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve asset %s: %w", res.PublicID, err)
	}

	mode, ok := reconcile.ModeFromFlag(asset.PublishFlag)
	if !ok {
		l.Info("Asset has no publish flag, skipping")
		return notFound(MsgFlagNotFound), nil
	}
	staged := reconcile.Staged(asset.PublishFlag)

	l = logger.WithAsset(s.logger, asset.PublicID, asset.SKU)
	result := &NotificationResult{Status: 200, Body: NotificationBody{SKU: asset.SKU}}

	if oldSKU := s.previousSKU(l, res); oldSKU != "" && asset.SKU != "" && oldSKU != asset.SKU {
		l.Info("SKU changed, removing asset from previous product", zap.String("old_sku", oldSKU))
		old, err := s.run(ctx, l, s.catalog, unitOfWork{
			role:     models.RoleOld,
			publicID: asset.PublicID,
			sku:      oldSKU,
			mode:     reconcile.ModeUnpublish,
			staged:   staged,
			plan: func(product *reconcile.ProductView) ([]reconcile.Action, error) {
				return s.planner.RemovalActions(product, oldSKU, asset)
			},
		})
		if err != nil {
			return nil, err
		}
		result.Body.OldAsset = old
	}

	current, err := s.run(ctx, l, s.catalog, unitOfWork{
		role:     models.RoleNew,
		publicID: asset.PublicID,
		sku:      asset.SKU,
		mode:     mode,
		staged:   staged,
		plan: func(product *reconcile.ProductView) ([]reconcile.Action, error) {
			return s.planner.Plan(product, asset.SKU, asset, mode)
		},
	})
	if err != nil {
		return nil, err
	}
	result.Body.NewAsset = current

	return result, nil
}

// Handle adapts ProcessNotification to a queue handler. Malformed units are dropped.
func (s *Service) Handle(ctx context.Context, unit notification.Notification) error {
	result, err := s.ProcessNotification(ctx, unit)
	if errors.Is(err, notification.ErrMalformed) {
		return queue.Permanent(err)
	}
	if err != nil {
		return err
	}
	s.logger.Debug("Notification processed",
		zap.Int("status", result.Status),
		zap.String("sku", result.Body.SKU),
		zap.String("error", result.Body.Error))
	return nil
}

// previousSKU reads the SKU from the notification's previous metadata. Unreadable metadata
// counts as no previous SKU.
func (s *Service) previousSKU(l *zap.Logger, res *notification.Resource) string {
	field := s.planner.Config().PropertySKU
	if field == "" {
		return ""
	}
	md, err := reconcile.ParseMetadata(res.PreviousMetadata)
	if err != nil {
		l.Warn("Ignoring unreadable previous metadata", zap.Error(err))
		return ""
	}
	value, _ := md.Lookup(field)
	return utils.ToString(value)
}

// run locates the product, plans against it and applies the plan.
func (s *Service) run(ctx context.Context, l *zap.Logger, catalog reconcile.Catalog, w unitOfWork) (*UnitResult, error) {
	start := s.now()
	entry := &models.JournalEntry{
		PublicID: w.publicID,
		SKU:      w.sku,
		Role:     w.role,
		Mode:     string(w.mode),
	}
	l = l.With(zap.String("role", w.role), zap.String("target_sku", w.sku))

	if w.sku == "" {
		s.finish(ctx, l, entry, start, 404, metrics.ResultNotFound, nil, reconcile.ErrProductNotFound)
		return productNotFound(w.sku), nil
	}

	product, err := catalog.Locate(ctx, w.sku, w.staged)
	if errors.Is(err, reconcile.ErrProductNotFound) {
		l.Warn("Product not found")
		s.finish(ctx, l, entry, start, 404, metrics.ResultNotFound, nil, err)
		return productNotFound(w.sku), nil
	}
	if err != nil {
		s.finish(ctx, l, entry, start, 0, metrics.ResultError, nil, err)
		return nil, fmt.Errorf("failed to locate product for %s: %w", w.sku, err)
	}
	entry.ProductID = product.ID
	entry.Version = product.Version

	actions, err := w.plan(product)
	if errors.Is(err, reconcile.ErrVariantNotFound) {
		l.Warn("Located product has no variant for SKU", zap.String("product_id", product.ID))
		s.finish(ctx, l, entry, start, 404, metrics.ResultNotFound, nil, err)
		return productNotFound(w.sku), nil
	}
	if err != nil {
		s.finish(ctx, l, entry, start, 0, metrics.ResultError, nil, err)
		return nil, fmt.Errorf("failed to plan %s: %w", w.sku, err)
	}

	if len(actions) > 0 {
		updated, err := catalog.Update(ctx, product, actions)
		if err != nil {
			result := metrics.ResultError
			if errors.Is(err, reconcile.ErrVersionConflict) {
				result = metrics.ResultConflict
			}
			s.finish(ctx, l, entry, start, 0, result, actions, err)
			return nil, err
		}
		entry.Version = updated.Version
		l.Info("Product updated", zap.Int("actions", len(actions)), zap.Int64("version", updated.Version))
	} else {
		l.Debug("Product already in sync")
	}

	s.finish(ctx, l, entry, start, 200, metrics.ResultOK, actions, nil)
	return &UnitResult{Status: 200, Body: UnitBody{SKU: w.sku, Actions: actions}}, nil
}

// finish records the reconciliation in the journal and metrics. Journal failures are logged only.
func (s *Service) finish(ctx context.Context, l *zap.Logger, entry *models.JournalEntry, start time.Time, status int, result string, actions []reconcile.Action, cause error) {
	entry.Status = status
	entry.Result = result
	if cause != nil {
		entry.Error = cause.Error()
	}

	kinds := make([]string, 0, len(actions))
	for _, kind := range reconcile.Kinds(actions) {
		kinds = append(kinds, string(kind))
	}
	if len(actions) > 0 {
		if raw, err := json.Marshal(actions); err == nil {
			entry.Actions = string(raw)
		}
	}

	s.metrics.ObserveReconcile(entry.Role, result, kinds, s.now().Sub(start))

	if err := s.journal.Record(ctx, entry); err != nil {
		l.Warn("Failed to record journal entry", zap.Error(err))
	}
}
