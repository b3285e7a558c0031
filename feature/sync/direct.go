package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"asset-sync/core/reconcile"
	"asset-sync/feature/sync/models"

	"go.uber.org/zap"
)

// Target names the product variant and the credentials of a direct request.
type Target struct {
	SKU    string `json:"sku"`
	Token  string `json:"token"`
	Staged bool   `json:"staged"`
}

func (t Target) validate(v *reconcile.ValidationError) {
	if t.SKU == "" {
		v.Add("sku missing")
	}
	if t.Token == "" {
		v.Add("token missing")
	}
}

// AddAssetRequest adds or updates an asset record on a variant.
type AddAssetRequest struct {
	Target
	PublicID     string `json:"publicId"`
	SecureURL    string `json:"secureUrl"`
	ResourceType string `json:"resourceType"`
	Format       string `json:"format"`
	DisplayName  string `json:"displayName"`
}

// Validate reports every missing field.
func (r AddAssetRequest) Validate() error {
	v := &reconcile.ValidationError{}
	r.validate(v)
	if r.PublicID == "" {
		v.Add("publicId missing")
	}
	if r.SecureURL == "" {
		v.Add("secureUrl missing")
	}
	if r.ResourceType == "" {
		v.Add("resourceType missing")
	}
	if r.Format == "" {
		v.Add("format missing")
	}
	return v.OrNil()
}

// DeleteAssetRequest removes an asset record from a variant.
type DeleteAssetRequest struct {
	Target
	PublicID string `json:"publicId"`
}

// Validate reports every missing field.
func (r DeleteAssetRequest) Validate() error {
	v := &reconcile.ValidationError{}
	r.validate(v)
	if r.PublicID == "" {
		v.Add("publicId missing")
	}
	return v.OrNil()
}

// ThumbnailRequest adds or removes the derived thumbnail image of a variant.
type ThumbnailRequest struct {
	Target
	SecureURL    string `json:"secureUrl"`
	ResourceType string `json:"resourceType"`
	DisplayName  string `json:"displayName,omitempty"`
}

// Validate reports every missing field.
func (r ThumbnailRequest) Validate() error {
	v := &reconcile.ValidationError{}
	r.validate(v)
	if r.SecureURL == "" {
		v.Add("secureUrl missing")
	}
	if r.ResourceType == "" {
		v.Add("resourceType missing")
	}
	return v.OrNil()
}

// PropertiesRequest copies metadata values onto variant attributes.
type PropertiesRequest struct {
	Target
	Metadata json.RawMessage `json:"metadata" swaggertype:"object"`
}

// Validate reports every missing field.
func (r PropertiesRequest) Validate() error {
	v := &reconcile.ValidationError{}
	r.validate(v)
	trimmed := bytes.TrimSpace(r.Metadata)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		v.Add("metadata missing")
	} else if _, err := reconcile.ParseMetadata(trimmed); err != nil {
		v.Add("metadata must be an object or a list")
	}
	return v.OrNil()
}

// AddAsset adds the asset record, or rewrites its name and description when present.
func (s *Service) AddAsset(ctx context.Context, req AddAssetRequest) (*UnitResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	asset := &reconcile.AssetSnapshot{
		PublicID:     req.PublicID,
		ResourceType: req.ResourceType,
		Format:       req.Format,
		SecureURL:    req.SecureURL,
		Name:         req.DisplayName,
	}
	return s.direct(ctx, req.Target, req.PublicID, func(product *reconcile.ProductView) ([]reconcile.Action, error) {
		return s.planner.AssetActions(product, req.SKU, asset)
	})
}

// DeleteAsset removes the asset record when present.
func (s *Service) DeleteAsset(ctx context.Context, req DeleteAssetRequest) (*UnitResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.direct(ctx, req.Target, req.PublicID, func(product *reconcile.ProductView) ([]reconcile.Action, error) {
		action, err := s.planner.RemoveAssetAction(product, req.SKU, req.PublicID)
		return single(action, err)
	})
}

// AddThumbnail adds the thumbnail image when missing.
func (s *Service) AddThumbnail(ctx context.Context, req ThumbnailRequest) (*UnitResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.direct(ctx, req.Target, "", func(product *reconcile.ProductView) ([]reconcile.Action, error) {
		action, err := s.planner.ThumbnailAction(product, req.SKU, req.DisplayName, req.ResourceType, req.SecureURL)
		return single(action, err)
	})
}

// DeleteThumbnail removes the thumbnail image when present.
func (s *Service) DeleteThumbnail(ctx context.Context, req ThumbnailRequest) (*UnitResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.direct(ctx, req.Target, "", func(product *reconcile.ProductView) ([]reconcile.Action, error) {
		action, err := s.planner.RemoveThumbnailAction(product, req.SKU, req.ResourceType, req.SecureURL)
		return single(action, err)
	})
}

// SetProperties sets every product type attribute whose metadata value differs.
func (s *Service) SetProperties(ctx context.Context, req PropertiesRequest) (*UnitResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	md, err := reconcile.ParseMetadata(req.Metadata)
	if err != nil {
		return nil, err
	}
	return s.direct(ctx, req.Target, "", func(product *reconcile.ProductView) ([]reconcile.Action, error) {
		return s.planner.AttributeActions(product, req.SKU, md)
	})
}

// direct runs one plan with a catalog client authenticated by the request token. Unstaged
// requests publish whenever anything changed.
func (s *Service) direct(ctx context.Context, target Target, publicID string, plan func(*reconcile.ProductView) ([]reconcile.Action, error)) (*UnitResult, error) {
	if s.catalogFor == nil {
		return nil, errors.New("direct operations are not configured")
	}
	l := s.logger.With(zap.String("sku", target.SKU), zap.Bool("staged", target.Staged))
	if publicID != "" {
		l = l.With(zap.String("public_id", publicID))
	}

	return s.run(ctx, l, s.catalogFor(ctx, target.Token), unitOfWork{
		role:     models.RoleDirect,
		publicID: publicID,
		sku:      target.SKU,
		staged:   target.Staged,
		plan: func(product *reconcile.ProductView) ([]reconcile.Action, error) {
			actions, err := plan(product)
			if err != nil {
				return nil, err
			}
			return reconcile.WithPublish(actions, !target.Staged), nil
		},
	})
}

func single(action *reconcile.Action, err error) ([]reconcile.Action, error) {
	if err != nil || action == nil {
		return nil, err
	}
	return []reconcile.Action{*action}, nil
}
