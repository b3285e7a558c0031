package cloudinary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"asset-sync/core/reconcile"
	"asset-sync/core/utils"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	serviceName = "cloudinary"

	integrationHeader = "X-cld-commercetools"
	integrationValue  = "go-1.0.0"
)

// resource is the subset of the Admin API resource document the sync reads.
type resource struct {
	PublicID     string          `json:"public_id"`
	ResourceType string          `json:"resource_type"`
	Format       string          `json:"format"`
	SecureURL    string          `json:"secure_url"`
	Tags         []string        `json:"tags"`
	Metadata     json.RawMessage `json:"metadata"`
	Context      struct {
		Custom map[string]string `json:"custom"`
	} `json:"context"`
}

// Client resolves assets through the Cloudinary Admin API.
type Client struct {
	http    *resty.Client
	cloud   string
	mapping reconcile.Config
	logger  *zap.Logger
}

// NewClient creates a resolver. mapping names the metadata fields carrying SKU, publish flag
// and sort order.
func NewClient(cfg Config, mapping reconcile.Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	http := resty.New().
		SetBaseURL(strings.TrimRight(cfg.APIURL, "/")).
		SetBasicAuth(cfg.APIKey, cfg.APISecret).
		SetHeader(integrationHeader, integrationValue).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout())

	return &Client{http: http, cloud: cfg.CloudName, mapping: mapping, logger: logger}
}

// Resolve implements reconcile.Resolver.
func (c *Client) Resolve(ctx context.Context, resourceType, publicID string) (*reconcile.AssetSnapshot, error) {
	path := fmt.Sprintf("/v1_1/%s/resources/%s/upload/%s",
		url.PathEscape(c.cloud), url.PathEscape(resourceType), escapePublicID(publicID))

	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, &reconcile.UpstreamError{Service: serviceName, Err: err}
	}
	if !resp.IsSuccess() {
		c.logger.Warn("Asset lookup failed",
			zap.String("public_id", publicID),
			zap.Int("status", resp.StatusCode()),
			zap.ByteString("body", resp.Body()))
		return nil, fmt.Errorf("%w: %s", reconcile.ErrAssetNotFound, publicID)
	}

	var res resource
	if err := json.Unmarshal(resp.Body(), &res); err != nil {
		return nil, &reconcile.UpstreamError{Service: serviceName, StatusCode: resp.StatusCode(), Err: fmt.Errorf("decode resource: %w", err)}
	}

	return c.snapshot(publicID, resourceType, &res)
}

func (c *Client) snapshot(publicID, resourceType string, res *resource) (*reconcile.AssetSnapshot, error) {
	md, err := reconcile.ParseMetadata(res.Metadata)
	if err != nil {
		return nil, &reconcile.UpstreamError{Service: serviceName, Err: err}
	}

	if res.ResourceType != "" {
		resourceType = res.ResourceType
	}

	sku, _ := md.Lookup(c.mapping.PropertySKU)
	flag, _ := md.Lookup(c.mapping.PropertyPublish)
	sort, _ := md.Lookup(c.mapping.PropertySort)

	return &reconcile.AssetSnapshot{
		PublicID:     publicID,
		ResourceType: resourceType,
		Format:       res.Format,
		SecureURL:    res.SecureURL,
		Name:         res.Context.Custom["caption"],
		Description:  res.Context.Custom["alt"],
		Tags:         res.Tags,
		Metadata:     md,
		SKU:          utils.ToString(sku),
		PublishFlag:  utils.ToString(flag),
		SortOrder:    sort,
	}, nil
}

// escapePublicID escapes each path segment of a public id, keeping folder separators.
func escapePublicID(publicID string) string {
	segments := strings.Split(publicID, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
