package commercetools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"asset-sync/core/reconcile"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ServiceName labels errors coming from this client.
const ServiceName = "commercetools"

// Client talks to the commercetools HTTP API. It implements reconcile.Catalog and
// reconcile.AttributeLoader.
type Client struct {
	http       *resty.Client
	projectKey string
	attributes reconcile.AttributeLoader
	logger     *zap.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithAttributeCache puts a TTL cache in front of product type lookups.
func WithAttributeCache(cache *reconcile.AttributeCache) Option {
	return func(c *Client) {
		c.attributes = cache
	}
}

// WithAttributeTTL caches product type lookups of this client for ttl.
func WithAttributeTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.attributes = reconcile.NewAttributeCache(c, ttl)
		}
	}
}

// NewClient creates a client that obtains tokens with the client credentials grant.
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger, opts ...Option) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL(),
		Scopes:       cfg.Scopes,
	}
	return newClient(cc.Client(ctx), cfg, logger, opts...)
}

// NewTokenClient creates a client that uses a caller-provided bearer token.
func NewTokenClient(ctx context.Context, cfg Config, token string, logger *zap.Logger, opts ...Option) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return newClient(oauth2.NewClient(ctx, src), cfg, logger, opts...)
}

func newClient(hc *http.Client, cfg Config, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		http: resty.NewWithClient(hc).
			SetBaseURL(trimSlash(cfg.APIURL)).
			SetHeader("Accept", "application/json").
			SetTimeout(cfg.Timeout()),
		projectKey: cfg.ProjectKey,
		logger:     logger,
	}
	c.attributes = c
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) path(parts ...string) string {
	return "/" + c.projectKey + "/" + strings.Join(parts, "/")
}

// Locate implements reconcile.Locator. The product must be the only search hit for sku.
// The staged projection is always returned; staged only scopes the search.
func (c *Client) Locate(ctx context.Context, sku string, staged bool) (*reconcile.ProductView, error) {
	logger := c.logger.With(zap.String("sku", sku))

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"staged": strconv.FormatBool(staged),
			"filter": fmt.Sprintf("variants.sku:%q", sku),
		}).
		Get(c.path("product-projections", "search"))
	if err != nil {
		return nil, &reconcile.UpstreamError{Service: ServiceName, Err: err}
	}
	if err := c.lookupStatus(logger, "Product search failed", resp); err != nil {
		return nil, err
	}

	var search searchResponse
	if err := json.Unmarshal(resp.Body(), &search); err != nil {
		return nil, &reconcile.UpstreamError{Service: ServiceName, StatusCode: resp.StatusCode(), Err: fmt.Errorf("decode search: %w", err)}
	}
	if len(search.Results) != 1 {
		logger.Info("Product search did not match exactly one product", zap.Int("matches", len(search.Results)))
		return nil, fmt.Errorf("%w: sku %s matched %d products", reconcile.ErrProductNotFound, sku, len(search.Results))
	}

	resp, err = c.http.R().SetContext(ctx).Get(c.path("products", search.Results[0].ID))
	if err != nil {
		return nil, &reconcile.UpstreamError{Service: ServiceName, Err: err}
	}
	if err := c.lookupStatus(logger, "Product fetch failed", resp); err != nil {
		return nil, err
	}

	var p product
	if err := json.Unmarshal(resp.Body(), &p); err != nil {
		return nil, &reconcile.UpstreamError{Service: ServiceName, StatusCode: resp.StatusCode(), Err: fmt.Errorf("decode product: %w", err)}
	}

	view := p.view()
	names, err := c.attributes.ProductTypeAttributes(ctx, view.ProductType.ID)
	if err != nil {
		return nil, err
	}
	view.ProductType.Attributes = names

	return view, nil
}

// lookupStatus maps a failed read to an error. Credential failures stay visible as upstream
// errors; anything else reads as not found.
func (c *Client) lookupStatus(logger *zap.Logger, msg string, resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	logger.Warn(msg, zap.Int("status", resp.StatusCode()), zap.ByteString("body", resp.Body()))

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &reconcile.UpstreamError{Service: ServiceName, StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	default:
		return fmt.Errorf("%w: status %d", reconcile.ErrProductNotFound, resp.StatusCode())
	}
}

// ProductTypeAttributes implements reconcile.AttributeLoader.
func (c *Client) ProductTypeAttributes(ctx context.Context, productTypeID string) ([]string, error) {
	resp, err := c.http.R().SetContext(ctx).Get(c.path("product-types", productTypeID))
	if err != nil {
		return nil, &reconcile.UpstreamError{Service: ServiceName, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &reconcile.UpstreamError{Service: ServiceName, StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}

	var pt productType
	if err := json.Unmarshal(resp.Body(), &pt); err != nil {
		return nil, &reconcile.UpstreamError{Service: ServiceName, StatusCode: resp.StatusCode(), Err: fmt.Errorf("decode product type: %w", err)}
	}

	names := make([]string, 0, len(pt.Attributes))
	for _, a := range pt.Attributes {
		names = append(names, a.Name)
	}
	return names, nil
}

// Update implements reconcile.Updater. A 409 means the product moved past product.Version
// and is returned as reconcile.ErrVersionConflict; the caller decides whether to retry.
func (c *Client) Update(ctx context.Context, view *reconcile.ProductView, actions []reconcile.Action) (*reconcile.ProductView, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(updateRequest{Version: view.Version, Actions: actions}).
		Post(c.path("products", view.ID))
	if err != nil {
		return nil, &reconcile.UpstreamError{Service: ServiceName, Err: err}
	}

	switch {
	case resp.StatusCode() == http.StatusConflict:
		return nil, fmt.Errorf("%w: product %s at version %d", reconcile.ErrVersionConflict, view.ID, view.Version)
	case !resp.IsSuccess():
		c.logger.Error("Product update failed",
			zap.String("product_id", view.ID),
			zap.Int("status", resp.StatusCode()),
			zap.ByteString("body", resp.Body()))
		return nil, &reconcile.UpstreamError{Service: ServiceName, StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}

	var p product
	if err := json.Unmarshal(resp.Body(), &p); err != nil {
		return nil, &reconcile.UpstreamError{Service: ServiceName, StatusCode: resp.StatusCode(), Err: fmt.Errorf("decode product: %w", err)}
	}
	updated := p.view()
	updated.ProductType.Attributes = view.ProductType.Attributes
	return updated, nil
}

// Ping checks that the project is reachable with the configured credentials.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/" + c.projectKey)
	if err != nil {
		return &reconcile.UpstreamError{Service: ServiceName, Err: err}
	}
	if !resp.IsSuccess() {
		return &reconcile.UpstreamError{Service: ServiceName, StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	return nil
}
