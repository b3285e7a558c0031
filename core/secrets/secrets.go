package secrets

import (
	"context"
	"errors"
	"fmt"
	"sync"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrSecretNotFound is returned when a secret does not exist.
var ErrSecretNotFound = errors.New("secret not found")

// Provider returns secret values by name.
type Provider interface {
	Secret(ctx context.Context, name string) (string, error)
	Close() error
}

// Static serves secrets from a fixed map, typically values already loaded from the environment.
type Static map[string]string

// Secret implements Provider.
func (s Static) Secret(_ context.Context, name string) (string, error) {
	v, ok := s[name]
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, name)
	}
	return v, nil
}

// Close implements Provider.
func (Static) Close() error { return nil }

type secretManagerClient interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
	Close() error
}

var secretManagerClientFactory = func(ctx context.Context, opts ...option.ClientOption) (secretManagerClient, error) {
	return secretmanager.NewClient(ctx, opts...)
}

// Manager reads secrets from Google Secret Manager and caches them for the process lifetime.
type Manager struct {
	client    secretManagerClient
	projectID string
	version   string
	logger    *zap.Logger

	mu    sync.RWMutex
	cache map[string]string
}

// NewManager connects to Secret Manager.
func NewManager(ctx context.Context, cfg Config, logger *zap.Logger, opts ...option.ClientOption) (*Manager, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("secrets: project id is required for the gcp provider")
	}
	client, err := secretManagerClientFactory(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("secrets: create secret manager client: %w", err)
	}
	return newManager(client, cfg, logger), nil
}

func newManager(client secretManagerClient, cfg Config, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	version := cfg.Version
	if version == "" {
		version = "latest"
	}
	return &Manager{
		client:    client,
		projectID: cfg.ProjectID,
		version:   version,
		logger:    logger,
		cache:     make(map[string]string),
	}
}

// Secret implements Provider.
func (m *Manager) Secret(ctx context.Context, name string) (string, error) {
	m.mu.RLock()
	v, ok := m.cache[name]
	m.mu.RUnlock()
	if ok {
		return v, nil
	}

	resourceName := fmt.Sprintf("projects/%s/secrets/%s/versions/%s", m.projectID, name, m.version)
	resp, err := m.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: resourceName})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", fmt.Errorf("%w: %s", ErrSecretNotFound, name)
		}
		m.logger.Warn("Secret access failed", zap.String("secret", name), zap.Error(err))
		return "", fmt.Errorf("secrets: access %s: %w", resourceName, err)
	}
	if resp == nil || resp.Payload == nil {
		return "", fmt.Errorf("secret manager returned empty payload for %s", resourceName)
	}

	value := string(resp.Payload.GetData())
	m.mu.Lock()
	m.cache[name] = value
	m.mu.Unlock()
	return value, nil
}

// Close releases the Secret Manager client.
func (m *Manager) Close() error {
	return m.client.Close()
}

// NewProvider builds the provider selected by cfg. The env provider serves the given
// fallback values.
func NewProvider(ctx context.Context, cfg Config, fallback Static, logger *zap.Logger) (Provider, error) {
	switch cfg.Provider {
	case "", "env":
		return fallback, nil
	case "gcp":
		return NewManager(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("secrets: unknown provider %q", cfg.Provider)
	}
}

// Fill resolves each named secret into its target when the target is still empty. Every
// target is attempted; failures are returned joined.
func Fill(ctx context.Context, p Provider, targets map[string]*string) error {
	var errs []error
	for name, target := range targets {
		if *target != "" {
			continue
		}
		v, err := p.Secret(ctx, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*target = v
	}
	return errors.Join(errs...)
}
