package secrets

// Config selects where service secrets are read from.
type Config struct {
	// Provider is env (values already in the environment) or gcp (Secret Manager).
	Provider string `mapstructure:"provider" default:"env"`
	// ProjectID is the Google Cloud project holding the secrets.
	ProjectID string `mapstructure:"project_id" default:""`
	// Version is the secret version to access.
	Version string `mapstructure:"version" default:"latest"`
	// CatalogClientSecretName names the commercetools client secret.
	CatalogClientSecretName string `mapstructure:"catalog_client_secret_name" default:"ct-client-secret"`
	// MediaAPISecretName names the Cloudinary API secret.
	MediaAPISecretName string `mapstructure:"media_api_secret_name" default:"cloud-api-secret"`
}
