package commercetools

import "time"

// Config holds the commercetools project and API client settings.
type Config struct {
	// APIURL is the HTTP API host.
	APIURL string `mapstructure:"api_url" default:"https://api.europe-west1.gcp.commercetools.com"`
	// AuthURL is the OAuth host; tokens come from AuthURL/oauth/token.
	AuthURL string `mapstructure:"auth_url" default:"https://auth.europe-west1.gcp.commercetools.com"`
	// ProjectKey prefixes every API path.
	ProjectKey string `mapstructure:"project_key" default:""`
	// ClientID and ClientSecret are the API client credentials. ClientSecret may come from the secrets provider.
	ClientID     string `mapstructure:"client_id" default:""`
	ClientSecret string `mapstructure:"client_secret" default:""`
	// Scopes requested with the client credentials grant. Empty requests the client's default scopes.
	Scopes []string `mapstructure:"scopes" default:""`
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// AttributeCacheTTL is how long product type attribute names are reused.
	AttributeCacheTTL time.Duration `mapstructure:"attribute_cache_ttl" default:"5m"`
}

// Timeout returns the request timeout, defaulting to 10s.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// TokenURL returns the client credentials endpoint.
func (c Config) TokenURL() string {
	return trimSlash(c.AuthURL) + "/oauth/token"
}
