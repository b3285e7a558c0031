package cloudinary

import "time"

// Config holds the Cloudinary account settings.
type Config struct {
	// APIURL is the Admin API base URL.
	APIURL string `mapstructure:"api_url" default:"https://api.cloudinary.com"`
	// CloudName identifies the account.
	CloudName string `mapstructure:"cloud_name" default:""`
	// APIKey and APISecret authenticate Admin API calls. APISecret may come from the secrets provider.
	APIKey    string `mapstructure:"api_key" default:""`
	APISecret string `mapstructure:"api_secret" default:""`
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}

// Timeout returns the request timeout, defaulting to 10s.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
