package metrics

// Config holds Prometheus exposition settings.
type Config struct {
	// Enabled exposes the registry over HTTP.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Path is the scrape endpoint.
	Path string `mapstructure:"path" default:"/metrics"`
}
