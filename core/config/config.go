package config

import (
	"reflect"
	"strings"

	"asset-sync/core/cloudinary"
	"asset-sync/core/commercetools"
	"asset-sync/core/database"
	"asset-sync/core/logger"
	"asset-sync/core/metrics"
	"asset-sync/core/queue"
	"asset-sync/core/reconcile"
	"asset-sync/core/secrets"
	"asset-sync/core/server"
	"asset-sync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the notification archive bucket.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the sync journal database.
	Database database.Config `mapstructure:"database"`
	// Catalog holds the commercetools project and API client settings.
	Catalog commercetools.Config `mapstructure:"catalog"`
	// Media holds the Cloudinary account settings.
	Media cloudinary.Config `mapstructure:"media"`
	// Mapping names the metadata fields and custom fields used by the planner.
	Mapping reconcile.Config `mapstructure:"mapping"`
	// Queue selects and configures the fan-out transport.
	Queue queue.Config `mapstructure:"queue"`
	// Secrets selects where client and API secrets are read from.
	Secrets secrets.Config `mapstructure:"secrets"`
	// Metrics holds Prometheus exposition settings.
	Metrics metrics.Config `mapstructure:"metrics"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. MAPPING_PROPERTY_SKU -> mapping.property_sku)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
