package reconcile

// DefaultLocale is the locale asset names and descriptions are written under.
const DefaultLocale = "en-US"

// Config names the metadata fields and catalog custom fields the planner works with.
type Config struct {
	// PropertySKU is the metadata field holding the product SKU.
	PropertySKU string `mapstructure:"property_sku" default:"sku"`

	// PropertyPublish is the metadata field holding the publish flag.
	PropertyPublish string `mapstructure:"property_publish" default:"publish"`

	// PropertySort is the metadata field holding the asset sort order.
	PropertySort string `mapstructure:"property_sort" default:"sort"`

	// AssetTypeKey is the catalog custom type key for assets. Empty disables sort fields.
	AssetTypeKey string `mapstructure:"ct_asset_type_key" default:""`

	// AssetSortField is the custom field on AssetTypeKey receiving the sort order.
	AssetSortField string `mapstructure:"ct_property_sort" default:"sort"`

	// Locale for localized asset strings.
	Locale string `mapstructure:"locale" default:"en-US"`
}

func (c Config) locale() string {
	if c.Locale == "" {
		return DefaultLocale
	}
	return c.Locale
}

func (c Config) sortEnabled() bool {
	return c.AssetTypeKey != "" && c.AssetSortField != ""
}
