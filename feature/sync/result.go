package sync

import (
	"encoding/json"

	"asset-sync/core/reconcile"
)

// Result messages.
const (
	MsgAssetNotFound   = "Asset not found"
	MsgFlagNotFound    = "Publish flag not found"
	MsgProductNotFound = "Product not found"
)

// NotificationResult is the outcome of processing one single-asset notification.
type NotificationResult struct {
	Status int              `json:"status"`
	Body   NotificationBody `json:"body"`
}

// NotificationBody carries the per-product sub-results.
type NotificationBody struct {
	SKU      string      `json:"sku,omitempty"`
	Error    string      `json:"error,omitempty"`
	OldAsset *UnitResult `json:"oldAsset,omitempty"`
	NewAsset *UnitResult `json:"newAsset,omitempty"`
}

// UnitResult is the outcome of reconciling one product.
type UnitResult struct {
	Status int      `json:"status"`
	Body   UnitBody `json:"body"`
}

// UnitBody is {sku, actions} on success and {sku, error} otherwise.
type UnitBody struct {
	SKU     string
	Actions []reconcile.Action
	Error   string
}

// MarshalJSON implements json.Marshaler.
func (b UnitBody) MarshalJSON() ([]byte, error) {
	if b.Error != "" {
		return json.Marshal(struct {
			SKU   string `json:"sku"`
			Error string `json:"error"`
		}{b.SKU, b.Error})
	}
	actions := b.Actions
	if actions == nil {
		actions = []reconcile.Action{}
	}
	return json.Marshal(struct {
		SKU     string             `json:"sku"`
		Actions []reconcile.Action `json:"actions"`
	}{b.SKU, actions})
}

func notFound(msg string) *NotificationResult {
	return &NotificationResult{Status: 404, Body: NotificationBody{Error: msg}}
}

func productNotFound(sku string) *UnitResult {
	return &UnitResult{Status: 404, Body: UnitBody{SKU: sku, Error: MsgProductNotFound}}
}
