package reconcile

import (
	"encoding/json"
	"fmt"
)

// ActionKind is the catalog update action discriminator.
type ActionKind string

const (
	ActionAddAsset            ActionKind = "addAsset"
	ActionChangeAssetName     ActionKind = "changeAssetName"
	ActionSetAssetDescription ActionKind = "setAssetDescription"
	ActionSetAssetCustomType  ActionKind = "setAssetCustomType"
	ActionRemoveAsset         ActionKind = "removeAsset"
	ActionAddExternalImage    ActionKind = "addExternalImage"
	ActionRemoveImage         ActionKind = "removeImage"
	ActionSetAttribute        ActionKind = "setAttribute"
	ActionPublish             ActionKind = "publish"
)

// Action is one product update action. Only the fields relevant to Kind are serialized.
type Action struct {
	Kind ActionKind
	SKU  string

	// AssetID targets an existing asset (changeAssetName, setAssetDescription,
	// setAssetCustomType, removeAsset).
	AssetID string

	// Asset is the new asset for addAsset.
	Asset *Asset

	Name        LocalizedString
	Description LocalizedString

	// Type and Fields describe the custom type for setAssetCustomType.
	Type   *TypeReference
	Fields map[string]any

	// Image is the new image for addExternalImage; ImageURL targets removeImage.
	Image    *Image
	ImageURL string

	// Attribute and Value describe setAttribute.
	Attribute string
	Value     any
}

// Publish returns the publish action.
func Publish() Action {
	return Action{Kind: ActionPublish}
}

// MarshalJSON renders the catalog wire shape {"action": kind, "sku": ..., ...}.
func (a Action) MarshalJSON() ([]byte, error) {
	out := map[string]any{"action": a.Kind}
	if a.Kind != ActionPublish {
		out["sku"] = a.SKU
	}

	switch a.Kind {
	case ActionAddAsset:
		out["asset"] = a.Asset
	case ActionChangeAssetName:
		out["assetId"] = a.AssetID
		out["name"] = a.Name
	case ActionSetAssetDescription:
		out["assetId"] = a.AssetID
		out["description"] = a.Description
	case ActionSetAssetCustomType:
		out["assetId"] = a.AssetID
		out["type"] = a.Type
		out["fields"] = a.Fields
	case ActionRemoveAsset:
		out["assetId"] = a.AssetID
	case ActionAddExternalImage:
		out["image"] = a.Image
	case ActionRemoveImage:
		out["imageUrl"] = a.ImageURL
	case ActionSetAttribute:
		out["name"] = a.Attribute
		out["value"] = a.Value
	case ActionPublish:
	default:
		return nil, fmt.Errorf("unknown action kind %q", a.Kind)
	}

	return json.Marshal(out)
}

// UnmarshalJSON reads the catalog wire shape back.
func (a *Action) UnmarshalJSON(data []byte) error {
	var wire struct {
		Action      ActionKind      `json:"action"`
		SKU         string          `json:"sku"`
		AssetID     string          `json:"assetId"`
		Asset       *Asset          `json:"asset"`
		Name        json.RawMessage `json:"name"`
		Description LocalizedString `json:"description"`
		Type        *TypeReference  `json:"type"`
		Fields      map[string]any  `json:"fields"`
		Image       *Image          `json:"image"`
		ImageURL    string          `json:"imageUrl"`
		Value       any             `json:"value"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*a = Action{
		Kind:        wire.Action,
		SKU:         wire.SKU,
		AssetID:     wire.AssetID,
		Asset:       wire.Asset,
		Description: wire.Description,
		Type:        wire.Type,
		Fields:      wire.Fields,
		Image:       wire.Image,
		ImageURL:    wire.ImageURL,
		Value:       wire.Value,
	}

	if len(wire.Name) == 0 {
		return nil
	}
	if wire.Action == ActionSetAttribute {
		return json.Unmarshal(wire.Name, &a.Attribute)
	}
	return json.Unmarshal(wire.Name, &a.Name)
}

// Kinds lists the kinds of the actions in order.
func Kinds(actions []Action) []ActionKind {
	kinds := make([]ActionKind, len(actions))
	for i, a := range actions {
		kinds[i] = a.Kind
	}
	return kinds
}
