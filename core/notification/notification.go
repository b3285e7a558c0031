package notification

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// TypeMetadataChanged is the only notification type the sync acts on.
const TypeMetadataChanged = "resource_metadata_changed"

const (
	fieldType      = "notification_type"
	fieldResources = "resources"
	fieldPublicID  = "publicId"
)

// ErrMalformed is returned for payloads that cannot be interpreted.
var ErrMalformed = errors.New("malformed notification")

// Notification is one inbound notification or one split unit.
type Notification map[string]json.RawMessage

// Resource is the single resource of a split unit.
type Resource struct {
	PublicID         string          `json:"publicId"`
	ResourceType     string          `json:"resource_type"`
	Type             string          `json:"type,omitempty"`
	PreviousMetadata json.RawMessage `json:"previous_metadata,omitempty"`
	NewMetadata      json.RawMessage `json:"new_metadata,omitempty"`
}

// Decode parses a notification body.
func Decode(data []byte) (Notification, error) {
	var n Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if n == nil {
		return nil, fmt.Errorf("%w: empty body", ErrMalformed)
	}
	return n, nil
}

// Type returns notification_type, or "" when absent.
func (n Notification) Type() string {
	var t string
	if raw, ok := n[fieldType]; ok {
		_ = json.Unmarshal(raw, &t)
	}
	return t
}

// Split returns one unit per key of the resources map, in key order. Each unit is a shallow
// copy of n whose resources is a one-element list holding that resource with publicId set
// to the key. Missing or empty resources yield no units.
func (n Notification) Split() ([]Notification, error) {
	raw, ok := n[fieldResources]
	if !ok || isNull(raw) {
		return nil, nil
	}

	var resources map[string]map[string]json.RawMessage
	if err := json.Unmarshal(raw, &resources); err != nil {
		return nil, fmt.Errorf("%w: resources: %v", ErrMalformed, err)
	}

	keys := make([]string, 0, len(resources))
	for k := range resources {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	units := make([]Notification, 0, len(keys))
	for _, publicID := range keys {
		resource := make(map[string]json.RawMessage, len(resources[publicID])+1)
		for k, v := range resources[publicID] {
			resource[k] = v
		}
		id, err := json.Marshal(publicID)
		if err != nil {
			return nil, err
		}
		resource[fieldPublicID] = id

		list, err := json.Marshal([]map[string]json.RawMessage{resource})
		if err != nil {
			return nil, err
		}

		unit := make(Notification, len(n))
		for k, v := range n {
			unit[k] = v
		}
		unit[fieldResources] = list
		units = append(units, unit)
	}

	return units, nil
}

// Resource returns the first resource of a split unit.
func (n Notification) Resource() (*Resource, error) {
	raw, ok := n[fieldResources]
	if !ok {
		return nil, fmt.Errorf("%w: no resources", ErrMalformed)
	}

	var list []Resource
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: resources: %v", ErrMalformed, err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no resources", ErrMalformed)
	}
	if list[0].PublicID == "" {
		return nil, fmt.Errorf("%w: resource without publicId", ErrMalformed)
	}
	return &list[0], nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
