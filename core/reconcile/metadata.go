package reconcile

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Metadata is the structured metadata of an asset. The media host delivers it either as a
// flat map of field id to value or as a list of field descriptors.
type Metadata interface {
	// Lookup returns the value stored for the field id.
	Lookup(field string) (any, bool)
}

// MapMetadata is the map shape: {"field": value}.
type MapMetadata map[string]any

// Lookup implements Metadata.
func (m MapMetadata) Lookup(field string) (any, bool) {
	v, ok := m[field]
	return v, ok
}

// MetadataField is one descriptor of the list shape.
type MetadataField struct {
	ID          string `json:"id"`
	Label       string `json:"label,omitempty"`
	Type        string `json:"type,omitempty"`
	Value       any    `json:"value"`
	IsMandatory bool   `json:"isMandatory,omitempty"`
}

// FieldListMetadata is the list shape: [{"id": "field", "type": "set", "value": [...]}].
type FieldListMetadata []MetadataField

// Lookup implements Metadata. Fields of type set resolve to the ids of their entries; entries
// without an id are ignored.
func (l FieldListMetadata) Lookup(field string) (any, bool) {
	for _, f := range l {
		if f.ID != field {
			continue
		}
		if f.Type != "set" {
			return f.Value, true
		}
		entries, ok := f.Value.([]any)
		if !ok {
			return nil, true
		}
		ids := make([]any, 0, len(entries))
		for _, e := range entries {
			obj, ok := e.(map[string]any)
			if !ok {
				continue
			}
			if id, ok := obj["id"]; ok {
				ids = append(ids, id)
			}
		}
		return ids, true
	}
	return nil, false
}

// ParseMetadata decodes raw metadata into the matching shape. Empty input and null yield an
// empty map.
func ParseMetadata(raw json.RawMessage) (Metadata, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return MapMetadata{}, nil
	}

	switch trimmed[0] {
	case '{':
		var m MapMetadata
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return nil, fmt.Errorf("decode metadata map: %w", err)
		}
		return m, nil
	case '[':
		var l FieldListMetadata
		if err := json.Unmarshal(trimmed, &l); err != nil {
			return nil, fmt.Errorf("decode metadata list: %w", err)
		}
		return l, nil
	default:
		return nil, fmt.Errorf("unsupported metadata shape starting with %q", trimmed[0])
	}
}

// lookup tolerates a nil Metadata.
func lookup(md Metadata, field string) (any, bool) {
	if md == nil || field == "" {
		return nil, false
	}
	return md.Lookup(field)
}
