package reconcile

import (
	"encoding/json"
	"reflect"

	"asset-sync/core/utils"
)

// valuesEqual compares two attribute values after a JSON round trip so that numbers, slices
// and maps decoded from different sources compare by value.
func valuesEqual(a, b any) bool {
	na, errA := normalize(a)
	nb, errB := normalize(b)
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}
	return reflect.DeepEqual(na, nb)
}

func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// blank reports values the planner treats as absent.
func blank(v any) bool {
	if utils.IsBlank(v) {
		return true
	}
	if s, ok := v.([]any); ok {
		return s == nil
	}
	return false
}
