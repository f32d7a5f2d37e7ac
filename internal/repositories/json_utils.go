package repositories

import (
	"encoding/json"
)

// Tag lists and priority maps are stored as jsonb columns. Empty values are
// stored as SQL NULL so the profile rows stay sparse.

func marshalJSON(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case []string:
		if len(val) == 0 {
			return nil, nil
		}
	case map[string]int:
		if len(val) == 0 {
			return nil, nil
		}
	case map[string]float64:
		if len(val) == 0 {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

func unmarshalJSON(raw []byte, dst interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
