package postgres

import "encoding/json"

// jsonb marshals v for a JSONB parameter; nil slices become empty arrays so
// the column default shape is preserved.
func jsonb(v any) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func fromJSONB(b []byte, out any) error {
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, out)
}
