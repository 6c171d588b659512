package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ModIDList is a list of mod identifiers. Older configs stored workshop IDs
// as JSON numbers, so decoding accepts strings and numbers alike and always
// yields strings. Elements of any other kind are dropped.
type ModIDList []string

// UnmarshalJSON implements json.Unmarshaler
func (l *ModIDList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = ModIDList{}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding mod list: %w", err)
	}

	ids := make(ModIDList, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			ids = append(ids, s)
			continue
		}
		var n json.Number
		if err := json.Unmarshal(item, &n); err == nil {
			ids = append(ids, n.String())
		}
	}

	*l = ids
	return nil
}

// MarshalJSON implements json.Marshaler; a nil list encodes as []
func (l ModIDList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}
