package marketdata

import (
	"encoding/json"
	"fmt"
)

// DecodeBuff163 decodes a Buff163 price list. Entries of the wrong shape are
// skipped and counted; only a body that is not a JSON object is an error.
func DecodeBuff163(body []byte) (map[string]BuffEntry, int, error) {
	return decodeFeed[BuffEntry](body)
}

// DecodeCSFloat decodes a CSFloat price list like DecodeBuff163.
func DecodeCSFloat(body []byte) (map[string]CSFloatEntry, int, error) {
	return decodeFeed[CSFloatEntry](body)
}

func decodeFeed[T any](body []byte) (map[string]T, int, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, 0, fmt.Errorf("decode price list: %w", err)
	}
	out := make(map[string]T, len(raw))
	skipped := 0
	for name, msg := range raw {
		var v T
		if err := json.Unmarshal(msg, &v); err != nil {
			skipped++
			continue
		}
		out[name] = v
	}
	return out, skipped, nil
}
