package wire

import "encoding/json"

// String returns the value when raw is a JSON string. null, numbers,
// booleans and containers all report false.
func String(raw json.RawMessage) (string, bool) {
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil || s == nil {
		return "", false
	}
	return *s, true
}

// Bool returns the value when raw is a JSON boolean.
func Bool(raw json.RawMessage) (bool, bool) {
	var b *bool
	if err := json.Unmarshal(raw, &b); err != nil || b == nil {
		return false, false
	}
	return *b, true
}

// IsNull reports whether raw is the JSON null literal.
func IsNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

// IsEmptyBody reports whether a payload carries no JSON document at all.
func IsEmptyBody(raw []byte) bool {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}
