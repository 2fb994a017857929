package kafka

import "encoding/json"

// MustMarshal panics on marshal failure; the payloads published here are
// plain structs that always encode.
func MustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
