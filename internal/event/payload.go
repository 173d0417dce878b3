package event

import (
	"encoding/json"
	"fmt"
)

// EncodePayload renders a payload as JSON for storage outside the process
func EncodePayload(payload interface{}) (json.RawMessage, error) {
	if raw, ok := payload.(json.RawMessage); ok {
		return raw, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return data, nil
}

// DecodePayload returns the payload as T. In-process publishers hand over the
// struct itself (or a pointer to it); anything else goes through JSON.
func DecodePayload[T any](input interface{}) (T, error) {
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}

	var result T
	data, err := EncodePayload(input)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("decode payload as %T: %w", result, err)
	}
	return result, nil
}
