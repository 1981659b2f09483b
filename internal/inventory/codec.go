package inventory

import (
	"encoding/json"
	"fmt"
)

// encode serializes a collection as a JSON array. A nil slice encodes as [].
func encode[T any](records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encoding collection: %w", err)
	}
	return data, nil
}

// decode parses a JSON array produced by encode.
func decode[T any](data []byte) ([]T, error) {
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding collection: %w", err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}
