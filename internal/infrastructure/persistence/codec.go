package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"

	"flightdesk-service/internal/domain/apperrors"
)

// decodeRecords turns a collection's durable bytes into an ordered record
// slice. Absent or empty input is an empty collection, never an error;
// malformed input reports ErrCorruptStore so callers can tell the two apart.
func decodeRecords[T any](data []byte) ([]T, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCorruptStore, err)
	}
	if records == nil {
		// JSON null decodes to a nil slice
		records = []T{}
	}
	return records, nil
}

// encodeRecords produces the durable representation: a pretty-printed JSON
// array, the same shape the data files have always had.
func encodeRecords[T any](records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return append(data, '\n'), nil
}
