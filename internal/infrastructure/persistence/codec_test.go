package persistence

import (
	"testing"

	"flightdesk-service/internal/domain/apperrors"
	"flightdesk-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	snapshots := [][]entity.Flight{
		{},
		{{ID: 1756300000000, UserID: "u1", From: "MAD", To: "BCN", Aircraft: "A320", Status: entity.StatusBooked}},
		{
			{ID: 1, UserID: "u1", From: "MAD", To: "BCN", Aircraft: "A320", Status: entity.StatusCompleted},
			{ID: 2, UserID: "u2", From: "BCN", To: "LHR", Aircraft: "B757", Status: entity.StatusBooked},
		},
	}

	for _, snapshot := range snapshots {
		data, err := encodeRecords(snapshot)
		require.NoError(t, err)

		decoded, err := decodeRecords[entity.Flight](data)
		require.NoError(t, err)
		assert.Equal(t, snapshot, decoded)
	}
}

func TestDecodeEmptyInputs(t *testing.T) {
	for _, input := range [][]byte{nil, {}, []byte("  \n"), []byte("null")} {
		records, err := decodeRecords[entity.User](input)
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	}
}

func TestDecodeCorruptInput(t *testing.T) {
	for _, input := range [][]byte{[]byte("{"), []byte(`{"id":"u1"}`), []byte("[1,2")} {
		_, err := decodeRecords[entity.User](input)
		assert.ErrorIs(t, err, apperrors.ErrCorruptStore, "input %q", input)
	}
}

func TestEncodeNilSliceIsEmptyArray(t *testing.T) {
	data, err := encodeRecords[entity.User](nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}
