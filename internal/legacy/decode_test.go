package legacy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawRecord(t *testing.T, src string) map[string]json.RawMessage {
	t.Helper()
	var record map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(src), &record))
	return record
}

func TestIsTypedRecord(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"typed", `{"title": {"S": "Foo"}, "maxParticipants": {"N": "50"}}`, true},
		{"plain", `{"title": "Foo", "maxParticipants": 50}`, false},
		{"mixed tag", `{"title": {"X": "Foo"}}`, false},
		{"empty", `{}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTypedRecord(rawRecord(t, tt.src)))
		})
	}
}

func TestDecodeRecord(t *testing.T) {
	record := rawRecord(t, `{
		"title": {"S": "Foo"},
		"maxParticipants": {"N": "50"},
		"fee": {"N": "99.5"},
		"active": {"BOOL": true},
		"meta": {"M": {"city": {"S": "Pune"}}},
		"tags": {"L": [{"S": "a"}, {"N": "2"}]}
	}`)

	got, err := DecodeRecord(record)
	require.NoError(t, err)

	assert.Equal(t, "Foo", got["title"])
	assert.Equal(t, int64(50), got["maxParticipants"])
	assert.Equal(t, 99.5, got["fee"])
	assert.Equal(t, true, got["active"])
	assert.Equal(t, map[string]any{"city": "Pune"}, got["meta"])
	assert.Equal(t, []any{"a", int64(2)}, got["tags"])
}

func TestDecodeRecordBadNumber(t *testing.T) {
	_, err := DecodeRecord(rawRecord(t, `{"fee": {"N": "not-a-number"}}`))
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	typed, err := Normalize(rawRecord(t, `{"title": {"S": "Foo"}, "maxParticipants": {"N": "50"}}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "Foo", "maxParticipants": int64(50)}, typed)

	plain, err := Normalize(rawRecord(t, `{"title": "Foo", "maxParticipants": 50}`))
	require.NoError(t, err)
	assert.Equal(t, "Foo", plain["title"])
	assert.Equal(t, float64(50), plain["maxParticipants"])
}
