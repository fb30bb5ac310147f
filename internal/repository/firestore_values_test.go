package repository

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeFirestoreValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want map[string]any
	}{
		{"null", nil, map[string]any{"nullValue": nil}},
		{"string", "x", map[string]any{"stringValue": "x"}},
		{"bool", true, map[string]any{"booleanValue": true}},
		{"int", 7, map[string]any{"integerValue": "7"}},
		{"double", 2.5, map[string]any{"doubleValue": 2.5}},
		{"json integer", json.Number("12"), map[string]any{"integerValue": "12"}},
		{"string slice", []string{"a"}, map[string]any{"arrayValue": map[string]any{"values": []any{map[string]any{"stringValue": "a"}}}}},
		{"map", map[string]any{"k": "v"}, map[string]any{"mapValue": map[string]any{"fields": map[string]any{"k": map[string]any{"stringValue": "v"}}}}},
		{"struct", struct {
			URL string `json:"url"`
		}{"u"}, map[string]any{"mapValue": map[string]any{"fields": map[string]any{"url": map[string]any{"stringValue": "u"}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, encodeFirestoreValue(tt.in))
		})
	}
}

func TestDecodeFirestoreValue(t *testing.T) {
	var wire map[string]any
	err := json.Unmarshal([]byte(`{
		"price": {"integerValue": "100"},
		"ratio": {"doubleValue": 0.5},
		"nan": {"doubleValue": "NaN"},
		"name": {"stringValue": "GPU"},
		"parentId": {"nullValue": null},
		"images": {"arrayValue": {}},
		"tags": {"arrayValue": {"values": [{"stringValue": "a"}, {"booleanValue": false}]}},
		"when": {"timestampValue": "2024-01-01T00:00:00Z"}
	}`), &wire)
	assert.NoError(t, err)

	got := decodeFirestoreFields(wire)

	assert.Equal(t, int64(100), got["price"])
	assert.Equal(t, 0.5, got["ratio"])
	assert.NotNil(t, got["nan"])
	assert.Equal(t, "GPU", got["name"])
	assert.Nil(t, got["parentId"])
	assert.Equal(t, []any{}, got["images"])
	assert.Equal(t, []any{"a", false}, got["tags"])
	assert.Equal(t, "2024-01-01T00:00:00Z", got["when"])
}
