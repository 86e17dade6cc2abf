package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringArg(t *testing.T) {
	args := map[string]interface{}{
		"name":  "laptop",
		"empty": "",
		"num":   42.0,
	}

	v, ok := StringArg(args, "name")
	assert.True(t, ok)
	assert.Equal(t, "laptop", v)

	_, ok = StringArg(args, "empty")
	assert.False(t, ok, "empty strings count as absent")

	_, ok = StringArg(args, "num")
	assert.False(t, ok)

	_, ok = StringArg(args, "missing")
	assert.False(t, ok)
}

func TestStringArgAny(t *testing.T) {
	args := map[string]interface{}{"message": "hello"}

	v, ok := StringArgAny(args, "body", "message")
	assert.True(t, ok)
	assert.Equal(t, "hello", v)

	_, ok = StringArgAny(args, "subject", "title")
	assert.False(t, ok)
}

func TestMapArgAny(t *testing.T) {
	filter := map[string]interface{}{"price": map[string]interface{}{"$lt": 100.0}}
	args := map[string]interface{}{"filter_query": filter}

	got, ok := MapArgAny(args, "filter_query", "filter")
	assert.True(t, ok)
	assert.Equal(t, filter, got)

	got, ok = MapArgAny(args, "query")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestIntArg(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]interface{}
		key      string
		def      int
		expected int
	}{
		{name: "json number", args: map[string]interface{}{"limit": 25.0}, key: "limit", def: 5, expected: 25},
		{name: "go int", args: map[string]interface{}{"limit": 7}, key: "limit", def: 5, expected: 7},
		{name: "missing uses default", args: map[string]interface{}{}, key: "limit", def: 5, expected: 5},
		{name: "wrong type uses default", args: map[string]interface{}{"limit": "ten"}, key: "limit", def: 5, expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IntArg(tt.args, tt.key, tt.def))
		})
	}
}

func TestFloatArg(t *testing.T) {
	args := map[string]interface{}{"rating": 4.5, "count": 3}

	assert.Equal(t, 4.5, FloatArg(args, "rating", 0))
	assert.Equal(t, 3.0, FloatArg(args, "count", 0))
	assert.Equal(t, 1.5, FloatArg(args, "missing", 1.5))
}
