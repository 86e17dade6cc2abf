package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas/pkg/errors"
)

var testColumns = map[string]string{
	"product_id":   "product_id",
	"product_name": "name",
	"price":        "price",
	"category":     "category",
}

func TestCompileFilter_Empty(t *testing.T) {
	where, args, err := compileFilter(nil, testColumns, 1)
	require.NoError(t, err)

	assert.Equal(t, "TRUE", where)
	assert.Empty(t, args)
}

func TestCompileFilter_DirectMatch(t *testing.T) {
	where, args, err := compileFilter(map[string]interface{}{
		"product_id": "P001",
	}, testColumns, 1)
	require.NoError(t, err)

	assert.Equal(t, "product_id = $1", where)
	assert.Equal(t, []interface{}{"P001"}, args)
}

func TestCompileFilter_ColumnMapping(t *testing.T) {
	where, args, err := compileFilter(map[string]interface{}{
		"product_name": "Laptop",
	}, testColumns, 1)
	require.NoError(t, err)

	assert.Equal(t, "name = $1", where)
	assert.Equal(t, []interface{}{"Laptop"}, args)
}

func TestCompileFilter_Operators(t *testing.T) {
	tests := []struct {
		name     string
		filter   map[string]interface{}
		expected string
		args     []interface{}
	}{
		{
			name:     "less than",
			filter:   map[string]interface{}{"price": map[string]interface{}{"$lt": 2000.0}},
			expected: "price < $1",
			args:     []interface{}{2000.0},
		},
		{
			name:     "greater or equal",
			filter:   map[string]interface{}{"price": map[string]interface{}{"$gte": 100.0}},
			expected: "price >= $1",
			args:     []interface{}{100.0},
		},
		{
			name:     "not equal",
			filter:   map[string]interface{}{"category": map[string]interface{}{"$ne": "Office"}},
			expected: "category <> $1",
			args:     []interface{}{"Office"},
		},
		{
			name:     "contains becomes ILIKE",
			filter:   map[string]interface{}{"product_name": map[string]interface{}{"$contains": "mouse"}},
			expected: "name ILIKE $1",
			args:     []interface{}{"%mouse%"},
		},
		{
			name:     "regex",
			filter:   map[string]interface{}{"product_name": map[string]interface{}{"$regex": "^Pro.*15$"}},
			expected: "name ~* $1",
			args:     []interface{}{"^Pro.*15$"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args, err := compileFilter(tt.filter, testColumns, 1)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, where)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestCompileFilter_MultipleFieldsSortedConjunction(t *testing.T) {
	where, args, err := compileFilter(map[string]interface{}{
		"price":    map[string]interface{}{"$lt": 500.0},
		"category": "Electronics",
	}, testColumns, 1)
	require.NoError(t, err)

	// Fields compile in sorted order: category before price
	assert.Equal(t, "category = $1 AND price < $2", where)
	assert.Equal(t, []interface{}{"Electronics", 500.0}, args)
}

func TestCompileFilter_StartArgOffset(t *testing.T) {
	where, _, err := compileFilter(map[string]interface{}{
		"product_id": "P001",
	}, testColumns, 3)
	require.NoError(t, err)

	assert.Equal(t, "product_id = $3", where)
}

func TestCompileFilter_RejectsUnknownField(t *testing.T) {
	_, _, err := compileFilter(map[string]interface{}{
		"password": "x",
	}, testColumns, 1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestCompileFilter_RejectsUnknownOperator(t *testing.T) {
	_, _, err := compileFilter(map[string]interface{}{
		"price": map[string]interface{}{"$in": []interface{}{1, 2}},
	}, testColumns, 1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestCompileFilter_RejectsNonStringContains(t *testing.T) {
	_, _, err := compileFilter(map[string]interface{}{
		"product_name": map[string]interface{}{"$contains": 42.0},
	}, testColumns, 1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestCompileChanges(t *testing.T) {
	set, args, err := compileChanges(map[string]interface{}{
		"price":        1599.0,
		"product_name": "ProBook 16",
	}, testColumns, 1)
	require.NoError(t, err)

	assert.Equal(t, "price = $1, name = $2", set)
	assert.Equal(t, []interface{}{1599.0, "ProBook 16"}, args)
}

func TestCompileChanges_Empty(t *testing.T) {
	_, _, err := compileChanges(map[string]interface{}{}, testColumns, 1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestCompileChanges_RejectsUnknownField(t *testing.T) {
	_, _, err := compileChanges(map[string]interface{}{
		"internal_id": "x",
	}, testColumns, 1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}
