package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitions_CoverAllTools(t *testing.T) {
	defs := Definitions()
	require.Len(t, defs, 7)

	byName := make(map[string]Definition, len(defs))
	for _, def := range defs {
		assert.NotEmpty(t, def.Description, "definition %s must describe itself", def.Name)
		assert.NotEmpty(t, def.Category)
		byName[def.Name] = def
	}

	for _, name := range []string{
		"db_access", "db_insert", "db_update", "db_delete",
		"send_email", "load_memory", "preload_memory",
	} {
		_, ok := byName[name]
		assert.True(t, ok, "missing definition for %s", name)
	}

	assert.Equal(t, "records", byName["db_access"].Category)
	assert.Equal(t, "communication", byName["send_email"].Category)
	assert.Equal(t, "memory", byName["load_memory"].Category)
}

func TestDefinitionByName(t *testing.T) {
	def, ok := DefinitionByName("db_insert")
	require.True(t, ok)
	assert.Equal(t, "db_insert", def.Name)

	_, ok = DefinitionByName("unknown_tool")
	assert.False(t, ok)
}
