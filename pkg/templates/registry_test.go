package templates

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_LoadsEmbeddedTemplates(t *testing.T) {
	registry := Get()

	ids := registry.List()
	assert.Contains(t, ids, "agents/ops_assistant")
	assert.Contains(t, ids, "tools/load_memory")
	assert.Contains(t, ids, "tools/preload_memory")
}

func TestRender_OpsAssistantPrompt(t *testing.T) {
	registry := Get()

	out, err := registry.Render("agents/ops_assistant", map[string]interface{}{
		"AgentName":    "OpsAssistant",
		"AgentType":    "ops_assistant",
		"MaxToolCalls": 15,
		"Tools": []map[string]interface{}{
			{"Name": "db_access", "Description": "Query records"},
			{"Name": "preload_memory", "Description": "Load recent session memory"},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, out, "OpsAssistant")
	assert.Contains(t, out, "db_access")
	assert.Contains(t, out, "preload_memory")
	assert.Contains(t, out, "products")
	assert.Contains(t, out, "suppliers")
	assert.Contains(t, out, "orders")
}

func TestRender_LoadMemoryResults(t *testing.T) {
	registry := Get()

	out, err := registry.Render("tools/load_memory", map[string]interface{}{
		"Query":       "bulk orders",
		"ResultCount": 1,
		"Memories": []map[string]interface{}{
			{"type": "preference", "content": "customer prefers bulk orders", "created_ago": "2 days ago"},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, out, "bulk orders")
	assert.Contains(t, out, "[preference]")
	assert.Contains(t, out, "2 days ago")
}

func TestRender_LoadMemoryEmpty(t *testing.T) {
	registry := Get()

	out, err := registry.Render("tools/load_memory", map[string]interface{}{
		"Query":       "discounts",
		"ResultCount": 0,
		"Memories":    []map[string]interface{}{},
	})
	require.NoError(t, err)

	assert.Contains(t, out, "No stored memories matched")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Get().Render("agents/nonexistent", nil)
	assert.Error(t, err)
}

func TestNewRegistryFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"greetings/hello.tmpl": {Data: []byte("Hello, {{.Name}}!")},
		"notes/readme.txt":     {Data: []byte("not a template")},
	}

	registry, err := NewRegistryFromFS(fsys)
	require.NoError(t, err)

	assert.Equal(t, []string{"greetings/hello"}, registry.List())

	out, err := registry.Render("greetings/hello", map[string]interface{}{"Name": "World"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", out)
}

func TestHelperFuncs(t *testing.T) {
	fsys := fstest.MapFS{
		"x/money.tmpl": {Data: []byte(`{{money .Price}}`)},
	}

	registry, err := NewRegistryFromFS(fsys)
	require.NoError(t, err)

	out, err := registry.Render("x/money", map[string]interface{}{"Price": 1499.5})
	require.NoError(t, err)
	assert.Equal(t, "$1,499.5", out)
}
