package tools

// Definition describes a tool's metadata for registration and documentation.
type Definition struct {
	Name        string
	Description string
	Category    string
}

var toolDefinitions = []Definition{
	{Name: "db_access", Description: "Query records from a collection using an optional filter", Category: "records"},
	{Name: "db_insert", Description: "Insert a new record into a collection", Category: "records"},
	{Name: "db_update", Description: "Update records in a collection matching a filter", Category: "records"},
	{Name: "db_delete", Description: "Delete records from a collection matching a filter", Category: "records"},

	{Name: "send_email", Description: "Send a plain-text email to a recipient", Category: "communication"},

	{Name: "load_memory", Description: "Search past conversation memory for relevant context", Category: "memory"},
	{Name: "preload_memory", Description: "Load recent session memory before answering", Category: "memory"},
}

// Definitions exposes a copy of all tool definitions.
func Definitions() []Definition {
	defs := make([]Definition, len(toolDefinitions))
	copy(defs, toolDefinitions)
	return defs
}

// DefinitionByName returns the definition for a tool name, if known.
func DefinitionByName(name string) (Definition, bool) {
	for _, def := range toolDefinitions {
		if def.Name == name {
			return def, true
		}
	}
	return Definition{}, false
}
