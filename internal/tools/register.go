package tools

import (
	"atlas/internal/tools/email"
	toolmemory "atlas/internal/tools/memory"
	"atlas/internal/tools/records"
	"atlas/internal/tools/shared"
	"atlas/pkg/errors"

	"google.golang.org/adk/tool"
)

// RegisterAll builds every tool and registers it in the registry.
// Construction and registration errors abort assembly; a half-wired
// agent is worse than no agent.
func RegisterAll(registry *Registry, deps shared.Deps) error {
	log := deps.Log.With("component", "tool_registration")

	builders := map[string]func(shared.Deps) (tool.Tool, error){
		"db_access": records.NewDBAccessTool,
		"db_insert": records.NewDBInsertTool,
		"db_update": records.NewDBUpdateTool,
		"db_delete": records.NewDBDeleteTool,

		"send_email": email.NewSendEmailTool,

		"load_memory":    toolmemory.NewLoadMemoryTool,
		"preload_memory": toolmemory.NewPreloadMemoryTool,
	}

	for _, def := range Definitions() {
		build, ok := builders[def.Name]
		if !ok {
			return errors.Wrapf(errors.ErrInternal, "no builder for tool %s", def.Name)
		}

		t, err := build(deps)
		if err != nil {
			return errors.Wrapf(err, "build tool %s", def.Name)
		}

		if err := registry.Register(def.Name, t); err != nil {
			return err
		}
	}

	log.Infof("Tool registration complete: %d tools available", registry.Len())
	return nil
}
