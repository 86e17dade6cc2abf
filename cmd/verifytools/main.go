// Command verifytools assembles the tool registry with stub dependencies
// and checks that every catalogued tool registers, with the memory tools
// present. Exits non-zero on any gap so CI can gate on it.
package main

import (
	"fmt"
	"os"

	"atlas/internal/tools"
	"atlas/internal/tools/shared"
	"atlas/pkg/logger"
)

func main() {
	if err := logger.Init("warn", "development"); err != nil {
		panic("failed to init logger: " + err.Error())
	}

	registry := tools.NewRegistry()
	if err := tools.RegisterAll(registry, shared.Deps{Log: logger.Get()}); err != nil {
		fmt.Fprintf(os.Stderr, "FAILURE: tool registration: %v\n", err)
		os.Exit(1)
	}

	registered := registry.List()
	fmt.Printf("Registered tools: %v\n", registered)

	failed := false
	for _, def := range tools.Definitions() {
		if _, ok := registry.Get(def.Name); !ok {
			fmt.Printf("FAILURE: %s is MISSING from the registry.\n", def.Name)
			failed = true
		}
	}

	if _, ok := registry.Get("preload_memory"); ok {
		fmt.Println("SUCCESS: preload_memory is in the tools list.")
	} else {
		fmt.Println("FAILURE: preload_memory is MISSING from the tools list.")
		failed = true
	}

	if failed {
		os.Exit(1)
	}

	fmt.Printf("SUCCESS: all %d tools registered.\n", registry.Len())
}
