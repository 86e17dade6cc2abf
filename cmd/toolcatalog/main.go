// Command toolcatalog prints the tool catalog grouped by category.
package main

import (
	"fmt"
	"sort"

	"atlas/internal/tools"
)

func main() {
	byCategory := make(map[string][]tools.Definition)
	for _, def := range tools.Definitions() {
		byCategory[def.Category] = append(byCategory[def.Category], def)
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		fmt.Printf("%s:\n", category)

		defs := byCategory[category]
		sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })

		for _, def := range defs {
			fmt.Printf("  %-16s %s\n", def.Name, def.Description)
		}
		fmt.Println()
	}
}
