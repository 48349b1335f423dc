package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]ResourceDefinition)
	registryMu sync.RWMutex
)

// Register adds a resource definition to the registry.
// Panics if a resource with the same key is already registered.
func Register(def ResourceDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("resource already registered: %s", def.Info.Key))
	}

	if def.Info.Table == "" {
		def.Info.Table = def.Info.Key
	}
	if def.Info.Singular == "" {
		def.Info.Singular = def.Info.Label
	}
	for i, f := range def.Fields {
		if f.Label == "" {
			def.Fields[i].Label = f.Name
		}
	}

	registry[def.Info.Key] = def
}

// Get returns a resource definition by key.
// Returns false if not found.
func Get(key string) (ResourceDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// All returns all registered resource definitions.
// Sorted by group, then order, then key.
func All() []ResourceDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]ResourceDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Info.Group != result[j].Info.Group {
			return result[i].Info.Group < result[j].Info.Group
		}
		return lessInGroup(result[i], result[j])
	})

	return result
}

// ByGroup returns all resource definitions for a specific group.
func ByGroup(group string) []ResourceDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var result []ResourceDefinition
	for _, def := range registry {
		if def.Info.Group == group {
			result = append(result, def)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return lessInGroup(result[i], result[j])
	})

	return result
}

func lessInGroup(a, b ResourceDefinition) bool {
	if a.Info.Order != b.Info.Order {
		return a.Info.Order < b.Info.Order
	}
	return a.Info.Key < b.Info.Key
}

// Groups returns all unique group names.
// Sorted alphabetically.
func Groups() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	seen := make(map[string]bool)
	for _, def := range registry {
		seen[def.Info.Group] = true
	}

	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}

	sort.Strings(groups)
	return groups
}

// Count returns the number of registered resources.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered resources.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]ResourceDefinition)
}
