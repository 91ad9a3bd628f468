package report

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry = make(map[string]Report)
	mu       sync.RWMutex
)

// Register adds a report to the registry.
func Register(r Report) {
	mu.Lock()
	defer mu.Unlock()
	registry[r.Name] = r
}

// Get retrieves a report by its name or by the name of the view
// backing it.
func Get(name string) (Report, error) {
	mu.RLock()
	defer mu.RUnlock()

	if r, ok := registry[name]; ok {
		return r, nil
	}
	for _, r := range registry {
		if r.View == name {
			return r, nil
		}
	}
	return Report{}, fmt.Errorf("unknown report: %s", name)
}

// List returns all registered report names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered reports in name order.
func All() []Report {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	reports := make([]Report, 0, len(names))
	for _, name := range names {
		reports = append(reports, registry[name])
	}
	return reports
}
