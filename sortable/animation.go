package sortable

import (
	"sort"
	"time"
)

// Preset is a named, immutable timing configuration consumed by reorder
// transitions. Selected once per container; never mutated at runtime.
type Preset struct {
	Name      string
	Duration  time.Duration
	Easing    string
	Stiffness float64
	Damping   float64
}

var presets = map[string]Preset{
	"default": {
		Name:      "default",
		Duration:  200 * time.Millisecond,
		Easing:    "ease-out",
		Stiffness: 300,
		Damping:   30,
	},
	"smooth": {
		Name:      "smooth",
		Duration:  350 * time.Millisecond,
		Easing:    "ease-in-out",
		Stiffness: 200,
		Damping:   25,
	},
	"snappy": {
		Name:      "snappy",
		Duration:  120 * time.Millisecond,
		Easing:    "ease-out",
		Stiffness: 500,
		Damping:   35,
	},
	"gentle": {
		Name:      "gentle",
		Duration:  500 * time.Millisecond,
		Easing:    "ease-in-out",
		Stiffness: 120,
		Damping:   20,
	},
}

// PresetByName returns the named preset, falling back to "default" for
// unknown names.
func PresetByName(name string) Preset {
	if p, ok := presets[name]; ok {
		return p
	}
	return presets["default"]
}

// PresetNames lists the available preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
