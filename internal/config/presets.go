package config

import (
	"fmt"
	"strings"
)

// Preset - именованный набор устройства и порогов
type Preset struct {
	Device     Device
	Thresholds Thresholds
	// дополнительные флаги Lighthouse CLI
	LighthouseFlags []string
}

var presetOrder = []string{"nextjs", "landing-page", "marketing-site"}

var presets = map[string]Preset{
	"nextjs": {
		Device:          Mobile,
		Thresholds:      DefaultThresholds(),
		LighthouseFlags: []string{"--disable-storage-reset"},
	},
	"landing-page": {
		Device: Mobile,
		Thresholds: Thresholds{
			LCP:  Ptr(1800.0),
			CLS:  Ptr(0.05),
			INP:  Ptr(100.0),
			TTFB: Ptr(500.0),
			FCP:  Ptr(1200.0),
		},
	},
	"marketing-site": {
		Device:     Mobile,
		Thresholds: DefaultThresholds(),
	},
}

// PresetNames - имена пресетов в порядке вывода
func PresetNames() []string {
	return append([]string(nil), presetOrder...)
}

// LookupPreset - пресет по имени
func LookupPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w %q. Available: %s", ErrUnknownPreset, name, strings.Join(presetOrder, ", "))
	}
	p.LighthouseFlags = append([]string(nil), p.LighthouseFlags...)
	return p, nil
}
