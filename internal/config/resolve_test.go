package config

import (
	"errors"
	"strings"
	"testing"
)

func TestResolveDefaults(t *testing.T) {
	cfg, err := Resolve(Layer{URL: Ptr("https://example.com")}, Layer{})
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}

	if cfg.Device != Mobile {
		t.Errorf("Device = %q, want %q", cfg.Device, Mobile)
	}
	if cfg.MinScore != 90 {
		t.Errorf("MinScore = %d, want 90", cfg.MinScore)
	}
	if cfg.Retries != 1 {
		t.Errorf("Retries = %d, want 1", cfg.Retries)
	}
	if !cfg.FailOnError {
		t.Error("FailOnError = false, want true")
	}
	want := map[string]float64{"lcp": 2500, "cls": 0.1, "inp": 200, "ttfb": 800, "fcp": 1800}
	for key, limit := range want {
		got := cfg.Thresholds.Get(key)
		if got == nil || *got != limit {
			t.Errorf("threshold %s = %v, want %v", key, got, limit)
		}
	}
}

func TestResolveRequiresTarget(t *testing.T) {
	_, err := Resolve(Layer{}, Layer{Device: Ptr(Desktop)})
	if !errors.Is(err, ErrNoTarget) {
		t.Fatalf("Resolve() error = %v, want ErrNoTarget", err)
	}

	if _, err := Resolve(Layer{}, Layer{Sitemap: Ptr("https://example.com/sitemap.xml")}); err != nil {
		t.Errorf("sitemap alone should satisfy the target requirement, got %v", err)
	}
}

func TestResolveUnknownPreset(t *testing.T) {
	_, err := Resolve(Layer{URL: Ptr("https://example.com"), Preset: Ptr("wordpress")}, Layer{})
	if !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("Resolve() error = %v, want ErrUnknownPreset", err)
	}
	for _, name := range PresetNames() {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not list preset %q", err, name)
		}
	}
}

func TestResolveDevicePrecedence(t *testing.T) {
	// landing-page is a mobile preset, so desktop values prove the upper layers win.
	tests := []struct {
		name      string
		overrides Layer
		file      Layer
		want      Device
	}{
		{
			name:      "default",
			overrides: Layer{},
			file:      Layer{},
			want:      Mobile,
		},
		{
			name:      "preset over default",
			overrides: Layer{Preset: Ptr("landing-page")},
			file:      Layer{},
			want:      Mobile,
		},
		{
			name:      "file over preset",
			overrides: Layer{Preset: Ptr("landing-page")},
			file:      Layer{Device: Ptr(Desktop)},
			want:      Desktop,
		},
		{
			name:      "override over file",
			overrides: Layer{Device: Ptr(Mobile)},
			file:      Layer{Device: Ptr(Desktop)},
			want:      Mobile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.overrides.URL = Ptr("https://example.com")
			cfg, err := Resolve(tt.overrides, tt.file)
			if err != nil {
				t.Fatalf("Resolve() unexpected error: %v", err)
			}
			if cfg.Device != tt.want {
				t.Errorf("Device = %q, want %q", cfg.Device, tt.want)
			}
		})
	}
}

func TestResolveThresholdPrecedence(t *testing.T) {
	overrides := Layer{
		URL:        Ptr("https://example.com"),
		Preset:     Ptr("landing-page"),
		Thresholds: Thresholds{LCP: Ptr(1000.0)},
	}
	file := Layer{
		Thresholds: Thresholds{LCP: Ptr(3000.0), CLS: Ptr(0.2)},
	}

	cfg, err := Resolve(overrides, file)
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}

	tests := []struct {
		key  string
		want float64
		why  string
	}{
		{"lcp", 1000, "override over file"},
		{"cls", 0.2, "file over preset"},
		{"inp", 100, "preset over default"},
		{"ttfb", 500, "preset over default"},
		{"fcp", 1200, "preset over default"},
	}
	for _, tt := range tests {
		got := cfg.Thresholds.Get(tt.key)
		if got == nil || *got != tt.want {
			t.Errorf("%s (%s) = %v, want %v", tt.key, tt.why, got, tt.want)
		}
	}
}

func TestResolveScalarPrecedence(t *testing.T) {
	file := Layer{
		URL:      Ptr("https://file.example"),
		MinScore: Ptr(80),
		Retries:  Ptr(3),
		Report:   Ptr("file-report"),
		MaxURLs:  Ptr(10),
	}

	cfg, err := Resolve(Layer{}, file)
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if cfg.URL != "https://file.example" || cfg.MinScore != 80 || cfg.Retries != 3 || cfg.Report != "file-report" || cfg.MaxURLs != 10 {
		t.Errorf("file values not applied: %+v", cfg)
	}

	overrides := Layer{
		URL:      Ptr("https://cli.example"),
		MinScore: Ptr(95),
		Retries:  Ptr(2),
		Report:   Ptr("cli-report"),
		MaxURLs:  Ptr(5),
	}
	cfg, err = Resolve(overrides, file)
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if cfg.URL != "https://cli.example" || cfg.MinScore != 95 || cfg.Retries != 2 || cfg.Report != "cli-report" || cfg.MaxURLs != 5 {
		t.Errorf("override values not applied: %+v", cfg)
	}
}

func TestResolvePresetFromFile(t *testing.T) {
	cfg, err := Resolve(Layer{URL: Ptr("https://example.com")}, Layer{Preset: Ptr("nextjs")})
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if cfg.Preset != "nextjs" {
		t.Errorf("Preset = %q, want nextjs", cfg.Preset)
	}
	if len(cfg.LighthouseFlags) != 1 || cfg.LighthouseFlags[0] != "--disable-storage-reset" {
		t.Errorf("LighthouseFlags = %v, want [--disable-storage-reset]", cfg.LighthouseFlags)
	}
}

func TestResolveRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		layer Layer
	}{
		{"zero retries", Layer{Retries: Ptr(0)}},
		{"score above 100", Layer{MinScore: Ptr(101)}},
		{"unknown device", Layer{Device: Ptr(Device("tablet"))}},
		{"negative max urls", Layer{MaxURLs: Ptr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.layer.URL = Ptr("https://example.com")
			if _, err := Resolve(Layer{}, tt.layer); !errors.Is(err, ErrInvalid) {
				t.Errorf("Resolve() error = %v, want ErrInvalid", err)
			}
		})
	}
}
