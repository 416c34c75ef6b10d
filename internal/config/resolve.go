package config

const (
	DefaultDevice   = Mobile
	DefaultMinScore = 90
	DefaultRetries  = 1
)

// DefaultThresholds - встроенные пороги: тайминги в мс, CLS без единиц
func DefaultThresholds() Thresholds {
	return Thresholds{
		LCP:  Ptr(2500.0),
		CLS:  Ptr(0.1),
		INP:  Ptr(200.0),
		TTFB: Ptr(800.0),
		FCP:  Ptr(1800.0),
	}
}

func Defaults() Config {
	return Config{
		Device:      DefaultDevice,
		MinScore:    DefaultMinScore,
		Thresholds:  DefaultThresholds(),
		FailOnError: true,
		Retries:     DefaultRetries,
	}
}

// Resolve - слияние по полям: флаги, файл, пресет, значения по умолчанию
func Resolve(overrides, file Layer) (Config, error) {
	def := Defaults()

	var preset Preset
	presetName := valueOr("", overrides.Preset, file.Preset)
	if presetName != "" {
		p, err := LookupPreset(presetName)
		if err != nil {
			return Config{}, err
		}
		preset = p
	}

	var presetDevice *Device
	if preset.Device != "" {
		presetDevice = &preset.Device
	}

	cfg := Config{
		URL:         valueOr("", overrides.URL, file.URL),
		Device:      valueOr(def.Device, overrides.Device, file.Device, presetDevice),
		MinScore:    valueOr(def.MinScore, overrides.MinScore, file.MinScore),
		Thresholds:  def.Thresholds.Over(preset.Thresholds).Over(file.Thresholds).Over(overrides.Thresholds),
		FailOnError: valueOr(def.FailOnError, overrides.FailOnError, file.FailOnError),
		Retries:     valueOr(def.Retries, overrides.Retries, file.Retries),
		Preset:      presetName,
		Sitemap:     valueOr("", overrides.Sitemap, file.Sitemap),
		Report:      valueOr("", overrides.Report, file.Report),
		HTML:        valueOr(false, overrides.HTML, file.HTML),
		MaxURLs:     valueOr(0, overrides.MaxURLs, file.MaxURLs),

		LighthouseFlags: preset.LighthouseFlags,
	}

	if cfg.URL == "" && cfg.Sitemap == "" {
		return Config{}, ErrNoTarget
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
