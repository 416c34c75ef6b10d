package config

import (
	"errors"
	"fmt"
)

// Device - профиль устройства для эмуляции
type Device string

const (
	Mobile  Device = "mobile"
	Desktop Device = "desktop"
)

func (d Device) Valid() bool {
	return d == Mobile || d == Desktop
}

var (
	// ErrNoTarget - после слияния не осталось ни URL, ни sitemap
	ErrNoTarget = errors.New("url or sitemap is required: use --url <url> or --sitemap <url>")

	ErrUnknownPreset = errors.New("unknown preset")

	// ErrInvalid - значения вне допустимых диапазонов
	ErrInvalid = errors.New("invalid configuration")
)

// Thresholds - пороги метрик; nil отключает проверку метрики
type Thresholds struct {
	LCP  *float64 `json:"lcp,omitempty" mapstructure:"lcp"`
	CLS  *float64 `json:"cls,omitempty" mapstructure:"cls"`
	INP  *float64 `json:"inp,omitempty" mapstructure:"inp"`
	TTFB *float64 `json:"ttfb,omitempty" mapstructure:"ttfb"`
	FCP  *float64 `json:"fcp,omitempty" mapstructure:"fcp"`
}

// Get - порог по ключу метрики: lcp, cls, inp, ttfb, fcp
func (t Thresholds) Get(key string) *float64 {
	switch key {
	case "lcp":
		return t.LCP
	case "cls":
		return t.CLS
	case "inp":
		return t.INP
	case "ttfb":
		return t.TTFB
	case "fcp":
		return t.FCP
	}
	return nil
}

// Over - пороги, заданные в top, перекрывают пороги t
func (t Thresholds) Over(top Thresholds) Thresholds {
	return Thresholds{
		LCP:  firstSet(top.LCP, t.LCP),
		CLS:  firstSet(top.CLS, t.CLS),
		INP:  firstSet(top.INP, t.INP),
		TTFB: firstSet(top.TTFB, t.TTFB),
		FCP:  firstSet(top.FCP, t.FCP),
	}
}

// Config - итоговая конфигурация проверки
type Config struct {
	URL         string     `json:"url"`
	Device      Device     `json:"device"`
	MinScore    int        `json:"minScore"`
	Thresholds  Thresholds `json:"thresholds"`
	FailOnError bool       `json:"failOnError"`
	Retries     int        `json:"retries"`
	Preset      string     `json:"preset,omitempty"`
	Sitemap     string     `json:"sitemap,omitempty"`
	Report      string     `json:"report,omitempty"`
	HTML        bool       `json:"html,omitempty"`
	MaxURLs     int        `json:"maxUrls,omitempty"`

	LighthouseFlags []string `json:"-"`
}

// WithURL - копия конфигурации для другого адреса
func (c Config) WithURL(rawURL string) Config {
	c.URL = rawURL
	return c
}

func (c Config) validate() error {
	if !c.Device.Valid() {
		return fmt.Errorf("%w: device %q must be mobile or desktop", ErrInvalid, c.Device)
	}
	if c.Retries < 1 {
		return fmt.Errorf("%w: retries must be at least 1, got %d", ErrInvalid, c.Retries)
	}
	if c.MinScore < 0 || c.MinScore > 100 {
		return fmt.Errorf("%w: minScore must be between 0 and 100, got %d", ErrInvalid, c.MinScore)
	}
	if c.MaxURLs < 0 {
		return fmt.Errorf("%w: maxUrls must not be negative, got %d", ErrInvalid, c.MaxURLs)
	}
	return nil
}

// Layer - частично заданный источник конфигурации (флаги или файл).
// Незаданные поля равны nil и берутся из следующего слоя
type Layer struct {
	URL         *string    `mapstructure:"url"`
	Device      *Device    `mapstructure:"device"`
	MinScore    *int       `mapstructure:"minScore"`
	Thresholds  Thresholds `mapstructure:"thresholds"`
	FailOnError *bool      `mapstructure:"failOnError"`
	Retries     *int       `mapstructure:"retries"`
	Preset      *string    `mapstructure:"preset"`
	Sitemap     *string    `mapstructure:"sitemap"`
	Report      *string    `mapstructure:"report"`
	HTML        *bool      `mapstructure:"html"`
	MaxURLs     *int       `mapstructure:"maxUrls"`
}

// Ptr - указатель на значение
func Ptr[T any](v T) *T {
	return &v
}

func firstSet[T any](vals ...*T) *T {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func valueOr[T any](def T, vals ...*T) T {
	if v := firstSet(vals...); v != nil {
		return *v
	}
	return def
}
