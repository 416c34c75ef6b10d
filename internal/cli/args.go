package cli

import (
	"io"
	"strconv"

	"psguard/internal/config"

	"github.com/spf13/pflag"
)

// Коды завершения
const (
	ExitOK         = 0
	ExitValidation = 1
	ExitFatal      = 2
)

// ExitError - ошибка с кодом завершения процесса
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Args - разобранные аргументы командной строки
type Args struct {
	URL         string
	Sitemap     string
	Preset      string
	Device      string
	Retries     string
	MinScore    int
	MaxURLs     int
	Report      string
	HTML        bool
	JSON        bool
	CI          bool
	Help        bool
	Verbose     bool
	ConfigPath  string
	MetricsFile string

	changed func(name string) bool
}

// Parse - разбирает аргументы; неизвестный флаг или неверное значение дают ExitError с кодом 2
func Parse(argv []string) (*Args, error) {
	a := &Args{}
	fs := pflag.NewFlagSet("ps-guard", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.StringVar(&a.URL, "url", "", "URL to audit")
	fs.StringVar(&a.Sitemap, "sitemap", "", "sitemap.xml (or site root) to audit every page of")
	fs.StringVarP(&a.Preset, "preset", "p", "", "use a built-in preset")
	fs.StringVar(&a.Device, "device", "", "device emulation: mobile or desktop")
	fs.StringVar(&a.Retries, "retries", "", "number of audit attempts per URL")
	fs.IntVar(&a.MinScore, "min-score", 0, "minimum performance score (0-100)")
	fs.IntVar(&a.MaxURLs, "max-urls", 0, "maximum number of sitemap URLs to audit")
	fs.StringVar(&a.Report, "report", "", "directory for the HTML report")
	fs.BoolVar(&a.HTML, "html", false, "write an HTML report")
	fs.BoolVar(&a.JSON, "json", false, "print results as JSON")
	fs.BoolVar(&a.CI, "ci", false, "CI mode: no colors")
	fs.StringVar(&a.ConfigPath, "config", "", "explicit config file")
	fs.StringVar(&a.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	fs.BoolVarP(&a.Verbose, "verbose", "v", false, "verbose diagnostics on stderr")
	fs.BoolVarP(&a.Help, "help", "h", false, "show this help message")

	if err := fs.Parse(argv); err != nil {
		return nil, &ExitError{Code: ExitFatal, Message: err.Error()}
	}
	a.changed = fs.Changed
	return a, nil
}

// Layer - слой переопределений из флагов: попадают только явно заданные флаги.
// Неизвестное устройство и неположительное число попыток игнорируются
func (a *Args) Layer() config.Layer {
	var l config.Layer
	if a.set("url") {
		l.URL = config.Ptr(a.URL)
	}
	if a.set("sitemap") {
		l.Sitemap = config.Ptr(a.Sitemap)
	}
	if a.set("preset") {
		l.Preset = config.Ptr(a.Preset)
	}
	if d := config.Device(a.Device); d.Valid() {
		l.Device = &d
	}
	if n, err := strconv.Atoi(a.Retries); err == nil && n > 0 {
		l.Retries = config.Ptr(n)
	}
	if a.set("min-score") {
		l.MinScore = config.Ptr(a.MinScore)
	}
	if a.set("max-urls") {
		l.MaxURLs = config.Ptr(a.MaxURLs)
	}
	if a.set("report") {
		l.Report = config.Ptr(a.Report)
	}
	if a.set("html") {
		l.HTML = config.Ptr(a.HTML)
	}
	return l
}

func (a *Args) set(name string) bool {
	return a.changed != nil && a.changed(name)
}
