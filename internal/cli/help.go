package cli

import (
	"fmt"
	"io"
	"strings"

	"psguard/internal/config"

	"github.com/fatih/color"
)

const usage = `
  %s - Lighthouse-based performance guard

  %s
    ps-guard --url https://example.com
    ps-guard --url https://example.com --preset nextjs
    ps-guard --url https://example.com --json
    ps-guard --sitemap https://example.com/sitemap.xml --html

  %s
    --url <url>                URL to audit
    --sitemap <url>            Audit every URL of a sitemap (or discover it from a site root)
    -p, --preset <name>        Use a built-in preset
    --device <mobile|desktop>  Device emulation (default: mobile)
    --retries <n>              Number of attempts per URL (default: 1)
    --min-score <n>            Minimum performance score (default: 90)
    --max-urls <n>             Maximum sitemap URLs to audit (default: 50)
    --json                     Output results as JSON
    --ci                       CI mode (no colors, clean output)
    --html                     Write an HTML report
    --report <dir>             HTML report directory (default: ps-guard-report)
    --config <path>            Use this config file instead of discovery
    --metrics-file <path>      Write Prometheus metrics to a file
    -v, --verbose              Verbose diagnostics on stderr
    -h, --help                 Show this help message

  %s
    %s

  %s
    %s | package.json ("ps-guard" field)

  %s
    LCP   2500ms    Largest Contentful Paint
    CLS   0.1       Cumulative Layout Shift
    INP   200ms     Interaction to Next Paint
    TTFB  800ms     Time to First Byte
    FCP   1800ms    First Contentful Paint

  %s
    0 all checks passed, 1 checks failed, 2 runtime or configuration error

`

// PrintHelp - печатает справку
func PrintHelp(w io.Writer, noColor bool) {
	bold := color.New(color.Bold)
	title := color.New(color.Bold, color.FgCyan)
	if noColor {
		bold.DisableColor()
		title.DisableColor()
	}
	h := bold.SprintFunc()

	fmt.Fprintf(w, usage,
		title.Sprint("ps-guard"),
		h("Usage:"),
		h("Options:"),
		h("Presets:"), strings.Join(config.PresetNames(), ", "),
		h("Config files:"), strings.Join(config.FileNames, " | "),
		h("Thresholds (defaults):"),
		h("Exit codes:"),
	)
}
