package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// ToolName - заголовок текстовых отчетов
const ToolName = "ps-guard"

// Options - параметры вывода. NoColor выключает ANSI-коды (режим --ci)
type Options struct {
	NoColor bool
}

type palette struct {
	green, red, yellow, cyan, dim func(a ...interface{}) string
	boldGreen, boldRed, boldCyan  func(a ...interface{}) string
}

func newPalette(opts Options) palette {
	mk := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if opts.NoColor {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		green:     mk(color.FgGreen),
		red:       mk(color.FgRed),
		yellow:    mk(color.FgYellow),
		cyan:      mk(color.FgCyan),
		dim:       mk(color.Faint),
		boldGreen: mk(color.Bold, color.FgGreen),
		boldRed:   mk(color.Bold, color.FgRed),
		boldCyan:  mk(color.Bold, color.FgCyan),
	}
}

// Print для AuditResult (один URL)
func (r *AuditResult) Print(w io.Writer, opts Options) {
	p := newPalette(opts)

	fmt.Fprintln(w)
	fmt.Fprintln(w, p.boldCyan(ToolName))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  URL:    %s\n", p.cyan(r.URL))
	fmt.Fprintf(w, "  Device: %s\n", p.cyan(string(r.Device)))
	fmt.Fprintln(w)

	scoreOK := r.Score >= r.MinScore
	fmt.Fprintf(w, "  %s Performance Score: %s %s\n",
		statusIcon(p, scoreOK), colored(p, scoreOK, strconv.Itoa(r.Score)), p.dim(fmt.Sprintf("(min: %d)", r.MinScore)))
	if r.Error != "" {
		fmt.Fprintf(w, "    %s %s\n", p.red("→"), p.dim(r.Error))
	}
	fmt.Fprintln(w)

	for _, m := range r.Metrics {
		padding := strings.Repeat(" ", max(0, 6-len(m.Name)))
		fmt.Fprintf(w, "  %s %s%s %s %s\n",
			statusIcon(p, m.Passed), m.Name, padding,
			colored(p, m.Passed, formatNumber(m.Value)+m.Unit),
			p.dim(fmt.Sprintf("(max: %s%s)", formatNumber(m.Limit), m.Unit)))

		if !m.Passed {
			for _, hint := range Hints(m.Name) {
				fmt.Fprintf(w, "    %s %s\n", p.yellow("→"), p.dim(hint))
			}
		}
	}

	fmt.Fprintln(w)
	if r.Passed {
		fmt.Fprintf(w, "  %s\n", p.boldGreen("✔ All checks passed"))
	} else {
		fmt.Fprintf(w, "  %s\n", p.boldRed(fmt.Sprintf("✖ %d of %d checks failed", r.FailedChecks(), r.TotalChecks())))
	}
	fmt.Fprintln(w)
}

// Print для SiteReport (набор URL)
func (sr *SiteReport) Print(w io.Writer, opts Options) {
	for _, res := range sr.Results {
		res.Print(w, opts)
	}
	sr.PrintSummary(w, opts)
}

// PrintSummary - итоговая строка пакетной проверки
func (sr *SiteReport) PrintSummary(w io.Writer, opts Options) {
	p := newPalette(opts)

	fmt.Fprintln(w)
	if sr.FailedURLs == 0 {
		fmt.Fprintln(w, p.boldGreen(fmt.Sprintf("✔ All %d URLs passed (avg score: %d)", sr.TotalURLs, sr.AverageScore)))
	} else {
		fmt.Fprintln(w, p.boldRed(fmt.Sprintf("✖ %d of %d URLs failed (avg score: %d)", sr.FailedURLs, sr.TotalURLs, sr.AverageScore)))
	}
	fmt.Fprintln(w)
}

// PrintError - фатальное сообщение в поток ошибок
func PrintError(w io.Writer, opts Options, message string) {
	p := newPalette(opts)
	fmt.Fprintf(w, "\n  %s\n\n", p.red("✖ "+message))
}

func statusIcon(p palette, ok bool) string {
	if ok {
		return p.green("✔")
	}
	return p.red("✖")
}

func colored(p palette, ok bool, s string) string {
	if ok {
		return p.green(s)
	}
	return p.red(s)
}

// formatNumber - печатает число без лишних нулей: 2500, 0.1, 0.046
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
