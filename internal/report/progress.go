package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/cheggaaa/pb/v3"
)

// LinePrinter - построчный прогресс пакетной проверки
type LinePrinter struct {
	w    io.Writer
	opts Options
}

// NewLinePrinter - создает принтер прогресса
func NewLinePrinter(w io.Writer, opts Options) *LinePrinter {
	return &LinePrinter{w: w, opts: opts}
}

func (lp *LinePrinter) ScanStart(total int) {
	p := newPalette(lp.opts)
	fmt.Fprintln(lp.w)
	fmt.Fprintln(lp.w, p.boldCyan(fmt.Sprintf("Scanning %d URLs from sitemap...", total)))
	fmt.Fprintln(lp.w)
}

func (lp *LinePrinter) URLDone(index, total int, res *AuditResult) {
	p := newPalette(lp.opts)
	fmt.Fprintf(lp.w, "[%d/%d] %s %s  %s\n",
		index, total, statusIcon(p, res.Passed), colored(p, res.Passed, strconv.Itoa(res.Score)), res.URL)
}

func (lp *LinePrinter) URLFailed(index, total int, url string, err error) {
	p := newPalette(lp.opts)
	fmt.Fprintf(lp.w, "[%d/%d] %s %s  %s\n", index, total, p.red("✖"), p.red("ERR"), url)
	fmt.Fprintf(lp.w, "       %s\n", p.dim(err.Error()))
}

// ScanDone - итог печатает SiteReport.Print
func (lp *LinePrinter) ScanDone(*SiteReport) {}

// BarObserver - полоса прогресса для режима --json в терминале
type BarObserver struct {
	w   io.Writer
	bar *pb.ProgressBar
}

// NewBarObserver - полоса рисуется в w (обычно stderr)
func NewBarObserver(w io.Writer) *BarObserver {
	return &BarObserver{w: w}
}

func (b *BarObserver) ScanStart(total int) {
	b.bar = pb.Simple.New(total)
	b.bar.SetWriter(b.w)
	b.bar.Start()
}

func (b *BarObserver) URLDone(int, int, *AuditResult) { b.increment() }

func (b *BarObserver) URLFailed(int, int, string, error) { b.increment() }

func (b *BarObserver) ScanDone(*SiteReport) {
	if b.bar != nil {
		b.bar.Finish()
	}
}

func (b *BarObserver) increment() {
	if b.bar != nil {
		b.bar.Increment()
	}
}

// NopObserver - молчаливый наблюдатель
type NopObserver struct{}

func (NopObserver) ScanStart(int)                     {}
func (NopObserver) URLDone(int, int, *AuditResult)    {}
func (NopObserver) URLFailed(int, int, string, error) {}
func (NopObserver) ScanDone(*SiteReport)              {}
