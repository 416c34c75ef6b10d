package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"psguard/internal/config"

	"github.com/PuerkitoBio/goquery"
)

var fixedNow = time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

func passingResult(url string, score int) *AuditResult {
	return &AuditResult{
		Passed:   true,
		Score:    score,
		MinScore: 90,
		Metrics: []MetricResult{
			{Name: "LCP", Value: 2100, Limit: 2500, Passed: true, Unit: "ms"},
			{Name: "CLS", Value: 0.05, Limit: 0.1, Passed: true, Unit: ""},
		},
		URL:    url,
		Device: config.Mobile,
	}
}

func failingResult(url string, score int) *AuditResult {
	return &AuditResult{
		Passed:   false,
		Score:    score,
		MinScore: 90,
		Metrics: []MetricResult{
			{Name: "LCP", Value: 4000, Limit: 2500, Passed: false, Unit: "ms"},
			{Name: "TTFB", Value: 300, Limit: 800, Passed: true, Unit: "ms"},
		},
		URL:    url,
		Device: config.Mobile,
	}
}

func TestNewSiteReport(t *testing.T) {
	tests := []struct {
		name        string
		results     []*AuditResult
		wantPassed  bool
		wantPassedN int
		wantFailedN int
		wantAvg     int
		wantWorst   int
	}{
		{
			name:        "empty",
			results:     nil,
			wantPassed:  true,
			wantPassedN: 0,
			wantFailedN: 0,
			wantAvg:     0,
			wantWorst:   0,
		},
		{
			name:        "all passing",
			results:     []*AuditResult{passingResult("https://a.example", 95), passingResult("https://b.example", 92)},
			wantPassed:  true,
			wantPassedN: 2,
			wantFailedN: 0,
			wantAvg:     94,
			wantWorst:   92,
		},
		{
			name: "one failure",
			results: []*AuditResult{
				passingResult("https://a.example", 96),
				NewFailedResult("https://b.example", config.Defaults(), errors.New("boom")),
				passingResult("https://c.example", 91),
			},
			wantPassed:  false,
			wantPassedN: 2,
			wantFailedN: 1,
			wantAvg:     62,
			wantWorst:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sr := NewSiteReport(tt.results, config.Mobile, fixedNow)
			if sr.Passed != tt.wantPassed {
				t.Errorf("Passed = %v, want %v", sr.Passed, tt.wantPassed)
			}
			if sr.PassedURLs != tt.wantPassedN || sr.FailedURLs != tt.wantFailedN {
				t.Errorf("passed/failed = %d/%d, want %d/%d", sr.PassedURLs, sr.FailedURLs, tt.wantPassedN, tt.wantFailedN)
			}
			if sr.TotalURLs != sr.PassedURLs+sr.FailedURLs {
				t.Errorf("TotalURLs = %d, want %d", sr.TotalURLs, sr.PassedURLs+sr.FailedURLs)
			}
			if sr.AverageScore != tt.wantAvg {
				t.Errorf("AverageScore = %d, want %d", sr.AverageScore, tt.wantAvg)
			}
			if sr.WorstScore != tt.wantWorst {
				t.Errorf("WorstScore = %d, want %d", sr.WorstScore, tt.wantWorst)
			}
			if sr.Timestamp != "2026-03-01T12:30:00.000Z" {
				t.Errorf("Timestamp = %q", sr.Timestamp)
			}
			if sr.RunID == "" {
				t.Error("RunID is empty")
			}
		})
	}
}

func TestWrap(t *testing.T) {
	sr := Wrap(failingResult("https://a.example", 70), fixedNow)
	if sr.TotalURLs != 1 || sr.FailedURLs != 1 || sr.PassedURLs != 0 || sr.Passed {
		t.Errorf("unexpected wrap %+v", sr)
	}
	if sr.AverageScore != 70 || sr.WorstScore != 70 {
		t.Errorf("scores = %d/%d, want 70/70", sr.AverageScore, sr.WorstScore)
	}
}

func TestNewFailedResult(t *testing.T) {
	cfg := config.Defaults()
	cfg.Device = config.Desktop

	res := NewFailedResult("https://a.example", cfg, errors.New("chrome crashed"))
	if res.Passed || res.Score != 0 || res.MinScore != 90 || res.Device != config.Desktop {
		t.Errorf("unexpected failed result %+v", res)
	}
	if res.Metrics == nil || len(res.Metrics) != 0 {
		t.Errorf("Metrics = %v, want empty non-nil slice", res.Metrics)
	}
	if res.Error != "chrome crashed" {
		t.Errorf("Error = %q", res.Error)
	}
}

func TestAuditResultPrint(t *testing.T) {
	var buf bytes.Buffer
	failingResult("https://a.example", 85).Print(&buf, Options{NoColor: true})
	out := buf.String()

	wantLines := []string{
		"ps-guard",
		"  URL:    https://a.example",
		"  Device: mobile",
		"  ✖ Performance Score: 85 (min: 90)",
		"  ✖ LCP    4000ms (max: 2500ms)",
		"    → Optimize or compress the largest image/video on the page",
		"  ✔ TTFB   300ms (max: 800ms)",
		"  ✖ 2 of 3 checks failed",
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("output missing line %q:\n%s", line, out)
		}
	}
	if strings.Contains(out, "Use a CDN") {
		t.Error("hints printed for a passing metric")
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("NoColor output contains ANSI escapes")
	}
}

func TestAuditResultPrintPassed(t *testing.T) {
	var buf bytes.Buffer
	passingResult("https://a.example", 97).Print(&buf, Options{NoColor: true})
	out := buf.String()

	for _, line := range []string{
		"  ✔ Performance Score: 97 (min: 90)",
		"  ✔ CLS    0.05 (max: 0.1)",
		"  ✔ All checks passed",
	} {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("output missing line %q:\n%s", line, out)
		}
	}
	if strings.Contains(out, "→") {
		t.Error("passing result should not print hints")
	}
}

func TestSiteReportPrintSummary(t *testing.T) {
	tests := []struct {
		name    string
		results []*AuditResult
		want    string
	}{
		{
			name:    "all passed",
			results: []*AuditResult{passingResult("https://a.example", 95), passingResult("https://b.example", 93)},
			want:    "✔ All 2 URLs passed (avg score: 94)",
		},
		{
			name:    "some failed",
			results: []*AuditResult{passingResult("https://a.example", 95), failingResult("https://b.example", 60)},
			want:    "✖ 1 of 2 URLs failed (avg score: 78)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewSiteReport(tt.results, config.Mobile, fixedNow).Print(&buf, Options{NoColor: true})
			out := buf.String()
			if !strings.Contains(out, tt.want+"\n") {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
			if strings.Count(out, "Performance Score") != len(tt.results) {
				t.Errorf("expected one block per result:\n%s", out)
			}
		})
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, Options{NoColor: true}, "unknown preset")
	if buf.String() != "\n  ✖ unknown preset\n\n" {
		t.Errorf("PrintError() = %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	sr := NewSiteReport([]*AuditResult{
		passingResult("https://a.example/?q=1&r=<2>", 95),
		NewFailedResult("https://b.example", config.Defaults(), errors.New("timeout")),
	}, config.Mobile, fixedNow)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, sr); err != nil {
		t.Fatalf("WriteJSON() unexpected error: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"passed", "totalUrls", "passedUrls", "failedUrls", "averageScore", "worstScore", "results", "device", "timestamp", "runId"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("JSON missing key %q", key)
		}
	}
	if !strings.Contains(buf.String(), "q=1&r=<2>") {
		t.Error("URL should not be HTML-escaped in JSON output")
	}

	var back SiteReport
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if back.TotalURLs != 2 || back.Results[0].Metrics[1].Value != 0.05 || back.Results[1].Error != "timeout" {
		t.Errorf("round trip mismatch: %+v", back)
	}
	if back.Results[1].Metrics == nil {
		t.Error("failed result metrics should encode as []")
	}
}

func TestHints(t *testing.T) {
	for _, name := range []string{"LCP", "CLS", "INP", "TTFB", "FCP"} {
		if got := len(Hints(name)); got != 4 {
			t.Errorf("Hints(%s) returned %d hints, want 4", name, got)
		}
	}
	if got := Hints("SI"); len(got) != 0 {
		t.Errorf("Hints(SI) = %v, want none", got)
	}
}

func TestGenerateHTML(t *testing.T) {
	sr := NewSiteReport([]*AuditResult{
		passingResult("https://a.example/", 95),
		failingResult(`https://b.example/<script>alert("x")</script>`, 40),
	}, config.Mobile, fixedNow)

	html, err := GenerateHTML(sr)
	if err != nil {
		t.Fatalf("GenerateHTML() unexpected error: %v", err)
	}
	if strings.Contains(html, `<script>alert("x")</script>`) {
		t.Fatal("URL was not escaped")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse html: %v", err)
	}

	if got := strings.TrimSpace(doc.Find("#verdict").Text()); got != "FAILED" {
		t.Errorf("verdict = %q, want FAILED", got)
	}
	if got := doc.Find("#card-avg .card-value").Text(); got != "68" {
		t.Errorf("avg card = %q, want 68", got)
	}
	if got := doc.Find("#card-worst .card-value").Text(); got != "40" {
		t.Errorf("worst card = %q, want 40", got)
	}
	if got := doc.Find("#card-passed .card-value").Text(); got != "1/2" {
		t.Errorf("passed card = %q, want 1/2", got)
	}
	if got := doc.Find("#overview tbody tr").Length(); got != 2 {
		t.Errorf("overview rows = %d, want 2", got)
	}
	if got := doc.Find("details.url-detail").Length(); got != 2 {
		t.Errorf("detail blocks = %d, want 2", got)
	}
	if got := doc.Find("#overview tbody tr").Eq(1).Find("a").Text(); got != `https://b.example/<script>alert("x")</script>` {
		t.Errorf("overview link text = %q", got)
	}

	bar, _ := doc.Find("details.url-detail").Eq(1).Find(".bar-fill").First().Attr("style")
	if !strings.Contains(bar, "width:100%") || !strings.Contains(bar, colorBad) {
		t.Errorf("LCP bar style = %q, want full red bar", bar)
	}
	bar, _ = doc.Find("details.url-detail").Eq(0).Find(".bar-fill").First().Attr("style")
	if !strings.Contains(bar, "width:56%") {
		t.Errorf("passing LCP bar style = %q, want width 56%%", bar)
	}
}

func TestGenerateHTMLSingle(t *testing.T) {
	html, err := GenerateHTML(Wrap(passingResult("https://a.example/", 99), fixedNow))
	if err != nil {
		t.Fatalf("GenerateHTML() unexpected error: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse html: %v", err)
	}
	if got := strings.TrimSpace(doc.Find("#verdict").Text()); got != "PASSED" {
		t.Errorf("verdict = %q, want PASSED", got)
	}
	if subtitle := doc.Find(".subtitle").Text(); !strings.Contains(subtitle, "1 URL ") {
		t.Errorf("subtitle = %q, want singular URL", subtitle)
	}
}

func TestGenerateHTMLUsesReportTimestamp(t *testing.T) {
	site := Wrap(passingResult("https://a.example/", 99), fixedNow)

	first, err := GenerateHTML(site)
	if err != nil {
		t.Fatalf("GenerateHTML() unexpected error: %v", err)
	}
	second, err := GenerateHTML(site)
	if err != nil {
		t.Fatalf("GenerateHTML() unexpected error: %v", err)
	}
	if first != second {
		t.Error("GenerateHTML() output differs between renders of the same report")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(first))
	if err != nil {
		t.Fatalf("failed to parse html: %v", err)
	}
	if footer := doc.Find(".footer").Text(); !strings.Contains(footer, "2026-03-01T12:30:00.000Z") {
		t.Errorf("footer = %q, want report timestamp", footer)
	}
}

func TestWriteHTML(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "report")

	path, err := WriteHTML(Wrap(passingResult("https://a.example/", 99), fixedNow), dir)
	if err != nil {
		t.Fatalf("WriteHTML() unexpected error: %v", err)
	}
	if filepath.Base(path) != "index.html" {
		t.Errorf("path = %q, want index.html", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(data), "ps-guard Report") {
		t.Error("report content missing title")
	}
}

func TestScoreColorAndBarWidth(t *testing.T) {
	colors := []struct {
		score int
		want  string
	}{
		{100, colorGood}, {90, colorGood}, {89, colorWarn}, {50, colorWarn}, {49, colorBad}, {0, colorBad},
	}
	for _, c := range colors {
		if got := string(scoreColor(c.score)); got != c.want {
			t.Errorf("scoreColor(%d) = %s, want %s", c.score, got, c.want)
		}
	}

	widths := []struct {
		value, limit float64
		want         int
	}{
		{0, 2500, 0},
		{1875, 2500, 50},
		{3750, 2500, 100},
		{9000, 2500, 100},
		{0.05, 0.1, 33},
	}
	for _, w := range widths {
		if got := barWidth(MetricResult{Value: w.value, Limit: w.limit}); got != w.want {
			t.Errorf("barWidth(%v, %v) = %d, want %d", w.value, w.limit, got, w.want)
		}
	}
}

func TestLinePrinter(t *testing.T) {
	var buf bytes.Buffer
	lp := NewLinePrinter(&buf, Options{NoColor: true})

	lp.ScanStart(2)
	lp.URLDone(1, 2, passingResult("https://a.example", 95))
	lp.URLFailed(2, 2, "https://b.example", errors.New("lighthouse exited with status 1"))
	lp.ScanDone(nil)

	out := buf.String()
	for _, line := range []string{
		"Scanning 2 URLs from sitemap...",
		"[1/2] ✔ 95  https://a.example",
		"[2/2] ✖ ERR  https://b.example",
		"       lighthouse exited with status 1",
	} {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("output missing %q:\n%s", line, out)
		}
	}
}

func TestBarObserver(t *testing.T) {
	var buf bytes.Buffer
	b := NewBarObserver(&buf)

	b.URLDone(1, 1, passingResult("https://a.example", 95))
	b.ScanStart(2)
	b.URLDone(1, 2, passingResult("https://a.example", 95))
	b.URLFailed(2, 2, "https://b.example", errors.New("x"))
	b.ScanDone(nil)

	if b.bar.Current() != 2 {
		t.Errorf("bar current = %d, want 2", b.bar.Current())
	}
}
