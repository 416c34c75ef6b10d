package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"math"
	"os"
	"path/filepath"
)

const (
	colorGood = "#0cce6b"
	colorWarn = "#ffa400"
	colorBad  = "#ff4e42"
)

// HTMLFileName - имя файла отчета внутри каталога --report
const HTMLFileName = "index.html"

//go:embed templates/report.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.New("report.html").Funcs(template.FuncMap{
	"scoreColor":  scoreColor,
	"metricColor": metricColor,
	"barWidth":    barWidth,
	"icon":        htmlIcon,
	"num":         formatNumber,
	"inc":         func(i int) int { return i + 1 },
}).ParseFS(templatesFS, "templates/report.html"))

type htmlPage struct {
	Site        *SiteReport
	PassedColor template.CSS
	FailedColor template.CSS
	GeneratedAt string
}

// GenerateHTML - рендерит статическую страницу отчета
func GenerateHTML(site *SiteReport) (string, error) {
	page := htmlPage{
		Site:        site,
		PassedColor: colorGood,
		FailedColor: colorGood,
		GeneratedAt: site.Timestamp,
	}
	if site.FailedURLs > 0 {
		page.PassedColor = colorBad
		page.FailedColor = colorBad
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("failed to render html report: %w", err)
	}
	return buf.String(), nil
}

// WriteHTML - пишет отчет в <dir>/index.html, создавая каталог; возвращает путь к файлу
func WriteHTML(site *SiteReport, dir string) (string, error) {
	html, err := GenerateHTML(site)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid report dir %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report dir: %w", err)
	}

	path := filepath.Join(abs, HTMLFileName)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("failed to write html report: %w", err)
	}
	return path, nil
}

func scoreColor(score int) template.CSS {
	switch {
	case score >= 90:
		return colorGood
	case score >= 50:
		return colorWarn
	default:
		return colorBad
	}
}

func metricColor(m MetricResult) template.CSS {
	if m.Passed {
		return colorGood
	}
	return colorBad
}

// barWidth - ширина полосы в процентах; полная полоса соответствует 1.5 лимита
func barWidth(m MetricResult) int {
	if m.Limit <= 0 {
		if m.Value > 0 {
			return 100
		}
		return 0
	}
	ratio := math.Min(m.Value/(m.Limit*1.5), 1)
	return int(math.Floor(ratio*100 + 0.5))
}

func htmlIcon(passed bool) string {
	if passed {
		return "✔"
	}
	return "✖"
}
