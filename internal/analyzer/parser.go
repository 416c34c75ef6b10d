package analyzer

import (
	"math"
	"strings"

	"psguard/internal/config"
	"psguard/internal/report"
)

// metricDef - соответствие ключа порога аудиту Lighthouse
type metricDef struct {
	key     string
	auditID string
	unit    string
}

// metricTable - порядок вывода метрик фиксирован
var metricTable = []metricDef{
	{key: "lcp", auditID: "largest-contentful-paint", unit: "ms"},
	{key: "cls", auditID: "cumulative-layout-shift", unit: ""},
	{key: "inp", auditID: "experimental-interaction-to-next-paint", unit: "ms"},
	{key: "ttfb", auditID: "server-response-time", unit: "ms"},
	{key: "fcp", auditID: "first-contentful-paint", unit: "ms"},
}

// ParseMetrics - извлекает метрики из отчета и сравнивает их с порогами.
// Метрики без порога пропускаются.
func ParseMetrics(lhr *LHR, thresholds config.Thresholds) []report.MetricResult {
	metrics := make([]report.MetricResult, 0, len(metricTable))
	for _, def := range metricTable {
		limit := thresholds.Get(def.key)
		if limit == nil {
			continue
		}

		value := lhr.numericValue(def.auditID)
		if def.key == "cls" {
			value = roundHalfUp(value*1000) / 1000
		} else {
			value = roundHalfUp(value)
		}

		metrics = append(metrics, report.MetricResult{
			Name:   strings.ToUpper(def.key),
			Value:  value,
			Limit:  *limit,
			Passed: value <= *limit,
			Unit:   def.unit,
		})
	}
	return metrics
}

// roundHalfUp - округление как в JavaScript: x.5 всегда вверх
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
