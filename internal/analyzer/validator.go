package analyzer

import (
	"psguard/internal/config"
	"psguard/internal/report"
)

// Validate - формирует вердикт по одному URL: оценка не ниже minScore и все метрики в норме
func Validate(lhr *LHR, cfg config.Config, url string) *report.AuditResult {
	score := lhr.PerformanceScore()
	metrics := ParseMetrics(lhr, cfg.Thresholds)

	passed := score >= cfg.MinScore
	for _, m := range metrics {
		if !m.Passed {
			passed = false
			break
		}
	}

	return &report.AuditResult{
		Passed:   passed,
		Score:    score,
		MinScore: cfg.MinScore,
		Metrics:  metrics,
		URL:      url,
		Device:   cfg.Device,
	}
}
