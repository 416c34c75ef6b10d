package report

import "psguard/internal/config"

// MetricResult - результат проверки одной метрики
type MetricResult struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Limit  float64 `json:"limit"`
	Passed bool    `json:"passed"`
	Unit   string  `json:"unit"`
}

// AuditResult - вердикт по одному URL
type AuditResult struct {
	Passed   bool           `json:"passed"`
	Score    int            `json:"score"`
	MinScore int            `json:"minScore"`
	Metrics  []MetricResult `json:"metrics"`
	URL      string         `json:"url"`
	Device   config.Device  `json:"device"`

	// Error - причина, по которой аудит URL не состоялся (только в пакетном режиме)
	Error string `json:"error,omitempty"`
}

// NewFailedResult - результат для URL, аудит которого завершился ошибкой
func NewFailedResult(url string, cfg config.Config, err error) *AuditResult {
	res := &AuditResult{
		Passed:   false,
		Score:    0,
		MinScore: cfg.MinScore,
		Metrics:  []MetricResult{},
		URL:      url,
		Device:   cfg.Device,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

// FailedChecks - количество проваленных проверок: метрики плюс оценка
func (r *AuditResult) FailedChecks() int {
	failed := 0
	for _, m := range r.Metrics {
		if !m.Passed {
			failed++
		}
	}
	if r.Score < r.MinScore {
		failed++
	}
	return failed
}

// TotalChecks - все проверки результата: метрики плюс оценка
func (r *AuditResult) TotalChecks() int {
	return len(r.Metrics) + 1
}
