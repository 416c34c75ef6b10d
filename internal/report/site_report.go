package report

import (
	"math"
	"time"

	"psguard/internal/config"

	"github.com/google/uuid"
)

// TimestampLayout - ISO 8601 с миллисекундами в UTC
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// SiteReport - сводный отчет по набору URL
type SiteReport struct {
	Passed       bool           `json:"passed"`
	TotalURLs    int            `json:"totalUrls"`
	PassedURLs   int            `json:"passedUrls"`
	FailedURLs   int            `json:"failedUrls"`
	AverageScore int            `json:"averageScore"`
	WorstScore   int            `json:"worstScore"`
	Results      []*AuditResult `json:"results"`
	Device       config.Device  `json:"device"`
	Timestamp    string         `json:"timestamp"`
	RunID        string         `json:"runId,omitempty"`
}

// NewSiteReport - считает агрегаты по результатам в порядке их получения
func NewSiteReport(results []*AuditResult, device config.Device, now time.Time) *SiteReport {
	if results == nil {
		results = []*AuditResult{}
	}

	sr := &SiteReport{
		TotalURLs: len(results),
		Results:   results,
		Device:    device,
		Timestamp: now.UTC().Format(TimestampLayout),
		RunID:     uuid.NewString(),
	}

	sum := 0
	for i, res := range results {
		if res.Passed {
			sr.PassedURLs++
		}
		sum += res.Score
		if i == 0 || res.Score < sr.WorstScore {
			sr.WorstScore = res.Score
		}
	}
	sr.FailedURLs = sr.TotalURLs - sr.PassedURLs
	sr.Passed = sr.FailedURLs == 0
	if len(results) > 0 {
		sr.AverageScore = int(math.Floor(float64(sum)/float64(len(results)) + 0.5))
	}
	return sr
}

// Wrap - представляет одиночный результат как отчет по одному URL
func Wrap(res *AuditResult, now time.Time) *SiteReport {
	return NewSiteReport([]*AuditResult{res}, res.Device, now)
}
