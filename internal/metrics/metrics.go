package metrics

import (
	"fmt"

	"psguard/internal/report"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "psguard"

// Registry - реестр с метриками одного прогона
func Registry(site *report.SiteReport) (*prometheus.Registry, error) {
	score := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "score",
		Help:      "Lighthouse performance score of the URL (0-100).",
	}, []string{"url", "device"})
	passed := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "passed",
		Help:      "1 if the URL passed every check, 0 otherwise.",
	}, []string{"url", "device"})
	metricValue := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "metric_value",
		Help:      "Measured metric value (ms for timings, unitless for CLS).",
	}, []string{"url", "device", "metric"})
	metricLimit := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "metric_limit",
		Help:      "Configured metric threshold.",
	}, []string{"url", "device", "metric"})
	avgScore := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "run_average_score",
		Help:      "Average performance score of the run.",
	})
	failedURLs := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "run_failed_urls",
		Help:      "Number of URLs that failed in the run.",
	})

	reg := prometheus.NewRegistry()
	for _, c := range []prometheus.Collector{score, passed, metricValue, metricLimit, avgScore, failedURLs} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	for _, res := range site.Results {
		device := string(res.Device)
		score.WithLabelValues(res.URL, device).Set(float64(res.Score))
		passed.WithLabelValues(res.URL, device).Set(boolValue(res.Passed))
		for _, m := range res.Metrics {
			metricValue.WithLabelValues(res.URL, device, m.Name).Set(m.Value)
			metricLimit.WithLabelValues(res.URL, device, m.Name).Set(m.Limit)
		}
	}
	avgScore.Set(float64(site.AverageScore))
	failedURLs.Set(float64(site.FailedURLs))

	return reg, nil
}

// WriteTextfile - пишет метрики прогона в формате textfile-коллектора node_exporter
func WriteTextfile(path string, site *report.SiteReport) error {
	reg, err := Registry(site)
	if err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
