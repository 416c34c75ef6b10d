package crawler

import (
	"context"
	"time"

	"psguard/internal/analyzer"
	"psguard/internal/config"
	"psguard/internal/report"
	"psguard/internal/runner"

	"go.uber.org/zap"
)

// DefaultMaxURLs - предел числа URL, если он не задан ни опцией, ни конфигурацией
const DefaultMaxURLs = 50

// Observer - получает события пакетной проверки
type Observer interface {
	ScanStart(total int)
	URLDone(index, total int, res *report.AuditResult)
	URLFailed(index, total int, url string, err error)
	ScanDone(site *report.SiteReport)
}

// Crawler - проверяет набор URL последовательно в одном общем браузере
type Crawler struct {
	runner   *runner.Runner
	maxURLs  int
	observer Observer
	logger   *zap.Logger
	now      func() time.Time
}

// Option - опция краулера
type Option func(*Crawler)

// WithMaxURLs - предел числа URL; перекрывает maxUrls из конфигурации
func WithMaxURLs(n int) Option { return func(c *Crawler) { c.maxURLs = n } }

// WithObserver - наблюдатель за прогрессом
func WithObserver(o Observer) Option { return func(c *Crawler) { c.observer = o } }

// WithLogger - логгер краулера
func WithLogger(l *zap.Logger) Option { return func(c *Crawler) { c.logger = l } }

// NewCrawler - создает новый инстанс краулера
func NewCrawler(r *runner.Runner, opts ...Option) *Crawler {
	c := &Crawler{
		runner:   r,
		observer: report.NopObserver{},
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run - проверяет urls (не больше предела). Ошибка одного URL записывается как
// проваленный результат с нулевой оценкой; фатальны только запуск браузера и отмена ctx.
func (c *Crawler) Run(ctx context.Context, urls []string, cfg config.Config) (*report.SiteReport, error) {
	if limit := c.limit(cfg); len(urls) > limit {
		c.logger.Info("url list truncated", zap.Int("found", len(urls)), zap.Int("limit", limit))
		urls = urls[:limit]
	}

	c.observer.ScanStart(len(urls))

	results, err := c.auditAll(ctx, urls, cfg)
	if err != nil {
		return nil, err
	}

	site := report.NewSiteReport(results, cfg.Device, c.now())
	c.observer.ScanDone(site)
	return site, nil
}

func (c *Crawler) auditAll(ctx context.Context, urls []string, cfg config.Config) ([]*report.AuditResult, error) {
	b, err := c.runner.Launch(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := b.Kill(); err != nil {
			c.logger.Warn("failed to stop browser", zap.Error(err))
		}
	}()

	results := make([]*report.AuditResult, 0, len(urls))
	for i, url := range urls {
		lhr, err := c.runner.Audit(ctx, b, url, cfg)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			c.logger.Warn("url audit failed", zap.String("url", url), zap.Error(err))
			results = append(results, report.NewFailedResult(url, cfg, err))
			c.observer.URLFailed(i+1, len(urls), url, err)
			continue
		}

		res := analyzer.Validate(lhr, cfg.WithURL(url), url)
		results = append(results, res)
		c.observer.URLDone(i+1, len(urls), res)
	}
	return results, nil
}

func (c *Crawler) limit(cfg config.Config) int {
	switch {
	case c.maxURLs > 0:
		return c.maxURLs
	case cfg.MaxURLs > 0:
		return cfg.MaxURLs
	default:
		return DefaultMaxURLs
	}
}
