package runner

import (
	"context"
	"fmt"

	"psguard/internal/analyzer"
	"psguard/internal/config"
	"psguard/internal/report"

	"go.uber.org/zap"
)

// Runner - аудит одного URL с повторами
type Runner struct {
	launcher Launcher
	auditor  Auditor
	logger   *zap.Logger
}

// Option - опция раннера
type Option func(*Runner)

// WithLogger - логгер раннера
func WithLogger(l *zap.Logger) Option { return func(r *Runner) { r.logger = l } }

// New - создает раннер поверх запуска браузера и аудитора
func New(launcher Launcher, auditor Auditor, opts ...Option) *Runner {
	r := &Runner{
		launcher: launcher,
		auditor:  auditor,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Launch - запускает браузер для серии аудитов
func (r *Runner) Launch(ctx context.Context) (*Browser, error) {
	b, err := r.launcher.Launch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	return b, nil
}

// Audit - до cfg.Retries попыток подряд без пауз; возвращает последнюю ошибку
func (r *Runner) Audit(ctx context.Context, b *Browser, url string, cfg config.Config) (*analyzer.LHR, error) {
	attempts := max(cfg.Retries, 1)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lhr, err := r.auditor.Audit(ctx, url, b.Port, cfg)
		if err == nil {
			return lhr, nil
		}
		lastErr = err
		r.logger.Warn("audit attempt failed",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Int("attempts", attempts),
			zap.Error(err),
		)
	}
	return nil, lastErr
}

// Run - проверка одного cfg.URL: запуск браузера, аудит, вердикт. Браузер останавливается всегда
func (r *Runner) Run(ctx context.Context, cfg config.Config) (*report.AuditResult, error) {
	b, err := r.Launch(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := b.Kill(); err != nil {
			r.logger.Warn("failed to stop browser", zap.Error(err))
		}
	}()

	lhr, err := r.Audit(ctx, b, cfg.URL, cfg)
	if err != nil {
		return nil, err
	}
	return analyzer.Validate(lhr, cfg, cfg.URL), nil
}
