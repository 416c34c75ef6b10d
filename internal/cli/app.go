package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"psguard/internal/config"
	"psguard/internal/crawler"
	"psguard/internal/helpers"
	"psguard/internal/log"
	"psguard/internal/metrics"
	"psguard/internal/report"
	"psguard/internal/runner"
	"psguard/internal/sitemap"
	"psguard/internal/storage"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultReportDir - каталог HTML-отчета, если --report не задан
const DefaultReportDir = "ps-guard-report"

// App - один запуск ps-guard
type App struct {
	Launcher runner.Launcher
	Auditor  runner.Auditor
	Settings config.Settings

	Stdout io.Writer
	Stderr io.Writer

	// Dir - рабочий каталог: поиск конфигурации и относительные пути отчетов
	Dir string

	HTTPClient *http.Client
	Logger     *zap.Logger
	Now        func() time.Time
}

// Run - выполняет команду и возвращает код завершения
func (a *App) Run(ctx context.Context, argv []string) int {
	args, err := Parse(argv)
	if err != nil {
		return a.fail(err, report.Options{})
	}
	opts := report.Options{NoColor: args.CI}

	if args.Help {
		PrintHelp(a.Stdout, args.CI)
		return ExitOK
	}

	logger := a.Logger
	if logger == nil {
		logger = log.New(args.Verbose, a.Stderr)
		defer log.Sync(logger)
	}

	cfg, err := a.resolve(args, logger)
	if err != nil {
		return a.fail(err, opts)
	}

	var site *report.SiteReport
	if cfg.Sitemap != "" {
		site, err = a.runSitemap(ctx, cfg, args, opts, logger)
	} else {
		site, err = a.runSingle(ctx, cfg, args, opts, logger)
	}
	if err != nil {
		return a.fail(err, opts)
	}

	if err := a.export(ctx, cfg, args, site, logger); err != nil {
		return a.fail(err, opts)
	}

	if site.Passed || !cfg.FailOnError {
		return ExitOK
	}
	return ExitValidation
}

func (a *App) resolve(args *Args, logger *zap.Logger) (config.Config, error) {
	var (
		file config.Layer
		path string
		err  error
	)
	if args.ConfigPath != "" {
		path = a.abs(args.ConfigPath)
		file, err = config.LoadPath(path)
	} else {
		file, path, err = config.LoadFile(a.Dir)
	}
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		logger.Debug("config file loaded", zap.String("path", path))
	}

	cfg, err := config.Resolve(args.Layer(), file)
	if err != nil {
		return config.Config{}, err
	}
	cfg.URL = helpers.NormalizeURL(cfg.URL)
	cfg.Sitemap = helpers.NormalizeURL(cfg.Sitemap)
	logger.Debug("configuration resolved",
		zap.String("url", cfg.URL),
		zap.String("sitemap", cfg.Sitemap),
		zap.String("device", string(cfg.Device)),
		zap.String("preset", cfg.Preset),
		zap.Int("retries", cfg.Retries),
	)
	return cfg, nil
}

func (a *App) runSingle(ctx context.Context, cfg config.Config, args *Args, opts report.Options, logger *zap.Logger) (*report.SiteReport, error) {
	res, err := runner.New(a.Launcher, a.Auditor, runner.WithLogger(logger)).Run(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if args.JSON {
		if err := report.WriteJSON(a.Stdout, res); err != nil {
			return nil, err
		}
	} else {
		res.Print(a.Stdout, opts)
	}
	return report.Wrap(res, a.now()), nil
}

func (a *App) runSitemap(ctx context.Context, cfg config.Config, args *Args, opts report.Options, logger *zap.Logger) (*report.SiteReport, error) {
	limit := rate.Inf
	if a.Settings.SitemapRPS > 0 {
		limit = rate.Limit(a.Settings.SitemapRPS)
	}
	fetchOpts := []sitemap.Option{
		sitemap.WithLogger(logger),
		sitemap.WithRateLimit(limit, 1),
	}
	if a.HTTPClient != nil {
		fetchOpts = append(fetchOpts, sitemap.WithClient(a.HTTPClient))
	}
	f := sitemap.NewFetcher(fetchOpts...)

	var (
		urls []string
		err  error
	)
	if helpers.IsSiteRoot(cfg.Sitemap) {
		urls, err = f.FetchSite(ctx, cfg.Sitemap)
	} else {
		urls, err = f.Fetch(ctx, cfg.Sitemap)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sitemap: %w", err)
	}
	if len(urls) == 0 {
		return nil, &ExitError{Code: ExitFatal, Message: "no URLs found in sitemap " + cfg.Sitemap}
	}
	logger.Debug("sitemap fetched", zap.String("sitemap", cfg.Sitemap), zap.Int("urls", len(urls)))

	c := crawler.NewCrawler(
		runner.New(a.Launcher, a.Auditor, runner.WithLogger(logger)),
		crawler.WithObserver(a.observer(args, opts)),
		crawler.WithLogger(logger),
	)
	site, err := c.Run(ctx, urls, cfg)
	if err != nil {
		return nil, err
	}

	if args.JSON {
		if err := report.WriteJSON(a.Stdout, site); err != nil {
			return nil, err
		}
	} else {
		site.Print(a.Stdout, opts)
	}
	return site, nil
}

func (a *App) observer(args *Args, opts report.Options) crawler.Observer {
	if !args.JSON {
		return report.NewLinePrinter(a.Stdout, opts)
	}
	if isTerminal(a.Stderr) {
		return report.NewBarObserver(a.Stderr)
	}
	return report.NopObserver{}
}

// export - HTML-отчет, файл метрик и история; ошибка истории только логируется
func (a *App) export(ctx context.Context, cfg config.Config, args *Args, site *report.SiteReport, logger *zap.Logger) error {
	notes := a.Stdout
	if args.JSON {
		notes = a.Stderr
	}

	if cfg.HTML || cfg.Report != "" {
		dir := cfg.Report
		if dir == "" {
			dir = DefaultReportDir
		}
		path, err := report.WriteHTML(site, a.abs(dir))
		if err != nil {
			return err
		}
		fmt.Fprintf(notes, "  HTML report: %s\n\n", path)
	}

	if args.MetricsFile != "" {
		if err := metrics.WriteTextfile(a.abs(args.MetricsFile), site); err != nil {
			return err
		}
		logger.Debug("metrics written", zap.String("path", args.MetricsFile))
	}

	if a.Settings.DatabaseURL != "" {
		a.saveHistory(ctx, site, logger)
	}
	return nil
}

func (a *App) saveHistory(ctx context.Context, site *report.SiteReport, logger *zap.Logger) {
	store, err := storage.Open(ctx, a.Settings.DatabaseURL, logger)
	if err != nil {
		logger.Warn("run history unavailable", zap.Error(err))
		return
	}
	defer store.Close()

	if err := store.SaveRun(ctx, site); err != nil {
		logger.Warn("failed to save run history", zap.String("run_id", site.RunID), zap.Error(err))
	}
}

func (a *App) fail(err error, opts report.Options) int {
	code := ExitFatal
	var ee *ExitError
	if errors.As(err, &ee) {
		code = ee.Code
	}
	report.PrintError(a.Stderr, opts, err.Error())
	return code
}

func (a *App) abs(path string) string {
	if filepath.IsAbs(path) || a.Dir == "" {
		return path
	}
	return filepath.Join(a.Dir, path)
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
