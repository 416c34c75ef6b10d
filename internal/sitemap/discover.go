package sitemap

import (
	"context"
	"errors"
	"fmt"

	"psguard/internal/helpers"

	"go.uber.org/zap"
)

// ErrNotFound - у сайта нет ни директивы Sitemap:, ни /sitemap.xml
var ErrNotFound = errors.New("no sitemap found")

// Discover - находит sitemap сайта: сначала robots.txt, затем /sitemap.xml
func (f *Fetcher) Discover(ctx context.Context, siteURL string) ([]string, error) {
	origin, err := helpers.Origin(siteURL)
	if err != nil {
		return nil, fmt.Errorf("invalid site url %s: %w", siteURL, err)
	}

	if found := f.robotsSitemaps(ctx, origin); len(found) > 0 {
		f.logger.Debug("sitemaps from robots.txt", zap.String("site", origin), zap.Strings("sitemaps", found))
		return found, nil
	}

	fallback := origin + "/sitemap.xml"
	if f.exists(ctx, fallback) {
		return []string{fallback}, nil
	}
	return nil, fmt.Errorf("%w for %s", ErrNotFound, origin)
}

// robotsSitemaps и exists ограничены тем же лимитом частоты и таймаутом, что и get
func (f *Fetcher) robotsSitemaps(ctx context.Context, origin string) []string {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	return NewRobotsClient(f.client).Sitemaps(ctx, origin)
}

func (f *Fetcher) exists(ctx context.Context, u string) bool {
	if err := f.limiter.Wait(ctx); err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	return helpers.ResourceExists(ctx, f.client, u)
}

// FetchSite - Discover, затем FetchAll по найденным sitemap
func (f *Fetcher) FetchSite(ctx context.Context, siteURL string) ([]string, error) {
	sitemaps, err := f.Discover(ctx, siteURL)
	if err != nil {
		return nil, err
	}
	return f.FetchAll(ctx, sitemaps)
}
