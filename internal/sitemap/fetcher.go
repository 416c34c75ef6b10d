package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout  = 10 * time.Second
	DefaultMaxDepth = 2
	userAgent       = "ps-guard/1.0 (+sitemap)"
)

// ErrMalformed - документ не разбирается как XML
var ErrMalformed = errors.New("malformed sitemap")

// FetchError - ошибка загрузки документа: транспорт, таймаут или статус не 2xx
type FetchError struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch sitemap %s: %s", e.URL, e.Status)
	}
	return fmt.Sprintf("failed to fetch sitemap %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher - загружает sitemap и разворачивает вложенные индексы в список страниц
type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxDepth int
	limiter  *rate.Limiter
	logger   *zap.Logger
	docs     *cache.Cache
}

// Option - опция загрузчика
type Option func(*Fetcher)

// WithClient - HTTP-клиент для запросов
func WithClient(c *http.Client) Option { return func(f *Fetcher) { f.client = c } }

// WithTimeout - таймаут одного документа
func WithTimeout(d time.Duration) Option { return func(f *Fetcher) { f.timeout = d } }

// WithMaxDepth - максимальная глубина вложенных индексов
func WithMaxDepth(d int) Option { return func(f *Fetcher) { f.maxDepth = d } }

// WithRateLimit - ограничивает частоту запросов к серверу
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(f *Fetcher) { f.limiter = rate.NewLimiter(r, burst) }
}

// WithLogger - логгер загрузчика
func WithLogger(l *zap.Logger) Option { return func(f *Fetcher) { f.logger = l } }

// NewFetcher - создает новый инстанс загрузчика
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{},
		timeout:  DefaultTimeout,
		maxDepth: DefaultMaxDepth,
		limiter:  rate.NewLimiter(rate.Inf, 1),
		logger:   zap.NewNop(),
		docs:     cache.New(cache.NoExpiration, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type entry struct {
	Loc string `xml:"loc"`
}

// document - urlset или sitemapindex; пространство имен не проверяется
type document struct {
	XMLName  xml.Name
	URLs     []entry `xml:"url"`
	Sitemaps []entry `xml:"sitemap"`
}

func (d *document) isIndex() bool {
	return strings.EqualFold(d.XMLName.Local, "sitemapindex")
}

// Fetch - возвращает адреса страниц без повторов в порядке первого появления.
// Любая ошибка загрузки или разбора прерывает весь обход.
func (f *Fetcher) Fetch(ctx context.Context, sitemapURL string) ([]string, error) {
	var urls []string
	if err := f.walk(ctx, sitemapURL, 0, &urls); err != nil {
		return nil, err
	}
	return dedupe(urls), nil
}

// FetchAll - Fetch по нескольким sitemap с общим списком без повторов
func (f *Fetcher) FetchAll(ctx context.Context, sitemapURLs []string) ([]string, error) {
	var urls []string
	for _, u := range sitemapURLs {
		if err := f.walk(ctx, u, 0, &urls); err != nil {
			return nil, err
		}
	}
	return dedupe(urls), nil
}

func (f *Fetcher) walk(ctx context.Context, sitemapURL string, depth int, out *[]string) error {
	doc, err := f.document(ctx, sitemapURL)
	if err != nil {
		return err
	}

	if !doc.isIndex() {
		for _, e := range doc.URLs {
			if loc := strings.TrimSpace(e.Loc); loc != "" {
				*out = append(*out, loc)
			}
		}
		f.logger.Debug("sitemap parsed", zap.String("url", sitemapURL), zap.Int("depth", depth), zap.Int("urls", len(doc.URLs)))
		return nil
	}

	if depth >= f.maxDepth {
		f.logger.Warn("nested sitemap index ignored", zap.String("url", sitemapURL), zap.Int("depth", depth))
		return nil
	}
	for _, e := range doc.Sitemaps {
		loc := strings.TrimSpace(e.Loc)
		if loc == "" {
			continue
		}
		if err := f.walk(ctx, loc, depth+1, out); err != nil {
			return err
		}
	}
	return nil
}

func (f *Fetcher) document(ctx context.Context, sitemapURL string) (*document, error) {
	if cached, ok := f.docs.Get(sitemapURL); ok {
		return cached.(*document), nil
	}

	body, err := f.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	doc, err := parse(body)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrMalformed, sitemapURL, err)
	}
	f.docs.Set(sitemapURL, doc, cache.NoExpiration)
	return doc, nil
}

func (f *Fetcher) get(ctx context.Context, sitemapURL string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{URL: sitemapURL, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, &FetchError{URL: sitemapURL, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: sitemapURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: sitemapURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: sitemapURL, Err: err}
	}
	return body, nil
}

func parse(body []byte) (*document, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = charset.NewReaderLabel

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	unique := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		unique = append(unique, u)
	}
	return unique
}
