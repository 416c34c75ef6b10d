package sitemap

import (
	"context"
	"net/http"
	"sync"

	"github.com/temoto/robotstxt"
)

// RobotsClient - управляет загрузкой и кэшированием robots.txt
type RobotsClient struct {
	client *http.Client
	mu     sync.Mutex
	cache  map[string]*robotstxt.RobotsData
}

// NewRobotsClient - создает новый инстанс клиента для работы с robots.txt
func NewRobotsClient(client *http.Client) *RobotsClient {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &RobotsClient{
		client: client,
		cache:  make(map[string]*robotstxt.RobotsData),
	}
}

// Sitemaps - адреса из директив Sitemap: в robots.txt; пусто, если файла нет
func (rc *RobotsClient) Sitemaps(ctx context.Context, origin string) []string {
	robots := rc.load(ctx, origin)
	if robots == nil {
		return nil
	}
	return robots.Sitemaps
}

func (rc *RobotsClient) load(ctx context.Context, origin string) *robotstxt.RobotsData {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if robots, ok := rc.cache[origin]; ok {
		return robots
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", nil)
	if err != nil {
		rc.cache[origin] = nil
		return nil
	}
	resp, err := rc.client.Do(req)
	if err != nil {
		rc.cache[origin] = nil
		return nil
	}
	defer resp.Body.Close()

	robots, err := robotstxt.FromResponse(resp)
	if err != nil {
		rc.cache[origin] = nil
		return nil
	}
	rc.cache[origin] = robots
	return robots
}
