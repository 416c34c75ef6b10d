package helpers

import (
	"context"
	"net/http"
	"time"
)

// DefaultClient - клиент для коротких проверок доступности
var DefaultClient = &http.Client{Timeout: 5 * time.Second}

// ResourceExists - проверяет, что ресурс отвечает статусом 200
func ResourceExists(ctx context.Context, client *http.Client, u string) bool {
	if client == nil {
		client = DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
