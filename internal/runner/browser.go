package runner

import (
	"context"
	"sync"

	"psguard/internal/analyzer"
	"psguard/internal/config"
)

// Browser - запущенный браузер: порт отладки и способ его остановить
type Browser struct {
	Port int

	kill    func() error
	once    sync.Once
	killErr error
}

// NewBrowser - оборачивает порт и функцию остановки
func NewBrowser(port int, kill func() error) *Browser {
	return &Browser{Port: port, kill: kill}
}

// Kill - останавливает браузер; повторные вызовы ничего не делают
func (b *Browser) Kill() error {
	b.once.Do(func() {
		if b.kill != nil {
			b.killErr = b.kill()
		}
	})
	return b.killErr
}

// Launcher - запускает браузер для аудита
type Launcher interface {
	Launch(ctx context.Context) (*Browser, error)
}

// Auditor - проводит один аудит производительности в уже запущенном браузере
type Auditor interface {
	Audit(ctx context.Context, url string, port int, cfg config.Config) (*analyzer.LHR, error)
}
