package runner

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// ChromeLauncher - запускает Chrome через chromedp на свободном порту отладки
type ChromeLauncher struct {
	ExecPath string
	Headless bool
	Logger   *zap.Logger
}

// Launch - стартует браузер и дожидается его готовности
func (l *ChromeLauncher) Launch(ctx context.Context) (*Browser, error) {
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	port, err := freePort()
	if err != nil {
		return nil, fmt.Errorf("failed to pick debugging port: %w", err)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.WithoutCancel(ctx), l.allocatorOptions(port)...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// пустой Run запускает процесс браузера
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("failed to launch chrome: %w", err)
	}
	logger.Debug("chrome launched", zap.Int("port", port), zap.Bool("headless", l.Headless))

	return NewBrowser(port, func() error {
		cancelBrowser()
		cancelAlloc()
		logger.Debug("chrome stopped", zap.Int("port", port))
		return nil
	}), nil
}

func (l *ChromeLauncher) allocatorOptions(port int) []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("remote-debugging-port", strconv.Itoa(port)),
	}
	if l.Headless {
		opts = append(opts, chromedp.Headless)
	}
	if l.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(l.ExecPath))
	}
	return opts
}

func freePort() (int, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port, nil
}
