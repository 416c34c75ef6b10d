package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"psguard/internal/analyzer"
	"psguard/internal/config"

	"go.uber.org/zap"
)

// DefaultLighthouseBin - исполняемый файл Lighthouse CLI по умолчанию
const DefaultLighthouseBin = "lighthouse"

// screen - эмуляция экрана для профиля устройства
type screen struct {
	mobile      bool
	width       int
	height      int
	scaleFactor int
}

var screens = map[config.Device]screen{
	config.Mobile:  {mobile: true, width: 375, height: 812, scaleFactor: 3},
	config.Desktop: {mobile: false, width: 1350, height: 940, scaleFactor: 1},
}

// LighthouseAuditor - запускает Lighthouse CLI против браузера на заданном порту
type LighthouseAuditor struct {
	Bin     string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Audit - один прогон Lighthouse; ненулевой код выхода или runtimeError в отчете считаются ошибкой
func (a *LighthouseAuditor) Audit(ctx context.Context, url string, port int, cfg config.Config) (*analyzer.LHR, error) {
	bin := a.Bin
	if bin == "" {
		bin = DefaultLighthouseBin
	}
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	args := LighthouseArgs(url, port, cfg)
	if a.Logger != nil {
		a.Logger.Debug("running lighthouse", zap.String("bin", bin), zap.Strings("args", args))
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("lighthouse %s: %w", url, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("lighthouse exited with status %d: %s", exitErr.ExitCode(), lastLine(stderr.String()))
		}
		return nil, fmt.Errorf("failed to run lighthouse: %w", err)
	}

	lhr, err := analyzer.DecodeLHR(&stdout)
	if err != nil {
		return nil, err
	}
	if lhr.RuntimeError != nil && lhr.RuntimeError.Code != "" {
		return nil, lhr.RuntimeError
	}
	return lhr, nil
}

// LighthouseArgs - аргументы командной строки Lighthouse для одного аудита
func LighthouseArgs(url string, port int, cfg config.Config) []string {
	args := []string{
		url,
		"--port=" + strconv.Itoa(port),
		"--output=json",
		"--output-path=stdout",
		"--quiet",
		"--only-categories=performance",
	}

	device := cfg.Device
	if !device.Valid() {
		device = config.Mobile
	}
	s := screens[device]
	args = append(args,
		"--form-factor="+string(device),
		"--screenEmulation.mobile="+strconv.FormatBool(s.mobile),
		"--screenEmulation.width="+strconv.Itoa(s.width),
		"--screenEmulation.height="+strconv.Itoa(s.height),
		"--screenEmulation.deviceScaleFactor="+strconv.Itoa(s.scaleFactor),
		"--screenEmulation.disabled=false",
	)

	if device == config.Desktop {
		args = append(args,
			"--throttling.cpuSlowdownMultiplier=1",
			"--throttling.rttMs=0",
			"--throttling.throughputKbps=0",
			"--throttling.requestLatencyMs=0",
			"--throttling.downloadThroughputKbps=0",
			"--throttling.uploadThroughputKbps=0",
		)
	}

	return append(args, cfg.LighthouseFlags...)
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
