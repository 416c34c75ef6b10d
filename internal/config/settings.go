package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

// Settings - окружение запуска: браузер, Lighthouse, база истории
type Settings struct {
	ChromePath    string        `envconfig:"CHROME_PATH"` // пусто - Chrome ищет chromedp
	Headless      bool          `envconfig:"HEADLESS" default:"true"`
	LighthouseBin string        `envconfig:"LIGHTHOUSE_BIN" default:"lighthouse"`
	AuditTimeout  time.Duration `envconfig:"AUDIT_TIMEOUT" default:"0s"` // 0 - без ограничения
	DatabaseURL   string        `envconfig:"DB_URL"`                     // пусто - история не сохраняется
	SitemapRPS    float64       `envconfig:"SITEMAP_RPS" default:"10"`
}

const envPrefix = "psguard"

// LoadSettings - загружает .env, если он есть, и переменные PSGUARD_*
func LoadSettings(logger *zap.Logger) (*Settings, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := godotenv.Load(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			logger.Warn(".env file found but could not be loaded", zap.Error(err))
		}
	}

	var s Settings
	if err := envconfig.Process(envPrefix, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
