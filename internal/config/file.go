package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// FileNames - файлы конфигурации в порядке поиска
var FileNames = []string{
	"ps-guard.config.json",
	"ps-guard.config.yaml",
	"ps-guard.config.yml",
	"ps-guard.config.toml",
}

const (
	packageJSON = "package.json"
	packageKey  = "ps-guard"
)

// LoadFile - ищет конфигурацию в dir, затем поле "ps-guard" в package.json.
// Возвращает слой и путь к файлу; без конфигурации оба пустые
func LoadFile(dir string) (Layer, string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if !exists(path) {
			continue
		}
		layer, err := LoadPath(path)
		return layer, path, err
	}

	path := filepath.Join(dir, packageJSON)
	if !exists(path) {
		return Layer{}, "", nil
	}
	layer, ok, err := loadPackageField(path)
	if err != nil || !ok {
		return Layer{}, "", err
	}
	return layer, path, nil
}

// LoadPath - читает один файл; формат по расширению
func LoadPath(path string) (Layer, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Layer{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return decode(v, path)
}

func loadPackageField(path string) (Layer, bool, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return Layer{}, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	sub := v.Sub(packageKey)
	if sub == nil {
		return Layer{}, false, nil
	}
	layer, err := decode(sub, path)
	return layer, err == nil, err
}

func decode(v *viper.Viper, path string) (Layer, error) {
	var layer Layer
	if err := v.Unmarshal(&layer); err != nil {
		return Layer{}, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return layer, nil
}

func exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
