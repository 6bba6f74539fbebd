package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultEndpoint — поисковый endpoint The Guardian.
	DefaultEndpoint = "https://content.guardianapis.com/search"
	// DefaultFromDate — нижняя граница даты публикации.
	DefaultFromDate = "2017-01-01"
	fromDateLayout  = "2006-01-02"
)

// Config хранит настройки клиента: endpoint, ключ API, таймауты и пути хранения настроек.
type Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	APIKey          string        `mapstructure:"api_key"`
	FromDate        string        `mapstructure:"from_date"`
	HTTPTimeout     time.Duration `mapstructure:"http_timeout"`
	ListenAddr      string        `mapstructure:"listen_addr"`
	PrefsPath       string        `mapstructure:"prefs_path"`
	DatabaseURL     string        `mapstructure:"database_url"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	LogLevel        string        `mapstructure:"log_level"`
}

// Validate проверяет endpoint, таймаут, формат from_date и интервал обновления.
func (cfg *Config) Validate() error {
	u, err := url.ParseRequestURI(cfg.Endpoint)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid endpoint URL: %s", cfg.Endpoint)
	}
	if cfg.APIKey == "" {
		return errors.New("api key must be set")
	}
	if cfg.HTTPTimeout < time.Second {
		return errors.New("http timeout must be ≥ 1 second")
	}
	if _, err := time.Parse(fromDateLayout, cfg.FromDate); err != nil {
		return fmt.Errorf("invalid from date: %s", cfg.FromDate)
	}
	if cfg.RefreshInterval != 0 && cfg.RefreshInterval < 30*time.Second {
		return errors.New("refresh interval must be 0 or ≥ 30 seconds")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("endpoint", DefaultEndpoint)
	v.SetDefault("api_key", "test")
	v.SetDefault("from_date", DefaultFromDate)
	v.SetDefault("http_timeout", "10s")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("prefs_path", defaultPrefsPath())
	v.SetDefault("database_url", "")
	v.SetDefault("refresh_interval", "0s")
	v.SetDefault("log_level", "info")
}

func defaultPrefsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "prefs.json"
	}
	return filepath.Join(home, ".newsreader", "prefs.json")
}

// LoadConfig читает JSON-файл по пути path (если он есть) и переменные окружения NEWSREADER_*.
// Пустой path означает только значения по умолчанию и окружение.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("newsreader")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
