package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is read when present and CONFIG_PATH is unset.
const DefaultPath = "config/settings.json"

type Config struct {
	App struct {
		Env       string `json:"env" yaml:"env" env:"APP_ENV" env-default:"development"`
		LogLevel  string `json:"log_level" yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
		Port      int    `json:"port" yaml:"port" env:"APP_PORT" env-default:"8080"`
		SentryUrl string `json:"sentry_url" yaml:"sentry_url" env:"SENTRY_URL"`
	} `json:"app" yaml:"app"`
	Scraper struct {
		BaseURL   string  `json:"base_url" yaml:"base_url" env:"SCRAPER_BASE_URL" env-default:"https://www.instagram.com"`
		UserAgent string  `json:"user_agent" yaml:"user_agent" env:"SCRAPER_USER_AGENT" env-default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"`
		Timeout   float64 `json:"request_timeout" yaml:"request_timeout" env:"SCRAPER_REQUEST_TIMEOUT" env-default:"10" env-description:"request timeout in seconds"`
		Proxy     string  `json:"proxy" yaml:"proxy" env:"SCRAPER_PROXY" env-description:"http, https or socks5 proxy URL"`
		MaxPosts  int     `json:"max_posts_per_profile" yaml:"max_posts_per_profile" env:"SCRAPER_MAX_POSTS" env-default:"0" env-description:"0 means unlimited"`
		Retries   uint64  `json:"retries" yaml:"retries" env:"SCRAPER_RETRIES" env-default:"2" env-description:"retries on network failure"`
	} `json:"scraper" yaml:"scraper"`
	Parser struct {
		InputFile     string        `json:"input_file" yaml:"input_file" env:"PARSER_INPUT_FILE" env-default:"data/inputs.txt"`
		Usernames     []string      `json:"usernames" yaml:"usernames" env:"PARSER_USERNAMES" env-separator:","`
		Concurrency   int           `json:"concurrency" yaml:"concurrency" env:"PARSER_CONCURRENCY" env-default:"1"`
		Schedule      string        `json:"schedule" yaml:"schedule" env:"PARSER_SCHEDULE" env-default:"0 */6 * * *"`
		MinInterval   time.Duration `json:"min_interval" yaml:"min_interval" env:"PARSER_MIN_INTERVAL" env-default:"0s" env-description:"minimum time between two parses of the same profile"`
		RetentionDays int           `json:"retention_days" yaml:"retention_days" env:"PARSER_RETENTION_DAYS" env-default:"0"`
		Timezone      string        `json:"timezone" yaml:"timezone" env:"PARSER_TIMEZONE" env-default:"UTC"`
	} `json:"parser" yaml:"parser"`
	Export struct {
		OutputDir string   `json:"output_dir" yaml:"output_dir" env:"EXPORT_OUTPUT_DIR" env-default:"data"`
		Formats   []string `json:"output_formats" yaml:"output_formats" env:"EXPORT_FORMATS" env-separator:"," env-default:"json,csv"`
	} `json:"export" yaml:"export"`
	Postgres struct {
		Port    int    `json:"port" yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `json:"host" yaml:"host" env:"POSTGRES_HOST" env-description:"record store is disabled when empty"`
		User    string `json:"user" yaml:"user" env:"POSTGRES_USER"`
		Pass    string `json:"pass" yaml:"pass" env:"POSTGRES_PASS"`
		Name    string `json:"name" yaml:"name" env:"POSTGRES_NAME"`
		SslMode string `json:"ssl_mode" yaml:"ssl_mode" env:"POSTGRES_SSL_MODE" env-default:"disable"`
	} `json:"postgres" yaml:"postgres"`
	Telegram struct {
		User  int64  `json:"user" yaml:"user" env:"TELEGRAM_USER"`
		Token string `json:"token" yaml:"token" env:"TELEGRAM_TOKEN" env-description:"notifications are disabled when empty"`
	} `json:"telegram" yaml:"telegram"`
}

// New loads the settings file named by CONFIG_PATH, or DefaultPath when it
// exists, and applies environment overrides.
func New() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}
	return Load(path)
}

// Load reads path (json, yaml, toml or env by extension) then the environment.
// An empty path reads the environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, describe(cfg, err)
		}
		return cfg, nil
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("settings file not found at %s", path)
	}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, describe(cfg, err)
	}
	return cfg, nil
}

func describe(cfg *Config, err error) error {
	help, _ := cleanenv.GetDescription(cfg, nil)
	return fmt.Errorf("failed to read configuration: %w\n%s", err, help)
}

// StoreEnabled reports whether a postgres record store is configured.
func (c *Config) StoreEnabled() bool {
	return c.Postgres.Host != ""
}

// NotifyEnabled reports whether run summaries are sent to telegram.
func (c *Config) NotifyEnabled() bool {
	return c.Telegram.Token != "" && c.Telegram.User != 0
}

// RequestTimeout converts the configured seconds to a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Scraper.Timeout * float64(time.Second))
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}
