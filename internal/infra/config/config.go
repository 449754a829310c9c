package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Data    DataConfig    `yaml:"data"`
	FAQ     FAQConfig     `yaml:"faq"`
	Admin   AdminConfig   `yaml:"admin"`
	Leads   LeadsConfig   `yaml:"leads"`
	Notify  NotifyConfig  `yaml:"notify"`
	Archive ArchiveConfig `yaml:"archive"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	CORSOrigins  []string        `yaml:"corsOrigins"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	Retry        RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// DataConfig locates the JSON documents served by the API.
type DataConfig struct {
	FAQPath       string        `yaml:"faqPath"`
	TariffsPath   string        `yaml:"tariffsPath"`
	Watch         bool          `yaml:"watch"`
	WatchDebounce time.Duration `yaml:"watchDebounce"`
}

// FAQConfig controls FAQ listing sizes and the trending store.
type FAQConfig struct {
	TrendingLimit int         `yaml:"trendingLimit"`
	PopularLimit  int         `yaml:"popularLimit"`
	RecentLimit   int         `yaml:"recentLimit"`
	Redis         RedisConfig `yaml:"redis"`
}

// RedisConfig contains connection information for the Valkey server.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// AdminConfig holds the single operator credential.
type AdminConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Username     string        `yaml:"username"`
	PasswordHash string        `yaml:"passwordHash"`
	Secret       string        `yaml:"secret"`
	TokenTTL     time.Duration `yaml:"tokenTtl"`
}

// LeadsConfig controls application persistence and notification delivery.
type LeadsConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
	Queue    QueueConfig    `yaml:"queue"`
	Workers  int            `yaml:"workers"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// QueueConfig selects the notification job queue.
type QueueConfig struct {
	Valkey bool   `yaml:"valkey"`
	Key    string `yaml:"key"`
}

// NotifyConfig configures the outbound notification channels.
type NotifyConfig struct {
	ChannelTimeout time.Duration  `yaml:"channelTimeout"`
	Email          EmailConfig    `yaml:"email"`
	Telegram       TelegramConfig `yaml:"telegram"`
	Sheets         SheetsConfig   `yaml:"sheets"`
}

// EmailConfig describes the SMTP relay.
type EmailConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`
}

// TelegramConfig describes the bot used for chat notifications.
type TelegramConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"baseUrl"`
	Token   string `yaml:"token"`
	ChatID  string `yaml:"chatId"`
}

// SheetsConfig describes the spreadsheet that collects application rows.
type SheetsConfig struct {
	Enabled         bool   `yaml:"enabled"`
	SpreadsheetID   string `yaml:"spreadsheetId"`
	Range           string `yaml:"range"`
	CredentialsFile string `yaml:"credentialsFile"`
}

// ArchiveConfig controls FAQ snapshot uploads to S3-compatible storage.
type ArchiveConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Prefix    string `yaml:"prefix"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	envString("HTTP_ADDRESS", &cfg.HTTP.Address)
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	envBool("HTTP_RATE_LIMIT_ENABLED", &cfg.HTTP.RateLimit.Enabled)
	envInt("HTTP_RATE_LIMIT_RPM", &cfg.HTTP.RateLimit.RequestsPerMinute)
	envInt("HTTP_RATE_LIMIT_BURST", &cfg.HTTP.RateLimit.Burst)
	envBool("HTTP_RETRY_ENABLED", &cfg.HTTP.Retry.Enabled)
	envInt("HTTP_RETRY_MAX_ATTEMPTS", &cfg.HTTP.Retry.MaxAttempts)
	envDuration("HTTP_RETRY_BASE_BACKOFF", &cfg.HTTP.Retry.BaseBackoff)

	envString("DATA_FAQ_PATH", &cfg.Data.FAQPath)
	envString("DATA_TARIFFS_PATH", &cfg.Data.TariffsPath)
	envBool("DATA_WATCH", &cfg.Data.Watch)

	envInt("FAQ_TRENDING_LIMIT", &cfg.FAQ.TrendingLimit)
	envBool("FAQ_REDIS_ENABLED", &cfg.FAQ.Redis.Enabled)
	envString("FAQ_REDIS_ADDR", &cfg.FAQ.Redis.Addr)

	envBool("ADMIN_ENABLED", &cfg.Admin.Enabled)
	envString("ADMIN_USERNAME", &cfg.Admin.Username)
	envString("ADMIN_PASSWORD_HASH", &cfg.Admin.PasswordHash)
	envString("ADMIN_SECRET", &cfg.Admin.Secret)
	envDuration("ADMIN_TOKEN_TTL", &cfg.Admin.TokenTTL)

	envString("LEADS_POSTGRES_DSN", &cfg.Leads.Postgres.DSN)
	if v := os.Getenv("LEADS_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Leads.Postgres.MaxConns = int32(parsed)
		}
	}
	envBool("LEADS_QUEUE_VALKEY", &cfg.Leads.Queue.Valkey)
	envInt("LEADS_WORKERS", &cfg.Leads.Workers)

	envBool("NOTIFY_EMAIL_ENABLED", &cfg.Notify.Email.Enabled)
	envString("SMTP_HOST", &cfg.Notify.Email.Host)
	envInt("SMTP_PORT", &cfg.Notify.Email.Port)
	envString("SMTP_USERNAME", &cfg.Notify.Email.Username)
	envString("SMTP_PASSWORD", &cfg.Notify.Email.Password)
	envString("SMTP_FROM", &cfg.Notify.Email.From)
	if v := os.Getenv("SMTP_TO"); v != "" {
		cfg.Notify.Email.To = splitList(v)
	}
	envBool("NOTIFY_TELEGRAM_ENABLED", &cfg.Notify.Telegram.Enabled)
	envString("TELEGRAM_BOT_TOKEN", &cfg.Notify.Telegram.Token)
	envString("TELEGRAM_CHAT_ID", &cfg.Notify.Telegram.ChatID)
	envBool("NOTIFY_SHEETS_ENABLED", &cfg.Notify.Sheets.Enabled)
	envString("SHEETS_SPREADSHEET_ID", &cfg.Notify.Sheets.SpreadsheetID)
	envString("SHEETS_CREDENTIALS_FILE", &cfg.Notify.Sheets.CredentialsFile)

	envBool("ARCHIVE_ENABLED", &cfg.Archive.Enabled)
	envString("ARCHIVE_ENDPOINT", &cfg.Archive.Endpoint)
	envString("ARCHIVE_ACCESS_KEY", &cfg.Archive.AccessKey)
	envString("ARCHIVE_SECRET_KEY", &cfg.Archive.SecretKey)
	envString("ARCHIVE_BUCKET", &cfg.Archive.Bucket)
	envString("ARCHIVE_REGION", &cfg.Archive.Region)
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func envDuration(key string, dst *time.Duration) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			CORSOrigins:  []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/metrics",
				},
			},
		},
		Data: DataConfig{
			FAQPath:       "data/faq.json",
			TariffsPath:   "data/tariffs.json",
			Watch:         true,
			WatchDebounce: 250 * time.Millisecond,
		},
		FAQ: FAQConfig{
			TrendingLimit: 10,
			PopularLimit:  5,
			RecentLimit:   5,
			Redis: RedisConfig{
				Prefix: "faqdesk",
			},
		},
		Admin: AdminConfig{
			Username: "admin",
			TokenTTL: 12 * time.Hour,
		},
		Leads: LeadsConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
			Queue: QueueConfig{
				Key: "faqdesk:jobs",
			},
			Workers: 4,
		},
		Notify: NotifyConfig{
			ChannelTimeout: 15 * time.Second,
			Email: EmailConfig{
				Port: 587,
			},
			Telegram: TelegramConfig{
				BaseURL: "https://api.telegram.org",
			},
			Sheets: SheetsConfig{
				Range: "Applications!A:G",
			},
		},
		Archive: ArchiveConfig{
			Region: "auto",
			Prefix: "faq-snapshots",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	if strings.TrimSpace(c.Data.FAQPath) == "" {
		return errors.New("data.faqPath cannot be empty")
	}
	if strings.TrimSpace(c.Data.TariffsPath) == "" {
		return errors.New("data.tariffsPath cannot be empty")
	}
	if c.Data.WatchDebounce < 0 {
		return errors.New("data.watchDebounce cannot be negative")
	}
	if c.FAQ.TrendingLimit < 0 || c.FAQ.PopularLimit < 0 || c.FAQ.RecentLimit < 0 {
		return errors.New("faq limits cannot be negative")
	}
	if (c.FAQ.Redis.Enabled || c.Leads.Queue.Valkey) && strings.TrimSpace(c.FAQ.Redis.Addr) == "" {
		return errors.New("faq.redis.addr cannot be empty when valkey is used")
	}
	if c.Admin.Enabled {
		if strings.TrimSpace(c.Admin.Username) == "" {
			return errors.New("admin.username cannot be empty when admin is enabled")
		}
		if strings.TrimSpace(c.Admin.PasswordHash) == "" {
			return errors.New("admin.passwordHash cannot be empty when admin is enabled")
		}
		if len(c.Admin.Secret) < 16 {
			return errors.New("admin.secret must be at least 16 characters")
		}
	}
	if c.Leads.Workers < 0 {
		return errors.New("leads.workers cannot be negative")
	}
	if e := c.Notify.Email; e.Enabled {
		if e.Host == "" || e.From == "" || len(e.To) == 0 {
			return errors.New("notify.email requires host, from and to")
		}
	}
	if t := c.Notify.Telegram; t.Enabled && (t.Token == "" || t.ChatID == "") {
		return errors.New("notify.telegram requires token and chatId")
	}
	if s := c.Notify.Sheets; s.Enabled && (s.SpreadsheetID == "" || s.CredentialsFile == "") {
		return errors.New("notify.sheets requires spreadsheetId and credentialsFile")
	}
	if c.Archive.Enabled && strings.TrimSpace(c.Archive.Bucket) == "" {
		return errors.New("archive.bucket cannot be empty when archive is enabled")
	}
	return nil
}
