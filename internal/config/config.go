package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	Log      Log
	Bot      Bot
	BFMR     BFMR
	Session  Session
	Redis    Redis
	Postgres Postgres
	Server   Server
	Watcher  Watcher
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"bfmr-bot"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

type Bot struct {
	Token         string        `env:"BOT_TOKEN,notEmpty" json:"-"`
	AllowedUsers  []int64       `env:"BOT_ALLOWED_USERS" envSeparator:","`
	WebhookURL    string        `env:"BOT_WEBHOOK_URL"`
	WebhookPath   string        `env:"BOT_WEBHOOK_PATH" envDefault:"/telegram/webhook"`
	WebhookSecret string        `env:"BOT_WEBHOOK_SECRET" json:"-"`
	PromoURL      string        `env:"BOT_PROMO_URL" envDefault:"https://buyinggrouppro.com"`
	UpdateTimeout time.Duration `env:"BOT_UPDATE_TIMEOUT" envDefault:"60s"`
	PollTimeout   int           `env:"BOT_POLL_TIMEOUT" envDefault:"60"`
	Debug         bool          `env:"BOT_DEBUG" envDefault:"false"`
}

// Webhook: обновления приходят через HTTP, иначе long polling.
func (b Bot) Webhook() bool {
	return b.WebhookURL != ""
}

// WebhookEndpoint — публичный адрес, который регистрируется в Telegram.
func (b Bot) WebhookEndpoint() string {
	return strings.TrimRight(b.WebhookURL, "/") + b.WebhookPath
}

type BFMR struct {
	BaseURL        string        `env:"BFMR_BASE_URL" envDefault:"https://api.bfmr.com"`
	Timeout        time.Duration `env:"BFMR_TIMEOUT" envDefault:"20s"`
	PageSize       int           `env:"BFMR_PAGE_SIZE" envDefault:"50"`
	LogFieldMaxLen int           `env:"BFMR_LOG_BODY_LIMIT" envDefault:"2048"`
}

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"

	CredentialsBackendKV       = "kv"
	CredentialsBackendPostgres = "postgres"
)

type Session struct {
	Backend            string        `env:"SESSION_BACKEND" envDefault:"memory"`
	CredentialsBackend string        `env:"SESSION_CREDENTIALS_BACKEND" envDefault:"kv"`
	KeyPrefix          string        `env:"SESSION_KEY_PREFIX" envDefault:"bfmr_bot:"`
	SetupDraftTTL      time.Duration `env:"SESSION_SETUP_TTL" envDefault:"10m"`
	PendingTTL         time.Duration `env:"SESSION_PENDING_TTL" envDefault:"30m"`
	BrowseTTL          time.Duration `env:"SESSION_BROWSE_TTL" envDefault:"1h"`
}

type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" json:"-"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type Server struct {
	WebhookAddr     string        `env:"SERVER_WEBHOOK_ADDR" envDefault:":8080"`
	ProbeAddr       string        `env:"SERVER_PROBE_ADDR" envDefault:":8081"`
	MetricsAddr     string        `env:"SERVER_METRICS_ADDR" envDefault:":9090"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Watcher — фоновая рассылка новых выгодных сделок в один чат.
type Watcher struct {
	ChatID    int64         `env:"WATCH_CHAT_ID"`
	APIKey    string        `env:"WATCH_API_KEY" json:"-"`
	APISecret string        `env:"WATCH_API_SECRET" json:"-"`
	MinProfit float64       `env:"WATCH_MIN_PROFIT" envDefault:"0"`
	Interval  time.Duration `env:"WATCH_INTERVAL" envDefault:"5m"`
	SeenTTL   time.Duration `env:"WATCH_SEEN_TTL" envDefault:"24h"`
}

func (w Watcher) Enabled() bool {
	return w.ChatID != 0 && w.APIKey != "" && w.APISecret != ""
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := config.validate(); err != nil {
		return Config{}, fmt.Errorf("config.validate: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	c.Session.Backend = strings.ToLower(strings.TrimSpace(c.Session.Backend))
	c.Session.CredentialsBackend = strings.ToLower(strings.TrimSpace(c.Session.CredentialsBackend))

	switch c.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.Session.Backend)
	}

	switch c.Session.CredentialsBackend {
	case CredentialsBackendKV:
	case CredentialsBackendPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("PG_DSN is required for SESSION_CREDENTIALS_BACKEND=%s", CredentialsBackendPostgres)
		}
	default:
		return fmt.Errorf("unknown SESSION_CREDENTIALS_BACKEND %q", c.Session.CredentialsBackend)
	}

	if c.Bot.Webhook() && c.Bot.WebhookSecret == "" {
		return fmt.Errorf("BOT_WEBHOOK_SECRET is required with BOT_WEBHOOK_URL")
	}

	return nil
}
