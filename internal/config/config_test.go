package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bfmr_bot/internal/config"
)

func TestLoad(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("BOT_ALLOWED_USERS", "1,2")

	rq := require.New(t)

	cfg, err := config.Load()
	rq.NoError(err)
	rq.Equal("123:abc", cfg.Bot.Token)
	rq.Equal([]int64{1, 2}, cfg.Bot.AllowedUsers)
	rq.False(cfg.Bot.Webhook())
	rq.Equal("https://api.bfmr.com", cfg.BFMR.BaseURL)
	rq.Equal(20*time.Second, cfg.BFMR.Timeout)
	rq.Equal(50, cfg.BFMR.PageSize)
	rq.Equal(config.SessionBackendMemory, cfg.Session.Backend)
	rq.Equal(config.CredentialsBackendKV, cfg.Session.CredentialsBackend)
	rq.Equal(10*time.Minute, cfg.Session.SetupDraftTTL)
	rq.False(cfg.Watcher.Enabled())
}

func TestWebhookEndpoint(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("BOT_WEBHOOK_URL", "https://bot.example.com/")
	t.Setenv("BOT_WEBHOOK_SECRET", "s3cret")

	rq := require.New(t)

	cfg, err := config.Load()
	rq.NoError(err)
	rq.True(cfg.Bot.Webhook())
	rq.Equal("https://bot.example.com/telegram/webhook", cfg.Bot.WebhookEndpoint())
}

func TestLoadInvalid(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing token",
			env:  map[string]string{"BOT_TOKEN": ""},
		},
		{
			name: "unknown session backend",
			env:  map[string]string{"SESSION_BACKEND": "etcd"},
		},
		{
			name: "postgres without dsn",
			env:  map[string]string{"SESSION_CREDENTIALS_BACKEND": "postgres", "PG_DSN": ""},
		},
		{
			name: "webhook without secret",
			env:  map[string]string{"BOT_WEBHOOK_URL": "https://example.com", "BOT_WEBHOOK_SECRET": ""},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("BOT_TOKEN", "123:abc")

			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			require.Error(t, err)
		})
	}
}
