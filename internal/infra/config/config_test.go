package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
data:
  faqPath: /srv/faq.json
faq:
  trendingLimit: 7
notify:
  telegram:
    enabled: true
    token: file-token
    chatId: "42"
`), 0o644))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("HTTP_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("ADMIN_TOKEN_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, "/srv/faq.json", cfg.Data.FAQPath)
	require.Equal(t, "data/tariffs.json", cfg.Data.TariffsPath)
	require.Equal(t, 7, cfg.FAQ.TrendingLimit)
	require.Equal(t, "env-token", cfg.Notify.Telegram.Token)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
	require.Equal(t, 30*time.Minute, cfg.Admin.TokenTTL)
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Admin.Enabled = true
	require.ErrorContains(t, cfg.Validate(), "admin.passwordHash")
	cfg.Admin.PasswordHash = "$2a$10$hash"
	cfg.Admin.Secret = "short"
	require.ErrorContains(t, cfg.Validate(), "admin.secret")
	cfg.Admin.Secret = "0123456789abcdef"
	require.NoError(t, cfg.Validate())

	cfg.Leads.Queue.Valkey = true
	require.ErrorContains(t, cfg.Validate(), "faq.redis.addr")
	cfg.FAQ.Redis.Addr = "localhost:6379"
	require.NoError(t, cfg.Validate())

	cfg.Archive.Enabled = true
	require.ErrorContains(t, cfg.Validate(), "archive.bucket")
}
