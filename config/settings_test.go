package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "BALANCE_NOTIFICATION_CHAT_ID", "WEBHOOK_SECRET",
		"SUSPICIOUS_AMOUNT", "SUSPICIOUS_KEYWORDS", "STATUS_CACHE_TTL", "TIMEZONE",
	} {
		t.Setenv(key, "")
	}

	settings := Load()

	assert.Equal(t, ":8080", settings.HTTPAddr)
	assert.Equal(t, time.Hour, settings.StatusCacheTTL)
	assert.True(t, settings.Suspicion.LargeAmount.Equal(decimal.NewFromInt(10_000_000)))
	assert.Equal(t, 22, settings.Suspicion.NightStart)
	assert.Equal(t, 6, settings.Suspicion.NightEnd)
	assert.Contains(t, settings.Suspicion.Keywords, "scam")
	assert.Equal(t, "Asia/Ho_Chi_Minh", settings.Location.String())
	assert.Empty(t, settings.Webhook.Secret)
	assert.False(t, settings.Webhook.SignatureRequired)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TELEGRAM_CHAT_ID", "-4852894219")
	t.Setenv("BALANCE_NOTIFICATION_CHAT_ID", "")
	t.Setenv("SUSPICIOUS_KEYWORDS", " refund , chargeback ,,")
	t.Setenv("SUSPICIOUS_AMOUNT", "5000000")
	t.Setenv("STATUS_CACHE_TTL", "15m")
	t.Setenv("WEBHOOK_SIGNATURE_REQUIRED", "true")
	t.Setenv("PUBLIC_BASE_URL", "https://menu.example.vn/")

	settings := Load()

	assert.Equal(t, int64(-4852894219), settings.Telegram.OrderChatID)
	assert.Equal(t, settings.Telegram.OrderChatID, settings.Telegram.BalanceChatID)
	assert.Equal(t, []string{"refund", "chargeback"}, settings.Suspicion.Keywords)
	assert.True(t, settings.Suspicion.LargeAmount.Equal(decimal.NewFromInt(5_000_000)))
	assert.Equal(t, 15*time.Minute, settings.StatusCacheTTL)
	assert.True(t, settings.Webhook.SignatureRequired)
	assert.Equal(t, "https://menu.example.vn", settings.PublicBaseURL)
}
