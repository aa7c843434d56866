package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
)

const (
	TopicOrderStatus      = "order-status"
	TopicBankTransactions = "bank-transactions"
)

type Telegram struct {
	BotToken       string
	OrderChatID    int64
	BalanceChatID  int64
	WebhookURL     string
	APIEndpoint    string
	RequestTimeout time.Duration
}

type Webhook struct {
	Secret            string
	SignatureRequired bool
	SepayAPIKey       string
}

type Bank struct {
	Code          string
	Name          string
	AccountNumber string
	AccountName   string
}

type Suspicion struct {
	LargeAmount decimal.Decimal
	NightStart  int
	NightEnd    int
	Keywords    []string
}

type Settings struct {
	HTTPAddr       string
	PublicBaseURL  string
	StatusCache    string
	StatusCacheTTL time.Duration
	Location       *time.Location
	AdminJWTSecret string

	Telegram  Telegram
	Webhook   Webhook
	Bank      Bank
	Suspicion Suspicion

	LowBalanceThreshold decimal.Decimal
	LedgerRetentionDays int
}

var defaultKeywords = []string{
	"hack", "fraud", "scam", "test", "fake",
	"phishing", "spam", "virus", "malware",
	"lừa đảo", "giả mạo",
}

// Load reads settings from the environment. Absent values fall back to
// defaults or disable the feature that needs them.
func Load() Settings {
	location, err := time.LoadLocation(getEnv("TIMEZONE", "Asia/Ho_Chi_Minh"))
	if err != nil {
		log.Printf("Warning: unknown TIMEZONE, using UTC: %v", err)
		location = time.UTC
	}

	settings := Settings{
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:5173"), "/"),
		StatusCache:    getEnv("STATUS_CACHE", "memory"),
		StatusCacheTTL: getDuration("STATUS_CACHE_TTL", time.Hour),
		Location:       location,
		AdminJWTSecret: os.Getenv("ADMIN_JWT_SECRET"),
		Telegram: Telegram{
			BotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
			OrderChatID:    getInt64("TELEGRAM_CHAT_ID", 0),
			WebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
			APIEndpoint:    os.Getenv("TELEGRAM_API_ENDPOINT"),
			RequestTimeout: getDuration("TELEGRAM_TIMEOUT", 10*time.Second),
		},
		Webhook: Webhook{
			Secret:            os.Getenv("WEBHOOK_SECRET"),
			SignatureRequired: getBool("WEBHOOK_SIGNATURE_REQUIRED", false),
			SepayAPIKey:       os.Getenv("SEPAY_API_KEY"),
		},
		Bank: Bank{
			Code:          getEnv("SEPAY_BANK_CODE", "MB"),
			Name:          getEnv("SEPAY_BANK_NAME", "MB Bank"),
			AccountNumber: os.Getenv("SEPAY_ACCOUNT_NUMBER"),
			AccountName:   os.Getenv("SEPAY_ACCOUNT_NAME"),
		},
		Suspicion: Suspicion{
			LargeAmount: getDecimal("SUSPICIOUS_AMOUNT", decimal.NewFromInt(10_000_000)),
			NightStart:  getInt("SUSPICIOUS_HOURS_START", 22),
			NightEnd:    getInt("SUSPICIOUS_HOURS_END", 6),
			Keywords:    getList("SUSPICIOUS_KEYWORDS", defaultKeywords),
		},
		LowBalanceThreshold: getDecimal("LOW_BALANCE_THRESHOLD", decimal.NewFromInt(1_000_000)),
		LedgerRetentionDays: getInt("LEDGER_RETENTION_DAYS", 7),
	}
	settings.Telegram.BalanceChatID = getInt64("BALANCE_NOTIFICATION_CHAT_ID", settings.Telegram.OrderChatID)

	return settings
}

// Warn logs every degraded feature once at startup.
func (s Settings) Warn() {
	if s.Telegram.BotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set, staff notifications are disabled")
	}
	if s.Telegram.OrderChatID == 0 {
		log.Println("Warning: TELEGRAM_CHAT_ID not set, order tickets cannot be delivered")
	}
	if s.Webhook.Secret == "" {
		log.Println("WARNING: WEBHOOK_SECRET is not configured. Bank webhook signatures are NOT verified; anyone who can reach the webhook can confirm payments. Set WEBHOOK_SECRET in production.")
	}
	if s.AdminJWTSecret == "" {
		log.Println("Warning: ADMIN_JWT_SECRET not set, admin routes are disabled")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getInt64(key string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	value, err := decimal.NewFromString(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
