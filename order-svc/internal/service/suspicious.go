package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"dine-easy/config"
	"dine-easy/internal/notify"
	"dine-easy/order-svc/internal/domain"
)

// SuspicionRules flags transfers staff should look at twice.
type SuspicionRules struct {
	LargeAmount decimal.Decimal
	NightStart  int
	NightEnd    int
	Keywords    []string
	Location    *time.Location
}

func NewSuspicionRules(cfg config.Suspicion, location *time.Location) SuspicionRules {
	if location == nil {
		location = time.UTC
	}
	keywords := make([]string, 0, len(cfg.Keywords))
	for _, keyword := range cfg.Keywords {
		if keyword = strings.TrimSpace(keyword); keyword != "" {
			keywords = append(keywords, strings.ToLower(keyword))
		}
	}
	return SuspicionRules{
		LargeAmount: cfg.LargeAmount,
		NightStart:  cfg.NightStart,
		NightEnd:    cfg.NightEnd,
		Keywords:    keywords,
		Location:    location,
	}
}

// Classify returns one reason per rule the transaction trips.
func (r SuspicionRules) Classify(tx domain.Transaction) []string {
	var reasons []string

	if r.LargeAmount.IsPositive() && tx.Amount.GreaterThan(r.LargeAmount) {
		reasons = append(reasons, "large amount over "+notify.FormatCurrency(r.LargeAmount))
	}

	if !tx.OccurredAt.IsZero() && r.isNight(tx.OccurredAt) {
		reasons = append(reasons, fmt.Sprintf("unusual hour %s", tx.OccurredAt.In(r.location()).Format("15:04")))
	}

	content := strings.ToLower(tx.Content)
	for _, keyword := range r.Keywords {
		if strings.Contains(content, keyword) {
			reasons = append(reasons, fmt.Sprintf("content contains %q", keyword))
			break
		}
	}

	return reasons
}

func (r SuspicionRules) isNight(at time.Time) bool {
	hour := at.In(r.location()).Hour()
	if r.NightStart > r.NightEnd {
		return hour >= r.NightStart || hour <= r.NightEnd
	}
	return hour >= r.NightStart && hour <= r.NightEnd
}

func (r SuspicionRules) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}
