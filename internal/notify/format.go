package notify

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	MaxMessageLength = 4096
	ellipsis         = "..."
	closeBold        = "</b>"
	dateTimeLayout   = "02/01/2006 15:04:05"
)

var (
	vndPrinter     = message.NewPrinter(language.Vietnamese)
	placeholderRe  = regexp.MustCompile(`\{(\w+)\}`)
	htmlEscaper    = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&#39;")
	inputDateTimes = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02"}
)

// FormatCurrency renders an amount in Vietnamese dong, e.g. "285.000 ₫".
func FormatCurrency(value any) string {
	amount, ok := toDecimal(value)
	if !ok {
		return EscapeText(stringValue(value))
	}
	return vndPrinter.Sprintf("%d ₫", amount.Round(0).IntPart())
}

func FormatDateTime(value any, location *time.Location) string {
	if location == nil {
		location = time.UTC
	}
	switch v := value.(type) {
	case time.Time:
		return v.In(location).Format(dateTimeLayout)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.In(location).Format(dateTimeLayout)
	}

	raw := stringValue(value)
	if parsed, err := ParseTime(raw, location); err == nil {
		return parsed.In(location).Format(dateTimeLayout)
	}
	return EscapeText(raw)
}

// ParseTime accepts the timestamp layouts bank and gateway payloads use.
// Layouts without a zone are read in location.
func ParseTime(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range inputDateTimes {
		if parsed, err := time.ParseInLocation(layout, raw, location); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", raw)
}

// FormatPhone groups ten-digit numbers as "0912 345 678".
func FormatPhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	if len(digits) == 10 {
		return digits[:4] + " " + digits[4:7] + " " + digits[7:]
	}
	return EscapeText(phone)
}

func EscapeText(text string) string {
	return htmlEscaper.Replace(text)
}

// Truncate caps text at MaxMessageLength runes, ending with "..." when cut.
// The cut never splits an HTML entity or tag and closes a bold run it
// interrupts.
func Truncate(text string) string {
	if utf8.RuneCountInString(text) <= MaxMessageLength {
		return text
	}
	limit := MaxMessageLength - utf8.RuneCountInString(ellipsis)
	cut := cutMarkup(text, limit)
	if openBold(cut) {
		cut = cutMarkup(cut, limit-utf8.RuneCountInString(closeBold))
		if openBold(cut) {
			cut += closeBold
		}
	}
	return cut + ellipsis
}

// cutMarkup keeps at most n runes of text, backing off to before a
// trailing entity or tag that would be left open.
func cutMarkup(text string, n int) string {
	if runes := []rune(text); len(runes) > n {
		text = string(runes[:n])
	}
	i := strings.LastIndexAny(text, "&<")
	if i < 0 {
		return text
	}
	terminator := ">"
	if text[i] == '&' {
		terminator = ";"
	}
	if !strings.Contains(text[i:], terminator) {
		text = text[:i]
	}
	return text
}

func openBold(text string) bool {
	return strings.Count(text, "<b>") > strings.Count(text, closeBold)
}

// ReplaceVariables substitutes {key} with data[key]; unknown or empty
// keys keep the placeholder.
func ReplaceVariables(template string, data Data) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
		key := match[1 : len(match)-1]
		if value := stringValue(data[key]); value != "" {
			return value
		}
		return match
	})
}

func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, false
		}
		return *v, true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case float64:
		return decimal.NewFromFloat(v), true
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(v))
		return parsed, err == nil
	}
	return decimal.Zero, false
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
