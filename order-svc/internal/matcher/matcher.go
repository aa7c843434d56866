// Package matcher finds order references in free-text transfer content.
package matcher

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindPaymentCode Kind = "payment_code"
	KindUUID        Kind = "uuid"
)

// PaymentCodePrefix starts every payment code: RAN + 4-char order code + 6 digits.
const PaymentCodePrefix = "RAN"

var (
	paymentCodeRe = regexp.MustCompile(`(?i)` + PaymentCodePrefix + `([A-Z0-9]{4})(\d{6})`)
	uuidRe        = regexp.MustCompile(`(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
)

type OrderRef struct {
	Kind  Kind
	Value string
}

// ExtractOrderRef returns the first payment code in content, or failing
// that the first UUID.
func ExtractOrderRef(content string) (OrderRef, bool) {
	if match := paymentCodeRe.FindStringSubmatch(content); match != nil {
		return OrderRef{Kind: KindPaymentCode, Value: strings.ToUpper(match[1])}, true
	}

	for _, candidate := range uuidRe.FindAllString(content, -1) {
		if id, err := uuid.Parse(candidate); err == nil {
			return OrderRef{Kind: KindUUID, Value: id.String()}, true
		}
	}

	return OrderRef{}, false
}

// OrderCode is the short code embedded in payment codes for an order id.
func OrderCode(orderID string) string {
	compact := strings.ReplaceAll(orderID, "-", "")
	if len(compact) > 4 {
		compact = compact[len(compact)-4:]
	}
	return strings.ToUpper(compact)
}

// PaymentCode builds the transfer content customers are asked to use,
// e.g. RANAB12123456.
func PaymentCode(orderID string, at time.Time) string {
	return fmt.Sprintf("%s%s%06d", PaymentCodePrefix, OrderCode(orderID), at.UnixMilli()%1_000_000)
}
