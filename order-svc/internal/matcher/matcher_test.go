package matcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractOrderRef(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected OrderRef
		found    bool
	}{
		{
			name:     "payment_code_inside_bank_text",
			content:  "MBVCB.5012.CK RANAB12123456 FT24015",
			expected: OrderRef{Kind: KindPaymentCode, Value: "AB12"},
			found:    true,
		},
		{
			name:     "payment_code_lower_case",
			content:  "chuyen khoan ranab12123456",
			expected: OrderRef{Kind: KindPaymentCode, Value: "AB12"},
			found:    true,
		},
		{
			name:     "payment_code_wins_over_uuid",
			content:  "9b2f3c1e-8d4a-4f6b-a1c2-3e4d5f6a7b8c RAN7B8C654321",
			expected: OrderRef{Kind: KindPaymentCode, Value: "7B8C"},
			found:    true,
		},
		{
			name:     "uuid_fallback",
			content:  "thanh toan don 9B2F3C1E-8D4A-4F6B-A1C2-3E4D5F6A7B8C",
			expected: OrderRef{Kind: KindUUID, Value: "9b2f3c1e-8d4a-4f6b-a1c2-3e4d5f6a7b8c"},
			found:    true,
		},
		{name: "code_without_digits", content: "RANAB12", found: false},
		{name: "nothing", content: "tien an trua", found: false},
		{name: "empty", content: "", found: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			ref, found := ExtractOrderRef(testCase.content)
			assert.Equal(t, testCase.found, found)
			assert.Equal(t, testCase.expected, ref)
		})
	}
}

func TestOrderCode(t *testing.T) {
	assert.Equal(t, "7B8C", OrderCode("9b2f3c1e-8d4a-4f6b-a1c2-3e4d5f6a7b8c"))
	assert.Equal(t, "AB", OrderCode("ab"))
}

func TestPaymentCodeRoundTrip(t *testing.T) {
	orderID := "9b2f3c1e-8d4a-4f6b-a1c2-3e4d5f6aab12"
	code := PaymentCode(orderID, time.UnixMilli(1_705_300_123_456))

	assert.Equal(t, "RANAB12123456", code)
	ref, found := ExtractOrderRef("CK " + code)
	assert.True(t, found)
	assert.Equal(t, OrderRef{Kind: KindPaymentCode, Value: "AB12"}, ref)
}
