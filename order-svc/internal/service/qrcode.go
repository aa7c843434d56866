package service

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
)

const sepayQRBaseURL = "https://qr.sepay.vn/img"

// DefaultQRGenerator encodes the link customers scan at their table.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(tableCode string) ([]byte, error) {
	qrData := fmt.Sprintf("%s/?table=%s", g.BaseURL, url.QueryEscape(tableCode))
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}

// TransferQRURL is the gateway-rendered VietQR image for a bank transfer.
func TransferQRURL(accountNumber, bankCode string, amount decimal.Decimal, content string) string {
	params := url.Values{}
	params.Set("acc", accountNumber)
	params.Set("bank", bankCode)
	params.Set("amount", strconv.FormatInt(amount.Round(0).IntPart(), 10))
	params.Set("des", content)
	params.Set("template", "compact")
	return sepayQRBaseURL + "?" + params.Encode()
}
