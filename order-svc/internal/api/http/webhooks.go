package httpapi

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"dine-easy/internal/notify"
	"dine-easy/order-svc/internal/domain"
)

const maxWebhookBody = 1 << 20

var (
	errMissingSignature = errors.New("missing webhook signature")
	errBadSignature     = errors.New("invalid webhook signature")
)

var bankRequiredFields = []string{"transactionId", "amount", "content", "transactionDate", "type"}

// telegramWebhook receives bot updates. Only button presses are acted on.
func (h *Handler) telegramWebhook(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid update")
		return
	}
	if update.CallbackQuery == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "message": "update ignored"})
		return
	}

	callback := domain.CallbackQuery{
		ID:   update.CallbackQuery.ID,
		Data: update.CallbackQuery.Data,
	}
	if from := update.CallbackQuery.From; from != nil {
		callback.ActorID = from.ID
		callback.ActorName = strings.TrimSpace(from.FirstName + " " + from.LastName)
		if callback.ActorName == "" {
			callback.ActorName = from.UserName
		}
	}
	if msg := update.CallbackQuery.Message; msg != nil {
		callback.MessageID = msg.MessageID
		if msg.Chat != nil {
			callback.ChatID = msg.Chat.ID
		}
	}

	message, err := h.Callbacks.HandleCallback(r.Context(), callback)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "message": message})
}

// bankWebhook accepts the generic bank notification format.
func (h *Handler) bankWebhook(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}
	body, ok := h.readSignedBody(w, r)
	if !ok {
		return
	}

	tx, missing, invalid := h.parseBankPayload(body)
	if len(missing) > 0 || len(invalid) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":    "invalid transaction payload",
			"required": bankRequiredFields,
			"missing":  missing,
			"invalid":  invalid,
		})
		return
	}

	h.processTransaction(w, r, tx)
}

type sepayPayload struct {
	ID              int64            `json:"id" validate:"required"`
	Gateway         string           `json:"gateway"`
	TransactionDate string           `json:"transactionDate" validate:"required"`
	AccountNumber   string           `json:"accountNumber"`
	Code            *string          `json:"code"`
	Content         string           `json:"content"`
	TransferType    string           `json:"transferType" validate:"required,oneof=in out"`
	TransferAmount  decimal.Decimal  `json:"transferAmount"`
	Accumulated     *decimal.Decimal `json:"accumulated"`
	SubAccount      *string          `json:"subAccount"`
	ReferenceCode   string           `json:"referenceCode"`
	Description     string           `json:"description"`
}

// sepayWebhook accepts SePay transaction notifications.
func (h *Handler) sepayWebhook(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}
	if key := h.Config.SepayAPIKey; key != "" && r.Header.Get("Authorization") != "Apikey "+key {
		writeError(w, http.StatusUnauthorized, "invalid api key")
		return
	}
	body, ok := h.readSignedBody(w, r)
	if !ok {
		return
	}

	var payload sepayPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	invalid := []string{}
	if err := h.validate.Struct(payload); err != nil {
		invalid = append(invalid, invalidFields(err)...)
	}
	if !payload.TransferAmount.IsPositive() {
		invalid = append(invalid, "transferAmount")
	}
	occurredAt, err := notify.ParseTime(payload.TransactionDate, h.Config.Location)
	if err != nil && payload.TransactionDate != "" {
		invalid = append(invalid, "transactionDate")
	}
	if len(invalid) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid transaction payload",
			"invalid": invalid,
		})
		return
	}

	content := payload.Content
	if payload.Code != nil && *payload.Code != "" && !strings.Contains(content, *payload.Code) {
		content = strings.TrimSpace(*payload.Code + " " + content)
	}
	if content == "" {
		content = payload.Description
	}

	direction := domain.DirectionIn
	if payload.TransferType == "out" {
		direction = domain.DirectionOut
	}

	h.processTransaction(w, r, domain.Transaction{
		ID:            fmt.Sprintf("%d", payload.ID),
		Source:        "sepay",
		Gateway:       payload.Gateway,
		BankName:      payload.Gateway,
		AccountNumber: payload.AccountNumber,
		Amount:        payload.TransferAmount,
		Content:       content,
		Direction:     direction,
		OccurredAt:    occurredAt,
		ReferenceCode: payload.ReferenceCode,
		Accumulated:   payload.Accumulated,
	})
}

func (h *Handler) processTransaction(w http.ResponseWriter, r *http.Request, tx domain.Transaction) {
	result, err := h.Payments.ProcessTransaction(r.Context(), tx)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"message":       result.Message,
		"transactionId": tx.ID,
		"timestamp":     time.Now().Format(time.RFC3339),
		"result":        result,
	})
}

// readSignedBody reads the request body and checks its HMAC signature when
// a webhook secret is configured.
func (h *Handler) readSignedBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return nil, false
	}
	if err := VerifySignature(h.Config.WebhookSecret, h.Config.SignatureRequired, signatureHeader(r), body); err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return nil, false
	}
	return body, true
}

func signatureHeader(r *http.Request) string {
	if sig := r.Header.Get("X-Webhook-Signature"); sig != "" {
		return sig
	}
	return r.Header.Get("X-Signature")
}

// VerifySignature checks a hex HMAC-SHA256 of body, optionally prefixed with
// "sha256=". Without a secret every request passes. Without a signature the
// request passes unless required is set.
func VerifySignature(secret string, required bool, signature string, body []byte) error {
	if secret == "" {
		return nil
	}
	if signature == "" {
		if required {
			return errMissingSignature
		}
		return nil
	}

	got, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(signature), "sha256="))
	if err != nil {
		return errBadSignature
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return errBadSignature
	}
	return nil
}

// Sign returns the signature header value for body.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func (h *Handler) parseBankPayload(body []byte) (domain.Transaction, []string, []string) {
	missing, invalid := []string{}, []string{}

	var payload map[string]interface{}
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil || payload == nil {
		return domain.Transaction{}, bankRequiredFields, invalid
	}

	for _, field := range bankRequiredFields {
		if value, ok := payload[field]; !ok || value == nil || value == "" {
			missing = append(missing, field)
		}
	}

	tx := domain.Transaction{
		Source:        "bank",
		Gateway:       stringField(payload, "gateway"),
		BankName:      stringField(payload, "bankName"),
		AccountNumber: stringField(payload, "accountNumber"),
		Content:       stringField(payload, "content"),
		ReferenceCode: stringField(payload, "referenceCode"),
	}

	switch id := payload["transactionId"].(type) {
	case string:
		tx.ID = id
	case json.Number:
		tx.ID = id.String()
	case nil:
	default:
		invalid = append(invalid, "transactionId")
	}

	if raw, ok := payload["amount"]; ok && raw != nil {
		number, isNumber := raw.(json.Number)
		amount, err := decimal.NewFromString(number.String())
		if !isNumber || err != nil || !amount.IsPositive() {
			invalid = append(invalid, "amount")
		} else {
			tx.Amount = amount
		}
	}

	if raw, ok := payload["accumulated"].(json.Number); ok {
		if accumulated, err := decimal.NewFromString(raw.String()); err == nil {
			tx.Accumulated = &accumulated
		}
	}

	if raw, ok := payload["transactionDate"]; ok && raw != nil && raw != "" {
		date, isString := raw.(string)
		occurredAt, err := notify.ParseTime(date, h.Config.Location)
		if !isString || err != nil {
			invalid = append(invalid, "transactionDate")
		} else {
			tx.OccurredAt = occurredAt
		}
	}

	if raw, ok := payload["type"]; ok && raw != nil && raw != "" {
		switch raw {
		case "money_in":
			tx.Direction = domain.DirectionIn
		case "money_out":
			tx.Direction = domain.DirectionOut
		default:
			invalid = append(invalid, "type")
		}
	}

	return tx, missing, invalid
}

func stringField(payload map[string]interface{}, key string) string {
	value, _ := payload[key].(string)
	return value
}

func allowPost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodPost {
		return true
	}
	w.Header().Set("Allow", http.MethodPost)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	return false
}
