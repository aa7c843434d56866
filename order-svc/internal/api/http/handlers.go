package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"dine-easy/internal/telegram"
	"dine-easy/order-svc/internal/domain"
	"dine-easy/order-svc/internal/service"
)

// BotAdmin manages the bot behind the staff chat.
type BotAdmin interface {
	Status(ctx context.Context) (telegram.BotInfo, error)
	SetWebhook(ctx context.Context, url string) error
	DeleteWebhook(ctx context.Context) error
}

type Config struct {
	WebhookSecret      string
	SignatureRequired  bool
	SepayAPIKey        string
	AdminJWTSecret     string
	TelegramWebhookURL string
	Location           *time.Location
}

type Handler struct {
	Orders    service.OrderServiceInterface
	Customers service.CustomerServiceInterface
	Callbacks service.CallbackServiceInterface
	Payments  service.PaymentServiceInterface
	QR        service.QRGenerator
	Bot       BotAdmin
	Config    Config
	validate  *validator.Validate
}

func NewHandler(orders service.OrderServiceInterface, customers service.CustomerServiceInterface, callbacks service.CallbackServiceInterface, payments service.PaymentServiceInterface, qr service.QRGenerator, bot BotAdmin, cfg Config) *Handler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Handler{
		Orders:    orders,
		Customers: customers,
		Callbacks: callbacks,
		Payments:  payments,
		QR:        qr,
		Bot:       bot,
		Config:    cfg,
		validate:  newValidator(),
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/payment", h.selectPayment).Methods("POST")
	r.HandleFunc("/api/customers/visit", h.registerVisit).Methods("POST")
	r.HandleFunc("/api/tables/{tableCode}/qrcode", h.getTableQRCode).Methods("GET")

	r.HandleFunc("/api/order-status", h.recentStatusUpdates).Methods("GET")
	r.HandleFunc("/api/order-status/{id}", h.getOrderStatus).Methods("GET")

	r.HandleFunc("/api/webhook/telegram", h.telegramWebhook)
	r.HandleFunc("/api/webhook/bank", h.bankWebhook)
	r.HandleFunc("/api/webhook/sepay", h.sepayWebhook)

	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(AdminAuth(h.Config.AdminJWTSecret))
	admin.HandleFunc("/order-status", h.clearAllStatuses).Methods("DELETE")
	admin.HandleFunc("/order-status/{id}", h.clearStatus).Methods("DELETE")
	admin.HandleFunc("/telegram/status", h.telegramStatus).Methods("GET")
	admin.HandleFunc("/telegram/webhook", h.setTelegramWebhook).Methods("POST")
	admin.HandleFunc("/telegram/webhook", h.deleteTelegramWebhook).Methods("DELETE")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":                  "healthy",
		"service":                 "order-svc",
		"timestamp":               time.Now().Format(time.RFC3339),
		"webhookSecretConfigured": h.Config.WebhookSecret != "",
	}

	if h.Bot == nil {
		response["telegram"] = "not_configured"
	} else if info, err := h.Bot.Status(r.Context()); err != nil {
		response["telegram"] = "error"
		response["telegramError"] = err.Error()
	} else {
		response["telegram"] = "connected"
		response["bot"] = info
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "invalid order",
			"fields": invalidFields(err),
		})
		return
	}

	order, err := h.Orders.CreateOrder(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"orderId":     order.ID,
		"paymentCode": order.PaymentCode,
		"totalAmount": order.TotalAmount,
		"status":      order.Status,
	})
}

// registerVisit records a phone check-in at a table before ordering.
func (h *Handler) registerVisit(w http.ResponseWriter, r *http.Request) {
	var req domain.VisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "invalid visit",
			"fields": invalidFields(err),
		})
		return
	}

	customer, err := h.Customers.RegisterVisit(r.Context(), req.Phone, req.TableCode)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"customer":      customer,
		"isNewCustomer": customer.IsNew(),
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) selectPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Method domain.PaymentMethod `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	instructions, err := h.Orders.SelectPayment(r.Context(), mux.Vars(r)["id"], req.Method)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, instructions)
}

func (h *Handler) getTableQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.QR.Generate(mux.Vars(r)["tableCode"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) getOrderStatus(w http.ResponseWriter, r *http.Request) {
	view, err := h.Orders.GetStatus(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) recentStatusUpdates(w http.ResponseWriter, r *http.Request) {
	updates, err := h.Orders.RecentUpdates(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"updates": updates,
		"count":   len(updates),
	})
}

func (h *Handler) clearStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.Orders.ClearStatus(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "status cleared for order " + id})
}

func (h *Handler) clearAllStatuses(w http.ResponseWriter, r *http.Request) {
	if err := h.Orders.ClearAllStatuses(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "all cached statuses cleared"})
}

func (h *Handler) telegramStatus(w http.ResponseWriter, r *http.Request) {
	if h.Bot == nil {
		writeError(w, http.StatusServiceUnavailable, "telegram is not configured")
		return
	}
	info, err := h.Bot.Status(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *Handler) setTelegramWebhook(w http.ResponseWriter, r *http.Request) {
	if h.Bot == nil {
		writeError(w, http.StatusServiceUnavailable, "telegram is not configured")
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}
	if req.URL == "" {
		req.URL = h.Config.TelegramWebhookURL
	}

	err := h.Bot.SetWebhook(r.Context(), req.URL)
	if errors.Is(err, telegram.ErrNoWebhookURL) {
		writeError(w, http.StatusBadRequest, "webhook url is required")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "webhook set", "url": req.URL})
}

func (h *Handler) deleteTelegramWebhook(w http.ResponseWriter, r *http.Request) {
	if h.Bot == nil {
		writeError(w, http.StatusServiceUnavailable, "telegram is not configured")
		return
	}
	if err := h.Bot.DeleteWebhook(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "webhook deleted"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Warning: failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrStatusConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrMalformedCallback),
		errors.Is(err, service.ErrInvalidOrder),
		errors.Is(err, service.ErrInvalidPhone),
		errors.Is(err, service.ErrInvalidPaymentMethod):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("Error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("vnphone", func(fl validator.FieldLevel) bool {
		return domain.IsVietnamesePhone(fl.Field().String())
	})
	return v
}

func invalidFields(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}
	fields := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		namespace := fieldErr.Namespace()
		if _, field, found := strings.Cut(namespace, "."); found {
			namespace = field
		}
		fields = append(fields, namespace)
	}
	return fields
}
