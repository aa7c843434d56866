package service

import (
	"errors"

	"dine-easy/order-svc/internal/domain"
)

var (
	ErrOrderNotFound        = domain.ErrOrderNotFound
	ErrStatusConflict       = domain.ErrStatusConflict
	ErrMalformedCallback    = errors.New("malformed callback data")
	ErrInvalidOrder         = errors.New("invalid order")
	ErrInvalidPaymentMethod = errors.New("payment method must be CASH or BANK_TRANSFER")
	ErrInvalidPhone         = errors.New("invalid Vietnamese phone number")
)
