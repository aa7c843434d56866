package domain

import "errors"

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrStatusConflict = errors.New("order status does not allow this change")
)
