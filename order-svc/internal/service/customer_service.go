package service

import (
	"context"
	"fmt"
	"strings"

	"dine-easy/order-svc/internal/domain"
)

type CustomerService struct {
	repository CustomerRepository
}

func NewCustomerService(repository CustomerRepository) *CustomerService {
	return &CustomerService{repository: repository}
}

// RegisterVisit verifies the phone number and counts a visit for it. The
// first visit creates the customer.
func (s *CustomerService) RegisterVisit(ctx context.Context, phone, tableCode string) (*domain.Customer, error) {
	phone = strings.TrimSpace(phone)
	if !domain.IsVietnamesePhone(phone) {
		return nil, ErrInvalidPhone
	}
	customer, err := s.repository.RecordVisit(ctx, phone, tableCode)
	if err != nil {
		return nil, fmt.Errorf("failed to record visit for %s: %w", phone, err)
	}
	return customer, nil
}
