package domain

import (
	"regexp"
	"time"
)

var vietnamesePhone = regexp.MustCompile(`^(\+84|84|0)[35789][0-9]{8}$`)

// IsVietnamesePhone reports whether phone is a Vietnamese mobile number in
// local (0...) or international (+84/84...) form.
func IsVietnamesePhone(phone string) bool {
	return vietnamesePhone.MatchString(phone)
}

// Customer is a phone number that has verified at a table at least once.
type Customer struct {
	ID           string    `json:"id"`
	Phone        string    `json:"phone"`
	TableCode    string    `json:"tableCode"`
	VisitCount   int       `json:"visitCount"`
	FirstVisitAt time.Time `json:"firstVisitAt"`
	LastVisitAt  time.Time `json:"lastVisitAt"`
}

func (c Customer) IsNew() bool {
	return c.VisitCount <= 1
}

type VisitRequest struct {
	Phone     string `json:"phone" validate:"required,vnphone"`
	TableCode string `json:"tableCode" validate:"required,max=16"`
}
