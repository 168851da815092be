package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/rent-service/internal/models"
)

// PeriodDays is the length of a billing period. Arrears are counted in
// fixed 30-day buckets from the entry date or last payment, never in
// calendar months.
const PeriodDays = 30

// ErrInvalidDate is returned when an entry date or payment date is unset
var ErrInvalidDate = errors.New("invalid date")

// Status is a tenant's derived payment standing
type Status string

const (
	StatusNoPayments Status = "noPayments"
	StatusUpToDate   Status = "upToDate"
	StatusDebt       Status = "debt"
)

// PaymentStatus classifies a tenant's standing as of a given instant.
// Months counts fully elapsed unpaid 30-day periods.
type PaymentStatus struct {
	Status      Status     `json:"status"`
	Months      int        `json:"months"`
	LastPayment *time.Time `json:"last_payment"`
}

// EvaluateStatus classifies a single tenant's payment standing as of now.
// Payments belonging to other tenants are ignored. The function is pure:
// identical inputs and the same instant always yield the same result.
//
// A tenant with no payments is noPayments while still inside the first
// 30-day period after entry, and in debt once that period has elapsed.
// With payments, standing is measured from the most recent payment date.
func EvaluateStatus(tenant models.Tenant, payments []models.Payment, now time.Time) (PaymentStatus, error) {
	if tenant.EntryDate.IsZero() {
		return PaymentStatus{}, fmt.Errorf("tenant %d entry date: %w", tenant.ID, ErrInvalidDate)
	}

	var last *time.Time
	for i := range payments {
		p := payments[i]
		if p.TenantID != tenant.ID {
			continue
		}
		if p.Date.IsZero() {
			return PaymentStatus{}, fmt.Errorf("payment %d date: %w", p.ID, ErrInvalidDate)
		}
		if last == nil || p.Date.After(*last) {
			d := p.Date
			last = &d
		}
	}

	if last == nil {
		days := daysBetween(tenant.EntryDate, now)
		if days <= PeriodDays {
			return PaymentStatus{Status: StatusNoPayments, Months: 0}, nil
		}
		return PaymentStatus{Status: StatusDebt, Months: days / PeriodDays}, nil
	}

	days := daysBetween(*last, now)
	if days <= PeriodDays {
		return PaymentStatus{Status: StatusUpToDate, Months: 0, LastPayment: last}, nil
	}
	return PaymentStatus{Status: StatusDebt, Months: days / PeriodDays, LastPayment: last}, nil
}

// DaysInArrears returns how many days past the covered billing period a
// tenant in debt is. Zero when the tenant is not in debt. The arrears
// clock starts one period after the last payment, or one period after
// entry when no payment was ever made.
func DaysInArrears(tenant models.Tenant, status PaymentStatus, now time.Time) int {
	if status.Status != StatusDebt {
		return 0
	}
	anchor := tenant.EntryDate
	if status.LastPayment != nil {
		anchor = *status.LastPayment
	}
	days := daysBetween(anchor, now) - PeriodDays
	if days < 0 {
		days = 0
	}
	return days
}

// daysBetween returns the number of whole days from one instant to
// another, truncating partial days.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

// midnight truncates an instant to the start of its calendar day.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
