package models

import "time"

// Payment represents a rent payment made by a tenant.
// Immutable once created except for delete.
type Payment struct {
	ID            int64      `json:"id"`
	TenantID      int64      `json:"tenant_id"`
	Amount        int64      `json:"amount"` // whole currency units
	Date          time.Time  `json:"date"`
	DueDate       *time.Time `json:"due_date,omitempty"` // nominal due date for this billing period
	ReceiptNumber string     `json:"receipt_number"`
	CreatedAt     time.Time  `json:"created_at"`
}

// EffectiveDueDate returns the nominal due date, falling back to the
// payment date when no due date was recorded.
func (p Payment) EffectiveDueDate() time.Time {
	if p.DueDate != nil {
		return *p.DueDate
	}
	return p.Date
}
