package models

import "time"

// Expense represents a property-related expense
type Expense struct {
	ID         int64     `json:"id"`
	PropertyID int64     `json:"property_id"`
	Concept    string    `json:"concept"`
	Amount     int64     `json:"amount"` // whole currency units
	Date       time.Time `json:"date"`
	CreatedAt  time.Time `json:"created_at"`
}
