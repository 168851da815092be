package models

import "time"

// ContractStatus is the lifecycle state of a tenant's lease
type ContractStatus string

const (
	ContractActive   ContractStatus = "active"
	ContractFinished ContractStatus = "finished"
)

// Tenant represents a tenant renting a room in a property
type Tenant struct {
	ID             int64          `json:"id"`
	PropertyID     int64          `json:"property_id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	RoomNumber     string         `json:"room_number"`
	RentAmount     int64          `json:"rent_amount"` // whole currency units per billing period
	EntryDate      time.Time      `json:"entry_date"`
	ContractStatus ContractStatus `json:"contract_status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
