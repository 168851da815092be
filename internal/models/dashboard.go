package models

// DashboardStats represents monthly income and expense statistics
// for an owner's portfolio
type DashboardStats struct {
	Income        int64 `json:"income"`
	Expenses      int64 `json:"expenses"`
	NetBalance    int64 `json:"net_balance"`
	ActiveTenants int   `json:"active_tenants"`
	DebtorCount   int   `json:"debtor_count"`
	CriticalCount int   `json:"critical_count"`
}

// LateFeeEstimate represents an estimated surcharge on overdue rent,
// priced from the central bank key rate plus service margin
type LateFeeEstimate struct {
	MonthsPending     int     `json:"months_pending"`
	DaysOverdue       int     `json:"days_overdue"`
	AmountDue         int64   `json:"amount_due"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	Surcharge         int64   `json:"surcharge"`
	Total             int64   `json:"total"`
}
