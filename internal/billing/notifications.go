package billing

import (
	"sort"
	"time"

	"github.com/Dan9191/rent-service/internal/models"
)

// Severity buckets an alert for prioritization
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// upcomingWindowDays is the lookahead for due-soon reminders
const upcomingWindowDays = 7

// OverdueEntry is an alert for a tenant in arrears
type OverdueEntry struct {
	TenantID      int64    `json:"tenant_id"`
	TenantName    string   `json:"tenant_name"`
	RoomNumber    string   `json:"room_number"`
	PropertyID    int64    `json:"property_id"`
	Severity      Severity `json:"severity"`
	DaysOverdue   int      `json:"days_overdue"`
	MonthsPending int      `json:"months_pending"`
	AmountDue     int64    `json:"amount_due"`
}

// UpcomingEntry is an alert for a tenant whose next payment is due soon
type UpcomingEntry struct {
	TenantID      int64     `json:"tenant_id"`
	TenantName    string    `json:"tenant_name"`
	RoomNumber    string    `json:"room_number"`
	PropertyID    int64     `json:"property_id"`
	Severity      Severity  `json:"severity"`
	DaysRemaining int       `json:"days_remaining"`
	DueDate       time.Time `json:"due_date"`
}

// NotificationSummary holds the prioritized alert lists for a portfolio
type NotificationSummary struct {
	Overdue       []OverdueEntry  `json:"overdue"`
	Upcoming      []UpcomingEntry `json:"upcoming"`
	Total         int             `json:"total"`
	OverdueCount  int             `json:"overdue_count"`
	CriticalCount int             `json:"critical_count"`
}

// BuildNotifications produces prioritized overdue and upcoming-payment
// alerts across all active tenants. Inactive tenants are excluded. The
// result is recomputed from scratch on every call; no state is kept.
//
// Overdue entries are sorted most months pending first, upcoming entries
// soonest due date first. A tenant appears in at most one of the lists.
func BuildNotifications(tenants []models.Tenant, payments []models.Payment, now time.Time) (NotificationSummary, error) {
	summary := NotificationSummary{
		Overdue:  []OverdueEntry{},
		Upcoming: []UpcomingEntry{},
	}

	for _, t := range tenants {
		if t.ContractStatus != models.ContractActive {
			continue
		}

		status, err := EvaluateStatus(t, payments, now)
		if err != nil {
			return NotificationSummary{}, err
		}

		next := nextDueDate(t, payments)
		daysPending := daysBetween(midnight(next), midnight(now))

		if status.Status == StatusDebt {
			if daysPending < 0 {
				daysPending = -daysPending
			}
			summary.Overdue = append(summary.Overdue, OverdueEntry{
				TenantID:      t.ID,
				TenantName:    t.Name,
				RoomNumber:    t.RoomNumber,
				PropertyID:    t.PropertyID,
				Severity:      overdueSeverity(status.Months),
				DaysOverdue:   daysPending,
				MonthsPending: status.Months,
				AmountDue:     t.RentAmount * int64(status.Months),
			})
			continue
		}

		daysUntilDue := -daysPending
		if daysUntilDue > 0 && daysUntilDue <= upcomingWindowDays {
			summary.Upcoming = append(summary.Upcoming, UpcomingEntry{
				TenantID:      t.ID,
				TenantName:    t.Name,
				RoomNumber:    t.RoomNumber,
				PropertyID:    t.PropertyID,
				Severity:      SeverityLow,
				DaysRemaining: daysUntilDue,
				DueDate:       next,
			})
		}
	}

	sort.SliceStable(summary.Overdue, func(i, j int) bool {
		return summary.Overdue[i].MonthsPending > summary.Overdue[j].MonthsPending
	})
	sort.SliceStable(summary.Upcoming, func(i, j int) bool {
		return summary.Upcoming[i].DaysRemaining < summary.Upcoming[j].DaysRemaining
	})

	summary.OverdueCount = len(summary.Overdue)
	summary.Total = len(summary.Overdue) + len(summary.Upcoming)
	for _, e := range summary.Overdue {
		if e.Severity == SeverityCritical {
			summary.CriticalCount++
		}
	}

	return summary, nil
}

// nextDueDate is the nominal due date for the tenant's current billing
// period: the due date (or payment date when unset) of the most recent
// payment, or entry date plus one period when no payment exists yet.
func nextDueDate(t models.Tenant, payments []models.Payment) time.Time {
	var latest *models.Payment
	for i := range payments {
		p := payments[i]
		if p.TenantID != t.ID {
			continue
		}
		if latest == nil || p.EffectiveDueDate().After(latest.EffectiveDueDate()) {
			latest = &p
		}
	}
	if latest != nil {
		return latest.EffectiveDueDate()
	}
	return t.EntryDate.AddDate(0, 0, PeriodDays)
}

func overdueSeverity(months int) Severity {
	switch {
	case months >= 3:
		return SeverityCritical
	case months >= 2:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}
