package service

import (
	"context"
	"math"
	"time"

	"github.com/Dan9191/rent-service/internal/billing"
	"github.com/Dan9191/rent-service/internal/models"
)

// TenantStatus evaluates a tenant's payment standing against its
// complete payment history
func (s *Service) TenantStatus(ctx context.Context, tenantID int64) (*billing.PaymentStatus, error) {
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	tenant, err := s.ownedTenant(ownerID, tenantID)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.PaymentsByTenant(tenantID)
	if err != nil {
		return nil, err
	}

	status, err := billing.EvaluateStatus(*tenant, payments, s.now())
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// ListDebtors returns the owner's active tenants in arrears, most
// months pending first
func (s *Service) ListDebtors(ctx context.Context) ([]billing.Debtor, error) {
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	tenants, err := s.repo.TenantsByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.PaymentsByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return billing.ListDebtors(tenants, payments, s.now())
}

// Notifications builds the owner's overdue and upcoming-payment alerts
func (s *Service) Notifications(ctx context.Context) (*billing.NotificationSummary, error) {
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	tenants, err := s.repo.TenantsByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.PaymentsByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	summary, err := billing.BuildNotifications(tenants, payments, s.now())
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// DashboardStats aggregates the owner's current-month income and
// expenses together with occupancy and arrears counters
func (s *Service) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)

	income, err := s.repo.IncomeForPeriod(ownerID, monthStart, nextMonth)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.ExpensesForPeriod(ownerID, monthStart, nextMonth)
	if err != nil {
		return nil, err
	}
	tenants, err := s.repo.TenantsByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.PaymentsByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	debtors, err := billing.ListDebtors(tenants, payments, now)
	if err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{
		Income:      income,
		Expenses:    expenses,
		NetBalance:  income - expenses,
		DebtorCount: len(debtors),
	}
	for _, t := range tenants {
		if t.ContractStatus == models.ContractActive {
			stats.ActiveTenants++
		}
	}
	for _, d := range debtors {
		if d.Status.Months >= 3 {
			stats.CriticalCount++
		}
	}
	return stats, nil
}

// surchargeMarginPercent is added on top of the central bank key rate
// when pricing late-payment surcharges
const surchargeMarginPercent = 3.0

// EstimateLateFee prices a surcharge on a tenant's arrears using the
// central bank key rate plus margin, accrued daily on the outstanding
// amount for the days in arrears
func (s *Service) EstimateLateFee(ctx context.Context, tenantID int64) (*models.LateFeeEstimate, error) {
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	tenant, err := s.ownedTenant(ownerID, tenantID)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.PaymentsByTenant(tenantID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	status, err := billing.EvaluateStatus(*tenant, payments, now)
	if err != nil {
		return nil, err
	}
	if status.Status != billing.StatusDebt {
		return &models.LateFeeEstimate{}, nil
	}

	keyRate, err := s.rates.GetKeyRate()
	if err != nil {
		return nil, err
	}
	rate := keyRate + surchargeMarginPercent

	daysOverdue := billing.DaysInArrears(*tenant, status, now)
	amountDue := tenant.RentAmount * int64(status.Months)
	surcharge := int64(math.Round(float64(amountDue) * rate / 100 / 365 * float64(daysOverdue)))

	return &models.LateFeeEstimate{
		MonthsPending:     status.Months,
		DaysOverdue:       daysOverdue,
		AmountDue:         amountDue,
		AnnualRatePercent: rate,
		Surcharge:         surcharge,
		Total:             amountDue + surcharge,
	}, nil
}

// SendDailyReminders emails every overdue and soon-due active tenant.
// Send failures are logged and skipped so one bad address does not
// abort the run.
func (s *Service) SendDailyReminders() error {
	tenants, err := s.repo.ActiveTenants()
	if err != nil {
		return err
	}
	payments, err := s.repo.AllPayments()
	if err != nil {
		return err
	}

	summary, err := billing.BuildNotifications(tenants, payments, s.now())
	if err != nil {
		return err
	}

	byID := make(map[int64]models.Tenant, len(tenants))
	for _, t := range tenants {
		byID[t.ID] = t
	}

	sent := 0
	for _, entry := range summary.Overdue {
		tenant, ok := byID[entry.TenantID]
		if !ok || tenant.Email == "" {
			continue
		}
		if err := s.mailer.SendOverdueNotice(tenant.Email, tenant.Name, entry.MonthsPending, entry.AmountDue); err != nil {
			s.log.Warnf("Failed to send overdue notice to tenant %d: %v", entry.TenantID, err)
			continue
		}
		sent++
	}
	for _, entry := range summary.Upcoming {
		tenant, ok := byID[entry.TenantID]
		if !ok || tenant.Email == "" {
			continue
		}
		if err := s.mailer.SendUpcomingReminder(tenant.Email, tenant.Name, entry.DueDate, tenant.RentAmount, entry.DaysRemaining); err != nil {
			s.log.Warnf("Failed to send upcoming reminder to tenant %d: %v", entry.TenantID, err)
			continue
		}
		sent++
	}

	s.log.Infof("Daily reminders: %d overdue, %d upcoming, %d emails sent", summary.OverdueCount, len(summary.Upcoming), sent)
	return nil
}
