package billing

import (
	"sort"
	"time"

	"github.com/Dan9191/rent-service/internal/models"
)

// Debtor pairs a tenant with its arrears standing
type Debtor struct {
	Tenant    models.Tenant `json:"tenant"`
	Status    PaymentStatus `json:"status"`
	AmountDue int64         `json:"amount_due"`
}

// ListDebtors returns every active tenant in debt, most months pending
// first. Inactive tenants and tenants that are current are skipped.
func ListDebtors(tenants []models.Tenant, payments []models.Payment, now time.Time) ([]Debtor, error) {
	debtors := []Debtor{}
	for _, t := range tenants {
		if t.ContractStatus != models.ContractActive {
			continue
		}
		status, err := EvaluateStatus(t, payments, now)
		if err != nil {
			return nil, err
		}
		if status.Status != StatusDebt {
			continue
		}
		debtors = append(debtors, Debtor{
			Tenant:    t,
			Status:    status,
			AmountDue: t.RentAmount * int64(status.Months),
		})
	}

	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].Status.Months > debtors[j].Status.Months
	})
	return debtors, nil
}
