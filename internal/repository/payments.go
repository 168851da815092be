package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Dan9191/rent-service/internal/models"
)

// CreatePayment records a rent payment
func (r *Repository) CreatePayment(payment *models.Payment) error {
	query := `
		INSERT INTO rent.payments (tenant_id, amount, date, due_date, receipt_number, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, payment.TenantID, payment.Amount, payment.Date, payment.DueDate, payment.ReceiptNumber).
		Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// PaymentsByTenant retrieves the complete payment history for a tenant.
// Status evaluation requires the full set; this method never paginates.
func (r *Repository) PaymentsByTenant(tenantID int64) ([]models.Payment, error) {
	query := `
		SELECT id, tenant_id, amount, date, due_date, receipt_number, created_at
		FROM rent.payments
		WHERE tenant_id = $1
		ORDER BY date`
	return r.scanPayments(r.db.Query(query, tenantID))
}

// PaymentsByOwner retrieves every payment across an owner's properties
func (r *Repository) PaymentsByOwner(ownerID int64) ([]models.Payment, error) {
	query := `
		SELECT pay.id, pay.tenant_id, pay.amount, pay.date, pay.due_date, pay.receipt_number, pay.created_at
		FROM rent.payments pay
		JOIN rent.tenants t ON t.id = pay.tenant_id
		JOIN rent.properties p ON p.id = t.property_id
		WHERE p.owner_id = $1
		ORDER BY pay.date`
	return r.scanPayments(r.db.Query(query, ownerID))
}

// AllPayments retrieves every payment in the system. Used by the daily
// reminder job together with ActiveTenants.
func (r *Repository) AllPayments() ([]models.Payment, error) {
	query := `
		SELECT id, tenant_id, amount, date, due_date, receipt_number, created_at
		FROM rent.payments
		ORDER BY date`
	return r.scanPayments(r.db.Query(query))
}

// DeletePayment removes a payment
func (r *Repository) DeletePayment(paymentID int64) error {
	res, err := r.db.Exec(`DELETE FROM rent.payments WHERE id = $1`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("payment %d: %w", paymentID, ErrNotFound)
	}
	return nil
}

// IncomeForPeriod sums payments received across an owner's properties
// in [from, to)
func (r *Repository) IncomeForPeriod(ownerID int64, from, to time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(pay.amount), 0)
		FROM rent.payments pay
		JOIN rent.tenants t ON t.id = pay.tenant_id
		JOIN rent.properties p ON p.id = t.property_id
		WHERE p.owner_id = $1 AND pay.date >= $2 AND pay.date < $3`
	var total int64
	if err := r.db.QueryRow(query, ownerID, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum income: %w", err)
	}
	return total, nil
}

func (r *Repository) scanPayments(rows *sql.Rows, err error) ([]models.Payment, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Amount, &p.Date, &p.DueDate, &p.ReceiptNumber, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}
