package repository

import (
	"database/sql"
	"fmt"

	"github.com/Dan9191/rent-service/internal/models"
)

// CreateTenant creates a new tenant in the database
func (r *Repository) CreateTenant(tenant *models.Tenant) error {
	query := `
		INSERT INTO rent.tenants (property_id, name, email, room_number, rent_amount, entry_date, contract_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, tenant.PropertyID, tenant.Name, tenant.Email, tenant.RoomNumber,
		tenant.RentAmount, tenant.EntryDate, tenant.ContractStatus).
		Scan(&tenant.ID, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}
	return nil
}

// FindTenantByID retrieves a tenant by id
func (r *Repository) FindTenantByID(id int64) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	query := `
		SELECT id, property_id, name, email, room_number, rent_amount, entry_date, contract_status, created_at, updated_at
		FROM rent.tenants
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&tenant.ID, &tenant.PropertyID, &tenant.Name, &tenant.Email, &tenant.RoomNumber,
			&tenant.RentAmount, &tenant.EntryDate, &tenant.ContractStatus, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tenant %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find tenant: %w", err)
	}
	return tenant, nil
}

// TenantsByOwner retrieves all tenants across an owner's properties
func (r *Repository) TenantsByOwner(ownerID int64) ([]models.Tenant, error) {
	query := `
		SELECT t.id, t.property_id, t.name, t.email, t.room_number, t.rent_amount, t.entry_date, t.contract_status, t.created_at, t.updated_at
		FROM rent.tenants t
		JOIN rent.properties p ON p.id = t.property_id
		WHERE p.owner_id = $1
		ORDER BY t.id`
	return r.scanTenants(r.db.Query(query, ownerID))
}

// ActiveTenants retrieves every tenant with an active contract,
// regardless of owner. Used by the daily reminder job.
func (r *Repository) ActiveTenants() ([]models.Tenant, error) {
	query := `
		SELECT id, property_id, name, email, room_number, rent_amount, entry_date, contract_status, created_at, updated_at
		FROM rent.tenants
		WHERE contract_status = $1
		ORDER BY id`
	return r.scanTenants(r.db.Query(query, models.ContractActive))
}

// UpdateContractStatus transitions a tenant's contract lifecycle state
func (r *Repository) UpdateContractStatus(tenantID int64, status models.ContractStatus) error {
	query := `
		UPDATE rent.tenants
		SET contract_status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2`
	res, err := r.db.Exec(query, status, tenantID)
	if err != nil {
		return fmt.Errorf("failed to update contract status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("tenant %d: %w", tenantID, ErrNotFound)
	}
	return nil
}

// DeleteTenant removes a tenant and all of its payments in one transaction
func (r *Repository) DeleteTenant(tenantID int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM rent.payments WHERE tenant_id = $1`, tenantID); err != nil {
		return fmt.Errorf("failed to delete tenant payments: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM rent.tenants WHERE id = $1`, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("tenant %d: %w", tenantID, ErrNotFound)
	}
	return tx.Commit()
}

func (r *Repository) scanTenants(rows *sql.Rows, err error) ([]models.Tenant, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	tenants := []models.Tenant{}
	for rows.Next() {
		var t models.Tenant
		if err := rows.Scan(&t.ID, &t.PropertyID, &t.Name, &t.Email, &t.RoomNumber,
			&t.RentAmount, &t.EntryDate, &t.ContractStatus, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tenants: %w", err)
	}
	return tenants, nil
}
