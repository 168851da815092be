package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/rent-service/internal/models"
	"github.com/Dan9191/rent-service/internal/utils"
)

// CreateProperty creates a property for the authenticated owner
func (s *Service) CreateProperty(ctx context.Context, name, address string) (*models.Property, error) {
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	property := &models.Property{
		OwnerID: ownerID,
		Name:    name,
		Address: address,
	}
	if err := s.repo.CreateProperty(property); err != nil {
		return nil, err
	}

	s.log.Infof("Property created for user %d: %s", ownerID, property.Name)
	return property, nil
}

// ListProperties returns the authenticated owner's properties
func (s *Service) ListProperties(ctx context.Context) ([]models.Property, error) {
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.PropertiesByOwner(ownerID)
}

// CreateTenantInput carries the fields needed to register a lease
type CreateTenantInput struct {
	PropertyID int64
	Name       string
	Email      string
	RoomNumber string
	RentAmount int64
	EntryDate  time.Time
}

// CreateTenant registers a new lease on one of the owner's properties
func (s *Service) CreateTenant(ctx context.Context, input CreateTenantInput) (*models.Tenant, error) {
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedProperty(ownerID, input.PropertyID); err != nil {
		return nil, err
	}
	if input.RentAmount <= 0 {
		return nil, fmt.Errorf("rent amount must be positive")
	}
	if input.EntryDate.IsZero() {
		return nil, fmt.Errorf("entry date is required")
	}

	tenant := &models.Tenant{
		PropertyID:     input.PropertyID,
		Name:           input.Name,
		Email:          input.Email,
		RoomNumber:     input.RoomNumber,
		RentAmount:     input.RentAmount,
		EntryDate:      input.EntryDate,
		ContractStatus: models.ContractActive,
	}
	if err := s.repo.CreateTenant(tenant); err != nil {
		return nil, err
	}

	s.log.Infof("Tenant created for property %d: %s", tenant.PropertyID, tenant.Name)
	return tenant, nil
}

// ListTenants returns all tenants across the owner's properties
func (s *Service) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.TenantsByOwner(ownerID)
}

// CloseContract marks a tenant's lease as finished
func (s *Service) CloseContract(ctx context.Context, tenantID int64) error {
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return err
	}
	if _, err := s.ownedTenant(ownerID, tenantID); err != nil {
		return err
	}
	if err := s.repo.UpdateContractStatus(tenantID, models.ContractFinished); err != nil {
		return err
	}

	s.log.Infof("Contract closed for tenant %d", tenantID)
	return nil
}

// DeleteTenant removes a tenant and its payment history
func (s *Service) DeleteTenant(ctx context.Context, tenantID int64) error {
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return err
	}
	if _, err := s.ownedTenant(ownerID, tenantID); err != nil {
		return err
	}
	if err := s.repo.DeleteTenant(tenantID); err != nil {
		return err
	}

	s.log.Infof("Tenant %d deleted", tenantID)
	return nil
}

// RecordPaymentInput carries the fields needed to record a payment
type RecordPaymentInput struct {
	TenantID int64
	Amount   int64
	Date     time.Time
	DueDate  *time.Time
}

// RecordPayment records a rent payment, assigns a receipt number, and
// emails a receipt to the tenant when an address is on file
func (s *Service) RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.Payment, error) {
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	tenant, err := s.ownedTenant(ownerID, input.TenantID)
	if err != nil {
		return nil, err
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive")
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("payment date is required")
	}

	receiptNumber, err := utils.GenerateReceiptNumber(input.Date)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		TenantID:      input.TenantID,
		Amount:        input.Amount,
		Date:          input.Date,
		DueDate:       input.DueDate,
		ReceiptNumber: receiptNumber,
	}
	if err := s.repo.CreatePayment(payment); err != nil {
		return nil, err
	}

	// Receipt delivery is best effort
	if tenant.Email != "" {
		if err := s.mailer.SendPaymentReceipt(tenant.Email, tenant.Name, receiptNumber, payment.Amount, payment.Date); err != nil {
			s.log.Warnf("Failed to send receipt for payment %d: %v", payment.ID, err)
		}
	}

	s.log.Infof("Payment %d recorded for tenant %d: %d", payment.ID, tenant.ID, payment.Amount)
	return payment, nil
}

// ListPayments returns the complete payment history for a tenant
func (s *Service) ListPayments(ctx context.Context, tenantID int64) ([]models.Payment, error) {
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedTenant(ownerID, tenantID); err != nil {
		return nil, err
	}
	return s.repo.PaymentsByTenant(tenantID)
}

// DeletePayment removes a recorded payment
func (s *Service) DeletePayment(ctx context.Context, tenantID, paymentID int64) error {
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return err
	}
	if _, err := s.ownedTenant(ownerID, tenantID); err != nil {
		return err
	}
	if err := s.repo.DeletePayment(paymentID); err != nil {
		return err
	}

	s.log.Infof("Payment %d deleted for tenant %d", paymentID, tenantID)
	return nil
}

// AddExpense records an expense against one of the owner's properties
func (s *Service) AddExpense(ctx context.Context, propertyID int64, concept string, amount int64, date time.Time) (*models.Expense, error) {
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedProperty(ownerID, propertyID); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("expense amount must be positive")
	}
	if date.IsZero() {
		return nil, fmt.Errorf("expense date is required")
	}

	expense := &models.Expense{
		PropertyID: propertyID,
		Concept:    concept,
		Amount:     amount,
		Date:       date,
	}
	if err := s.repo.CreateExpense(expense); err != nil {
		return nil, err
	}

	s.log.Infof("Expense recorded for property %d: %s", propertyID, concept)
	return expense, nil
}

// ListExpenses returns all expenses for one of the owner's properties
func (s *Service) ListExpenses(ctx context.Context, propertyID int64) ([]models.Expense, error) {
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedProperty(ownerID, propertyID); err != nil {
		return nil, err
	}
	return s.repo.ExpensesByProperty(propertyID)
}
