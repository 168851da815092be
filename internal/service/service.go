package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Dan9191/rent-service/internal/config"
	"github.com/Dan9191/rent-service/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Repository provides the persistence operations the service depends on
type Repository interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	CreateProperty(property *models.Property) error
	FindPropertyByID(id int64) (*models.Property, error)
	PropertiesByOwner(ownerID int64) ([]models.Property, error)
	CreateTenant(tenant *models.Tenant) error
	FindTenantByID(id int64) (*models.Tenant, error)
	TenantsByOwner(ownerID int64) ([]models.Tenant, error)
	ActiveTenants() ([]models.Tenant, error)
	UpdateContractStatus(tenantID int64, status models.ContractStatus) error
	DeleteTenant(tenantID int64) error
	CreatePayment(payment *models.Payment) error
	PaymentsByTenant(tenantID int64) ([]models.Payment, error)
	PaymentsByOwner(ownerID int64) ([]models.Payment, error)
	AllPayments() ([]models.Payment, error)
	DeletePayment(paymentID int64) error
	IncomeForPeriod(ownerID int64, from, to time.Time) (int64, error)
	CreateExpense(expense *models.Expense) error
	ExpensesByProperty(propertyID int64) ([]models.Expense, error)
	ExpensesForPeriod(ownerID int64, from, to time.Time) (int64, error)
}

// RateSource supplies the annual percentage rate used to price
// late-payment surcharges
type RateSource interface {
	GetKeyRate() (float64, error)
}

// Mailer sends tenant-facing notifications
type Mailer interface {
	SendOverdueNotice(to, name string, monthsPending int, amountDue int64) error
	SendUpcomingReminder(to, name string, dueDate time.Time, amount int64, daysRemaining int) error
	SendPaymentReceipt(to, name, receiptNumber string, amount int64, date time.Time) error
}

// Service handles business logic
type Service struct {
	repo   Repository
	log    *logrus.Logger
	config *config.Config
	rates  RateSource
	mailer Mailer
	now    func() time.Time
}

// NewService initializes a new service. The clock defaults to wall time
// and is injectable for tests.
func NewService(repo Repository, log *logrus.Logger, cfg *config.Config, rates RateSource, mailer Mailer) *Service {
	return &Service{
		repo:   repo,
		log:    log,
		config: cfg,
		rates:  rates,
		mailer: mailer,
		now:    time.Now,
	}
}

// Register creates a new owner account with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates an owner and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(s.now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// ownerIDFromContext extracts the authenticated owner id set by the
// auth middleware
func ownerIDFromContext(ctx context.Context) (int64, error) {
	userIDStr, ok := ctx.Value("userID").(string)
	if !ok || userIDStr == "" {
		return 0, fmt.Errorf("user ID not found in context")
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID: %w", err)
	}
	return userID, nil
}

// ownedProperty loads a property and verifies it belongs to the owner
func (s *Service) ownedProperty(ownerID, propertyID int64) (*models.Property, error) {
	property, err := s.repo.FindPropertyByID(propertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != ownerID {
		return nil, fmt.Errorf("property does not belong to user")
	}
	return property, nil
}

// ownedTenant loads a tenant and verifies its property belongs to the owner
func (s *Service) ownedTenant(ownerID, tenantID int64) (*models.Tenant, error) {
	tenant, err := s.repo.FindTenantByID(tenantID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedProperty(ownerID, tenant.PropertyID); err != nil {
		return nil, err
	}
	return tenant, nil
}
