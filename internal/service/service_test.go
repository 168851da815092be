package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Dan9191/rent-service/internal/config"
	"github.com/Dan9191/rent-service/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// mockRepository is a mock implementation of Repository
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateUser(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *mockRepository) FindUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockRepository) CreateProperty(property *models.Property) error {
	return m.Called(property).Error(0)
}

func (m *mockRepository) FindPropertyByID(id int64) (*models.Property, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *mockRepository) PropertiesByOwner(ownerID int64) ([]models.Property, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *mockRepository) CreateTenant(tenant *models.Tenant) error {
	return m.Called(tenant).Error(0)
}

func (m *mockRepository) FindTenantByID(id int64) (*models.Tenant, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *mockRepository) TenantsByOwner(ownerID int64) ([]models.Tenant, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tenant), args.Error(1)
}

func (m *mockRepository) ActiveTenants() ([]models.Tenant, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tenant), args.Error(1)
}

func (m *mockRepository) UpdateContractStatus(tenantID int64, status models.ContractStatus) error {
	return m.Called(tenantID, status).Error(0)
}

func (m *mockRepository) DeleteTenant(tenantID int64) error {
	return m.Called(tenantID).Error(0)
}

func (m *mockRepository) CreatePayment(payment *models.Payment) error {
	return m.Called(payment).Error(0)
}

func (m *mockRepository) PaymentsByTenant(tenantID int64) ([]models.Payment, error) {
	args := m.Called(tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *mockRepository) PaymentsByOwner(ownerID int64) ([]models.Payment, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *mockRepository) AllPayments() ([]models.Payment, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *mockRepository) DeletePayment(paymentID int64) error {
	return m.Called(paymentID).Error(0)
}

func (m *mockRepository) IncomeForPeriod(ownerID int64, from, to time.Time) (int64, error) {
	args := m.Called(ownerID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) CreateExpense(expense *models.Expense) error {
	return m.Called(expense).Error(0)
}

func (m *mockRepository) ExpensesByProperty(propertyID int64) ([]models.Expense, error) {
	args := m.Called(propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Expense), args.Error(1)
}

func (m *mockRepository) ExpensesForPeriod(ownerID int64, from, to time.Time) (int64, error) {
	args := m.Called(ownerID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// mockMailer is a mock implementation of Mailer
type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendOverdueNotice(to, name string, monthsPending int, amountDue int64) error {
	return m.Called(to, name, monthsPending, amountDue).Error(0)
}

func (m *mockMailer) SendUpcomingReminder(to, name string, dueDate time.Time, amount int64, daysRemaining int) error {
	return m.Called(to, name, dueDate, amount, daysRemaining).Error(0)
}

func (m *mockMailer) SendPaymentReceipt(to, name, receiptNumber string, amount int64, date time.Time) error {
	return m.Called(to, name, receiptNumber, amount, date).Error(0)
}

// mockRates is a mock implementation of RateSource
type mockRates struct {
	mock.Mock
}

func (m *mockRates) GetKeyRate() (float64, error) {
	args := m.Called()
	return args.Get(0).(float64), args.Error(1)
}

var testNow = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func newTestService(repo Repository, rates RateSource, mailer Mailer) *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	svc := NewService(repo, log, &config.Config{JWTSecret: "test-secret"}, rates, mailer)
	svc.now = func() time.Time { return testNow }
	return svc
}

func ownerCtx() context.Context {
	return context.WithValue(context.Background(), "userID", "7")
}

func testTenant(id int64, email string, daysSinceEntry int) models.Tenant {
	return models.Tenant{
		ID:             id,
		PropertyID:     9,
		Name:           "tenant",
		Email:          email,
		RoomNumber:     "1A",
		RentAmount:     500,
		EntryDate:      testNow.AddDate(0, 0, -daysSinceEntry),
		ContractStatus: models.ContractActive,
	}
}

func TestSendDailyReminders_BestEffortDelivery(t *testing.T) {
	// GIVEN: two debtors with addresses (one whose send fails), one
	// debtor without an address, and one tenant due in five days
	// WHEN: the daily reminder run executes
	// THEN: reachable tenants are emailed, failures and missing
	// addresses are skipped, and the run still succeeds
	overdue := testTenant(1, "one@example.com", 100)    // 3 months pending
	noAddress := testTenant(2, "", 70)                  // 2 months pending, unreachable
	upcoming := testTenant(3, "three@example.com", 25)  // due in 5 days
	failing := testTenant(4, "four@example.com", 40)    // 1 month pending, send fails

	repo := new(mockRepository)
	repo.On("ActiveTenants").Return([]models.Tenant{overdue, noAddress, upcoming, failing}, nil)
	repo.On("AllPayments").Return([]models.Payment{}, nil)

	mailer := new(mockMailer)
	mailer.On("SendOverdueNotice", "one@example.com", "tenant", 3, int64(1500)).Return(nil)
	mailer.On("SendOverdueNotice", "four@example.com", "tenant", 1, int64(500)).Return(errors.New("smtp down"))
	mailer.On("SendUpcomingReminder", "three@example.com", "tenant", upcoming.EntryDate.AddDate(0, 0, 30), int64(500), 5).Return(nil)

	svc := newTestService(repo, new(mockRates), mailer)
	err := svc.SendDailyReminders()

	require.NoError(t, err)
	repo.AssertExpectations(t)
	mailer.AssertExpectations(t)
	// the tenant without an address must not trigger a send
	mailer.AssertNumberOfCalls(t, "SendOverdueNotice", 2)
	mailer.AssertNumberOfCalls(t, "SendUpcomingReminder", 1)
}

func TestSendDailyReminders_RepositoryErrorAborts(t *testing.T) {
	repo := new(mockRepository)
	repo.On("ActiveTenants").Return(nil, errors.New("db down"))

	svc := newTestService(repo, new(mockRates), new(mockMailer))
	err := svc.SendDailyReminders()

	assert.Error(t, err)
}

func TestEstimateLateFee_DebtorSurcharge(t *testing.T) {
	// GIVEN: a tenant 100 days past entry with no payments, key rate 13%
	// THEN: 3 periods pending at 500, surcharge accrued daily at
	// 16% annual (key rate plus margin) over 70 days in arrears
	tenant := testTenant(5, "five@example.com", 100)

	repo := new(mockRepository)
	repo.On("FindTenantByID", int64(5)).Return(&tenant, nil)
	repo.On("FindPropertyByID", int64(9)).Return(&models.Property{ID: 9, OwnerID: 7}, nil)
	repo.On("PaymentsByTenant", int64(5)).Return([]models.Payment{}, nil)

	rates := new(mockRates)
	rates.On("GetKeyRate").Return(13.0, nil)

	svc := newTestService(repo, rates, new(mockMailer))
	estimate, err := svc.EstimateLateFee(ownerCtx(), 5)

	require.NoError(t, err)
	assert.Equal(t, 3, estimate.MonthsPending)
	assert.Equal(t, 70, estimate.DaysOverdue)
	assert.Equal(t, int64(1500), estimate.AmountDue)
	assert.Equal(t, 16.0, estimate.AnnualRatePercent)
	// round(1500 * 0.16 / 365 * 70)
	assert.Equal(t, int64(46), estimate.Surcharge)
	assert.Equal(t, int64(1546), estimate.Total)
	rates.AssertExpectations(t)
}

func TestEstimateLateFee_CurrentTenantIsFree(t *testing.T) {
	tenant := testTenant(5, "five@example.com", 100)
	paid := models.Payment{ID: 20, TenantID: 5, Amount: 500, Date: testNow.AddDate(0, 0, -10)}

	repo := new(mockRepository)
	repo.On("FindTenantByID", int64(5)).Return(&tenant, nil)
	repo.On("FindPropertyByID", int64(9)).Return(&models.Property{ID: 9, OwnerID: 7}, nil)
	repo.On("PaymentsByTenant", int64(5)).Return([]models.Payment{paid}, nil)

	rates := new(mockRates)
	svc := newTestService(repo, rates, new(mockMailer))
	estimate, err := svc.EstimateLateFee(ownerCtx(), 5)

	require.NoError(t, err)
	assert.Equal(t, &models.LateFeeEstimate{}, estimate)
	// no rate lookup for a tenant who owes nothing
	rates.AssertNotCalled(t, "GetKeyRate")
}

func TestEstimateLateFee_ForeignTenantRejected(t *testing.T) {
	tenant := testTenant(5, "five@example.com", 100)

	repo := new(mockRepository)
	repo.On("FindTenantByID", int64(5)).Return(&tenant, nil)
	repo.On("FindPropertyByID", int64(9)).Return(&models.Property{ID: 9, OwnerID: 8}, nil)

	svc := newTestService(repo, new(mockRates), new(mockMailer))
	_, err := svc.EstimateLateFee(ownerCtx(), 5)

	assert.Error(t, err)
}

func TestDashboardStats_Aggregation(t *testing.T) {
	critical := testTenant(1, "", 100) // 3 months pending
	current := testTenant(2, "", 10)   // inside first period
	finished := testTenant(3, "", 300)
	finished.ContractStatus = models.ContractFinished

	repo := new(mockRepository)
	repo.On("IncomeForPeriod", int64(7), mock.Anything, mock.Anything).Return(int64(5000), nil)
	repo.On("ExpensesForPeriod", int64(7), mock.Anything, mock.Anything).Return(int64(2000), nil)
	repo.On("TenantsByOwner", int64(7)).Return([]models.Tenant{critical, current, finished}, nil)
	repo.On("PaymentsByOwner", int64(7)).Return([]models.Payment{}, nil)

	svc := newTestService(repo, new(mockRates), new(mockMailer))
	stats, err := svc.DashboardStats(ownerCtx())

	require.NoError(t, err)
	assert.Equal(t, int64(5000), stats.Income)
	assert.Equal(t, int64(2000), stats.Expenses)
	assert.Equal(t, int64(3000), stats.NetBalance)
	assert.Equal(t, 2, stats.ActiveTenants)
	assert.Equal(t, 1, stats.DebtorCount)
	assert.Equal(t, 1, stats.CriticalCount)
}

func TestLogin_TokenExpiryUsesInjectedClock(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(mockRepository)
	repo.On("FindUserByEmail", "owner@example.com").Return(&models.User{
		ID:           7,
		Email:        "owner@example.com",
		PasswordHash: string(hash),
	}, nil)

	svc := newTestService(repo, new(mockRates), new(mockMailer))
	tokenString, err := svc.Login("owner@example.com", "password123")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return testNow }))
	require.NoError(t, err)

	assert.Equal(t, "7", claims.Subject)
	assert.True(t, claims.ExpiresAt.Equal(testNow.Add(24*time.Hour)))
}
