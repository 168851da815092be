package repository

import (
	"fmt"
	"time"

	"github.com/Dan9191/rent-service/internal/models"
)

// CreateExpense records a property expense
func (r *Repository) CreateExpense(expense *models.Expense) error {
	query := `
		INSERT INTO rent.expenses (property_id, concept, amount, date, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, expense.PropertyID, expense.Concept, expense.Amount, expense.Date).
		Scan(&expense.ID, &expense.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// ExpensesByProperty retrieves all expenses for a property
func (r *Repository) ExpensesByProperty(propertyID int64) ([]models.Expense, error) {
	query := `
		SELECT id, property_id, concept, amount, date, created_at
		FROM rent.expenses
		WHERE property_id = $1
		ORDER BY date DESC`
	rows, err := r.db.Query(query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.PropertyID, &e.Concept, &e.Amount, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

// ExpensesForPeriod sums expenses across an owner's properties in [from, to)
func (r *Repository) ExpensesForPeriod(ownerID int64, from, to time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(e.amount), 0)
		FROM rent.expenses e
		JOIN rent.properties p ON p.id = e.property_id
		WHERE p.owner_id = $1 AND e.date >= $2 AND e.date < $3`
	var total int64
	if err := r.db.QueryRow(query, ownerID, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}
