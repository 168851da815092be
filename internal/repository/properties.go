package repository

import (
	"database/sql"
	"fmt"

	"github.com/Dan9191/rent-service/internal/models"
)

// CreateProperty creates a new property in the database
func (r *Repository) CreateProperty(property *models.Property) error {
	query := `
		INSERT INTO rent.properties (owner_id, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, property.OwnerID, property.Name, property.Address).
		Scan(&property.ID, &property.CreatedAt, &property.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// FindPropertyByID retrieves a property by id
func (r *Repository) FindPropertyByID(id int64) (*models.Property, error) {
	property := &models.Property{}
	query := `
		SELECT id, owner_id, name, address, created_at, updated_at
		FROM rent.properties
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&property.ID, &property.OwnerID, &property.Name, &property.Address, &property.CreatedAt, &property.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("property %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return property, nil
}

// PropertiesByOwner retrieves all properties belonging to an owner
func (r *Repository) PropertiesByOwner(ownerID int64) ([]models.Property, error) {
	query := `
		SELECT id, owner_id, name, address, created_at, updated_at
		FROM rent.properties
		WHERE owner_id = $1
		ORDER BY id`
	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	properties := []models.Property{}
	for rows.Next() {
		var p models.Property
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Address, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate properties: %w", err)
	}
	return properties, nil
}
