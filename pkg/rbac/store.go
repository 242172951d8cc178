package rbac

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Store handles role persistence over PostgreSQL.
type Store struct {
	db *sql.DB
}

// NewStore creates a new role store
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetRoleByID retrieves a role by id. Returns (nil, nil) when absent.
func (s *Store) GetRoleByID(ctx context.Context, roleID int64) (*Role, error) {
	query := `SELECT id, name, is_active FROM roles WHERE id = $1`

	var role Role
	err := s.db.QueryRowContext(ctx, query, roleID).Scan(&role.ID, &role.Name, &role.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return &role, nil
}

// ListRoles returns all roles ordered by id.
func (s *Store) ListRoles(ctx context.Context) ([]Role, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, is_active FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roles: %w", err)
	}
	return roles, nil
}
