package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/q815101630/flaska/internal/core/domain"
)

// RoleRepository is the Postgres implementation of ports.RoleRepository.
type RoleRepository struct {
	db *sqlx.DB
}

func NewRoleRepository(db *sqlx.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Upsert matches on name so seeding at startup is idempotent. The role's ID
// is filled in either way.
func (r *RoleRepository) Upsert(ctx context.Context, role *domain.Role) error {
	const query = `
INSERT INTO roles (name, is_default, permissions)
VALUES ($1, $2, $3)
ON CONFLICT (name) DO UPDATE
   SET is_default = EXCLUDED.is_default, permissions = EXCLUDED.permissions
RETURNING id`

	err := r.db.QueryRowContext(ctx, query, role.Name, role.Default, role.Permissions).Scan(&role.ID)
	if err != nil {
		return fmt.Errorf("upsert role: %w", err)
	}
	return nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id int64) (*domain.Role, error) {
	var role domain.Role
	err := r.db.GetContext(ctx, &role, `SELECT id, name, is_default, permissions FROM roles WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &role, nil
}

func (r *RoleRepository) FindDefault(ctx context.Context) (*domain.Role, error) {
	var role domain.Role
	err := r.db.GetContext(ctx, &role, `SELECT id, name, is_default, permissions FROM roles WHERE is_default LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find default role: %w", err)
	}
	return &role, nil
}

func (r *RoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	var roles []domain.Role
	err := r.db.SelectContext(ctx, &roles, `SELECT id, name, is_default, permissions FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}
