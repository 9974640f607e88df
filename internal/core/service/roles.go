package service

import (
	"context"
	"fmt"

	"github.com/q815101630/flaska/internal/core/domain"
	"github.com/q815101630/flaska/internal/core/ports"
)

// SeedRoles upserts the canonical role set by name. Running it repeatedly is
// safe: existing rows are updated in place and exactly one role stays marked
// as the default.
func SeedRoles(ctx context.Context, repo ports.RoleRepository) error {
	for _, role := range domain.SeedRoles() {
		r := role
		if err := repo.Upsert(ctx, &r); err != nil {
			return fmt.Errorf("seed role %s: %w", role.Name, err)
		}
	}
	return nil
}
