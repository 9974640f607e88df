package ports

import (
	"context"

	"github.com/q815101630/flaska/internal/core/domain"
)

// UserRepository defines persistence operations for users. Find methods load
// the user's role alongside the row; lookups that miss return
// domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByName(ctx context.Context, name string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)

	// Update persists the mutable profile and account fields (name, email,
	// confirmed, role_id, age, gender, phone, location, about_me, avatar
	// hashes, password hash).
	Update(ctx context.Context, user *domain.User) error

	// TouchLastSeen bumps last_seen to now.
	TouchLastSeen(ctx context.Context, id int64) error

	// Delete removes the user; blogs, comments and follow edges cascade at
	// the storage layer.
	Delete(ctx context.Context, id int64) error
}

// RoleRepository persists roles. Upsert matches on name so seeding is
// idempotent.
type RoleRepository interface {
	Upsert(ctx context.Context, role *domain.Role) error
	FindByID(ctx context.Context, id int64) (*domain.Role, error)
	FindDefault(ctx context.Context) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
}
