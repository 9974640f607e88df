package ports

import (
	"context"

	"github.com/q815101630/flaska/internal/core/domain"
)

// ProfileInput carries the self-service profile fields. Pointer fields mean
// "leave unchanged" when nil.
type ProfileInput struct {
	Name     string
	Age      *int
	Gender   *domain.Gender
	Phone    *string
	Location *string
	AboutMe  *string
}

// AdminProfileInput extends ProfileInput with the fields only administrators
// may set.
type AdminProfileInput struct {
	ProfileInput
	RoleID    *int64
	Confirmed *bool
}

// UserService implements profile reads and edits plus administrative account
// management.
type UserService interface {
	GetByName(ctx context.Context, name string) (*domain.User, error)

	// UpdateProfile applies input to the calling user. Name and phone
	// uniqueness is checked against all other users.
	UpdateProfile(ctx context.Context, user *domain.User, input ProfileInput) (*domain.User, error)

	// AdminUpdateProfile applies input to an arbitrary user, including role
	// and confirmation state.
	AdminUpdateProfile(ctx context.Context, targetID int64, input AdminProfileInput) (*domain.User, error)

	// Delete removes a user; their blogs, comments and follow edges cascade.
	Delete(ctx context.Context, targetID int64) error
}
