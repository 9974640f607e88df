package ports

import (
	"context"

	"github.com/q815101630/flaska/internal/core/domain"
)

// RegisterInput carries everything needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService implements registration, login and every token-driven account
// flow (confirmation, password reset, email change).
type AuthService interface {
	// Register creates an unconfirmed user with the default role and
	// enqueues a confirmation email.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)

	// Login verifies credentials and returns a signed session token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)

	// Logout revokes the given session token until its natural expiry.
	Logout(ctx context.Context, token string) error

	ConfirmUser(ctx context.Context, user *domain.User, token string) error
	ResendConfirmation(ctx context.Context, user *domain.User) error

	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, user *domain.User, oldPassword, newPassword string) error

	RequestEmailChange(ctx context.Context, user *domain.User, newEmail, password string) error
	ConfirmEmailChange(ctx context.Context, user *domain.User, token string) error
}
