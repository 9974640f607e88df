package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/q815101630/flaska/internal/pkg/metrics"
	"github.com/q815101630/flaska/internal/core/domain"
	"github.com/q815101630/flaska/internal/core/ports"
)

// SessionRevoker abstracts the logout denylist (Redis). A revoked session
// token is rejected by the auth middleware until its natural expiry.
type SessionRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthService implements registration, login and the token-driven account
// flows.
type AuthService struct {
	users      ports.UserRepository
	roles      ports.RoleRepository
	tokens     *TokenService
	mail       ports.MailQueue
	revoker    SessionRevoker
	jwtSecret  []byte
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	tokens *TokenService,
	mail ports.MailQueue,
	revoker SessionRevoker,
	jwtSecret string,
	sessionTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		roles:      roles,
		tokens:     tokens,
		mail:       mail,
		revoker:    revoker,
		jwtSecret:  []byte(jwtSecret),
		sessionTTL: sessionTTL,
		log:        log,
	}
}

// Register creates an unconfirmed user with the default role and enqueues a
// confirmation email. Name and email uniqueness is checked up front; the
// unique constraints in storage are the backstop.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if _, err := s.users.FindByName(ctx, input.Name); err == nil {
		return nil, domain.ErrNameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	role, err := s.roles.FindDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("register: default role: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:            input.Name,
		Email:           input.Email,
		PasswordHash:    string(hash),
		RoleID:          role.ID,
		Role:            *role,
		Gender:          domain.GenderUnknown,
		AvatarHash:      domain.EmailHash(input.Email),
		SmallAvatarHash: domain.EmailHash(input.Email),
		CreatedAt:       now,
		LastSeen:        now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.UsersRegisteredTotal.Inc()
	s.log.Info().Str("name", created.Name).Int64("user_id", created.ID).Msg("user registered")

	s.sendToken(created, ports.MailTemplateConfirmUser, TokenConfirmUser)
	return created, nil
}

// Login verifies credentials and returns a signed session token together
// with the user. Whether the user is confirmed is reported on the user, not
// as an error, so the caller can steer unconfirmed accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateSessionToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, user, nil
}

// Logout puts the session token on the revocation list until it expires.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.ErrInvalidToken
	}

	ttl := s.sessionTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ttl = time.Until(exp.Time)
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, token, ttl); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// ConfirmUser redeems a confirmation token for the given user. Confirming an
// already-confirmed account is a no-op.
func (s *AuthService) ConfirmUser(ctx context.Context, user *domain.User, token string) error {
	if user.Confirmed {
		return nil
	}
	if err := s.redeemFor(user, token, TokenConfirmUser); err != nil {
		return err
	}

	user.Confirmed = true
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("confirm user: %w", err)
	}
	s.log.Info().Int64("user_id", user.ID).Msg("user confirmed")
	return nil
}

// ResendConfirmation issues a fresh confirmation token and mails it.
func (s *AuthService) ResendConfirmation(_ context.Context, user *domain.User) error {
	s.sendToken(user, ports.MailTemplateConfirmUser, TokenConfirmUser)
	return nil
}

// RequestPasswordReset mails a reset token to a registered address. Unknown
// addresses are reported to the caller, matching the signup form behaviour.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	s.sendToken(user, ports.MailTemplateResetPassword, TokenResetPassword)
	return nil
}

// ResetPassword redeems a reset token and replaces the password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.tokens.Redeem(token, TokenResetPassword)
	if err != nil {
		metrics.TokensRedeemedTotal.WithLabelValues(string(TokenResetPassword), "invalid").Inc()
		return err
	}
	metrics.TokensRedeemedTotal.WithLabelValues(string(TokenResetPassword), "success").Inc()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("reset password: hash: %w", err)
	}
	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	s.log.Info().Int64("user_id", user.ID).Msg("password reset")
	return nil
}

// ChangePassword replaces the password after verifying the old one.
func (s *AuthService) ChangePassword(ctx context.Context, user *domain.User, oldPassword, newPassword string) error {
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("change password: hash: %w", err)
	}
	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

// RequestEmailChange verifies the password, stores the new address with the
// confirmed flag cleared and mails a confirmation token to it.
func (s *AuthService) RequestEmailChange(ctx context.Context, user *domain.User, newEmail, password string) error {
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.ErrInvalidCredentials
	}
	if existing, err := s.users.FindByEmail(ctx, newEmail); err == nil && existing.ID != user.ID {
		return domain.ErrEmailTaken
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("change email: %w", err)
	}

	user.Email = newEmail
	user.Confirmed = false
	user.AvatarHash = domain.EmailHash(newEmail)
	user.SmallAvatarHash = domain.EmailHash(newEmail)
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("change email: %w", err)
	}

	s.sendToken(user, ports.MailTemplateChangeEmail, TokenChangeEmail)
	return nil
}

// ConfirmEmailChange redeems the change-email token and restores the
// confirmed flag.
func (s *AuthService) ConfirmEmailChange(ctx context.Context, user *domain.User, token string) error {
	if err := s.redeemFor(user, token, TokenChangeEmail); err != nil {
		return err
	}

	user.Confirmed = true
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("confirm email change: %w", err)
	}
	s.log.Info().Int64("user_id", user.ID).Msg("email change confirmed")
	return nil
}

// redeemFor redeems a token and checks the embedded subject against the
// expected user. A subject mismatch is indistinguishable from any other
// token failure.
func (s *AuthService) redeemFor(user *domain.User, token string, purpose TokenPurpose) error {
	userID, err := s.tokens.Redeem(token, purpose)
	if err != nil || userID != user.ID {
		metrics.TokensRedeemedTotal.WithLabelValues(string(purpose), "invalid").Inc()
		return domain.ErrInvalidToken
	}
	metrics.TokensRedeemedTotal.WithLabelValues(string(purpose), "success").Inc()
	return nil
}

// sendToken issues a purpose token and enqueues the email carrying it.
// Delivery is fire-and-forget; a failure to issue is only logged because no
// account flow may fail on mail problems.
func (s *AuthService) sendToken(user *domain.User, template string, purpose TokenPurpose) {
	token, err := s.tokens.Issue(user.ID, purpose)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Str("template", template).Msg("failed to issue token")
		return
	}
	s.mail.Enqueue(ports.Email{
		To:       user.Email,
		Name:     user.Name,
		Template: template,
		Token:    token,
	})
}

func (s *AuthService) generateSessionToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"exp":     time.Now().Add(s.sessionTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}
