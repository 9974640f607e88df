package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/q815101630/flaska/internal/core/domain"
	"github.com/q815101630/flaska/internal/core/ports"
)

type authFixture struct {
	store   *memStore
	mail    *stubMailQueue
	revoker *stubRevoker
	tokens  *TokenService
	svc     *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	store := newMemStore()
	if err := SeedRoles(context.Background(), roleRepo{store}); err != nil {
		t.Fatalf("seed roles: %v", err)
	}
	mail := &stubMailQueue{}
	revoker := newStubRevoker()
	tokens := NewTokenService("token-secret", time.Hour)
	svc := NewAuthService(store, roleRepo{store}, tokens, mail, revoker, "session-secret", time.Hour, zerolog.Nop())
	return &authFixture{store: store, mail: mail, revoker: revoker, tokens: tokens, svc: svc}
}

func (f *authFixture) register(t *testing.T, name, email, password string) *domain.User {
	t.Helper()
	user, err := f.svc.Register(context.Background(), ports.RegisterInput{Name: name, Email: email, Password: password})
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	return user
}

func TestAuthRegister(t *testing.T) {
	f := newAuthFixture(t)

	user := f.register(t, "alice", "alice@example.com", "pass123")

	if user.Confirmed {
		t.Fatalf("new user must start unconfirmed")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role.Name != "User" || !user.Role.Default {
		t.Fatalf("expected default role User, got %+v", user.Role)
	}
	if user.AvatarHash != domain.EmailHash("alice@example.com") {
		t.Fatalf("avatar hash not derived from email")
	}

	sent := f.mail.sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 confirmation email, got %d", len(sent))
	}
	if sent[0].Template != ports.MailTemplateConfirmUser || sent[0].To != "alice@example.com" {
		t.Fatalf("unexpected email %+v", sent[0])
	}
	if sent[0].Token == "" {
		t.Fatalf("confirmation email missing token")
	}
}

func TestAuthRegisterDuplicates(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "alice", "alice@example.com", "pass123")

	_, err := f.svc.Register(context.Background(), ports.RegisterInput{Name: "alice", Email: "other@example.com", Password: "x"})
	if !errors.Is(err, domain.ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}

	_, err = f.svc.Register(context.Background(), ports.RegisterInput{Name: "bob", Email: "alice@example.com", Password: "x"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthRegisterWithoutDefaultRole(t *testing.T) {
	store := newMemStore()
	svc := NewAuthService(store, roleRepo{store}, NewTokenService("s", time.Hour), &stubMailQueue{}, newStubRevoker(), "s", time.Hour, zerolog.Nop())

	_, err := svc.Register(context.Background(), ports.RegisterInput{Name: "alice", Email: "a@example.com", Password: "x"})
	if !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound when no default role exists, got %v", err)
	}
}

func TestAuthLogin(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "alice", "alice@example.com", "pass123")

	token, user, err := f.svc.Login(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected session token")
	}
	if user.Name != "alice" {
		t.Fatalf("unexpected user %+v", user)
	}

	if _, _, err := f.svc.Login(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := f.svc.Login(context.Background(), "ghost@example.com", "x"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthLogoutRevokesSession(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "alice", "alice@example.com", "pass123")

	token, _, err := f.svc.Login(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := f.svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	revoked, err := f.revoker.IsRevoked(context.Background(), token)
	if err != nil || !revoked {
		t.Fatalf("token not revoked after logout (revoked=%v err=%v)", revoked, err)
	}

	if err := f.svc.Logout(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthConfirmUser(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "alice", "alice@example.com", "pass123")
	token := f.mail.sent()[0].Token

	if err := f.svc.ConfirmUser(context.Background(), user, token); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !user.Confirmed {
		t.Fatalf("user not marked confirmed")
	}
	stored, _ := f.store.FindByID(context.Background(), user.ID)
	if !stored.Confirmed {
		t.Fatalf("confirmed flag not persisted")
	}

	// Confirming again is a no-op.
	if err := f.svc.ConfirmUser(context.Background(), user, "garbage"); err != nil {
		t.Fatalf("re-confirm should be a no-op, got %v", err)
	}
}

func TestAuthConfirmUserWrongSubject(t *testing.T) {
	f := newAuthFixture(t)
	alice := f.register(t, "alice", "alice@example.com", "pass123")
	bob := f.register(t, "bob", "bob@example.com", "pass123")

	aliceToken := f.mail.sent()[0].Token
	if err := f.svc.ConfirmUser(context.Background(), bob, aliceToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for mismatched subject, got %v", err)
	}
	_ = alice
}

func TestAuthPasswordResetFlow(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "alice", "alice@example.com", "oldpass")

	if err := f.svc.RequestPasswordReset(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	if err := f.svc.RequestPasswordReset(context.Background(), "ghost@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown email, got %v", err)
	}

	sent := f.mail.sent()
	reset := sent[len(sent)-1]
	if reset.Template != ports.MailTemplateResetPassword {
		t.Fatalf("expected reset template, got %s", reset.Template)
	}

	if err := f.svc.ResetPassword(context.Background(), reset.Token, "newpass"); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if _, _, err := f.svc.Login(context.Background(), "alice@example.com", "newpass"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, _, err := f.svc.Login(context.Background(), "alice@example.com", "oldpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}

	// A confirmation token must not work as a reset token.
	confirmToken := sent[0].Token
	if err := f.svc.ResetPassword(context.Background(), confirmToken, "sneaky"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for cross-purpose token, got %v", err)
	}
	_ = user
}

func TestAuthChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "alice", "alice@example.com", "oldpass")

	if err := f.svc.ChangePassword(context.Background(), user, "wrong", "newpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong old password, got %v", err)
	}
	if err := f.svc.ChangePassword(context.Background(), user, "oldpass", "newpass"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, _, err := f.svc.Login(context.Background(), "alice@example.com", "newpass"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestAuthEmailChangeFlow(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "alice", "alice@example.com", "pass123")
	user.Confirmed = true
	_ = f.store.Update(context.Background(), user)

	if err := f.svc.RequestEmailChange(context.Background(), user, "new@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := f.svc.RequestEmailChange(context.Background(), user, "new@example.com", "pass123"); err != nil {
		t.Fatalf("request email change: %v", err)
	}
	if user.Confirmed {
		t.Fatalf("confirmed flag must clear on email change")
	}
	if user.Email != "new@example.com" {
		t.Fatalf("email not updated: %s", user.Email)
	}

	sent := f.mail.sent()
	change := sent[len(sent)-1]
	if change.Template != ports.MailTemplateChangeEmail || change.To != "new@example.com" {
		t.Fatalf("change-email message wrong: %+v", change)
	}

	if err := f.svc.ConfirmEmailChange(context.Background(), user, change.Token); err != nil {
		t.Fatalf("confirm email change: %v", err)
	}
	if !user.Confirmed {
		t.Fatalf("confirmed flag not restored")
	}
}
