package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrNameTaken          = errors.New("name already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPhoneTaken         = errors.New("phone number already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotConfirmed   = errors.New("account not confirmed")

	// ErrInvalidToken covers every token failure mode: malformed, tampered,
	// expired, or issued for a different purpose or subject. Callers must not
	// distinguish between them.
	ErrInvalidToken = errors.New("invalid or expired token")

	ErrRoleNotFound = errors.New("role not found")
	ErrForbidden    = errors.New("access forbidden")
	ErrSelfFollow   = errors.New("cannot follow yourself")

	ErrBlogNotFound    = errors.New("blog not found")
	ErrCommentNotFound = errors.New("comment not found")
)
