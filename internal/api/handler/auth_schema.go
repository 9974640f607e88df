package handler

import (
	"time"

	"github.com/q815101630/flaska/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type registerRequest struct {
	Name           string `json:"name"            validate:"required,min=3,max=22,username"`
	Email          string `json:"email"           validate:"required,email"`
	Password       string `json:"password"        validate:"required,min=3,max=32"`
	PasswordRepeat string `json:"password_repeat" validate:"required,eqfield=Password"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type passwordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type passwordResetConfirmRequest struct {
	Password       string `json:"password"        validate:"required,min=3,max=32"`
	PasswordRepeat string `json:"password_repeat" validate:"required,eqfield=Password"`
}

type changePasswordRequest struct {
	OldPassword    string `json:"old_password"    validate:"required"`
	Password       string `json:"password"        validate:"required,min=3,max=32"`
	PasswordRepeat string `json:"password_repeat" validate:"required,eqfield=Password"`
}

type changeEmailRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Response types ---

// userResponse is the transport-layer view of an account. The email is only
// included for the account owner; listings and public profiles leave it empty.
type userResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Confirmed   bool      `json:"confirmed"`
	Role        string    `json:"role,omitempty"`
	Age         int       `json:"age,omitempty"`
	Gender      string    `json:"gender"`
	Phone       string    `json:"phone,omitempty"`
	Location    string    `json:"location,omitempty"`
	AboutMe     string    `json:"about_me,omitempty"`
	Avatar      string    `json:"avatar"`
	SmallAvatar string    `json:"small_avatar"`
	CreatedAt   time.Time `json:"created_at"`
	LastSeen    time.Time `json:"last_seen"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  userResponse `json:"user"`
}

func toPublicUser(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Name:        u.Name,
		Confirmed:   u.Confirmed,
		Role:        u.Role.Name,
		Age:         u.Age,
		Gender:      string(u.Gender),
		Phone:       u.Phone,
		Location:    u.Location,
		AboutMe:     u.AboutMe,
		Avatar:      u.Gravatar(domain.AvatarSize),
		SmallAvatar: u.Gravatar(domain.SmallAvatarSize),
		CreatedAt:   u.CreatedAt,
		LastSeen:    u.LastSeen,
	}
}

func toOwnUser(u *domain.User) userResponse {
	out := toPublicUser(u)
	out.Email = u.Email
	return out
}
