package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Gender is the profile gender enumeration.
type Gender string

const (
	GenderMale      Gender = "male"
	GenderFemale    Gender = "female"
	GenderFuta      Gender = "futa"
	GenderOtokonoko Gender = "otokonoko"
	GenderOther     Gender = "other"
	GenderUnknown   Gender = "unknown"
)

// Gravatar image sizes used across the site.
const (
	AvatarSize      = 256
	SmallAvatarSize = 44
)

// User models a registered account. A user is created unconfirmed with the
// default role and becomes confirmed through a token exchange over email.
type User struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Confirmed    bool   `json:"confirmed" db:"confirmed"`
	RoleID       int64  `json:"role_id" db:"role_id"`
	Role         Role   `json:"role" db:"-"`

	Age      int    `json:"age,omitempty" db:"age"`
	Gender   Gender `json:"gender,omitempty" db:"gender"`
	Phone    string `json:"phone,omitempty" db:"phone"`
	Location string `json:"location,omitempty" db:"location"`
	AboutMe  string `json:"about_me,omitempty" db:"about_me"`

	AvatarHash      string `json:"avatar_hash" db:"avatar_hash"`
	SmallAvatarHash string `json:"small_avatar_hash" db:"small_avatar_hash"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	LastSeen  time.Time `json:"last_seen" db:"last_seen"`
}

// Can reports whether the user's role contains the given permission bit.
func (u *User) Can(p Permission) bool {
	return u.Role.Has(p)
}

func (u *User) IsAdministrator() bool { return u.Can(PermissionAdminister) }
func (u *User) IsModerator() bool     { return u.Can(PermissionModerate) }
func (u *User) CanFollow() bool       { return u.Can(PermissionFollow) }

// EmailHash returns the md5 hex digest of the lowercased email, the input
// gravatar expects.
func EmailHash(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}

// Gravatar builds the avatar URL for the given pixel size. The stored hash is
// preferred; when absent the hash is derived from the email on the fly.
func (u *User) Gravatar(size int) string {
	hash := u.AvatarHash
	if size <= SmallAvatarSize && u.SmallAvatarHash != "" {
		hash = u.SmallAvatarHash
	}
	if hash == "" {
		hash = EmailHash(u.Email)
	}
	return fmt.Sprintf("https://gravatar.com/avatar/%s?s=%d&d=identicon&r=g", hash, size)
}
