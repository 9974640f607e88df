package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/q815101630/flaska/internal/core/domain"
)

// pq error code for unique constraint violations.
const uniqueViolation = "23505"

// UserRepository is the Postgres implementation of ports.UserRepository.
// Find methods join the role so callers get a fully usable account.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// userRow is the join of users and roles.
type userRow struct {
	domain.User
	RoleName        string            `db:"role_name"`
	RoleDefault     bool              `db:"role_is_default"`
	RolePermissions domain.Permission `db:"role_permissions"`
}

func (r userRow) toUser() *domain.User {
	u := r.User
	u.Role = domain.Role{
		ID:          u.RoleID,
		Name:        r.RoleName,
		Default:     r.RoleDefault,
		Permissions: r.RolePermissions,
	}
	return &u
}

const userSelect = `
SELECT u.id, u.name, u.email, u.password_hash, u.confirmed, u.role_id,
       u.age, u.gender, u.phone, u.location, u.about_me,
       u.avatar_hash, u.small_avatar_hash, u.created_at, u.last_seen,
       r.name AS role_name, r.is_default AS role_is_default, r.permissions AS role_permissions
  FROM users u
  JOIN roles r ON r.id = u.role_id`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const query = `
INSERT INTO users (name, email, password_hash, confirmed, role_id, age, gender,
                   phone, location, about_me, avatar_hash, small_avatar_hash,
                   created_at, last_seen)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Confirmed, user.RoleID,
		user.Age, user.Gender, user.Phone, user.Location, user.AboutMe,
		user.AvatarHash, user.SmallAvatarHash, user.CreatedAt, user.LastSeen,
	).Scan(&user.ID)
	if err != nil {
		return nil, mapUserConstraint(err)
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, userSelect+" WHERE u.id = $1", id)
}

func (r *UserRepository) FindByName(ctx context.Context, name string) (*domain.User, error) {
	return r.findOne(ctx, userSelect+" WHERE u.name = $1", name)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, userSelect+" WHERE u.email = $1", email)
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, userSelect+" WHERE u.phone = $1 AND u.phone <> ''", phone)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return row.toUser(), nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
UPDATE users
   SET name = $2, email = $3, password_hash = $4, confirmed = $5, role_id = $6,
       age = $7, gender = $8, phone = $9, location = $10, about_me = $11,
       avatar_hash = $12, small_avatar_hash = $13
 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Confirmed,
		user.RoleID, user.Age, user.Gender, user.Phone, user.Location,
		user.AboutMe, user.AvatarHash, user.SmallAvatarHash,
	)
	if err != nil {
		return mapUserConstraint(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) TouchLastSeen(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_seen = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("touch last_seen: %w", err)
	}
	return nil
}

// Delete removes the user row; follows, blogs and comments go with it via
// ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// mapUserConstraint translates unique violations on the users table into the
// matching domain error.
func mapUserConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		switch pqErr.Constraint {
		case "users_name_key":
			return domain.ErrNameTaken
		case "users_email_key":
			return domain.ErrEmailTaken
		case "users_phone_key":
			return domain.ErrPhoneTaken
		}
	}
	return fmt.Errorf("persist user: %w", err)
}
