package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/q815101630/flaska/internal/core/domain"
	"github.com/q815101630/flaska/internal/core/ports"
)

// UserService implements profile reads and edits plus administrative account
// management.
type UserService struct {
	users ports.UserRepository
	roles ports.RoleRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, log: log}
}

func (s *UserService) GetByName(ctx context.Context, name string) (*domain.User, error) {
	return s.users.FindByName(ctx, name)
}

// UpdateProfile applies the self-service profile fields to user. Name and
// phone must stay unique across all other users.
func (s *UserService) UpdateProfile(ctx context.Context, user *domain.User, input ports.ProfileInput) (*domain.User, error) {
	if err := s.checkNameFree(ctx, input.Name, user.ID); err != nil {
		return nil, err
	}
	user.Name = input.Name

	if input.Phone != nil {
		if err := s.checkPhoneFree(ctx, *input.Phone, user.ID); err != nil {
			return nil, err
		}
		user.Phone = *input.Phone
	}
	applyProfile(user, input)

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.log.Info().Int64("user_id", user.ID).Msg("profile updated")
	return user, nil
}

// AdminUpdateProfile applies input to an arbitrary user, including the role
// reference and confirmation state.
func (s *UserService) AdminUpdateProfile(ctx context.Context, targetID int64, input ports.AdminProfileInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.checkNameFree(ctx, input.Name, user.ID); err != nil {
		return nil, err
	}
	user.Name = input.Name

	if input.Phone != nil {
		if err := s.checkPhoneFree(ctx, *input.Phone, user.ID); err != nil {
			return nil, err
		}
		user.Phone = *input.Phone
	}
	applyProfile(user, input.ProfileInput)

	if input.RoleID != nil {
		role, err := s.roles.FindByID(ctx, *input.RoleID)
		if err != nil {
			return nil, err
		}
		user.RoleID = role.ID
		user.Role = *role
	}
	if input.Confirmed != nil {
		user.Confirmed = *input.Confirmed
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("admin update profile: %w", err)
	}
	s.log.Info().Int64("user_id", user.ID).Msg("profile updated by administrator")
	return user, nil
}

// Delete removes a user. Blogs, comments and follow edges go with them via
// the storage layer's cascade rules.
func (s *UserService) Delete(ctx context.Context, targetID int64) error {
	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Info().Int64("user_id", targetID).Msg("user deleted")
	return nil
}

func applyProfile(user *domain.User, input ports.ProfileInput) {
	if input.Age != nil {
		user.Age = *input.Age
	}
	if input.Gender != nil {
		user.Gender = *input.Gender
	}
	if input.Location != nil {
		user.Location = *input.Location
	}
	if input.AboutMe != nil {
		user.AboutMe = *input.AboutMe
	}
}

func (s *UserService) checkNameFree(ctx context.Context, name string, selfID int64) error {
	existing, err := s.users.FindByName(ctx, name)
	if err == nil && existing.ID != selfID {
		return domain.ErrNameTaken
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("check name: %w", err)
	}
	return nil
}

func (s *UserService) checkPhoneFree(ctx context.Context, phone string, selfID int64) error {
	if phone == "" {
		return nil
	}
	existing, err := s.users.FindByPhone(ctx, phone)
	if err == nil && existing.ID != selfID {
		return domain.ErrPhoneTaken
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("check phone: %w", err)
	}
	return nil
}
