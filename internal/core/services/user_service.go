package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"driveline/internal/adapters/persistence/models"
	"driveline/internal/adapters/persistence/repositories"
	"driveline/internal/core/domain"
	"driveline/internal/pkg/password"

	"gorm.io/gorm"
)

// User errors
var (
	ErrUserNotFound = fmt.Errorf("%w: user not found", domain.ErrNotFound)
	ErrPhoneTaken   = fmt.Errorf("%w: phone already registered", domain.ErrConflict)
	ErrEmailTaken   = fmt.Errorf("%w: email already registered", domain.ErrConflict)
	ErrSelfDelete   = fmt.Errorf("%w: cannot delete own account via admin route", domain.ErrConflict)
	ErrInvalidRole  = fmt.Errorf("%w: unknown role", ErrValidation)
)

// UserService handles profile and admin user management
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ProfilePatch carries optional profile fields. A nil pointer means the
// field was not supplied; a present zero value is applied as given.
type ProfilePatch struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

// UserPatch carries optional admin-editable fields
type UserPatch struct {
	Email    *string      `json:"email"`
	Phone    *string      `json:"phone"`
	FullName *string      `json:"full_name"`
	Password *string      `json:"password"`
	Role     *domain.Role `json:"role"`
}

// GetProfile returns a user's own profile with their role
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	role, err := s.userRepo.RoleOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	resp.Role = role
	return resp, nil
}

// UpdateProfile applies a partial update to the caller's own profile
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, patch *ProfilePatch) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if patch.Phone != nil {
		phone := strings.TrimSpace(*patch.Phone)
		if !phonePattern.MatchString(phone) {
			return nil, ErrInvalidPhone
		}
		if phone != user.Phone {
			taken, err := s.userRepo.ExistsByEmailOrPhone(ctx, "", phone)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrPhoneTaken
			}
		}
		user.Phone = phone
	}
	if patch.FullName != nil {
		user.FullName = strings.TrimSpace(*patch.FullName)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// ChangePassword replaces the caller's password
func (s *UserService) ChangePassword(ctx context.Context, userID uint, newPassword string) error {
	if !password.ValidatePassword(newPassword) {
		return ErrWeakPassword
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ Password changed for user ID: %d", userID)
	return nil
}

// DeleteAccount removes the caller's account, their sessions and role link
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

// ListUsers lists all users except the requesting operator
func (s *UserService) ListUsers(ctx context.Context, excludeID uint) ([]models.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		if users[i].ID == excludeID {
			continue
		}
		resp := users[i].ToResponse()
		if role, err := s.userRepo.RoleOf(ctx, users[i].ID); err == nil {
			resp.Role = role
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// GetUser returns any user by ID with their role
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.UserResponse, error) {
	return s.GetProfile(ctx, id)
}

// CreateUser creates an account with an explicit role (operator action)
func (s *UserService) CreateUser(ctx context.Context, input *RegisterInput, role domain.Role) (*models.UserResponse, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	phone := strings.TrimSpace(input.Phone)

	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if !phonePattern.MatchString(phone) {
		return nil, ErrInvalidPhone
	}
	if !password.ValidatePassword(input.Password) {
		return nil, ErrWeakPassword
	}

	exists, err := s.userRepo.ExistsByEmailOrPhone(ctx, email, phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Phone:    phone,
		FullName: strings.TrimSpace(input.FullName),
		Password: hashed,
	}
	if err := s.userRepo.Create(ctx, user, role); err != nil {
		return nil, err
	}

	log.Printf("✅ User created by operator: %s [%s]", user.Email, role)

	resp := user.ToResponse()
	resp.Role = role
	return resp, nil
}

// UpdateUser applies a partial admin update to any user
func (s *UserService) UpdateUser(ctx context.Context, id uint, patch *UserPatch) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if !emailPattern.MatchString(email) {
			return nil, ErrInvalidEmail
		}
		if email != user.Email {
			taken, err := s.userRepo.ExistsByEmailOrPhone(ctx, email, "")
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrEmailTaken
			}
		}
		user.Email = email
	}
	if patch.Phone != nil {
		phone := strings.TrimSpace(*patch.Phone)
		if !phonePattern.MatchString(phone) {
			return nil, ErrInvalidPhone
		}
		if phone != user.Phone {
			taken, err := s.userRepo.ExistsByEmailOrPhone(ctx, "", phone)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrPhoneTaken
			}
		}
		user.Phone = phone
	}
	if patch.FullName != nil {
		user.FullName = strings.TrimSpace(*patch.FullName)
	}
	if patch.Password != nil {
		if !password.ValidatePassword(*patch.Password) {
			return nil, ErrWeakPassword
		}
		hashed, err := password.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if patch.Role != nil {
		if !patch.Role.Valid() {
			return nil, ErrInvalidRole
		}
		if err := s.userRepo.SetRole(ctx, id, *patch.Role); err != nil {
			return nil, err
		}
	}

	return s.GetProfile(ctx, id)
}

// DeleteUser removes a user account (operator action). Operators cannot
// remove themselves through this path.
func (s *UserService) DeleteUser(ctx context.Context, operatorID, id uint) error {
	if operatorID == id {
		return ErrSelfDelete
	}
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ User deleted by operator: ID %d", id)
	return nil
}
