package repositories

import (
	"context"

	"driveline/internal/adapters/persistence/models"
	"driveline/internal/core/domain"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user and their role link in one transaction
func (r *userRepository) Create(ctx context.Context, user *models.User, role domain.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		var roleRow models.Role
		if err := tx.Where("name = ?", string(role)).First(&roleRow).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserRole{UserID: user.ID, RoleID: roleRow.ID}).Error
	})
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByLogin gets a user by email or phone, whichever matches
func (r *userRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ? OR phone = ?", login, login).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmailOrPhone checks if email or phone is already registered
func (r *userRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? OR phone = ?", email, phone).
		Count(&count).Error
	return count > 0, err
}

// List lists all users
func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

// Update updates a user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete removes a user together with their sessions and role link
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

// RoleOf returns the role assigned to a user
func (r *userRepository) RoleOf(ctx context.Context, userID uint) (domain.Role, error) {
	var name string
	err := r.db.WithContext(ctx).Model(&models.UserRole{}).
		Select("roles.name").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ?", userID).
		Scan(&name).Error
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", gorm.ErrRecordNotFound
	}
	return domain.Role(name), nil
}

// SetRole replaces a user's role assignment
func (r *userRepository) SetRole(ctx context.Context, userID uint, role domain.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var roleRow models.Role
		if err := tx.Where("name = ?", string(role)).First(&roleRow).Error; err != nil {
			return err
		}
		return tx.Model(&models.UserRole{}).
			Where("user_id = ?", userID).
			Update("role_id", roleRow.ID).Error
	})
}
