package config

import (
	"log"

	"driveline/internal/adapters/persistence/models"
	"driveline/internal/core/domain"
	"driveline/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedRoles(); err != nil {
		return err
	}
	if err := s.seedOperator(); err != nil {
		log.Printf("⚠️ Operator seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedRoles makes sure both fixed roles exist
func (s *Seeder) seedRoles() error {
	for _, name := range []domain.Role{domain.RoleOperator, domain.RoleMember} {
		var count int64
		if err := s.db.Model(&models.Role{}).Where("name = ?", string(name)).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := s.db.Create(&models.Role{Name: string(name)}).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedOperator seeds the default operator account so a fresh database has
// someone who can accept offers and manage inventory
func (s *Seeder) seedOperator() error {
	var count int64
	err := s.db.Model(&models.UserRole{}).
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.name = ?", string(domain.RoleOperator)).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Operator already exists
	}

	hashedPassword, err := password.Hash(s.cfg.Seed.OperatorPassword)
	if err != nil {
		return err
	}

	operator := &models.User{
		Email:    s.cfg.Seed.OperatorEmail,
		Phone:    s.cfg.Seed.OperatorPhone,
		FullName: "Default Operator",
		Password: hashedPassword,
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(operator).Error; err != nil {
			return err
		}
		var roleRow models.Role
		if err := tx.Where("name = ?", string(domain.RoleOperator)).First(&roleRow).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.UserRole{UserID: operator.ID, RoleID: roleRow.ID}).Error; err != nil {
			return err
		}
		log.Printf("✅ Operator user created: %s", operator.Email)
		return nil
	})
}
