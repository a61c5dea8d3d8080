package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"driveline/internal/adapters/persistence/models"
	"driveline/internal/adapters/persistence/repositories"
	"driveline/internal/core/domain"

	"gorm.io/gorm"
)

// Catalog errors
var (
	ErrMakeNotFound         = fmt.Errorf("%w: make not found", domain.ErrNotFound)
	ErrCarModelNotFound     = fmt.Errorf("%w: model not found", domain.ErrNotFound)
	ErrNameTaken            = fmt.Errorf("%w: name already exists", domain.ErrConflict)
	ErrCatalogRowReferenced = fmt.Errorf("%w: vehicles still reference this entry", domain.ErrConflict)
	ErrEmptyName            = fmt.Errorf("%w: name must not be empty", ErrValidation)
)

// CatalogService handles the make and model reference tables
type CatalogService struct {
	catalogRepo repositories.CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repositories.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// CreateMake adds a make, rejecting duplicate names
func (s *CatalogService) CreateMake(ctx context.Context, name string) (*models.Make, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	if _, err := s.catalogRepo.GetMakeByName(ctx, name); err == nil {
		return nil, ErrNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m := &models.Make{Name: name}
	if err := s.catalogRepo.CreateMake(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ListMakes lists all makes
func (s *CatalogService) ListMakes(ctx context.Context) ([]models.Make, error) {
	return s.catalogRepo.ListMakes(ctx)
}

// GetMake returns a make by ID
func (s *CatalogService) GetMake(ctx context.Context, id uint) (*models.Make, error) {
	m, err := s.catalogRepo.GetMakeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMakeNotFound
		}
		return nil, err
	}
	return m, nil
}

// UpdateMake renames a make, rejecting duplicate names
func (s *CatalogService) UpdateMake(ctx context.Context, id uint, name string) (*models.Make, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	m, err := s.catalogRepo.GetMakeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMakeNotFound
		}
		return nil, err
	}

	if existing, err := s.catalogRepo.GetMakeByName(ctx, name); err == nil {
		if existing.ID != id {
			return nil, ErrNameTaken
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m.Name = name
	if err := s.catalogRepo.UpdateMake(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMake removes a make unless vehicles reference it
func (s *CatalogService) DeleteMake(ctx context.Context, id uint) error {
	if _, err := s.catalogRepo.GetMakeByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMakeNotFound
		}
		return err
	}

	referenced, err := s.catalogRepo.MakeReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return ErrCatalogRowReferenced
	}
	return s.catalogRepo.DeleteMake(ctx, id)
}

// CreateCarModel adds a car model, rejecting duplicate names
func (s *CatalogService) CreateCarModel(ctx context.Context, name string) (*models.CarModel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	if _, err := s.catalogRepo.GetCarModelByName(ctx, name); err == nil {
		return nil, ErrNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m := &models.CarModel{Name: name}
	if err := s.catalogRepo.CreateCarModel(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ListCarModels lists all car models
func (s *CatalogService) ListCarModels(ctx context.Context) ([]models.CarModel, error) {
	return s.catalogRepo.ListCarModels(ctx)
}

// GetCarModel returns a car model by ID
func (s *CatalogService) GetCarModel(ctx context.Context, id uint) (*models.CarModel, error) {
	m, err := s.catalogRepo.GetCarModelByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarModelNotFound
		}
		return nil, err
	}
	return m, nil
}

// UpdateCarModel renames a car model, rejecting duplicate names
func (s *CatalogService) UpdateCarModel(ctx context.Context, id uint, name string) (*models.CarModel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	m, err := s.catalogRepo.GetCarModelByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarModelNotFound
		}
		return nil, err
	}

	if existing, err := s.catalogRepo.GetCarModelByName(ctx, name); err == nil {
		if existing.ID != id {
			return nil, ErrNameTaken
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m.Name = name
	if err := s.catalogRepo.UpdateCarModel(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteCarModel removes a car model unless vehicles reference it
func (s *CatalogService) DeleteCarModel(ctx context.Context, id uint) error {
	if _, err := s.catalogRepo.GetCarModelByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCarModelNotFound
		}
		return err
	}

	referenced, err := s.catalogRepo.CarModelReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return ErrCatalogRowReferenced
	}
	return s.catalogRepo.DeleteCarModel(ctx, id)
}
