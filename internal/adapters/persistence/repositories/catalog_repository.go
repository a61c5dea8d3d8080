package repositories

import (
	"context"

	"driveline/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// catalogRepository implements CatalogRepository interface
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// CreateMake creates a new make
func (r *catalogRepository) CreateMake(ctx context.Context, m *models.Make) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// GetMakeByID gets a make by ID
func (r *catalogRepository) GetMakeByID(ctx context.Context, id uint) (*models.Make, error) {
	var m models.Make
	err := r.db.WithContext(ctx).First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMakeByName gets a make by name
func (r *catalogRepository) GetMakeByName(ctx context.Context, name string) (*models.Make, error) {
	var m models.Make
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMakes lists all makes
func (r *catalogRepository) ListMakes(ctx context.Context) ([]models.Make, error) {
	var makes []models.Make
	err := r.db.WithContext(ctx).Order("name ASC").Find(&makes).Error
	return makes, err
}

// UpdateMake updates a make
func (r *catalogRepository) UpdateMake(ctx context.Context, m *models.Make) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// DeleteMake removes a make
func (r *catalogRepository) DeleteMake(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Make{}, id).Error
}

// MakeReferenced checks if any vehicle points at this make
func (r *catalogRepository) MakeReferenced(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("make_id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// CreateCarModel creates a new car model
func (r *catalogRepository) CreateCarModel(ctx context.Context, m *models.CarModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// GetCarModelByID gets a car model by ID
func (r *catalogRepository) GetCarModelByID(ctx context.Context, id uint) (*models.CarModel, error) {
	var m models.CarModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetCarModelByName gets a car model by name
func (r *catalogRepository) GetCarModelByName(ctx context.Context, name string) (*models.CarModel, error) {
	var m models.CarModel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListCarModels lists all car models
func (r *catalogRepository) ListCarModels(ctx context.Context) ([]models.CarModel, error) {
	var carModels []models.CarModel
	err := r.db.WithContext(ctx).Order("name ASC").Find(&carModels).Error
	return carModels, err
}

// UpdateCarModel updates a car model
func (r *catalogRepository) UpdateCarModel(ctx context.Context, m *models.CarModel) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// DeleteCarModel removes a car model
func (r *catalogRepository) DeleteCarModel(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.CarModel{}, id).Error
}

// CarModelReferenced checks if any vehicle points at this car model
func (r *catalogRepository) CarModelReferenced(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("car_model_id = ?", id).
		Count(&count).Error
	return count > 0, err
}
