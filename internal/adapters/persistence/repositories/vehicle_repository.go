package repositories

import (
	"context"

	"driveline/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// vehicleRepository implements VehicleRepository interface
type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

// Create creates a new vehicle
func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

// CreateWithNames resolves the reference rows and inserts the vehicle atomically
func (r *vehicleRepository) CreateWithNames(ctx context.Context, makeName, carModelName string, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		makeRow, err := getOrCreateMake(tx, makeName)
		if err != nil {
			return err
		}
		carModelRow, err := getOrCreateCarModel(tx, carModelName)
		if err != nil {
			return err
		}
		vehicle.MakeID = makeRow.ID
		vehicle.CarModelID = carModelRow.ID
		return tx.Create(vehicle).Error
	})
}

// GetByID gets a vehicle by ID with reference rows preloaded
func (r *vehicleRepository) GetByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).
		Preload("Make").
		Preload("CarModel").
		First(&vehicle, id).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// List lists vehicles, optionally filtered by status
func (r *vehicleRepository) List(ctx context.Context, status string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	query := r.db.WithContext(ctx).Preload("Make").Preload("CarModel").Order("id ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&vehicles).Error
	return vehicles, err
}

// Update updates a vehicle
func (r *vehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

// Delete removes a vehicle
func (r *vehicleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Vehicle{}, id).Error
}

// VINTaken checks the VIN against other vehicles and all pending offers
func (r *vehicleRepository) VINTaken(ctx context.Context, vin string, excludeVehicleID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("vin = ? AND id <> ?", vin, excludeVehicleID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	err = r.db.WithContext(ctx).Model(&models.Offer{}).
		Where("vin = ?", vin).
		Count(&count).Error
	return count > 0, err
}
