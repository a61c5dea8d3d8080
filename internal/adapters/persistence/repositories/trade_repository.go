package repositories

import (
	"context"
	"errors"
	"fmt"

	"driveline/internal/adapters/persistence/models"
	"driveline/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// tradeRepository implements TradeRepository interface
type tradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository(db *gorm.DB) TradeRepository {
	return &tradeRepository{db: db}
}

// AcceptOffer moves an offer into inventory and records the sale atomically
func (r *tradeRepository) AcceptOffer(ctx context.Context, offer *models.Offer) (*models.Vehicle, *models.Sale, error) {
	var vehicle models.Vehicle
	var sale models.Sale

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		makeRow, err := getOrCreateMake(tx, offer.Make)
		if err != nil {
			return err
		}
		carModelRow, err := getOrCreateCarModel(tx, offer.Model)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Vehicle{}).Where("vin = ?", offer.VIN).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: vin %s already in inventory", domain.ErrConflict, offer.VIN)
		}

		vehicle = models.Vehicle{
			MakeID:      makeRow.ID,
			CarModelID:  carModelRow.ID,
			Mileage:     offer.Mileage,
			VIN:         offer.VIN,
			Status:      models.VehicleAvailable,
			Price:       offer.Price,
			Description: offer.Description,
		}
		if err := tx.Create(&vehicle).Error; err != nil {
			return err
		}

		sale = models.Sale{
			VehicleID: vehicle.ID,
			SellerID:  offer.UserID,
			Price:     offer.Price,
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Offer{}, offer.ID).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &vehicle, &sale, nil
}

// PurchaseVehicle records a purchase and marks the vehicle sold atomically.
// The vehicle row is locked for the duration of the transaction so two
// concurrent buyers cannot both see it as available.
func (r *tradeRepository) PurchaseVehicle(ctx context.Context, vehicleID, buyerID uint) (*models.Purchase, error) {
	var purchase models.Purchase

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vehicle models.Vehicle
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&vehicle, vehicleID).Error
		if err != nil {
			return err
		}
		if !vehicle.IsAvailable() {
			return fmt.Errorf("%w: vehicle %d is not available", domain.ErrConflict, vehicleID)
		}

		purchase = models.Purchase{
			VehicleID: vehicle.ID,
			BuyerID:   buyerID,
			Price:     vehicle.Price,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		return tx.Model(&models.Vehicle{}).
			Where("id = ?", vehicle.ID).
			Update("status", models.VehicleSold).Error
	})
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// ListPurchases lists all purchases with relations preloaded
func (r *tradeRepository) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("Vehicle.Make").
		Preload("Vehicle.CarModel").
		Preload("Buyer").
		Order("id ASC").
		Find(&purchases).Error
	return purchases, err
}

// ListPurchasesByUser lists purchases made by a user
func (r *tradeRepository) ListPurchasesByUser(ctx context.Context, userID uint) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("Vehicle.Make").
		Preload("Vehicle.CarModel").
		Where("buyer_id = ?", userID).
		Order("id ASC").
		Find(&purchases).Error
	return purchases, err
}

// ListSales lists all sales with relations preloaded
func (r *tradeRepository) ListSales(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("Vehicle.Make").
		Preload("Vehicle.CarModel").
		Preload("Seller").
		Order("id ASC").
		Find(&sales).Error
	return sales, err
}

// VehicleReferenced checks if a vehicle appears in the trade ledger
func (r *tradeRepository) VehicleReferenced(ctx context.Context, vehicleID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("vehicle_id = ?", vehicleID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	err = r.db.WithContext(ctx).Model(&models.Sale{}).
		Where("vehicle_id = ?", vehicleID).
		Count(&count).Error
	return count > 0, err
}

// CreatePurchase inserts a manual purchase record
func (r *tradeRepository) CreatePurchase(ctx context.Context, purchase *models.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

// DeletePurchase removes a purchase record
func (r *tradeRepository) DeletePurchase(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Purchase{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateSale inserts a manual sale record
func (r *tradeRepository) CreateSale(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// DeleteSale removes a sale record
func (r *tradeRepository) DeleteSale(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Sale{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func getOrCreateMake(tx *gorm.DB, name string) (*models.Make, error) {
	var m models.Make
	err := tx.Where("name = ?", name).First(&m).Error
	if err == nil {
		return &m, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	m = models.Make{Name: name}
	if err := tx.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func getOrCreateCarModel(tx *gorm.DB, name string) (*models.CarModel, error) {
	var m models.CarModel
	err := tx.Where("name = ?", name).First(&m).Error
	if err == nil {
		return &m, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	m = models.CarModel{Name: name}
	if err := tx.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
