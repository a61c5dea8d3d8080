package repositories

import (
	"context"

	"driveline/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// offerRepository implements OfferRepository interface
type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

// Create creates a new offer
func (r *offerRepository) Create(ctx context.Context, offer *models.Offer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

// GetByID gets an offer by ID with its owner preloaded
func (r *offerRepository) GetByID(ctx context.Context, id uint) (*models.Offer, error) {
	var offer models.Offer
	err := r.db.WithContext(ctx).Preload("Owner").First(&offer, id).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// List lists all offers with owners preloaded
func (r *offerRepository) List(ctx context.Context) ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.WithContext(ctx).Preload("Owner").Order("id ASC").Find(&offers).Error
	return offers, err
}

// ListByUser lists offers belonging to a user
func (r *offerRepository) ListByUser(ctx context.Context, userID uint) ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&offers).Error
	return offers, err
}

// Update updates an offer
func (r *offerRepository) Update(ctx context.Context, offer *models.Offer) error {
	return r.db.WithContext(ctx).Save(offer).Error
}

// Delete removes an offer
func (r *offerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Offer{}, id).Error
}

// VINTaken checks the VIN against other offers and all inventory vehicles
func (r *offerRepository) VINTaken(ctx context.Context, vin string, excludeOfferID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Offer{}).
		Where("vin = ? AND id <> ?", vin, excludeOfferID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	err = r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("vin = ?", vin).
		Count(&count).Error
	return count > 0, err
}
