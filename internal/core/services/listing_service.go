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

	"gorm.io/gorm"
)

// Listing errors
var (
	ErrOfferNotFound       = fmt.Errorf("%w: offer not found", domain.ErrNotFound)
	ErrVehicleNotFound     = fmt.Errorf("%w: vehicle not found", domain.ErrNotFound)
	ErrRecordNotFound      = fmt.Errorf("%w: record not found", domain.ErrNotFound)
	ErrVINTaken            = fmt.Errorf("%w: vin already registered", domain.ErrConflict)
	ErrVehicleNotAvailable = fmt.Errorf("%w: vehicle is not available", domain.ErrConflict)
	ErrVehicleReferenced   = fmt.Errorf("%w: vehicle appears in the trade ledger", domain.ErrConflict)
	ErrInvalidVIN          = fmt.Errorf("%w: vin must be 17 characters", ErrValidation)
	ErrMissingField        = fmt.Errorf("%w: required field missing", ErrValidation)
)

// ListingService handles offers, inventory vehicles and trades
type ListingService struct {
	offerRepo   repositories.OfferRepository
	vehicleRepo repositories.VehicleRepository
	tradeRepo   repositories.TradeRepository
	userRepo    repositories.UserRepository
}

// NewListingService creates a new listing service
func NewListingService(
	offerRepo repositories.OfferRepository,
	vehicleRepo repositories.VehicleRepository,
	tradeRepo repositories.TradeRepository,
	userRepo repositories.UserRepository,
) *ListingService {
	return &ListingService{
		offerRepo:   offerRepo,
		vehicleRepo: vehicleRepo,
		tradeRepo:   tradeRepo,
		userRepo:    userRepo,
	}
}

// OfferInput represents a new offer submission
type OfferInput struct {
	Make        string `json:"make"`
	Model       string `json:"model"`
	Mileage     int    `json:"mileage"`
	Price       int    `json:"price"`
	VIN         string `json:"vin"`
	Description string `json:"description"`
}

// OfferPatch carries optional offer fields. A nil pointer means the field
// was not supplied; a present zero value is applied as given.
type OfferPatch struct {
	Make        *string `json:"make"`
	Model       *string `json:"model"`
	Mileage     *int    `json:"mileage"`
	Price       *int    `json:"price"`
	VIN         *string `json:"vin"`
	Description *string `json:"description"`
}

// VehicleInput represents a direct inventory addition
type VehicleInput struct {
	Make        string `json:"make"`
	Model       string `json:"model"`
	Mileage     int    `json:"mileage"`
	Price       int    `json:"price"`
	VIN         string `json:"vin"`
	Description string `json:"description"`
}

// VehiclePatch carries optional non-status vehicle fields
type VehiclePatch struct {
	Mileage     *int    `json:"mileage"`
	Price       *int    `json:"price"`
	VIN         *string `json:"vin"`
	Description *string `json:"description"`
}

// LedgerInput represents a manual trade ledger entry
type LedgerInput struct {
	VehicleID uint `json:"vehicle_id"`
	UserID    uint `json:"user_id"`
	Price     int  `json:"price"`
}

func normalizeVIN(vin string) string {
	return strings.ToUpper(strings.TrimSpace(vin))
}

// ============================================================
// Offers
// ============================================================

// SubmitOffer creates an offer on behalf of a member
func (s *ListingService) SubmitOffer(ctx context.Context, userID uint, input *OfferInput) (*models.Offer, error) {
	vin := normalizeVIN(input.VIN)
	if len(vin) != 17 {
		return nil, ErrInvalidVIN
	}
	if strings.TrimSpace(input.Make) == "" || strings.TrimSpace(input.Model) == "" {
		return nil, ErrMissingField
	}

	taken, err := s.offerRepo.VINTaken(ctx, vin, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrVINTaken
	}

	offer := &models.Offer{
		UserID:      userID,
		Make:        strings.TrimSpace(input.Make),
		Model:       strings.TrimSpace(input.Model),
		Mileage:     input.Mileage,
		Price:       input.Price,
		VIN:         vin,
		Description: input.Description,
	}
	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, err
	}

	log.Printf("✅ Offer submitted: %s %s [%s]", offer.Make, offer.Model, offer.VIN)
	return offer, nil
}

// UpdateOffer applies a partial update to the caller's own offer. Offers
// owned by someone else are reported as not found.
func (s *ListingService) UpdateOffer(ctx context.Context, userID, id uint, patch *OfferPatch) (*models.Offer, error) {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	if offer.UserID != userID {
		return nil, ErrOfferNotFound
	}

	if patch.VIN != nil {
		vin := normalizeVIN(*patch.VIN)
		if len(vin) != 17 {
			return nil, ErrInvalidVIN
		}
		if vin != offer.VIN {
			taken, err := s.offerRepo.VINTaken(ctx, vin, offer.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrVINTaken
			}
		}
		offer.VIN = vin
	}
	if patch.Make != nil {
		offer.Make = strings.TrimSpace(*patch.Make)
	}
	if patch.Model != nil {
		offer.Model = strings.TrimSpace(*patch.Model)
	}
	if patch.Mileage != nil {
		offer.Mileage = *patch.Mileage
	}
	if patch.Price != nil {
		offer.Price = *patch.Price
	}
	if patch.Description != nil {
		offer.Description = *patch.Description
	}

	if err := s.offerRepo.Update(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// DeleteOffer removes the caller's own offer
func (s *ListingService) DeleteOffer(ctx context.Context, userID, id uint) error {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOfferNotFound
		}
		return err
	}
	if offer.UserID != userID {
		return ErrOfferNotFound
	}
	return s.offerRepo.Delete(ctx, id)
}

// ListMyOffers lists the caller's offers
func (s *ListingService) ListMyOffers(ctx context.Context, userID uint) ([]models.Offer, error) {
	return s.offerRepo.ListByUser(ctx, userID)
}

// ListAllOffers lists every pending offer (operator view)
func (s *ListingService) ListAllOffers(ctx context.Context) ([]models.Offer, error) {
	return s.offerRepo.List(ctx)
}

// AcceptOffer moves an offer into inventory. The reference rows, the new
// vehicle, the sale record and the offer deletion commit together.
func (s *ListingService) AcceptOffer(ctx context.Context, id uint) (*models.Vehicle, error) {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}

	vehicle, sale, err := s.tradeRepo.AcceptOffer(ctx, offer)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrVINTaken
		}
		return nil, err
	}

	log.Printf("✅ Offer %d accepted: vehicle %d, sale %d", offer.ID, vehicle.ID, sale.ID)
	return s.vehicleRepo.GetByID(ctx, vehicle.ID)
}

// ============================================================
// Vehicles
// ============================================================

// AddVehicle adds a vehicle straight to inventory without a sale record
func (s *ListingService) AddVehicle(ctx context.Context, input *VehicleInput) (*models.Vehicle, error) {
	vin := normalizeVIN(input.VIN)
	if len(vin) != 17 {
		return nil, ErrInvalidVIN
	}
	if strings.TrimSpace(input.Make) == "" || strings.TrimSpace(input.Model) == "" {
		return nil, ErrMissingField
	}

	taken, err := s.vehicleRepo.VINTaken(ctx, vin, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrVINTaken
	}

	vehicle := &models.Vehicle{
		Mileage:     input.Mileage,
		VIN:         vin,
		Status:      models.VehicleAvailable,
		Price:       input.Price,
		Description: input.Description,
	}
	err = s.vehicleRepo.CreateWithNames(ctx, strings.TrimSpace(input.Make), strings.TrimSpace(input.Model), vehicle)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Vehicle added to inventory: %s", vehicle.VIN)
	return s.vehicleRepo.GetByID(ctx, vehicle.ID)
}

// UpdateVehicle applies a partial update to non-status vehicle fields
func (s *ListingService) UpdateVehicle(ctx context.Context, id uint, patch *VehiclePatch) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}

	if patch.VIN != nil {
		vin := normalizeVIN(*patch.VIN)
		if len(vin) != 17 {
			return nil, ErrInvalidVIN
		}
		if vin != vehicle.VIN {
			taken, err := s.vehicleRepo.VINTaken(ctx, vin, vehicle.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrVINTaken
			}
		}
		vehicle.VIN = vin
	}
	if patch.Mileage != nil {
		vehicle.Mileage = *patch.Mileage
	}
	if patch.Price != nil {
		vehicle.Price = *patch.Price
	}
	if patch.Description != nil {
		vehicle.Description = *patch.Description
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return s.vehicleRepo.GetByID(ctx, vehicle.ID)
}

// DeleteVehicle removes a vehicle unless the trade ledger references it
func (s *ListingService) DeleteVehicle(ctx context.Context, id uint) error {
	if _, err := s.vehicleRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}

	referenced, err := s.tradeRepo.VehicleReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return ErrVehicleReferenced
	}
	return s.vehicleRepo.Delete(ctx, id)
}

// GetVehicle returns a vehicle by ID
func (s *ListingService) GetVehicle(ctx context.Context, id uint) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

// ListAvailableVehicles lists vehicles open for purchase
func (s *ListingService) ListAvailableVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return s.vehicleRepo.List(ctx, models.VehicleAvailable)
}

// ListAllVehicles lists the whole inventory regardless of status
func (s *ListingService) ListAllVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return s.vehicleRepo.List(ctx, "")
}

// ============================================================
// Trades
// ============================================================

// PurchaseVehicle buys an available vehicle. The availability check, the
// purchase record and the status flip happen in one locked transaction, so
// of any number of concurrent attempts exactly one succeeds.
func (s *ListingService) PurchaseVehicle(ctx context.Context, buyerID, vehicleID uint) (*models.Purchase, error) {
	purchase, err := s.tradeRepo.PurchaseVehicle(ctx, vehicleID, buyerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrVehicleNotAvailable
		}
		return nil, err
	}

	log.Printf("✅ Vehicle %d purchased by user %d", vehicleID, buyerID)
	return purchase, nil
}

// ListMyPurchases lists the caller's purchase history
func (s *ListingService) ListMyPurchases(ctx context.Context, userID uint) ([]models.Purchase, error) {
	return s.tradeRepo.ListPurchasesByUser(ctx, userID)
}

// ListPurchases lists the full purchase ledger (operator view)
func (s *ListingService) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	return s.tradeRepo.ListPurchases(ctx)
}

// ListSales lists the full sale ledger (operator view)
func (s *ListingService) ListSales(ctx context.Context) ([]models.Sale, error) {
	return s.tradeRepo.ListSales(ctx)
}

// CreatePurchase inserts a manual purchase record (operator action)
func (s *ListingService) CreatePurchase(ctx context.Context, input *LedgerInput) (*models.Purchase, error) {
	if _, err := s.vehicleRepo.GetByID(ctx, input.VehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	purchase := &models.Purchase{
		VehicleID: input.VehicleID,
		BuyerID:   input.UserID,
		Price:     input.Price,
	}
	if err := s.tradeRepo.CreatePurchase(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// DeletePurchase removes a purchase record (operator action)
func (s *ListingService) DeletePurchase(ctx context.Context, id uint) error {
	err := s.tradeRepo.DeletePurchase(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	return err
}

// CreateSale inserts a manual sale record (operator action)
func (s *ListingService) CreateSale(ctx context.Context, input *LedgerInput) (*models.Sale, error) {
	if _, err := s.vehicleRepo.GetByID(ctx, input.VehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	sale := &models.Sale{
		VehicleID: input.VehicleID,
		SellerID:  input.UserID,
		Price:     input.Price,
	}
	if err := s.tradeRepo.CreateSale(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// DeleteSale removes a sale record (operator action)
func (s *ListingService) DeleteSale(ctx context.Context, id uint) error {
	err := s.tradeRepo.DeleteSale(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	return err
}
