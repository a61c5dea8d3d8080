package repositories

import (
	"context"
	"time"

	"driveline/internal/adapters/persistence/models"
	"driveline/internal/core/domain"
)

// UserRepository handles user persistence
type UserRepository interface {
	Create(ctx context.Context, user *models.User, role domain.Role) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	RoleOf(ctx context.Context, userID uint) (domain.Role, error)
	SetRole(ctx context.Context, userID uint, role domain.Role) error
}

// SessionRepository handles session persistence
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByTokenHash(ctx context.Context, hash string) (*models.Session, error)
	Touch(ctx context.Context, id uint, expiresAt time.Time) error
	DeleteByTokenHash(ctx context.Context, hash string) error
	DeleteByUser(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// CatalogRepository handles the make and model reference tables
type CatalogRepository interface {
	CreateMake(ctx context.Context, m *models.Make) error
	GetMakeByID(ctx context.Context, id uint) (*models.Make, error)
	GetMakeByName(ctx context.Context, name string) (*models.Make, error)
	ListMakes(ctx context.Context) ([]models.Make, error)
	UpdateMake(ctx context.Context, m *models.Make) error
	DeleteMake(ctx context.Context, id uint) error
	MakeReferenced(ctx context.Context, id uint) (bool, error)

	CreateCarModel(ctx context.Context, m *models.CarModel) error
	GetCarModelByID(ctx context.Context, id uint) (*models.CarModel, error)
	GetCarModelByName(ctx context.Context, name string) (*models.CarModel, error)
	ListCarModels(ctx context.Context) ([]models.CarModel, error)
	UpdateCarModel(ctx context.Context, m *models.CarModel) error
	DeleteCarModel(ctx context.Context, id uint) error
	CarModelReferenced(ctx context.Context, id uint) (bool, error)
}

// OfferRepository handles seller offer persistence
type OfferRepository interface {
	Create(ctx context.Context, offer *models.Offer) error
	GetByID(ctx context.Context, id uint) (*models.Offer, error)
	List(ctx context.Context) ([]models.Offer, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Offer, error)
	Update(ctx context.Context, offer *models.Offer) error
	Delete(ctx context.Context, id uint) error
	// VINTaken reports whether vin already belongs to another offer or to
	// any inventory vehicle. excludeOfferID skips the offer being updated.
	VINTaken(ctx context.Context, vin string, excludeOfferID uint) (bool, error)
}

// VehicleRepository handles inventory vehicle persistence
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	// CreateWithNames resolves make and model names to reference rows
	// (creating them when missing) and inserts the vehicle, in one
	// transaction.
	CreateWithNames(ctx context.Context, makeName, carModelName string, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id uint) (*models.Vehicle, error)
	List(ctx context.Context, status string) ([]models.Vehicle, error)
	Update(ctx context.Context, vehicle *models.Vehicle) error
	Delete(ctx context.Context, id uint) error
	// VINTaken reports whether vin already belongs to another vehicle or to
	// any pending offer. excludeVehicleID skips the vehicle being updated.
	VINTaken(ctx context.Context, vin string, excludeVehicleID uint) (bool, error)
}

// TradeRepository handles the append-only trade ledger and the two
// multi-table trade operations, which it runs in a single transaction.
type TradeRepository interface {
	// AcceptOffer resolves the offer's make and model to reference rows
	// (creating them when missing), moves the offer into inventory as an
	// available vehicle, records the sale against the offer's owner and
	// deletes the offer. All of it commits or none of it does.
	AcceptOffer(ctx context.Context, offer *models.Offer) (*models.Vehicle, *models.Sale, error)

	// PurchaseVehicle checks the vehicle is available under a row lock,
	// records the purchase and marks the vehicle sold, atomically. Returns
	// domain.ErrConflict when the vehicle is not available.
	PurchaseVehicle(ctx context.Context, vehicleID, buyerID uint) (*models.Purchase, error)

	ListPurchases(ctx context.Context) ([]models.Purchase, error)
	ListPurchasesByUser(ctx context.Context, userID uint) ([]models.Purchase, error)
	ListSales(ctx context.Context) ([]models.Sale, error)
	VehicleReferenced(ctx context.Context, vehicleID uint) (bool, error)

	// Manual ledger administration
	CreatePurchase(ctx context.Context, purchase *models.Purchase) error
	DeletePurchase(ctx context.Context, id uint) error
	CreateSale(ctx context.Context, sale *models.Sale) error
	DeleteSale(ctx context.Context, id uint) error
}
