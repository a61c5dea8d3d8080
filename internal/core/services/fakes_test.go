package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"driveline/internal/adapters/persistence/models"
	"driveline/internal/core/domain"

	"gorm.io/gorm"
)

// fakeStore is a single in-memory database shared by the repository fakes.
// One mutex guards everything, which also gives the trade operations the
// same all-or-nothing behavior the real transactions have.
type fakeStore struct {
	mu sync.Mutex

	users       map[uint]*models.User
	rolesByUser map[uint]domain.Role
	sessions    map[uint]*models.Session
	makes       map[uint]*models.Make
	carModels   map[uint]*models.CarModel
	vehicles    map[uint]*models.Vehicle
	offers      map[uint]*models.Offer
	purchases   map[uint]*models.Purchase
	sales       map[uint]*models.Sale

	nextID uint

	// failAccept makes AcceptOffer fail after its writes are staged but
	// before they commit, for atomicity tests.
	failAccept bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[uint]*models.User),
		rolesByUser: make(map[uint]domain.Role),
		sessions:    make(map[uint]*models.Session),
		makes:       make(map[uint]*models.Make),
		carModels:   make(map[uint]*models.CarModel),
		vehicles:    make(map[uint]*models.Vehicle),
		offers:      make(map[uint]*models.Offer),
		purchases:   make(map[uint]*models.Purchase),
		sales:       make(map[uint]*models.Sale),
	}
}

func (s *fakeStore) nextIDLocked() uint {
	s.nextID++
	return s.nextID
}

// ============================================================
// User repository fake
// ============================================================

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, user *models.User, role domain.Role) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.nextIDLocked()
	user.CreatedAt = time.Now()
	cp := *user
	s.users[user.ID] = &cp
	s.rolesByUser[user.ID] = role
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByLogin(_ context.Context, login string) (*models.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == login || u.Phone == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ExistsByEmailOrPhone(_ context.Context, email, phone string) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if (email != "" && u.Email == email) || (phone != "" && u.Phone == phone) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var users []models.User
	for _, u := range s.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	delete(s.rolesByUser, id)
	for sid, sess := range s.sessions {
		if sess.UserID == id {
			delete(s.sessions, sid)
		}
	}
	return nil
}

func (r *fakeUserRepo) RoleOf(_ context.Context, userID uint) (domain.Role, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	role, ok := s.rolesByUser[userID]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return role, nil
}

func (r *fakeUserRepo) SetRole(_ context.Context, userID uint, role domain.Role) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rolesByUser[userID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.rolesByUser[userID] = role
	return nil
}

// ============================================================
// Session repository fake
// ============================================================

type fakeSessionRepo struct{ store *fakeStore }

func (r *fakeSessionRepo) Create(_ context.Context, session *models.Session) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	session.ID = s.nextIDLocked()
	session.CreatedAt = time.Now()
	cp := *session
	s.sessions[session.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByTokenHash(_ context.Context, hash string) (*models.Session, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		if sess.TokenHash == hash {
			cp := *sess
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSessionRepo) Touch(_ context.Context, id uint, expiresAt time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	sess.ExpiresAt = expiresAt
	return nil
}

func (r *fakeSessionRepo) DeleteByTokenHash(_ context.Context, hash string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.TokenHash == hash {
			delete(s.sessions, id)
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteByUser(_ context.Context, userID uint) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, sess := range s.sessions {
		if !now.Before(sess.ExpiresAt) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}

// ============================================================
// Catalog repository fake
// ============================================================

type fakeCatalogRepo struct{ store *fakeStore }

func (r *fakeCatalogRepo) CreateMake(_ context.Context, m *models.Make) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.nextIDLocked()
	cp := *m
	s.makes[m.ID] = &cp
	return nil
}

func (r *fakeCatalogRepo) GetMakeByID(_ context.Context, id uint) (*models.Make, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.makes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeCatalogRepo) GetMakeByName(_ context.Context, name string) (*models.Make, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.makes {
		if m.Name == name {
			cp := *m
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCatalogRepo) ListMakes(_ context.Context) ([]models.Make, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var makes []models.Make
	for _, m := range s.makes {
		makes = append(makes, *m)
	}
	return makes, nil
}

func (r *fakeCatalogRepo) UpdateMake(_ context.Context, m *models.Make) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.makes[m.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *m
	s.makes[m.ID] = &cp
	return nil
}

func (r *fakeCatalogRepo) DeleteMake(_ context.Context, id uint) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.makes, id)
	return nil
}

func (r *fakeCatalogRepo) MakeReferenced(_ context.Context, id uint) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.vehicles {
		if v.MakeID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCatalogRepo) CreateCarModel(_ context.Context, m *models.CarModel) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.nextIDLocked()
	cp := *m
	s.carModels[m.ID] = &cp
	return nil
}

func (r *fakeCatalogRepo) GetCarModelByID(_ context.Context, id uint) (*models.CarModel, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.carModels[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeCatalogRepo) GetCarModelByName(_ context.Context, name string) (*models.CarModel, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.carModels {
		if m.Name == name {
			cp := *m
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCatalogRepo) ListCarModels(_ context.Context) ([]models.CarModel, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var carModels []models.CarModel
	for _, m := range s.carModels {
		carModels = append(carModels, *m)
	}
	return carModels, nil
}

func (r *fakeCatalogRepo) UpdateCarModel(_ context.Context, m *models.CarModel) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carModels[m.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *m
	s.carModels[m.ID] = &cp
	return nil
}

func (r *fakeCatalogRepo) DeleteCarModel(_ context.Context, id uint) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carModels, id)
	return nil
}

func (r *fakeCatalogRepo) CarModelReferenced(_ context.Context, id uint) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.vehicles {
		if v.CarModelID == id {
			return true, nil
		}
	}
	return false, nil
}

// ============================================================
// Offer repository fake
// ============================================================

type fakeOfferRepo struct{ store *fakeStore }

func (r *fakeOfferRepo) Create(_ context.Context, offer *models.Offer) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	offer.ID = s.nextIDLocked()
	offer.CreatedAt = time.Now()
	cp := *offer
	s.offers[offer.ID] = &cp
	return nil
}

func (r *fakeOfferRepo) GetByID(_ context.Context, id uint) (*models.Offer, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.offers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOfferRepo) List(_ context.Context) ([]models.Offer, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var offers []models.Offer
	for _, o := range s.offers {
		offers = append(offers, *o)
	}
	return offers, nil
}

func (r *fakeOfferRepo) ListByUser(_ context.Context, userID uint) ([]models.Offer, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var offers []models.Offer
	for _, o := range s.offers {
		if o.UserID == userID {
			offers = append(offers, *o)
		}
	}
	return offers, nil
}

func (r *fakeOfferRepo) Update(_ context.Context, offer *models.Offer) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.offers[offer.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *offer
	s.offers[offer.ID] = &cp
	return nil
}

func (r *fakeOfferRepo) Delete(_ context.Context, id uint) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.offers, id)
	return nil
}

func (r *fakeOfferRepo) VINTaken(_ context.Context, vin string, excludeOfferID uint) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vinTakenLocked(vin, excludeOfferID, 0), nil
}

func (s *fakeStore) vinTakenLocked(vin string, excludeOfferID, excludeVehicleID uint) bool {
	for _, o := range s.offers {
		if o.VIN == vin && o.ID != excludeOfferID {
			return true
		}
	}
	for _, v := range s.vehicles {
		if v.VIN == vin && v.ID != excludeVehicleID {
			return true
		}
	}
	return false
}

// ============================================================
// Vehicle repository fake
// ============================================================

type fakeVehicleRepo struct{ store *fakeStore }

func (r *fakeVehicleRepo) Create(_ context.Context, vehicle *models.Vehicle) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	vehicle.ID = s.nextIDLocked()
	cp := *vehicle
	s.vehicles[vehicle.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) CreateWithNames(_ context.Context, makeName, carModelName string, vehicle *models.Vehicle) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	vehicle.MakeID = s.getOrCreateMakeLocked(makeName)
	vehicle.CarModelID = s.getOrCreateCarModelLocked(carModelName)
	vehicle.ID = s.nextIDLocked()
	cp := *vehicle
	s.vehicles[vehicle.ID] = &cp
	return nil
}

func (s *fakeStore) getOrCreateMakeLocked(name string) uint {
	for _, m := range s.makes {
		if m.Name == name {
			return m.ID
		}
	}
	id := s.nextIDLocked()
	s.makes[id] = &models.Make{ID: id, Name: name}
	return id
}

func (s *fakeStore) getOrCreateCarModelLocked(name string) uint {
	for _, m := range s.carModels {
		if m.Name == name {
			return m.ID
		}
	}
	id := s.nextIDLocked()
	s.carModels[id] = &models.CarModel{ID: id, Name: name}
	return id
}

func (r *fakeVehicleRepo) GetByID(_ context.Context, id uint) (*models.Vehicle, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	if m, ok := s.makes[v.MakeID]; ok {
		mc := *m
		cp.Make = &mc
	}
	if m, ok := s.carModels[v.CarModelID]; ok {
		mc := *m
		cp.CarModel = &mc
	}
	return &cp, nil
}

func (r *fakeVehicleRepo) List(_ context.Context, status string) ([]models.Vehicle, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var vehicles []models.Vehicle
	for _, v := range s.vehicles {
		if status == "" || v.Status == status {
			vehicles = append(vehicles, *v)
		}
	}
	return vehicles, nil
}

func (r *fakeVehicleRepo) Update(_ context.Context, vehicle *models.Vehicle) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vehicles[vehicle.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *vehicle
	cp.Make = nil
	cp.CarModel = nil
	s.vehicles[vehicle.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) Delete(_ context.Context, id uint) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vehicles, id)
	return nil
}

func (r *fakeVehicleRepo) VINTaken(_ context.Context, vin string, excludeVehicleID uint) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vinTakenLocked(vin, 0, excludeVehicleID), nil
}

// ============================================================
// Trade repository fake
// ============================================================

type fakeTradeRepo struct{ store *fakeStore }

func (r *fakeTradeRepo) AcceptOffer(_ context.Context, offer *models.Offer) (*models.Vehicle, *models.Sale, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.offers[offer.ID]; !ok {
		return nil, nil, gorm.ErrRecordNotFound
	}
	for _, v := range s.vehicles {
		if v.VIN == offer.VIN {
			return nil, nil, fmt.Errorf("%w: vin %s already in inventory", domain.ErrConflict, offer.VIN)
		}
	}

	if s.failAccept {
		return nil, nil, errors.New("injected failure")
	}

	// Stage everything, commit at the end
	vehicle := models.Vehicle{
		ID:          s.nextIDLocked(),
		MakeID:      s.getOrCreateMakeLocked(offer.Make),
		CarModelID:  s.getOrCreateCarModelLocked(offer.Model),
		Mileage:     offer.Mileage,
		VIN:         offer.VIN,
		Status:      models.VehicleAvailable,
		Price:       offer.Price,
		Description: offer.Description,
	}
	sale := models.Sale{
		ID:        s.nextIDLocked(),
		VehicleID: vehicle.ID,
		SellerID:  offer.UserID,
		Price:     offer.Price,
	}

	s.vehicles[vehicle.ID] = &vehicle
	s.sales[sale.ID] = &sale
	delete(s.offers, offer.ID)
	return &vehicle, &sale, nil
}

func (r *fakeTradeRepo) PurchaseVehicle(_ context.Context, vehicleID, buyerID uint) (*models.Purchase, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	vehicle, ok := s.vehicles[vehicleID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if vehicle.Status != models.VehicleAvailable {
		return nil, fmt.Errorf("%w: vehicle %d is not available", domain.ErrConflict, vehicleID)
	}

	purchase := models.Purchase{
		ID:        s.nextIDLocked(),
		VehicleID: vehicleID,
		BuyerID:   buyerID,
		Price:     vehicle.Price,
		BoughtAt:  time.Now(),
	}
	s.purchases[purchase.ID] = &purchase
	vehicle.Status = models.VehicleSold
	return &purchase, nil
}

func (r *fakeTradeRepo) ListPurchases(_ context.Context) ([]models.Purchase, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var purchases []models.Purchase
	for _, p := range s.purchases {
		purchases = append(purchases, *p)
	}
	return purchases, nil
}

func (r *fakeTradeRepo) ListPurchasesByUser(_ context.Context, userID uint) ([]models.Purchase, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var purchases []models.Purchase
	for _, p := range s.purchases {
		if p.BuyerID == userID {
			purchases = append(purchases, *p)
		}
	}
	return purchases, nil
}

func (r *fakeTradeRepo) ListSales(_ context.Context) ([]models.Sale, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var sales []models.Sale
	for _, sl := range s.sales {
		sales = append(sales, *sl)
	}
	return sales, nil
}

func (r *fakeTradeRepo) VehicleReferenced(_ context.Context, vehicleID uint) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.purchases {
		if p.VehicleID == vehicleID {
			return true, nil
		}
	}
	for _, sl := range s.sales {
		if sl.VehicleID == vehicleID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTradeRepo) CreatePurchase(_ context.Context, purchase *models.Purchase) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	purchase.ID = s.nextIDLocked()
	cp := *purchase
	s.purchases[purchase.ID] = &cp
	return nil
}

func (r *fakeTradeRepo) DeletePurchase(_ context.Context, id uint) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.purchases[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.purchases, id)
	return nil
}

func (r *fakeTradeRepo) CreateSale(_ context.Context, sale *models.Sale) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	sale.ID = s.nextIDLocked()
	cp := *sale
	s.sales[sale.ID] = &cp
	return nil
}

func (r *fakeTradeRepo) DeleteSale(_ context.Context, id uint) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sales[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.sales, id)
	return nil
}
