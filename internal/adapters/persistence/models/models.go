package models

import (
	"time"

	"gorm.io/gorm"

	"driveline/internal/core/domain"
)

// ============================================================
// Identity & Session Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone     string    `gorm:"uniqueIndex;size:15;not null" json:"phone"`
	FullName  string    `gorm:"size:100;not null" json:"full_name"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint        `json:"id"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	FullName  string      `json:"full_name"`
	Role      domain.Role `json:"role,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Phone:     u.Phone,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}

// Role represents the roles table. Seeded with the two fixed roles.
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:20;not null" json:"name"`
}

func (Role) TableName() string {
	return "roles"
}

// UserRole links a user to their single role. Removed with the user.
type UserRole struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	RoleID uint `gorm:"not null" json:"role_id"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Role Role `gorm:"foreignKey:RoleID" json:"-"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

// Session represents a bearer session with sliding expiration. The token
// itself is never stored, only its SHA-256 digest.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	TokenHash string    `gorm:"uniqueIndex;size:64;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) IsExpired() bool {
	return !time.Now().Before(s.ExpiresAt)
}

// ============================================================
// Reference Tables
// ============================================================

// Make represents a vehicle make (reference data)
type Make struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:50;not null" json:"name"`
}

func (Make) TableName() string {
	return "makes"
}

// CarModel represents a vehicle model (reference data)
type CarModel struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:50;not null" json:"name"`
}

func (CarModel) TableName() string {
	return "car_models"
}

// ============================================================
// Listing Tables
// ============================================================

// Vehicle statuses
const (
	VehicleAvailable = "available"
	VehicleSold      = "sold"
)

// Vehicle represents an inventory vehicle
type Vehicle struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MakeID      uint      `gorm:"not null" json:"make_id"`
	CarModelID  uint      `gorm:"not null" json:"car_model_id"`
	Mileage     int       `gorm:"not null" json:"mileage"`
	VIN         string    `gorm:"column:vin;uniqueIndex;size:17;not null" json:"vin"`
	Status      string    `gorm:"size:10;not null;default:'available'" json:"status"`
	Price       int       `gorm:"not null" json:"price"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Make     *Make     `gorm:"foreignKey:MakeID" json:"make,omitempty"`
	CarModel *CarModel `gorm:"foreignKey:CarModelID" json:"car_model,omitempty"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

func (v *Vehicle) IsAvailable() bool {
	return v.Status == VehicleAvailable
}

// VehicleResponse DTO
type VehicleResponse struct {
	ID          uint      `json:"id"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Mileage     int       `json:"mileage"`
	VIN         string    `json:"vin"`
	Status      string    `json:"status"`
	Price       int       `json:"price"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (v *Vehicle) ToResponse() *VehicleResponse {
	resp := &VehicleResponse{
		ID:          v.ID,
		Mileage:     v.Mileage,
		VIN:         v.VIN,
		Status:      v.Status,
		Price:       v.Price,
		Description: v.Description,
		CreatedAt:   v.CreatedAt,
	}
	if v.Make != nil {
		resp.Make = v.Make.Name
	}
	if v.CarModel != nil {
		resp.Model = v.CarModel.Name
	}
	return resp
}

// Offer represents a seller submission not yet in inventory. Make and model
// are kept as free-form names until acceptance resolves them to reference
// rows.
type Offer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Make        string    `gorm:"size:50;not null" json:"make"`
	Model       string    `gorm:"size:50;not null" json:"model"`
	Mileage     int       `gorm:"not null" json:"mileage"`
	Price       int       `gorm:"not null" json:"price"`
	VIN         string    `gorm:"column:vin;uniqueIndex;size:17;not null" json:"vin"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Owner *User `gorm:"foreignKey:UserID" json:"owner,omitempty"`
}

func (Offer) TableName() string {
	return "offers"
}

// OfferResponse DTO
type OfferResponse struct {
	ID          uint      `json:"id"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Mileage     int       `json:"mileage"`
	Price       int       `json:"price"`
	VIN         string    `json:"vin"`
	Description string    `json:"description,omitempty"`
	OwnerName   string    `json:"owner_name,omitempty"`
	OwnerPhone  string    `json:"owner_phone,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (o *Offer) ToResponse() *OfferResponse {
	resp := &OfferResponse{
		ID:          o.ID,
		Make:        o.Make,
		Model:       o.Model,
		Mileage:     o.Mileage,
		Price:       o.Price,
		VIN:         o.VIN,
		Description: o.Description,
		CreatedAt:   o.CreatedAt,
	}
	if o.Owner != nil {
		resp.OwnerName = o.Owner.FullName
		resp.OwnerPhone = o.Owner.Phone
	}
	return resp
}

// ============================================================
// Trade Ledger Tables (append-only)
// ============================================================

// Purchase records a member buying a vehicle from inventory
type Purchase struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VehicleID uint      `gorm:"index;not null" json:"vehicle_id"`
	BuyerID   uint      `gorm:"index;not null" json:"buyer_id"`
	Price     int       `gorm:"not null" json:"price"`
	BoughtAt  time.Time `gorm:"autoCreateTime" json:"bought_at"`

	// Relations
	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Buyer   *User    `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
}

func (Purchase) TableName() string {
	return "purchases"
}

// Sale records the firm acquiring a vehicle by accepting an offer. SellerID
// is the member whose offer was accepted.
type Sale struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VehicleID uint      `gorm:"index;not null" json:"vehicle_id"`
	SellerID  uint      `gorm:"index;not null" json:"seller_id"`
	Price     int       `gorm:"not null" json:"price"`
	SoldAt    time.Time `gorm:"autoCreateTime" json:"sold_at"`

	// Relations
	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Seller  *User    `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

func (Sale) TableName() string {
	return "sales"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Role{},
		&UserRole{},
		&Session{},
		&Make{},
		&CarModel{},
		&Vehicle{},
		&Offer{},
		&Purchase{},
		&Sale{},
	)
}
