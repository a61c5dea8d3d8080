package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"driveline/internal/adapters/persistence/models"
	"driveline/internal/adapters/persistence/repositories"
	"driveline/internal/config"
	"driveline/internal/core/domain"
	"driveline/internal/pkg/password"
	"driveline/internal/pkg/token"

	"gorm.io/gorm"
)

// Validation errors map to 400 at the transport layer
var ErrValidation = errors.New("validation failed")

// Auth errors
var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated)
	ErrSessionInvalid     = fmt.Errorf("%w: invalid or expired session", domain.ErrUnauthenticated)
	ErrUserAlreadyExists  = fmt.Errorf("%w: email or phone already registered", domain.ErrConflict)
	ErrInvalidEmail       = fmt.Errorf("%w: malformed email", ErrValidation)
	ErrInvalidPhone       = fmt.Errorf("%w: malformed phone", ErrValidation)
	ErrWeakPassword       = fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
)

// Cyrillic letters are accepted in the local and domain parts
var (
	emailPattern = regexp.MustCompile(`^[A-Za-zА-Яа-яЁё0-9._%+-]+@[A-Za-zА-Яа-яЁё-]+\.[A-Za-zА-Яа-яЁё-]{2,10}$`)
	phonePattern = regexp.MustCompile(`^[0-9+()\-#]{10,15}$`)
)

// AuthService handles registration, login and session validation
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	cfg         *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// LoginInput represents login input. Identifier is an email or a phone.
type LoginInput struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// LoginResponse carries the bearer token handed to the client
type LoginResponse struct {
	User      *models.UserResponse `json:"user"`
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expires_at"`
}

// Principal is an authenticated caller resolved from a session token
type Principal struct {
	User    *models.User
	Role    domain.Role
	Session *models.Session
}

// Register creates a new member account
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	phone := strings.TrimSpace(input.Phone)

	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if !phonePattern.MatchString(phone) {
		return nil, ErrInvalidPhone
	}
	if !password.ValidatePassword(input.Password) {
		return nil, ErrWeakPassword
	}

	exists, err := s.userRepo.ExistsByEmailOrPhone(ctx, email, phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Phone:    phone,
		FullName: strings.TrimSpace(input.FullName),
		Password: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user, domain.RoleMember); err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s", user.Email)

	resp := user.ToResponse()
	resp.Role = domain.RoleMember
	return resp, nil
}

// Login authenticates by email or phone and opens a session
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginResponse, error) {
	identifier := strings.ToLower(strings.TrimSpace(input.Identifier))

	user, err := s.userRepo.GetByLogin(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	rawToken, err := token.Generate()
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		UserID:    user.ID,
		TokenHash: password.HashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.Session.TTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	role, err := s.userRepo.RoleOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Email)

	resp := user.ToResponse()
	resp.Role = role
	return &LoginResponse{
		User:      resp,
		Token:     rawToken,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Validate resolves a bearer token to a principal. A hit extends the
// session's expiration by the full TTL, so the window slides with activity.
// Unknown and expired tokens are indistinguishable to the caller.
func (s *AuthService) Validate(ctx context.Context, rawToken string) (*Principal, error) {
	if rawToken == "" {
		return nil, ErrSessionInvalid
	}

	session, err := s.sessionRepo.GetByTokenHash(ctx, password.HashToken(rawToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}

	if session.IsExpired() {
		// Lazy reclamation; the cron job handles the rest
		_ = s.sessionRepo.DeleteByTokenHash(ctx, session.TokenHash)
		return nil, ErrSessionInvalid
	}

	if err := s.sessionRepo.Touch(ctx, session.ID, time.Now().Add(s.cfg.Session.TTL)); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}

	role, err := s.userRepo.RoleOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &Principal{User: user, Role: role, Session: session}, nil
}

// Revoke ends a session. Revoking an unknown or already expired token is a
// successful no-op, so the call is idempotent.
func (s *AuthService) Revoke(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	return s.sessionRepo.DeleteByTokenHash(ctx, password.HashToken(rawToken))
}

// PurgeExpired deletes expired session rows in bulk
func (s *AuthService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx, time.Now())
}
