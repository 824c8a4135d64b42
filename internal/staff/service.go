package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Andrej19990506/supboard-booking-backend/internal/auth"
)

// Service defines business logic related to staff accounts.
type Service interface {
	Register(ctx context.Context, email, password, displayName string, isAdmin bool) (*Staff, error)
	Login(ctx context.Context, email, password string) (*Staff, error)
	GetByID(ctx context.Context, id string) (*Staff, error)
	UpdateQuickSlots(ctx context.Context, id string, slots []string) error
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	minPasswordLength int
}

// NewService creates a new staff Service.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, email, password, displayName string, isAdmin bool) (*Staff, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" {
		return nil, fmt.Errorf("email is required")
	}

	if len(password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	// Check if email is already used.
	_, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return nil, ErrEmailAlreadyUsed
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var displayNamePtr *string
	if strings.TrimSpace(displayName) != "" {
		d := strings.TrimSpace(displayName)
		displayNamePtr = &d
	}

	st := &Staff{
		Email:        cleanEmail,
		PasswordHash: hash,
		DisplayName:  displayNamePtr,
		IsAdmin:      isAdmin,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*Staff, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	st, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch staff by email: %w", err)
	}

	if !st.IsActive {
		return nil, ErrInactive
	}

	if err := s.hasher.Compare(st.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Update last_login_at (best effort; do not fail login if update fails).
	now := time.Now().UTC()
	_ = s.repo.UpdateLastLogin(ctx, st.ID, now)

	return st, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Staff, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateQuickSlots(ctx context.Context, id string, slots []string) error {
	for _, slot := range slots {
		if _, err := time.Parse("15:04", slot); err != nil {
			return fmt.Errorf("invalid quick slot %q: %w", slot, err)
		}
	}
	return s.repo.UpdateQuickSlots(ctx, id, slots)
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
