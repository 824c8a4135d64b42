package staff

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("staff member not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactive           = errors.New("staff member is inactive")
	ErrPasswordTooShort   = errors.New("password is too short")
)

// Staff represents a staff account that operates the booking desk.
type Staff struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	IsAdmin      bool
	IsActive     bool
	// QuickSlots holds the staff member's customized quick time slot presets
	// shown in the booking form, e.g. ["09:00", "12:00", "16:00"].
	QuickSlots  []string
	CreatedAt   time.Time
	LastLoginAt *time.Time
}
