package api

import (
	"time"

	"github.com/Andrej19990506/supboard-booking-backend/internal/staff"
)

// RegisterRequest is the payload for POST /v1/auth/register.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	IsAdmin     bool   `json:"is_admin"`
}

// LoginRequest is the payload for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StaffResponse is the shape of staff data returned in API responses.
type StaffResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"display_name,omitempty"`
	IsAdmin     bool       `json:"is_admin"`
	IsActive    bool       `json:"is_active"`
	QuickSlots  []string   `json:"quick_slots"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// RegisterResponse is the response for POST /v1/auth/register.
type RegisterResponse struct {
	Staff StaffResponse `json:"staff"`
}

// LoginResponse is the response for POST /v1/auth/login.
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	Staff       StaffResponse `json:"staff"`
}

// MeResponse is the response for GET /v1/me.
type MeResponse struct {
	Staff StaffResponse `json:"staff"`
}

// QuickSlotsBody is the payload for PUT /v1/me/quick-slots.
type QuickSlotsBody struct {
	Slots []string `json:"slots" binding:"required"`
}

type QuickSlotsResponse struct {
	Slots []string `json:"slots"`
}

// NewStaffResponse converts a domain staff member to the API shape.
func NewStaffResponse(m *staff.Staff) StaffResponse {
	slots := m.QuickSlots
	if slots == nil {
		slots = []string{}
	}

	var lastLoginAt *time.Time
	if m.LastLoginAt != nil {
		ll := *m.LastLoginAt
		lastLoginAt = &ll
	}

	return StaffResponse{
		ID:          m.ID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		IsAdmin:     m.IsAdmin,
		IsActive:    m.IsActive,
		QuickSlots:  slots,
		CreatedAt:   m.CreatedAt,
		LastLoginAt: lastLoginAt,
	}
}
