package client

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("client not found")
	ErrNameRequired  = errors.New("client name is required")
	ErrPhoneRequired = errors.New("client phone is required")
	ErrPhoneTaken    = errors.New("client with this phone already exists")
)

// Client is a customer known to the rental desk.
type Client struct {
	ID    string
	Name  string
	Phone string
	IsVIP bool
	// Visits counts completed bookings; used by staff as the repeat-client signal.
	Visits    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing/searching clients.
type Filter struct {
	// Query matches name or phone by prefix (case-insensitive).
	Query    string
	VIPOnly  bool
	Page     int
	PageSize int
}
