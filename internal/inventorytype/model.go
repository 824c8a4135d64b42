package inventorytype

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("inventory type not found")
	ErrNameRequired = errors.New("name is required")
	ErrNameTaken    = errors.New("inventory type name already exists")
	ErrInvalidStock = errors.New("stock count cannot be negative")
)

// Well-known names used by the legacy per-category booking fields.
const (
	NameBoard         = "board"
	NameBoardWithSeat = "board_with_seat"
	NameRaft          = "raft"
)

// InventoryType represents a reservable equipment category
// (e.g. paddleboard, board with seat, raft).
type InventoryType struct {
	ID          string
	Name        string // unique internal name
	DisplayName string
	IconPath    string
	IsActive    bool
	// Stock is the number of physical units available for this type.
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing inventory types.
type Filter struct {
	ActiveOnly bool
	Page       int
	PageSize   int
}
