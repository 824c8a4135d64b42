package http

import (
	"time"

	"github.com/Andrej19990506/supboard-booking-backend/internal/inventorytype"
)

type InventoryTypeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	IconPath    string    `json:"icon_path"`
	IsActive    bool      `json:"is_active"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewInventoryTypeResponse(it *inventorytype.InventoryType) InventoryTypeResponse {
	return InventoryTypeResponse{
		ID:          it.ID,
		Name:        it.Name,
		DisplayName: it.DisplayName,
		IconPath:    it.IconPath,
		IsActive:    it.IsActive,
		Stock:       it.Stock,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

type CreateInventoryTypeBody struct {
	Name        string `json:"name" binding:"required"`
	DisplayName string `json:"display_name"`
	Stock       int    `json:"stock" binding:"omitempty,min=0"`
}

type UpdateInventoryTypeBody struct {
	Name        *string `json:"name"`
	DisplayName *string `json:"display_name"`
	IsActive    *bool   `json:"is_active"`
	Stock       *int    `json:"stock" binding:"omitempty,min=0"`
}
