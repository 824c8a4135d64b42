package http

import (
	"time"

	"github.com/Andrej19990506/supboard-booking-backend/internal/client"
)

type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	IsVIP     bool      `json:"is_vip"`
	Visits    int       `json:"visits"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewClientResponse(cl *client.Client) ClientResponse {
	return ClientResponse{
		ID:        cl.ID,
		Name:      cl.Name,
		Phone:     cl.Phone,
		IsVIP:     cl.IsVIP,
		Visits:    cl.Visits,
		Comment:   cl.Comment,
		CreatedAt: cl.CreatedAt,
		UpdatedAt: cl.UpdatedAt,
	}
}

type CreateClientBody struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	IsVIP   bool   `json:"is_vip"`
	Comment string `json:"comment"`
}

type UpdateClientBody struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	IsVIP   *bool   `json:"is_vip"`
	Comment *string `json:"comment"`
}
