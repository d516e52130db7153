package http

import (
	"time"

	"github.com/inkhouse/tattoo-booking-backend/internal/client"
	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/request"
)

type ClientResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewClientResponse(c *client.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		FullName:  c.FullName,
		Email:     c.Email,
		Phone:     c.Phone,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ListClientsRequest defines query parameters for listing clients.
type ListClientsRequest struct {
	request.ListParams
	Keyword string `form:"q" binding:"omitempty,max=100"`
	SortBy  string `form:"sort_by" binding:"omitempty,oneof=full_name email created_at updated_at"`
}

type CreateClientRequest struct {
	ID       string `json:"id" binding:"required,uuid"`
	FullName string `json:"full_name" binding:"required,max=200"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"omitempty,max=32"`
	Notes    string `json:"notes" binding:"max=2000"`
}

type UpdateClientRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,max=200"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=32"`
	Notes    *string `json:"notes" binding:"omitempty,max=2000"`
}
