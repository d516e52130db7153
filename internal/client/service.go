package client

import (
	"context"
	"errors"
	"strings"

	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/apperror"
)

// Service defines business logic related to client records.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Client, error)
	GetByID(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context, filter Filter) ([]*Client, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Client, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	ID       string
	FullName string
	Email    string
	Phone    string
	Notes    string
}

// UpdateRequest carries optional fields; an empty Email or Phone clears it.
type UpdateRequest struct {
	FullName *string
	Email    *string
	Phone    *string
	Notes    *string
}

type service struct {
	repo Repository
}

// NewService creates a new client Service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Client, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, ErrIDRequired
	}
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return nil, ErrNameRequired
	}

	c := &Client{
		ID:       id,
		FullName: name,
		Email:    optional(normalizeEmail(req.Email)),
		Phone:    optional(strings.TrimSpace(req.Phone)),
		Notes:    strings.TrimSpace(req.Notes),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, passthrough(err)
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, passthrough(err)
	}
	return c, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Client, int, error) {
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	clients, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, passthrough(err)
	}
	return clients, total, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, passthrough(err)
	}

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, ErrNameRequired
		}
		c.FullName = name
	}
	if req.Email != nil {
		c.Email = optional(normalizeEmail(*req.Email))
	}
	if req.Phone != nil {
		c.Phone = optional(strings.TrimSpace(*req.Phone))
	}
	if req.Notes != nil {
		c.Notes = strings.TrimSpace(*req.Notes)
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, passthrough(err)
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return passthrough(s.repo.Delete(ctx, id))
}

// passthrough keeps domain errors and marks anything else as a storage failure.
func passthrough(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.WithCause(ErrUnavailable, err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
