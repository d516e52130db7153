package booking

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/apperror"
	"github.com/inkhouse/tattoo-booking-backend/internal/pricing"
)

// SlotChecker decides whether a start time may be booked right now.
type SlotChecker interface {
	CheckBookable(ctx context.Context, t time.Time) error
}

// RulesProvider supplies the pricing rule set a new booking is quoted against.
type RulesProvider interface {
	GetRules(ctx context.Context) (*pricing.RuleSet, error)
}

// Actor is the authenticated caller of a booking operation.
type Actor struct {
	UserID  string
	IsAdmin bool
}

type CreateRequest struct {
	ClientID string
	DateTime time.Time
	Design   DesignDetails
	OfferID  string
	Notes    string
}

type UpdateRequest struct {
	Status  *string
	Notes   *string
	Price   *int // admin only; replaces the frozen price and clears any discount
	Deposit *int // admin only, with Price
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string, actor Actor) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actor Actor) (*Booking, error)
	Delete(ctx context.Context, id string, actor Actor) error
}

type service struct {
	repo      Repository
	slots     SlotChecker
	rules     RulesProvider
	publisher EventPublisher
	logger    *slog.Logger
}

func NewService(repo Repository, slots SlotChecker, rules RulesProvider, publisher EventPublisher, logger *slog.Logger) Service {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:      repo,
		slots:     slots,
		rules:     rules,
		publisher: publisher,
		logger:    logger.With("component", "booking"),
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Validate input
	if req.ClientID == "" {
		return nil, ErrInvalidInput
	}
	design := DesignDetails{
		Size:       strings.TrimSpace(req.Design.Size),
		Style:      strings.TrimSpace(req.Design.Style),
		Placement:  strings.TrimSpace(req.Design.Placement),
		Complexity: req.Design.Complexity,
	}
	if design.Size == "" || design.Style == "" || design.Placement == "" {
		return nil, ErrInvalidDesign
	}
	start := req.DateTime.UTC()

	// 2. Slot must be on the grid, inside the horizon and still free.
	// The unique index remains the final word when two requests race.
	if err := s.slots.CheckBookable(ctx, start); err != nil {
		return nil, err
	}

	// 3. Quote against the current rules; the result is frozen into the booking.
	rules, err := s.rules.GetRules(ctx)
	if err != nil {
		return nil, err
	}
	quote, err := pricing.NewQuote(pricing.QuoteRequest{
		Size:       design.Size,
		Style:      design.Style,
		Placement:  design.Placement,
		Complexity: design.Complexity,
		OfferID:    req.OfferID,
	}, rules)
	if err != nil {
		return nil, err
	}

	// 4. Create Booking
	b := &Booking{
		ClientID:        req.ClientID,
		DateTime:        start,
		Status:          StatusPending,
		Design:          design,
		Price:           quote.Price,
		Deposit:         quote.Deposit,
		DiscountedPrice: quote.DiscountedPrice,
		Notes:           strings.TrimSpace(req.Notes),
	}
	if quote.OfferID != "" {
		offerID := quote.OfferID
		b.OfferID = &offerID
	}

	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			s.logger.InfoContext(ctx, "slot taken concurrently", "slot", start)
			return nil, err
		}
		return nil, apperror.WithCause(ErrUnavailable, err)
	}

	s.logger.InfoContext(ctx, "booking created",
		"booking_id", b.ID, "client_id", b.ClientID, "slot", b.DateTime, "price", b.Price)
	s.publish(ctx, newEvent(EventCreated, b))
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string, actor Actor) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && b.ClientID != actor.UserID {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actor Actor) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Permission Check Logic:
	// 1. Admin -> Allowed
	// 2. Owner of Booking -> may cancel and edit notes
	isOwner := b.ClientID == actor.UserID
	if !actor.IsAdmin && !isOwner {
		return nil, ErrPermissionDenied
	}
	if !actor.IsAdmin && (req.Price != nil || req.Deposit != nil) {
		return nil, ErrPermissionDenied
	}

	prevStatus := b.Status
	if req.Status != nil {
		st := Status(*req.Status)
		if !st.Valid() {
			return nil, ErrInvalidStatus
		}
		if !actor.IsAdmin && st != StatusCancelled && st != b.Status {
			return nil, ErrPermissionDenied
		}
		if !b.Status.CanTransition(st) {
			return nil, ErrInvalidTransition
		}
		b.Status = st
	}

	if req.Notes != nil {
		b.Notes = strings.TrimSpace(*req.Notes)
	}

	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, ErrInvalidPrice
		}
		b.Price = *req.Price
		b.Deposit = req.Deposit
		b.DiscountedPrice = nil
	} else if req.Deposit != nil {
		return nil, ErrInvalidInput
	}
	if b.Deposit != nil && (*b.Deposit < 0 || *b.Deposit > b.Price) {
		return nil, ErrInvalidPrice
	}

	if err := s.repo.Update(ctx, b); err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrSlotTaken) {
			return nil, err
		}
		return nil, apperror.WithCause(ErrUnavailable, err)
	}

	if b.Status != prevStatus {
		s.logger.InfoContext(ctx, "booking status changed",
			"booking_id", b.ID, "from", prevStatus, "to", b.Status, "by", actor.UserID)
		s.publish(ctx, newEvent(EventStatusChanged, b))
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id string, actor Actor) error {
	if !actor.IsAdmin {
		return ErrPermissionDenied
	}
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, newEvent(EventDeleted, b))
	return nil
}

func (s *service) publish(ctx context.Context, e Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		// The booking is already committed; the notification collaborator will miss this one.
		s.logger.ErrorContext(ctx, "publish booking event failed",
			"type", e.Type, "booking_id", e.BookingID, "error", err)
	}
}
