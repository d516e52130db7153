package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkhouse/tattoo-booking-backend/internal/auth"
	"github.com/inkhouse/tattoo-booking-backend/internal/booking"
	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/request"
	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/response"
	"github.com/inkhouse/tattoo-booking-backend/internal/pricing"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func actorFrom(c *gin.Context) booking.Actor {
	return booking.Actor{UserID: auth.GetUserID(c), IsAdmin: auth.IsAdmin(c)}
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}
	req.Normalize()

	// Clients only ever see their own bookings; admins may filter by client.
	clientID := auth.GetUserID(c)
	if auth.IsAdmin(c) {
		clientID = req.ClientID
	}

	filter := booking.Filter{
		ClientID:  clientID,
		Status:    req.Status,
		StartTime: req.StartTimeFrom,
		EndTime:   req.StartTimeTo,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}
	if err := body.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	clientID := auth.GetUserID(c)
	if body.ClientID != "" && body.ClientID != clientID {
		if !auth.IsAdmin(c) {
			response.Error(c, booking.ErrPermissionDenied)
			return
		}
		clientID = body.ClientID
	}

	complexity := pricing.NeutralComplexity
	if body.Design.Complexity != nil {
		complexity = *body.Design.Complexity
	}

	req := booking.CreateRequest{
		ClientID: clientID,
		DateTime: body.DateTime,
		Design: booking.DesignDetails{
			Size:       body.Design.Size,
			Style:      body.Design.Style,
			Placement:  body.Design.Placement,
			Complexity: complexity,
		},
		OfferID: body.OfferID,
		Notes:   body.Notes,
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BindError(c, err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), req.ID, actorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	var body UpdateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	req := booking.UpdateRequest{
		Status:  body.Status,
		Notes:   body.Notes,
		Price:   body.Price,
		Deposit: body.Deposit,
	}

	b, err := h.service.Update(c.Request.Context(), uri.ID, req, actorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID, actorFrom(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
