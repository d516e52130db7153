package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkhouse/tattoo-booking-backend/internal/availability"
	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/request"
	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/response"
)

// degradedWarning labels a response computed without storage.
const degradedWarning = `199 - "availability degraded: bookings could not be read"`

type Resolver interface {
	Resolve(ctx context.Context, date time.Time) (*availability.Availability, error)
	Subscribe(ctx context.Context, date time.Time, fn availability.UpdateFunc) (func(), error)
}

type Handler struct {
	resolver Resolver
	streams  *StreamServer
}

func NewHandler(resolver Resolver, streams *StreamServer) *Handler {
	return &Handler{resolver: resolver, streams: streams}
}

func (h *Handler) Get(c *gin.Context) {
	var q request.DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	date, err := q.Parse()
	if err != nil {
		response.Error(c, err)
		return
	}

	a, err := h.resolver.Resolve(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	if a.Degraded {
		c.Header("Warning", degradedWarning)
	}
	c.JSON(http.StatusOK, NewAvailabilityResponse(a))
}

// Stream upgrades to a websocket and pushes the date's availability on every change.
func (h *Handler) Stream(c *gin.Context) {
	var q request.DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	date, err := q.Parse()
	if err != nil {
		response.Error(c, err)
		return
	}

	h.streams.Serve(c.Writer, c.Request, func(ctx context.Context, push func(StreamFrame)) (func(), error) {
		return h.resolver.Subscribe(ctx, date, func(a *availability.Availability, err error) {
			if err != nil {
				push(StreamFrame{Type: FrameError, Error: err.Error()})
				return
			}
			resp := NewAvailabilityResponse(a)
			push(StreamFrame{Type: FrameAvailability, Availability: &resp})
		})
	})
}
