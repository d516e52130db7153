package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/response"
	"github.com/inkhouse/tattoo-booking-backend/internal/pricing"
)

type Handler struct {
	service pricing.Service
}

func NewHandler(service pricing.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetRules(c *gin.Context) {
	rules, err := h.service.GetRules(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRulesBody(rules))
}

func (h *Handler) SaveRules(c *gin.Context) {
	var body RulesBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	saved, err := h.service.SaveRules(c.Request.Context(), body.ToRuleSet())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRulesBody(saved))
}

func (h *Handler) Quote(c *gin.Context) {
	var body QuoteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	q, err := h.service.Quote(c.Request.Context(), body.ToDomain())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewQuoteResponse(q))
}
