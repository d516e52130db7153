package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkhouse/tattoo-booking-backend/internal/client"
	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/request"
	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/response"
)

type ClientHandler struct {
	clientService client.Service
}

func NewHandler(clientService client.Service) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// List returns a paginated list of client records.
func (h *ClientHandler) List(c *gin.Context) {
	var req ListClientsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}
	req.Normalize()

	filter := client.Filter{
		Keyword:   req.Keyword,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	clients, total, err := h.clientService.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ClientResponse, len(clients))
	for i, cl := range clients {
		items[i] = NewClientResponse(cl)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *ClientHandler) Create(c *gin.Context) {
	var body CreateClientRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	cl, err := h.clientService.Create(c.Request.Context(), client.CreateRequest{
		ID:       body.ID,
		FullName: body.FullName,
		Email:    body.Email,
		Phone:    body.Phone,
		Notes:    body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewClientResponse(cl))
}

func (h *ClientHandler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BindError(c, err)
		return
	}

	cl, err := h.clientService.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewClientResponse(cl))
}

func (h *ClientHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	var body UpdateClientRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	cl, err := h.clientService.Update(c.Request.Context(), uri.ID, client.UpdateRequest{
		FullName: body.FullName,
		Email:    body.Email,
		Phone:    body.Phone,
		Notes:    body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewClientResponse(cl))
}

func (h *ClientHandler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
