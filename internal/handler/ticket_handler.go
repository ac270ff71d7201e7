package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	ticketService service.TicketService
}

func NewTicketHandler(ticketService service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

func (h *TicketHandler) RegisterRoutes(router *gin.RouterGroup) {
	tickets := router.Group("/api/tickets", middleware.RequireAuth())
	{
		tickets.POST("", h.CreateTicket)
		tickets.GET("", h.ListTickets)
		tickets.GET("/:id", h.GetTicket)
		tickets.PUT("/:id", h.UpdateTicket)
		tickets.DELETE("/:id", middleware.RequireAuth(model.RoleAdmin), h.DeleteTicket)
	}
}

// CreateTicket raises a support ticket against a transaction
// @Summary      Create ticket
// @Description  Donors and assigned vendors may raise tickets on their own transactions
// @Tags         tickets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateTicketRequest  true  "Ticket Payload"
// @Success      201      {object}  response.Response{data=model.Ticket}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req service.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(invalidPayload(err)))
		return
	}

	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	ticket, err := h.ticketService.Create(c.Request.Context(), userID, middleware.CurrentRole(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.OK("ticket created", ticket))
}

// ListTickets lists the caller's tickets, or all tickets for admins
// @Summary      List tickets
// @Tags         tickets
// @Security     BearerAuth
// @Produce      json
// @Param        transaction_id  query     string  false  "Filter by transaction"
// @Param        status          query     string  false  "Filter by status"
// @Param        priority        query     string  false  "Filter by priority"
// @Param        skip            query     int     false  "Rows to skip (default 0)"
// @Param        limit           query     int     false  "Page size (default 100, max 1000)"
// @Success      200             {object}  response.Response{data=object}
// @Router       /api/tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	page := pagination.Parse(c)

	tickets, total, err := h.ticketService.List(c.Request.Context(), userID, middleware.IsAdmin(c), service.TicketListQuery{
		TransactionID: c.Query("transaction_id"),
		Status:        c.Query("status"),
		Priority:      c.Query("priority"),
		Skip:          page.Skip,
		Limit:         page.Limit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("tickets retrieved", listPayload("tickets", tickets, total, page.Skip, page.Limit)))
}

// GetTicket returns a single ticket visible to the caller
// @Summary      Get ticket
// @Tags         tickets
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Ticket ID"
// @Success      200  {object}  response.Response{data=model.Ticket}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	ticket, err := h.ticketService.GetByID(c.Request.Context(), userID, middleware.IsAdmin(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("ticket retrieved", ticket))
}

// UpdateTicket updates a ticket; triage fields are admin-only
// @Summary      Update ticket
// @Tags         tickets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Ticket ID"
// @Param        payload  body      service.UpdateTicketRequest  true  "Update Payload"
// @Success      200      {object}  response.Response{data=model.Ticket}
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/tickets/{id} [put]
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req service.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(invalidPayload(err)))
		return
	}

	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	ticket, err := h.ticketService.Update(c.Request.Context(), userID, middleware.IsAdmin(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("ticket updated", ticket))
}

// DeleteTicket removes a ticket
// @Summary      Delete ticket
// @Tags         tickets
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Ticket ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/tickets/{id} [delete]
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.ticketService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("ticket deleted", gin.H{"id": id}))
}
