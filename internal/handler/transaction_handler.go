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

type TransactionHandler struct {
	transactionService service.TransactionService
}

func NewTransactionHandler(transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

func (h *TransactionHandler) RegisterRoutes(router *gin.RouterGroup) {
	transactions := router.Group("/api/transactions", middleware.RequireAuth())
	{
		transactions.GET("", h.ListTransactions)
		transactions.GET("/:id", h.GetTransaction)
		transactions.PUT("/:id/assign", middleware.RequireAuth(model.RoleAdmin), h.AssignVendor)
		transactions.PUT("/:id/transition", h.Transition)
		transactions.PUT("/:id/restore", middleware.RequireAuth(model.RoleAdmin), h.Restore)
	}
}

// ListTransactions lists transactions visible to the caller's role
// @Summary      List transactions
// @Description  Admins see all; donors, vendors and NGOs see only their own
// @Tags         transactions
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Filter by status"
// @Param        skip    query     int     false  "Rows to skip (default 0)"
// @Param        limit   query     int     false  "Page size (default 100, max 1000)"
// @Success      200     {object}  response.Response{data=object}
// @Router       /api/transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	page := pagination.Parse(c)

	transactions, total, err := h.transactionService.List(c.Request.Context(), userID, middleware.CurrentRole(c), service.TransactionListQuery{
		Status: c.Query("status"),
		Skip:   page.Skip,
		Limit:  page.Limit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("transactions retrieved", listPayload("transactions", transactions, total, page.Skip, page.Limit)))
}

// GetTransaction returns a single transaction visible to the caller
// @Summary      Get transaction
// @Tags         transactions
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  response.Response{data=model.Transaction}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
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

	tx, err := h.transactionService.GetByID(c.Request.Context(), userID, middleware.CurrentRole(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("transaction retrieved", tx))
}

// AssignVendor assigns a verified vendor to a pending transaction
// @Summary      Assign vendor
// @Tags         transactions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Transaction ID"
// @Param        payload  body      service.AssignVendorRequest  true  "Assignment Payload"
// @Success      200      {object}  response.Response{data=model.Transaction}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/transactions/{id}/assign [put]
func (h *TransactionHandler) AssignVendor(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req service.AssignVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(invalidPayload(err)))
		return
	}

	tx, err := h.transactionService.AssignVendor(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("vendor assigned", tx))
}

// Transition moves a transaction along the fulfillment lifecycle
// @Summary      Transition transaction
// @Description  Applies a lifecycle transition; allowed moves depend on both the current status and the caller's role
// @Tags         transactions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Transaction ID"
// @Param        payload  body      service.TransitionRequest  true  "Transition Payload"
// @Success      200      {object}  response.Response{data=model.Transaction}
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/transactions/{id}/transition [put]
func (h *TransactionHandler) Transition(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req service.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(invalidPayload(err)))
		return
	}

	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	tx, err := h.transactionService.Transition(c.Request.Context(), userID, middleware.CurrentRole(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("transaction updated", tx))
}

// Restore returns an issue_reported transaction to its previous status
// @Summary      Restore transaction
// @Tags         transactions
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  response.Response{data=model.Transaction}
// @Failure      409  {object}  response.Response
// @Router       /api/transactions/{id}/restore [put]
func (h *TransactionHandler) Restore(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	tx, err := h.transactionService.Restore(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("transaction restored", tx))
}
