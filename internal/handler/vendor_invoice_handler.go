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

type VendorInvoiceHandler struct {
	invoiceService service.VendorInvoiceService
}

func NewVendorInvoiceHandler(invoiceService service.VendorInvoiceService) *VendorInvoiceHandler {
	return &VendorInvoiceHandler{invoiceService: invoiceService}
}

func (h *VendorInvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	invoices := router.Group("/api/vendor-invoices")
	{
		invoices.POST("", middleware.RequireAuth(model.RoleVendor), h.SubmitInvoice)
		invoices.GET("", middleware.RequireAuth(model.RoleVendor, model.RoleAdmin), h.ListInvoices)
		invoices.GET("/:id", middleware.RequireAuth(model.RoleVendor, model.RoleAdmin), h.GetInvoice)
		invoices.PUT("/:id", middleware.RequireAuth(model.RoleVendor), h.UpdateInvoice)
		invoices.PUT("/:id/approve", middleware.RequireAuth(model.RoleAdmin), h.ApproveInvoice)
		invoices.PUT("/:id/reject", middleware.RequireAuth(model.RoleAdmin), h.RejectInvoice)
	}
}

// SubmitInvoice submits a billing invoice for a delivered transaction
// @Summary      Submit invoice
// @Description  One invoice per transaction, allowed only after delivery on the vendor's own assignment
// @Tags         vendor-invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.SubmitInvoiceRequest  true  "Invoice Payload"
// @Success      201      {object}  response.Response{data=model.VendorInvoice}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/vendor-invoices [post]
func (h *VendorInvoiceHandler) SubmitInvoice(c *gin.Context) {
	var req service.SubmitInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(invalidPayload(err)))
		return
	}

	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	invoice, err := h.invoiceService.Submit(c.Request.Context(), userID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.OK("invoice submitted", invoice))
}

// ListInvoices lists the vendor's invoices, or all invoices for admins
// @Summary      List invoices
// @Tags         vendor-invoices
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Filter by status (pending, approved, rejected)"
// @Param        skip    query     int     false  "Rows to skip (default 0)"
// @Param        limit   query     int     false  "Page size (default 100, max 1000)"
// @Success      200     {object}  response.Response{data=object}
// @Router       /api/vendor-invoices [get]
func (h *VendorInvoiceHandler) ListInvoices(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	page := pagination.Parse(c)

	invoices, total, err := h.invoiceService.List(c.Request.Context(), userID, middleware.IsAdmin(c), service.InvoiceListQuery{
		Status: c.Query("status"),
		Skip:   page.Skip,
		Limit:  page.Limit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("invoices retrieved", listPayload("invoices", invoices, total, page.Skip, page.Limit)))
}

// GetInvoice returns a single invoice visible to the caller
// @Summary      Get invoice
// @Tags         vendor-invoices
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.Response{data=model.VendorInvoice}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/vendor-invoices/{id} [get]
func (h *VendorInvoiceHandler) GetInvoice(c *gin.Context) {
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

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), userID, middleware.IsAdmin(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("invoice retrieved", invoice))
}

// UpdateInvoice edits a pending invoice owned by the vendor
// @Summary      Update invoice
// @Tags         vendor-invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Invoice ID"
// @Param        payload  body      service.UpdateInvoiceRequest  true  "Update Payload"
// @Success      200      {object}  response.Response{data=model.VendorInvoice}
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/vendor-invoices/{id} [put]
func (h *VendorInvoiceHandler) UpdateInvoice(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req service.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(invalidPayload(err)))
		return
	}

	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("invoice updated", invoice))
}

// ApproveInvoice approves a pending invoice
// @Summary      Approve invoice
// @Tags         vendor-invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                          true   "Invoice ID"
// @Param        payload  body      service.InvoiceDecisionRequest  false  "Decision Payload"
// @Success      200      {object}  response.Response{data=model.VendorInvoice}
// @Failure      409      {object}  response.Response
// @Router       /api/vendor-invoices/{id}/approve [put]
func (h *VendorInvoiceHandler) ApproveInvoice(c *gin.Context) {
	h.decide(c, true)
}

// RejectInvoice rejects a pending invoice
// @Summary      Reject invoice
// @Tags         vendor-invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                          true   "Invoice ID"
// @Param        payload  body      service.InvoiceDecisionRequest  false  "Decision Payload"
// @Success      200      {object}  response.Response{data=model.VendorInvoice}
// @Failure      409      {object}  response.Response
// @Router       /api/vendor-invoices/{id}/reject [put]
func (h *VendorInvoiceHandler) RejectInvoice(c *gin.Context) {
	h.decide(c, false)
}

func (h *VendorInvoiceHandler) decide(c *gin.Context, approve bool) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req service.InvoiceDecisionRequest
	_ = c.ShouldBindJSON(&req) // notes are optional

	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var invoice *model.VendorInvoice
	if approve {
		invoice, err = h.invoiceService.Approve(c.Request.Context(), userID, id, req)
	} else {
		invoice, err = h.invoiceService.Reject(c.Request.Context(), userID, id, req)
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("invoice decision recorded", invoice))
}
