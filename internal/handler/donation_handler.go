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

type DonationHandler struct {
	donationService service.DonationService
}

func NewDonationHandler(donationService service.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

func (h *DonationHandler) RegisterRoutes(router *gin.RouterGroup) {
	donations := router.Group("/api/donations")
	{
		donations.POST("", middleware.RequireAuth(model.RoleUser, model.RoleAdmin), h.CreateDonation)
		donations.GET("", middleware.RequireAuth(), h.ListDonations)
		donations.GET("/:id", middleware.RequireAuth(), h.GetDonation)
		donations.PUT("/:id", middleware.RequireAuth(model.RoleAdmin), h.UpdateDonation)
		donations.DELETE("/:id", middleware.RequireAuth(model.RoleAdmin), h.DeleteDonation)
	}
}

// CreateDonation records a donation against an active package
// @Summary      Create donation
// @Description  Records a donation; a completed payment immediately bumps the package quantity and opens a fulfillment transaction
// @Tags         donations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateDonationRequest  true  "Donation Payload"
// @Success      201      {object}  response.Response{data=model.Donation}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/donations [post]
func (h *DonationHandler) CreateDonation(c *gin.Context) {
	var req service.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(invalidPayload(err)))
		return
	}

	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	donation, err := h.donationService.Create(c.Request.Context(), userID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.OK("donation recorded", donation))
}

// ListDonations lists the caller's donations, or all donations for admins
// @Summary      List donations
// @Tags         donations
// @Security     BearerAuth
// @Produce      json
// @Param        package_id      query     string  false  "Filter by package"
// @Param        payment_status  query     string  false  "Filter by payment status"
// @Param        skip            query     int     false  "Rows to skip (default 0)"
// @Param        limit           query     int     false  "Page size (default 100, max 1000)"
// @Success      200             {object}  response.Response{data=object}
// @Router       /api/donations [get]
func (h *DonationHandler) ListDonations(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	page := pagination.Parse(c)

	query := service.DonationListQuery{
		PackageID:     c.Query("package_id"),
		PaymentStatus: c.Query("payment_status"),
		Skip:          page.Skip,
		Limit:         page.Limit,
	}
	if !middleware.IsAdmin(c) {
		query.UserID = &userID
	}

	donations, total, err := h.donationService.List(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("donations retrieved", listPayload("donations", donations, total, page.Skip, page.Limit)))
}

// GetDonation returns a single donation visible to the caller
// @Summary      Get donation
// @Tags         donations
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Donation ID"
// @Success      200  {object}  response.Response{data=model.Donation}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/donations/{id} [get]
func (h *DonationHandler) GetDonation(c *gin.Context) {
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

	donation, err := h.donationService.GetByID(c.Request.Context(), userID, middleware.IsAdmin(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("donation retrieved", donation))
}

// UpdateDonation reconciles a donation's payment status
// @Summary      Update donation
// @Description  Admin payment reconciliation; moving into or out of completed adjusts the package quantity accordingly
// @Tags         donations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Donation ID"
// @Param        payload  body      service.UpdateDonationRequest  true  "Update Payload"
// @Success      200      {object}  response.Response{data=model.Donation}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/donations/{id} [put]
func (h *DonationHandler) UpdateDonation(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req service.UpdateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(invalidPayload(err)))
		return
	}

	donation, err := h.donationService.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("donation updated", donation))
}

// DeleteDonation removes a donation, returning its quantity if it was completed
// @Summary      Delete donation
// @Tags         donations
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Donation ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/donations/{id} [delete]
func (h *DonationHandler) DeleteDonation(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.donationService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("donation deleted", gin.H{"id": id}))
}
