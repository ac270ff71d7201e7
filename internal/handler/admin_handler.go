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

type AdminHandler struct {
	ngoService             service.NGOService
	vendorService          service.VendorService
	settingsService        service.SettingsService
	donationPackageService service.DonationPackageService
}

func NewAdminHandler(
	ngoService service.NGOService,
	vendorService service.VendorService,
	settingsService service.SettingsService,
	donationPackageService service.DonationPackageService,
) *AdminHandler {
	return &AdminHandler{
		ngoService:             ngoService,
		vendorService:          vendorService,
		settingsService:        settingsService,
		donationPackageService: donationPackageService,
	}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/api/admin", middleware.RequireAuth(model.RoleAdmin))
	{
		admin.GET("/ngos/pending", h.PendingNGOs)
		admin.PUT("/ngos/:id/approve", h.ApproveNGO)
		admin.PUT("/ngos/:id/reject", h.RejectNGO)

		admin.GET("/vendors/pending", h.PendingVendors)
		admin.PUT("/vendors/:id/approve", h.ApproveVendor)
		admin.PUT("/vendors/:id/reject", h.RejectVendor)

		admin.GET("/settings", h.GetSettings)
		admin.PUT("/settings", h.UpdateSettings)

		admin.POST("/donation-packages", h.CreateDonationPackage)
		admin.PUT("/donation-packages/:id", h.UpdateDonationPackage)
		admin.DELETE("/donation-packages/:id", h.DeleteDonationPackage)
	}

	// Curated packages are browsable without authentication.
	packages := router.Group("/api/donation-packages")
	{
		packages.GET("", h.ListDonationPackages)
		packages.GET("/:id", h.GetDonationPackage)
	}
}

type approvalDecisionRequest struct {
	Notes string `json:"notes"`
}

// PendingNGOs lists NGOs awaiting approval
// @Summary      Pending NGOs
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.NGO}
// @Router       /api/admin/ngos/pending [get]
func (h *AdminHandler) PendingNGOs(c *gin.Context) {
	ngos, err := h.ngoService.ListPendingApproval(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("pending ngos retrieved", ngos))
}

// ApproveNGO marks an NGO as verified and notifies the applicant
// @Summary      Approve NGO
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true   "NGO ID"
// @Param        payload  body      approvalDecisionRequest  false  "Decision notes"
// @Success      200      {object}  response.Response{data=model.NGO}
// @Failure      404      {object}  response.Response
// @Router       /api/admin/ngos/{id}/approve [put]
func (h *AdminHandler) ApproveNGO(c *gin.Context) {
	h.decideNGO(c, true)
}

// RejectNGO records a rejection and notifies the applicant
// @Summary      Reject NGO
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true   "NGO ID"
// @Param        payload  body      approvalDecisionRequest  false  "Decision notes"
// @Success      200      {object}  response.Response{data=model.NGO}
// @Failure      404      {object}  response.Response
// @Router       /api/admin/ngos/{id}/reject [put]
func (h *AdminHandler) RejectNGO(c *gin.Context) {
	h.decideNGO(c, false)
}

func (h *AdminHandler) decideNGO(c *gin.Context, approved bool) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req approvalDecisionRequest
	_ = c.ShouldBindJSON(&req)

	ngo, err := h.ngoService.SetVerified(c.Request.Context(), id, approved, req.Notes)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("ngo approval decision recorded", ngo))
}

// PendingVendors lists vendors awaiting approval
// @Summary      Pending vendors
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.VendorResponse}
// @Router       /api/admin/vendors/pending [get]
func (h *AdminHandler) PendingVendors(c *gin.Context) {
	vendors, err := h.vendorService.ListPendingApproval(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("pending vendors retrieved", vendors))
}

// ApproveVendor marks a vendor as verified and notifies the applicant
// @Summary      Approve vendor
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true   "Vendor ID"
// @Param        payload  body      approvalDecisionRequest  false  "Decision notes"
// @Success      200      {object}  response.Response{data=service.VendorResponse}
// @Failure      404      {object}  response.Response
// @Router       /api/admin/vendors/{id}/approve [put]
func (h *AdminHandler) ApproveVendor(c *gin.Context) {
	h.decideVendor(c, true)
}

// RejectVendor records a rejection and notifies the applicant
// @Summary      Reject vendor
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true   "Vendor ID"
// @Param        payload  body      approvalDecisionRequest  false  "Decision notes"
// @Success      200      {object}  response.Response{data=service.VendorResponse}
// @Failure      404      {object}  response.Response
// @Router       /api/admin/vendors/{id}/reject [put]
func (h *AdminHandler) RejectVendor(c *gin.Context) {
	h.decideVendor(c, false)
}

func (h *AdminHandler) decideVendor(c *gin.Context, approved bool) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req approvalDecisionRequest
	_ = c.ShouldBindJSON(&req)

	vendor, err := h.vendorService.SetVerified(c.Request.Context(), id, approved, req.Notes)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("vendor approval decision recorded", vendor))
}

// GetSettings returns the application settings singleton
// @Summary      Get settings
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.ApplicationSettings}
// @Router       /api/admin/settings [get]
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("settings retrieved", settings))
}

// UpdateSettings updates the application settings singleton
// @Summary      Update settings
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.UpdateSettingsRequest  true  "Settings Payload"
// @Success      200      {object}  response.Response{data=model.ApplicationSettings}
// @Failure      400      {object}  response.Response
// @Router       /api/admin/settings [put]
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req service.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(invalidPayload(err)))
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("settings updated", settings))
}

// CreateDonationPackage creates a curated donation package
// @Summary      Create donation package
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateDonationPackageRequest  true  "Create Payload"
// @Success      201      {object}  response.Response{data=model.DonationPackage}
// @Failure      400      {object}  response.Response
// @Router       /api/admin/donation-packages [post]
func (h *AdminHandler) CreateDonationPackage(c *gin.Context) {
	var req service.CreateDonationPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(invalidPayload(err)))
		return
	}

	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	pkg, err := h.donationPackageService.Create(c.Request.Context(), userID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.OK("donation package created", pkg))
}

// UpdateDonationPackage updates a curated donation package
// @Summary      Update donation package
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                                true  "Donation Package ID"
// @Param        payload  body      service.UpdateDonationPackageRequest  true  "Update Payload"
// @Success      200      {object}  response.Response{data=model.DonationPackage}
// @Failure      404      {object}  response.Response
// @Router       /api/admin/donation-packages/{id} [put]
func (h *AdminHandler) UpdateDonationPackage(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req service.UpdateDonationPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(invalidPayload(err)))
		return
	}

	pkg, err := h.donationPackageService.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("donation package updated", pkg))
}

// DeleteDonationPackage removes a curated donation package
// @Summary      Delete donation package
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Donation Package ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/admin/donation-packages/{id} [delete]
func (h *AdminHandler) DeleteDonationPackage(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.donationPackageService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("donation package deleted", gin.H{"id": id}))
}

// ListDonationPackages lists curated donation packages
// @Summary      List donation packages
// @Tags         donation-packages
// @Produce      json
// @Param        status  query     string  false  "Filter by status"
// @Param        skip    query     int     false  "Rows to skip (default 0)"
// @Param        limit   query     int     false  "Page size (default 100, max 1000)"
// @Success      200     {object}  response.Response{data=object}
// @Router       /api/donation-packages [get]
func (h *AdminHandler) ListDonationPackages(c *gin.Context) {
	page := pagination.Parse(c)

	packages, total, err := h.donationPackageService.List(c.Request.Context(), service.DonationPackageListQuery{
		Status: c.Query("status"),
		Skip:   page.Skip,
		Limit:  page.Limit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("donation packages retrieved", listPayload("donation_packages", packages, total, page.Skip, page.Limit)))
}

// GetDonationPackage returns a single curated donation package
// @Summary      Get donation package
// @Tags         donation-packages
// @Produce      json
// @Param        id   path      string  true  "Donation Package ID"
// @Success      200  {object}  response.Response{data=model.DonationPackage}
// @Failure      404  {object}  response.Response
// @Router       /api/donation-packages/{id} [get]
func (h *AdminHandler) GetDonationPackage(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	pkg, err := h.donationPackageService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("donation package retrieved", pkg))
}
