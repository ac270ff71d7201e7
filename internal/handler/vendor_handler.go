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

type VendorHandler struct {
	vendorService          service.VendorService
	dashboardService       service.DashboardService
	donationPackageService service.DonationPackageService
}

func NewVendorHandler(
	vendorService service.VendorService,
	dashboardService service.DashboardService,
	donationPackageService service.DonationPackageService,
) *VendorHandler {
	return &VendorHandler{
		vendorService:          vendorService,
		dashboardService:       dashboardService,
		donationPackageService: donationPackageService,
	}
}

func (h *VendorHandler) RegisterRoutes(router *gin.RouterGroup) {
	vendors := router.Group("/api/vendors")
	{
		vendors.GET("", h.ListVendors)
		vendors.GET("/my", middleware.RequireAuth(model.RoleVendor), h.MyVendor)
		vendors.GET("/:id", h.GetVendor)
		vendors.PUT("/:id", middleware.RequireAuth(model.RoleVendor, model.RoleAdmin), h.UpdateVendor)
		vendors.DELETE("/:id", middleware.RequireAuth(model.RoleAdmin), h.DeleteVendor)
	}

	// Vendor dashboard — separate route group
	dashboard := router.Group("/api/vendor", middleware.RequireAuth(model.RoleVendor))
	{
		dashboard.GET("/dashboard/stats", h.DashboardStats)
		dashboard.GET("/donation-packages", h.AssignedDonationPackages)
	}
}

// ListVendors returns verified vendors
// @Summary      List vendors
// @Description  Public listing of verified vendors, filterable by business type
// @Tags         vendors
// @Produce      json
// @Param        business_type  query     string  false  "Filter by business type"
// @Param        skip           query     int     false  "Rows to skip (default 0)"
// @Param        limit          query     int     false  "Page size (default 100, max 1000)"
// @Success      200            {object}  response.Response{data=object}
// @Router       /api/vendors [get]
func (h *VendorHandler) ListVendors(c *gin.Context) {
	page := pagination.Parse(c)

	vendors, total, err := h.vendorService.List(c.Request.Context(), service.VendorListQuery{
		BusinessType: c.Query("business_type"),
		Skip:         page.Skip,
		Limit:        page.Limit,
	}, false)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("vendors retrieved", listPayload("vendors", vendors, total, page.Skip, page.Limit)))
}

// MyVendor returns the vendor record owned by the authenticated account
// @Summary      My vendor
// @Tags         vendors
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.VendorResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/vendors/my [get]
func (h *VendorHandler) MyVendor(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	vendor, err := h.vendorService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("vendor retrieved", vendor))
}

// GetVendor returns a single vendor
// @Summary      Get vendor
// @Tags         vendors
// @Produce      json
// @Param        id   path      string  true  "Vendor ID"
// @Success      200  {object}  response.Response{data=service.VendorResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/vendors/{id} [get]
func (h *VendorHandler) GetVendor(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	vendor, err := h.vendorService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("vendor retrieved", vendor))
}

// UpdateVendor updates a vendor owned by the caller (or any vendor, for admins)
// @Summary      Update vendor
// @Tags         vendors
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Vendor ID"
// @Param        payload  body      service.UpdateVendorRequest  true  "Update Payload"
// @Success      200      {object}  response.Response{data=service.VendorResponse}
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/vendors/{id} [put]
func (h *VendorHandler) UpdateVendor(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req service.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(invalidPayload(err)))
		return
	}

	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	vendor, err := h.vendorService.Update(c.Request.Context(), callerID, middleware.IsAdmin(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("vendor updated", vendor))
}

// DeleteVendor removes a vendor
// @Summary      Delete vendor
// @Tags         vendors
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Vendor ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/vendors/{id} [delete]
func (h *VendorHandler) DeleteVendor(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.vendorService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("vendor deleted", gin.H{"id": id}))
}

// DashboardStats returns fulfillment counters for the vendor dashboard
// @Summary      Vendor dashboard stats
// @Tags         vendors
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.VendorDashboardStats}
// @Failure      403  {object}  response.Response
// @Router       /api/vendor/dashboard/stats [get]
func (h *VendorHandler) DashboardStats(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	stats, err := h.dashboardService.VendorStats(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("dashboard stats retrieved", stats))
}

// AssignedDonationPackages lists donation packages assigned to the vendor
// @Summary      Assigned donation packages
// @Tags         vendors
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Filter by status"
// @Param        skip    query     int     false  "Rows to skip (default 0)"
// @Param        limit   query     int     false  "Page size (default 100, max 1000)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      403     {object}  response.Response
// @Router       /api/vendor/donation-packages [get]
func (h *VendorHandler) AssignedDonationPackages(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	page := pagination.Parse(c)

	packages, total, err := h.donationPackageService.ListForVendor(c.Request.Context(), userID, service.DonationPackageListQuery{
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
