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

type PackageHandler struct {
	packageService service.PackageService
}

func NewPackageHandler(packageService service.PackageService) *PackageHandler {
	return &PackageHandler{packageService: packageService}
}

func (h *PackageHandler) RegisterRoutes(router *gin.RouterGroup) {
	packages := router.Group("/api/packages")
	{
		packages.GET("", h.ListPackages)
		packages.GET("/:id", h.GetPackage)
		packages.POST("", middleware.RequireAuth(model.RoleNGO, model.RoleAdmin), h.CreatePackage)
		packages.PUT("/:id", middleware.RequireAuth(model.RoleNGO, model.RoleAdmin), h.UpdatePackage)
		packages.DELETE("/:id", middleware.RequireAuth(model.RoleNGO, model.RoleAdmin), h.DeletePackage)
	}
}

// ListPackages returns fundraising packages
// @Summary      List packages
// @Description  Public listing of fundraising packages, filterable by NGO, status and category
// @Tags         packages
// @Produce      json
// @Param        ngo_id    query     string  false  "Filter by NGO"
// @Param        status    query     string  false  "Filter by status (active, inactive, completed)"
// @Param        category  query     string  false  "Filter by category"
// @Param        skip      query     int     false  "Rows to skip (default 0)"
// @Param        limit     query     int     false  "Page size (default 100, max 1000)"
// @Success      200       {object}  response.Response{data=object}
// @Router       /api/packages [get]
func (h *PackageHandler) ListPackages(c *gin.Context) {
	page := pagination.Parse(c)

	packages, total, err := h.packageService.List(c.Request.Context(), service.PackageListQuery{
		NGOID:    c.Query("ngo_id"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Skip:     page.Skip,
		Limit:    page.Limit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("packages retrieved", listPayload("packages", packages, total, page.Skip, page.Limit)))
}

// GetPackage returns a single package
// @Summary      Get package
// @Tags         packages
// @Produce      json
// @Param        id   path      string  true  "Package ID"
// @Success      200  {object}  response.Response{data=model.Package}
// @Failure      404  {object}  response.Response
// @Router       /api/packages/{id} [get]
func (h *PackageHandler) GetPackage(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	pkg, err := h.packageService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("package retrieved", pkg))
}

// CreatePackage creates a fundraising package for the caller's NGO
// @Summary      Create package
// @Description  NGO users create packages for their own organization; admins must name an ngo_id
// @Tags         packages
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreatePackageRequest  true  "Create Payload"
// @Success      201      {object}  response.Response{data=model.Package}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/packages [post]
func (h *PackageHandler) CreatePackage(c *gin.Context) {
	var req service.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(invalidPayload(err)))
		return
	}

	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	pkg, err := h.packageService.Create(c.Request.Context(), callerID, middleware.IsAdmin(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.OK("package created", pkg))
}

// UpdatePackage updates a package owned by the caller's NGO
// @Summary      Update package
// @Tags         packages
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Package ID"
// @Param        payload  body      service.UpdatePackageRequest  true  "Update Payload"
// @Success      200      {object}  response.Response{data=model.Package}
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/packages/{id} [put]
func (h *PackageHandler) UpdatePackage(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req service.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(invalidPayload(err)))
		return
	}

	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	pkg, err := h.packageService.Update(c.Request.Context(), callerID, middleware.IsAdmin(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("package updated", pkg))
}

// DeletePackage removes a package
// @Summary      Delete package
// @Tags         packages
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Package ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/packages/{id} [delete]
func (h *PackageHandler) DeletePackage(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.packageService.Delete(c.Request.Context(), callerID, middleware.IsAdmin(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("package deleted", gin.H{"id": id}))
}
