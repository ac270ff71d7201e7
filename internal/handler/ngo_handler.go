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

type NGOHandler struct {
	ngoService       service.NGOService
	dashboardService service.DashboardService
}

func NewNGOHandler(ngoService service.NGOService, dashboardService service.DashboardService) *NGOHandler {
	return &NGOHandler{ngoService: ngoService, dashboardService: dashboardService}
}

func (h *NGOHandler) RegisterRoutes(router *gin.RouterGroup) {
	ngos := router.Group("/api/ngos")
	{
		ngos.GET("", h.ListNGOs)
		ngos.GET("/my", middleware.RequireAuth(model.RoleNGO), h.MyNGO)
		ngos.GET("/:id", h.GetNGO)
		ngos.PUT("/:id", middleware.RequireAuth(model.RoleNGO, model.RoleAdmin), h.UpdateNGO)
		ngos.DELETE("/:id", middleware.RequireAuth(model.RoleAdmin), h.DeleteNGO)
	}

	// NGO dashboard — separate route group
	dashboard := router.Group("/api/ngo", middleware.RequireAuth(model.RoleNGO))
	{
		dashboard.GET("/dashboard/stats", h.DashboardStats)
	}
}

// DashboardStats returns fundraising counters for the NGO dashboard
// @Summary      NGO dashboard stats
// @Tags         ngos
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.NGODashboardStats}
// @Failure      403  {object}  response.Response
// @Router       /api/ngo/dashboard/stats [get]
func (h *NGOHandler) DashboardStats(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	stats, err := h.dashboardService.NGOStats(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("dashboard stats retrieved", stats))
}

// ListNGOs returns verified NGOs
// @Summary      List NGOs
// @Description  Public listing of verified NGOs, filterable by city. Unverified NGOs appear only through the admin pending endpoint.
// @Tags         ngos
// @Produce      json
// @Param        city   query     string  false  "Filter by city"
// @Param        skip   query     int     false  "Rows to skip (default 0)"
// @Param        limit  query     int     false  "Page size (default 100, max 1000)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /api/ngos [get]
func (h *NGOHandler) ListNGOs(c *gin.Context) {
	page := pagination.Parse(c)

	ngos, total, err := h.ngoService.List(c.Request.Context(), service.NGOListQuery{
		City:  c.Query("city"),
		Skip:  page.Skip,
		Limit: page.Limit,
	}, false)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("ngos retrieved", listPayload("ngos", ngos, total, page.Skip, page.Limit)))
}

// MyNGO returns the NGO owned by the authenticated account
// @Summary      My NGO
// @Tags         ngos
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.NGO}
// @Failure      404  {object}  response.Response
// @Router       /api/ngos/my [get]
func (h *NGOHandler) MyNGO(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	ngo, err := h.ngoService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("ngo retrieved", ngo))
}

// GetNGO returns a single NGO
// @Summary      Get NGO
// @Tags         ngos
// @Produce      json
// @Param        id   path      string  true  "NGO ID"
// @Success      200  {object}  response.Response{data=model.NGO}
// @Failure      404  {object}  response.Response
// @Router       /api/ngos/{id} [get]
func (h *NGOHandler) GetNGO(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	ngo, err := h.ngoService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("ngo retrieved", ngo))
}

// UpdateNGO updates an NGO owned by the caller (or any NGO, for admins)
// @Summary      Update NGO
// @Tags         ngos
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "NGO ID"
// @Param        payload  body      service.UpdateNGORequest  true  "Update Payload"
// @Success      200      {object}  response.Response{data=model.NGO}
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/ngos/{id} [put]
func (h *NGOHandler) UpdateNGO(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req service.UpdateNGORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(invalidPayload(err)))
		return
	}

	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	ngo, err := h.ngoService.Update(c.Request.Context(), callerID, middleware.IsAdmin(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("ngo updated", ngo))
}

// DeleteNGO removes an NGO
// @Summary      Delete NGO
// @Tags         ngos
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "NGO ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/ngos/{id} [delete]
func (h *NGOHandler) DeleteNGO(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.ngoService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("ngo deleted", gin.H{"id": id}))
}
