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

type UserHandler struct {
	profileService service.ProfileService
}

func NewUserHandler(profileService service.ProfileService) *UserHandler {
	return &UserHandler{profileService: profileService}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/api/users")
	{
		users.GET("", middleware.RequireAuth(model.RoleAdmin), h.ListUsers)
		users.GET("/:id", middleware.RequireAuth(model.RoleAdmin), h.GetUser)
		users.PUT("/:id", middleware.RequireAuth(), h.UpdateUser)
		users.DELETE("/:id", middleware.RequireAuth(model.RoleAdmin), h.DeleteUser)
	}
}

// ListUsers returns a paginated list of users
// @Summary      List users
// @Description  Returns users, optionally filtered by role
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        role   query     string  false  "Filter by role (user, admin, ngo, vendor)"
// @Param        skip   query     int     false  "Rows to skip (default 0)"
// @Param        limit  query     int     false  "Page size (default 100, max 1000)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      403    {object}  response.Response
// @Router       /api/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	page := pagination.Parse(c)

	users, total, err := h.profileService.List(c.Request.Context(), c.Query("role"), page.Skip, page.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("users retrieved", listPayload("users", users, total, page.Skip, page.Limit)))
}

// GetUser returns a single user by user id
// @Summary      Get user
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response{data=service.ProfileResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	profile, err := h.profileService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("user retrieved", profile))
}

// UpdateUser updates a user's profile; role changes are admin-only
// @Summary      Update user
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "User ID"
// @Param        payload  body      service.UpdateProfileRequest  true  "Update Payload"
// @Success      200      {object}  response.Response{data=service.ProfileResponse}
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(invalidPayload(err)))
		return
	}

	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), callerID, middleware.IsAdmin(c), userID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("user updated", profile))
}

// DeleteUser removes a user and their owned records
// @Summary      Delete user
// @Description  Deletes a user; owned NGO/vendor records cascade. Admins cannot delete their own account.
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.profileService.Delete(c.Request.Context(), callerID, userID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("user deleted", gin.H{"id": userID}))
}
