package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/register-ngo", h.RegisterNGO)
		auth.POST("/register-vendor", h.RegisterVendor)
		auth.POST("/login", h.Login)
		auth.POST("/logout", middleware.RequireAuth(), h.Logout)
		auth.GET("/me", middleware.RequireAuth(), h.Me)
	}
}

// Register creates a donor account
// @Summary      Register donor
// @Description  Creates a donor account that can donate immediately
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RegisterRequest  true  "Registration Payload"
// @Success      201      {object}  response.Response{data=service.ProfileResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(invalidPayload(err)))
		return
	}

	profile, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.OK("registration successful", profile))
}

// RegisterNGO creates an NGO account pending admin approval
// @Summary      Register NGO
// @Description  Creates an NGO account and its organization record; the NGO stays unverified until an admin approves it
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RegisterNGORequest  true  "NGO Registration Payload"
// @Success      201      {object}  response.Response{data=service.ProfileResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/auth/register-ngo [post]
func (h *AuthHandler) RegisterNGO(c *gin.Context) {
	var req service.RegisterNGORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(invalidPayload(err)))
		return
	}

	profile, err := h.authService.RegisterNGO(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.OK("ngo registration submitted for approval", profile))
}

// RegisterVendor creates a vendor account pending admin approval
// @Summary      Register vendor
// @Description  Creates a vendor account and its business record; the vendor stays unverified until an admin approves it
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RegisterVendorRequest  true  "Vendor Registration Payload"
// @Success      201      {object}  response.Response{data=service.ProfileResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/auth/register-vendor [post]
func (h *AuthHandler) RegisterVendor(c *gin.Context) {
	var req service.RegisterVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(invalidPayload(err)))
		return
	}

	profile, err := h.authService.RegisterVendor(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.OK("vendor registration submitted for approval", profile))
}

// Login authenticates a user and returns a bearer token
// @Summary      Login
// @Description  Authenticates by email and password and issues a 30-minute bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Login Payload"
// @Success      200      {object}  response.Response{data=service.TokenResponse}
// @Failure      401      {object}  response.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(invalidPayload(err)))
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("login successful", token))
}

// Logout acknowledges sign-out
// @Summary      Logout
// @Description  Tokens are stateless and expire on their own; clients discard the token after calling this
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, response.OK("logged out", nil))
}

// Me returns the authenticated user's profile
// @Summary      Current user
// @Description  Returns the profile of the authenticated caller
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.ProfileResponse}
// @Failure      401  {object}  response.Response
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	profile, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK("profile retrieved", profile))
}
