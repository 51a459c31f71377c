package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/florenciacomuzzi/amp-report/internal/errors"
	"github.com/florenciacomuzzi/amp-report/internal/middleware"
	"github.com/florenciacomuzzi/amp-report/internal/models"
	"github.com/florenciacomuzzi/amp-report/internal/services"
)

// AuthHandler handles registration, login and the current-user lookup.
type AuthHandler struct {
	service services.AuthService
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(service services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Company   *string `json:"company" binding:"omitempty,max=200"`
	Phone     *string `json:"phone" binding:"omitempty,max=40"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8,max=72"`
	FirstName string  `json:"firstName" binding:"required,max=100"`
	LastName  string  `json:"lastName" binding:"required,max=100"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse wraps the authenticated user.
type UserResponse struct {
	User *models.User `json:"user"`
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	session, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Phone:     req.Phone,
	})
	if err != nil {
		serviceError(c, err, "Failed to register user")
		return
	}
	c.JSON(http.StatusCreated, session)
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		serviceError(c, err, "Failed to log in")
		return
	}
	c.JSON(http.StatusOK, session)
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.service.Me(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		serviceError(c, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, UserResponse{User: u})
}
