package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Andrej19990506/supboard-booking-backend/internal/auth"
	"github.com/Andrej19990506/supboard-booking-backend/internal/staff"
)

type AuthHandler struct {
	staffService staff.Service
	jwtManager   *auth.JWTManager
}

func NewAuthHandler(staffService staff.Service, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		staffService: staffService,
		jwtManager:   jwtManager,
	}
}

//
// POST /v1/auth/register
//

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	m, err := h.staffService.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName, req.IsAdmin)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrEmailAlreadyUsed):
			c.JSON(http.StatusConflict, gin.H{"error": "email already used"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{Staff: NewStaffResponse(m)})
}

//
// POST /v1/auth/login
//

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	m, err := h.staffService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, staff.ErrInactive) {
			c.JSON(http.StatusForbidden, gin.H{"error": "account is deactivated"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(m.ID, m.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{AccessToken: token, Staff: NewStaffResponse(m)})
}

//
// GET /v1/me
//

func (h *AuthHandler) Me(c *gin.Context) {
	staffID := auth.GetStaffID(c)
	if staffID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	m, err := h.staffService.GetByID(c.Request.Context(), staffID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "staff member not found"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{Staff: NewStaffResponse(m)})
}

//
// GET /v1/me/quick-slots
//

func (h *AuthHandler) GetQuickSlots(c *gin.Context) {
	staffID := auth.GetStaffID(c)
	if staffID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	m, err := h.staffService.GetByID(c.Request.Context(), staffID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "staff member not found"})
		return
	}

	slots := m.QuickSlots
	if slots == nil {
		slots = []string{}
	}
	c.JSON(http.StatusOK, QuickSlotsResponse{Slots: slots})
}

//
// PUT /v1/me/quick-slots
//

func (h *AuthHandler) PutQuickSlots(c *gin.Context) {
	staffID := auth.GetStaffID(c)
	if staffID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body QuickSlotsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.staffService.UpdateQuickSlots(c.Request.Context(), staffID, body.Slots); err != nil {
		if errors.Is(err, staff.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "staff member not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, QuickSlotsResponse{Slots: body.Slots})
}
