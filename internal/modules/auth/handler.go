package auth

import (
	"net/http"

	"psycenter/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(admin *gin.RouterGroup) {
	admin.POST("/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(admin *gin.RouterGroup) {
	admin.GET("/verify", h.Verify)
}

// Login выдаёт JWT для админ-панели.
// @Router	/admin/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Username and password are required")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if err == ErrInvalidCredentials {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": result.Token,
		"admin": gin.H{
			"id":           result.Admin.ID,
			"username":     result.Admin.Username,
			"display_name": result.Admin.DisplayName,
		},
	})
}

// Verify проверяет действительность токена админа.
// @Router	/admin/verify [GET]
func (h *Handler) Verify(c *gin.Context) {
	adminID := c.GetInt64("admin_id")

	admin, err := h.service.GetAdmin(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Admin account no longer exists")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"valid": true,
		"admin": gin.H{
			"id":           admin.ID,
			"username":     admin.Username,
			"display_name": admin.DisplayName,
		},
	})
}
