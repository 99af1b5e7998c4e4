package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/langchou/evlife/internal/repository"
	"github.com/langchou/evlife/internal/service"
)

type createUserRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
	Name     string  `json:"name" binding:"required,max=100"`
	Phone    *string `json:"phone"`
}

// CreateUser 注册用户
// POST /api/users
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		h.logger.Error("Failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": user})
}

// GetUser 获取用户详情
// GET /api/users/:id
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("Failed to get user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

// ListUsers 获取用户列表
// GET /api/users?skip=0&limit=100
func (h *Handler) ListUsers(c *gin.Context) {
	skip, limit := pageParams(c)

	users, err := h.users.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": users})
}

// ListUserVehicles 获取某用户名下的车辆
// GET /api/users/:id/vehicles
func (h *Handler) ListUserVehicles(c *gin.Context) {
	vehicles, err := h.vehicles.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("Failed to list user vehicles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list vehicles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}
