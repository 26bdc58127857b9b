package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Karann1101/sahyadri-guardian/internal/models"
	"github.com/Karann1101/sahyadri-guardian/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type adminUserResp struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"displayName"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLogin,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ListUsers returns all accounts without password hashes. Admin only.
func ListUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Omit("password_hash").Order("id ASC").Find(&users).Error; err != nil {
			util.ServerError(c, err)
			return
		}

		items := make([]adminUserResp, 0, len(users))
		for _, u := range users {
			items = append(items, adminUserResp{
				ID:          u.ID,
				Email:       u.Email,
				DisplayName: u.DisplayName,
				Role:        u.Role,
				IsActive:    u.IsActive,
				LastLoginAt: u.LastLoginAt,
				CreatedAt:   u.CreatedAt,
			})
		}

		util.Success(c, util.Response{
			"users": items,
		})
	}
}

type setActiveReq struct {
	Active *bool `json:"active" binding:"required"`
}

// SetUserActive deactivates or reactivates an account. A deactivated account
// keeps its record (accounts are never hard-deleted) but cannot log in.
func SetUserActive(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			util.Error(c, http.StatusBadRequest, "Invalid user id")
			return
		}

		var req setActiveReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, "Missing active flag")
			return
		}

		var user models.User
		if err := db.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.Error(c, http.StatusNotFound, "User not found")
			} else {
				util.ServerError(c, err)
			}
			return
		}

		if err := db.Model(&user).Update("is_active", *req.Active).Error; err != nil {
			util.ServerError(c, err)
			return
		}
		user.IsActive = *req.Active

		util.Success(c, util.Response{
			"user": adminUserResp{
				ID:          user.ID,
				Email:       user.Email,
				DisplayName: user.DisplayName,
				Role:        user.Role,
				IsActive:    user.IsActive,
				LastLoginAt: user.LastLoginAt,
				CreatedAt:   user.CreatedAt,
			},
		})
	}
}
