package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)

	var staff models.Staff
	if err := h.db.Preload("Salon").First(&staff, staffID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "staff_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"staff": gin.H{
			"id":       staff.ID,
			"name":     staff.Name,
			"email":    staff.Email,
			"phone":    staff.Phone,
			"role":     staff.Role,
			"salon_id": staff.SalonID,
		},
		"salon": gin.H{
			"id":       staff.Salon.ID,
			"name":     staff.Salon.Name,
			"slug":     staff.Salon.Slug,
			"phone":    staff.Salon.Phone,
			"address":  staff.Salon.Address,
			"timezone": staff.Salon.Timezone,
		},
	})
}
