package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type SalonHandler struct {
	db *gorm.DB
}

func NewSalonHandler(db *gorm.DB) *SalonHandler {
	return &SalonHandler{db: db}
}

// Only the scheduling policy knobs are editable here; salon identity and
// profile data belong to the back-office application.
type UpdateSalonConfigRequest struct {
	MinAdvanceMinutes      *int  `json:"min_advance_minutes"`
	SlotGranularityMinutes *int  `json:"slot_granularity_minutes"`
	AutoConfirm            *bool `json:"auto_confirm"`
	PendingBlocksSlots     *bool `json:"pending_blocks_slots"`
}

func (h *SalonHandler) GetMeSalon(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "salon_not_found", "Salon not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_salon", "Could not load salon data.")
		return
	}

	httpresp.OK(c, salon)
}

func (h *SalonHandler) UpdateMeSalon(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "salon_not_found", "Salon not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_salon", "Could not load salon data.")
		return
	}

	var req UpdateSalonConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Minimum advance must be zero or positive.")
			return
		}
		salon.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if req.SlotGranularityMinutes != nil {
		if *req.SlotGranularityMinutes <= 0 {
			httperr.BadRequest(c, "invalid_granularity", "Slot granularity must be positive.")
			return
		}
		salon.SlotGranularityMinutes = *req.SlotGranularityMinutes
	}

	if req.AutoConfirm != nil {
		salon.AutoConfirm = *req.AutoConfirm
	}

	if req.PendingBlocksSlots != nil {
		salon.PendingBlocksSlots = *req.PendingBlocksSlots
	}

	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Could not save salon settings.")
		return
	}

	httpresp.OK(c, salon)
}
