package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AvailabilityWindowHandler struct {
	db *gorm.DB
}

func NewAvailabilityWindowHandler(db *gorm.DB) *AvailabilityWindowHandler {
	return &AvailabilityWindowHandler{db: db}
}

type RecurringWindowConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	Active    bool   `json:"active"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type RecurringWindowsUpdateRequest struct {
	Windows []RecurringWindowConfig `json:"windows" binding:"required"`
}

type ExceptionRequest struct {
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Closed    bool   `json:"closed"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (h *AvailabilityWindowHandler) Get(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)

	var windows []models.AvailabilityWindow
	if err := h.db.
		Where("staff_id = ?", staffID).
		Order("is_exception ASC, weekday ASC, id ASC").
		Find(&windows).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_windows"})
		return
	}

	httpresp.List(c, windows)
}

// Update replaces the full recurring week; exceptions are untouched.
func (h *AvailabilityWindowHandler) Update(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req RecurringWindowsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	for _, w := range req.Windows {
		if w.Active && !validHMRange(w.StartTime, w.EndTime) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_window_times"})
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("staff_id = ? AND is_exception = false", staffID).
			Delete(&models.AvailabilityWindow{}).Error; err != nil {
			return err
		}

		var toCreate []models.AvailabilityWindow
		for _, w := range req.Windows {
			toCreate = append(toCreate, models.AvailabilityWindow{
				StaffID:   staffID,
				Weekday:   w.Weekday,
				Active:    w.Active,
				StartTime: w.StartTime,
				EndTime:   w.EndTime,
			})
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_windows"})
		return
	}

	writeAudit(h.db, salonID, &staffID, "availability_windows_updated", "availability_window", nil, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CreateException adds a one-off override for a date. A closed exception
// (or one without times) makes the whole day unbookable.
func (h *AvailabilityWindowHandler) CreateException(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req ExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}

	if !req.Closed && !validHMRange(req.StartTime, req.EndTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_window_times"})
		return
	}

	window := models.AvailabilityWindow{
		StaffID:     staffID,
		Weekday:     int(date.Weekday()),
		Date:        &date,
		IsException: true,
		Closed:      req.Closed,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Active:      true,
	}

	if err := h.db.Create(&window).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_exception"})
		return
	}

	writeAudit(h.db, salonID, &staffID, "availability_exception_created", "availability_window", &window.ID, gin.H{
		"date":   req.Date,
		"closed": req.Closed,
	})

	c.JSON(http.StatusCreated, window)
}

func (h *AvailabilityWindowHandler) DeleteException(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)

	id := c.Param("id")

	res := h.db.
		Where("id = ? AND staff_id = ? AND is_exception = true", id, staffID).
		Delete(&models.AvailabilityWindow{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_exception"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "exception_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func validHMRange(start, end string) bool {
	s, err1 := time.Parse("15:04", start)
	e, err2 := time.Parse("15:04", end)
	return err1 == nil && err2 == nil && s.Before(e)
}
