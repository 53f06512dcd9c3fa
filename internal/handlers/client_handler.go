package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

type ClientHandler struct {
	db           *gorm.DB
	scoreUC      *booking.GetClientScore
	adjustmentUC *booking.RecordAdjustment
}

func NewClientHandler(
	db *gorm.DB,
	scoreUC *booking.GetClientScore,
	adjustmentUC *booking.RecordAdjustment,
) *ClientHandler {
	return &ClientHandler{
		db:           db,
		scoreUC:      scoreUC,
		adjustmentUC: adjustmentUC,
	}
}

// ======================================================
// LIST CLIENTS (cashier / staff view)
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("salon_id = ?", salonID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_clients",
		})
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// TRUST SCORE
// ======================================================

func (h *ClientHandler) GetScore(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	clientID, ok := h.clientInSalon(c, salonID)
	if !ok {
		return
	}

	eval, err := h.scoreUC.Execute(c.Request.Context(), clientID)
	if err != nil {
		httperr.Internal(c, "failed_to_get_score", "Could not compute the client score.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client_id":        clientID,
		"score":            eval.Score,
		"level":            eval.Level,
		"requires_deposit": eval.RequiresDeposit,
	})
}

type ScoreAdjustmentRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

func (h *ClientHandler) AdjustScore(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	staffID := c.MustGet(middleware.ContextStaffID).(uint)

	clientID, ok := h.clientInSalon(c, salonID)
	if !ok {
		return
	}

	var req ScoreAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	eval, err := h.adjustmentUC.Execute(c.Request.Context(), booking.RecordAdjustmentInput{
		SalonID:      salonID,
		ClientID:     clientID,
		Delta:        req.Delta,
		Reason:       req.Reason,
		ActorStaffID: staffID,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_adjust_score", "Could not record the adjustment.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client_id":        clientID,
		"score":            eval.Score,
		"level":            eval.Level,
		"requires_deposit": eval.RequiresDeposit,
	})
}

// clientInSalon resolves :id and checks it belongs to the caller's salon.
func (h *ClientHandler) clientInSalon(c *gin.Context, salonID uint) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_client_id", "Invalid client id.")
		return 0, false
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return 0, false
	}

	return client.ID, true
}
