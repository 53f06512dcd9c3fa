package handlers

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// writeAudit records a synchronous audit entry. Handler paths that
// cannot afford a DB round trip use the async dispatcher instead.
func writeAudit(db *gorm.DB, salonID uint, staffID *uint, action, entity string, entityID *uint, meta any) {
	var metaJSON string
	if meta != nil {
		if raw, err := json.Marshal(meta); err == nil {
			metaJSON = string(raw)
		}
	}

	log := models.AuditLog{
		SalonID:  salonID,
		StaffID:  staffID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: metaJSON,
	}

	// Audit must never break the main flow.
	_ = db.Create(&log).Error
}
