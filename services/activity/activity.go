package activity

import (
	"encoding/json"

	"gorm.io/gorm"

	activityModel "vehicle-shipping/models/activity"
)

// Record appends an audit row. Call inside the transaction performing the
// change so the audit trail matches what was actually committed.
func Record(tx *gorm.DB, actor, action, entityType string, entityID uint, description string, metadata map[string]interface{}) error {
	meta := "{}"
	if len(metadata) > 0 {
		if raw, err := json.Marshal(metadata); err == nil {
			meta = string(raw)
		}
	}
	row := activityModel.ActivityLog{
		Actor:       actor,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
		Metadata:    meta,
	}
	return tx.Create(&row).Error
}
