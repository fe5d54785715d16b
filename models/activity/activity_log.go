package activity

import (
	"time"
)

// ActivityLog is an append-only audit row recording who did what to which
// record. Rows are never updated or deleted.
type ActivityLog struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Actor       string    `json:"actor" gorm:"type:varchar(100);index;not null"`
	Action      string    `json:"action" gorm:"type:varchar(50);index;not null"`
	EntityType  string    `json:"entity_type" gorm:"type:varchar(50);index;not null"`
	EntityID    uint      `json:"entity_id" gorm:"index;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Metadata    string    `json:"metadata" gorm:"type:jsonb;default:'{}'"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
