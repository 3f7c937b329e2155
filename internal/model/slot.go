package model

import "time"

// Named storage slots. Each holds one serialized snapshot of the
// corresponding in-memory structure.
const (
	SlotProducts       = "products"
	SlotCurrentSession = "current_session"
	SlotSessionHistory = "session_history"
)

// Slot is one durable key-value row: slot name to JSON document.
type Slot struct {
	Name      string    `gorm:"type:varchar(64);primaryKey" json:"name"`
	Data      string    `gorm:"type:jsonb;not null" json:"data"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Slot) TableName() string {
	return "slots"
}
