package models

import "time"

// AlertLog records every SMS dispatch attempt, sent or not, so the
// dashboard can show what the farmer was (or should have been) told.
type AlertLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Kind      string    `json:"kind" gorm:"index"`
	Message   string    `json:"message"`
	Recipient string    `json:"recipient"`
	Sent      bool      `json:"sent"`
	CreatedAt time.Time `json:"created_at"`
}
