package model

import "time"

// Photo stores one encoded image (data URI / base64 string) attached to an
// event. Events carry at most ten photos at creation time.
type Photo struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	EventID   uint      `json:"eventId" gorm:"not null;index"`
	Photo     string    `json:"photo" gorm:"type:longtext;not null"`
	CreatedAt time.Time `json:"created_at"`
}
