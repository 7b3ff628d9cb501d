package model

import "time"

// User represents an authenticated user in the system.
type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"size:255;not null"`
	Email         string    `json:"email,omitempty" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash  string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CanPostEvents bool      `json:"canPostEvents,omitempty" gorm:"default:false"`
	IsAdmin       bool      `json:"isAdmin,omitempty" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	Events []Event `json:"events,omitempty" gorm:"foreignKey:CreatedByID"`
}
