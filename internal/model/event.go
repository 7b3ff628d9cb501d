package model

import "time"

// Event represents a posted surplus-food event. An event is "active" while
// exp_time is in the future and done is false.
type Event struct {
	EventID     uint      `json:"event_id" gorm:"column:event_id;primaryKey"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Qty         string    `json:"qty" gorm:"size:100;not null"`
	PostTime    time.Time `json:"post_time" gorm:"not null"`
	ExpTime     time.Time `json:"exp_time" gorm:"not null;index"`
	Done        bool      `json:"done" gorm:"default:false;index"`
	CreatedByID uint      `json:"createdById" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	CreatedBy *User     `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
	Location  *Location `json:"location,omitempty" gorm:"foreignKey:EventID"`
	Tags      []Tag     `json:"tags" gorm:"many2many:event_tags;joinForeignKey:EventID;joinReferences:TagID"`
	Photos    []Photo   `json:"photos,omitempty" gorm:"foreignKey:EventID"`
}
