package model

// Tag is a flat lookup entry used to categorise events. Tags are seeded out
// of band and only ever associated by the event flow, never created by it.
type Tag struct {
	TagID uint   `json:"tag_id" gorm:"column:tag_id;primaryKey"`
	Name  string `json:"name" gorm:"uniqueIndex;size:100;not null"`
}
