package model

// Location is where an event takes place. Each event has exactly one
// location row. The JSON field names mirror the public API contract,
// capitalised "Address" included.
type Location struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	EventID uint   `json:"eventId" gorm:"uniqueIndex;not null"`
	Address string `json:"Address" gorm:"column:address;size:255;not null"`
	Floor   int    `json:"floor" gorm:"not null"`
	Room    string `json:"room" gorm:"size:100;not null"`
	LocNote string `json:"loc_note" gorm:"column:loc_note;size:500"`
}
