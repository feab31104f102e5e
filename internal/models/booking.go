package models

import "time"

// Booking is one physical cell record. A paired manicure reservation is
// two rows sharing PairID; only the first carries Time2.
type Booking struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Date  string  `gorm:"size:10;not null;index;uniqueIndex:idx_booking_cell,priority:2" json:"date"`
	Time  string  `gorm:"size:5;not null;uniqueIndex:idx_booking_cell,priority:3" json:"time"`
	Time2 *string `gorm:"size:5" json:"time2"`

	ProfID   string `gorm:"size:36;not null;uniqueIndex:idx_booking_cell,priority:1" json:"prof_id"`
	ProfName string `gorm:"size:100" json:"prof_name"`

	ClientID     *string `gorm:"size:36;index" json:"client_id"`
	ClientName   *string `gorm:"size:100" json:"client_name"`
	ClientUnit   *string `gorm:"size:50" json:"client_unit"`
	ClientGender *string `gorm:"size:1" json:"client_gender"`

	Description  string  `gorm:"size:255" json:"description"`
	Type         string  `gorm:"size:10;not null;default:'appt'" json:"type"`
	ManicureType *string `gorm:"size:10" json:"manicure_type"`
	PairID       *string `gorm:"size:36;index" json:"pair_id"`

	CreatedAt time.Time `json:"created_at"`
}
