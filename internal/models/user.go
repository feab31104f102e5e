package models

import "time"

type User struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Unit         string `gorm:"size:50" json:"unit"`
	Gender       string `gorm:"size:1" json:"gender"`
	Role         string `gorm:"size:20;default:'resident';index" json:"role"`
	Description  string `gorm:"size:255" json:"description"`

	// maca: atende na maca compartilhada
	Maca     bool `gorm:"not null;default:false" json:"maca"`
	Manicure bool `gorm:"not null;default:false" json:"manicure"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
