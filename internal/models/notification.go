package models

import "time"

type Notification struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	RecipientID string    `gorm:"size:36;not null;index:idx_notification_unread,priority:1" json:"recipient_id"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	Read        bool      `gorm:"not null;default:false;index:idx_notification_unread,priority:2" json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}
