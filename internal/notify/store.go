package notify

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Save(ctx context.Context, recipientID, text string) error {
	row := models.Notification{
		ID:          uuid.NewString(),
		RecipientID: recipientID,
		Text:        text,
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

// ConsumeNextUnread returns the oldest unread message of userID and marks
// every unread message of that user as read.
func (s *Store) ConsumeNextUnread(ctx context.Context, userID string) (string, bool, error) {
	var text string
	found := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []models.Notification
		if err := tx.
			Where("recipient_id = ? AND read = ?", userID, false).
			Order("created_at ASC").
			Limit(1).
			Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		text = rows[0].Text
		found = true

		return tx.
			Model(&models.Notification{}).
			Where("recipient_id = ? AND read = ?", userID, false).
			Update("read", true).Error
	})
	if err != nil {
		return "", false, err
	}

	return text, found, nil
}
