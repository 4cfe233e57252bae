package notify

import (
	"context"

	"gorm.io/gorm"

	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/models"
)

// GormRecipientStore backs RecipientStore with the users table.
type GormRecipientStore struct {
	DB *gorm.DB
}

func NewGormRecipientStore(db *gorm.DB) *GormRecipientStore {
	return &GormRecipientStore{DB: db}
}

// ListByZip matches on equality only: opted-in users whose saved ZIP is
// exactly the activity's ZIP. No radius or prefix matching.
func (s *GormRecipientStore) ListByZip(ctx context.Context, zip string) ([]Recipient, error) {
	var users []models.User
	err := s.DB.WithContext(ctx).
		Where("notify_by_email = ? AND notify_zip = ?", true, zip).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	recipients := make([]Recipient, 0, len(users))
	for _, u := range users {
		recipients = append(recipients, Recipient{UserID: u.ID, Email: u.Email})
	}
	return recipients, nil
}

var _ RecipientStore = (*GormRecipientStore)(nil)
