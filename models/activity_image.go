package models

import (
	"time"

	"gorm.io/gorm"
)

// Per-user and per-activity image limits, enforced server-side against
// ActivityImage rows (not trusted to the client).
const (
	MaxImagesPerActivity = 5
	MaxImagesPerUser     = 30
)

// ActivityImage records one confirmed photo upload. A row is created when
// the client confirms its presigned PUT, and gains an ActivityID when the
// image is attached to a submitted activity. These rows are the source of
// truth for the upload quotas.
type ActivityImage struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	ActivityID *uint          `gorm:"index" json:"activity_id"` // nil until attached
	ObjectKey  string         `gorm:"unique;not null" json:"object_key"`
	URL        string         `gorm:"not null" json:"url"`
	SizeBytes  int64          `json:"size_bytes"`
}
