package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Username      string         `gorm:"unique;not null" json:"username"`
	DisplayName   string         `json:"display_name"`
	Email         string         `gorm:"unique;not null" json:"email"`
	Password      *string        `json:"-"` // nil for Google-only accounts
	GoogleID      *string        `gorm:"unique" json:"-"`
	Provider      string         `gorm:"type:varchar(20);default:'email'" json:"provider"`
	PhotoURL      string         `json:"photo_url"`
	Activities    []Activity     `json:"activities" gorm:"foreignKey:UserID"`
	Comments      []Comment      `json:"comments" gorm:"foreignKey:UserID"`
	Votes         []Vote         `json:"votes" gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshToken `json:"refresh_tokens" gorm:"foreignKey:UserID"`

	// Notification preference. NotifyByEmail implies NotifyZip is a
	// confirmed, non-empty postal code; the settings endpoint rejects
	// anything else before it reaches the database.
	NotifyByEmail bool   `gorm:"default:false" json:"notify_by_email"`
	NotifyZip     string `gorm:"type:varchar(10);index" json:"notify_zip"`
}
