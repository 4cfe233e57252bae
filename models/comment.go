package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is append-only: no update or delete route exists, rows only go
// away when the parent activity is deleted.
type Comment struct {
	gorm.Model
	Text       string    `json:"text" gorm:"not null;type:text"`
	UserID     uint      `json:"userId" gorm:"not null"`
	User       User      `json:"user" gorm:"foreignKey:UserID"`
	UserName   string    `json:"userName" gorm:"type:varchar(50)"` // author snapshot
	ActivityID uint      `json:"activityId" gorm:"not null;index"`
	Activity   Activity  `json:"activity" gorm:"foreignKey:ActivityID"`
	CreatedAt  time.Time `json:"createdAt"`
}
