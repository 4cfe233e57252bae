package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Activity struct {
	gorm.Model
	PlaceName   string         `json:"placeName" gorm:"not null;type:varchar(200)"`
	Description string         `json:"description" gorm:"type:text"`
	City        string         `json:"city" gorm:"type:varchar(100)"`
	State       string         `json:"state" gorm:"type:varchar(50)"`
	Zip         string         `json:"zip" gorm:"type:varchar(10);index"` // optional; gates notification fan-out
	Latitude    float64        `json:"latitude" gorm:"type:decimal(10,8)"`
	Longitude   float64        `json:"longitude" gorm:"type:decimal(11,8)"`
	Rating      float64        `json:"rating" gorm:"type:decimal(2,1);default:0"` // 0-5 in 0.5 steps, advisory
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`
	ImageURLs   pq.StringArray `json:"imageUrls" gorm:"type:text[]"`
	Upvotes     int            `json:"upvotes" gorm:"not null;default:0"`
	Downvotes   int            `json:"downvotes" gorm:"not null;default:0"`
	UserID      uint           `json:"userId" gorm:"not null;index"`
	User        User           `json:"user" gorm:"foreignKey:UserID"`
	UserName    string         `json:"userName" gorm:"type:varchar(50)"` // creator snapshot at creation time
	Comments    []Comment      `json:"comments" gorm:"foreignKey:ActivityID"`
	Votes       []Vote         `json:"votes" gorm:"foreignKey:ActivityID"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
