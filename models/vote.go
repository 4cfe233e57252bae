package models

import (
	"time"
)

// Vote direction values stored in Vote.Value.
const (
	VoteValueUp   = 1
	VoteValueDown = -1
)

// Vote is one user's standing vote on one activity. The unique index on
// (activity_id, user_id) makes upvote/downvote mutually exclusive at the
// storage layer: a user has at most one row, and its Value is the side.
type Vote struct {
	VoteID     uint      `gorm:"column:vote_id;primaryKey;autoIncrement"`
	ActivityID uint      `gorm:"column:activity_id;not null;uniqueIndex:idx_votes_activity_user"`
	UserID     uint      `gorm:"column:user_id;not null;uniqueIndex:idx_votes_activity_user"`
	Value      int       `gorm:"column:value;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`

	User     User     `gorm:"foreignKey:UserID"`
	Activity Activity `gorm:"foreignKey:ActivityID"`
}
