package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is a write-only fan-out target for domain events.
type Notification struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"userID" gorm:"not null;index"`
	User   User `json:"user" gorm:"foreignKey:UserID"`

	Type    string `json:"type" gorm:"size:32;index"` // team_invitation, match_proposal, join_request, ...
	Title   string `json:"title" gorm:"size:100"`
	Message string `json:"message" gorm:"size:500"`

	// Reference data
	RefType string         `json:"refType" gorm:"size:32"` // reservation, team, listing, proposal, ...
	RefID   uint           `json:"refID"`
	Data    datatypes.JSON `json:"data"`

	IsRead    bool       `json:"isRead" gorm:"default:false"`
	CreatedAt time.Time  `json:"createdAt"`
	ReadAt    *time.Time `json:"readAt"`
}
