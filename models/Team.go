package models

import (
	"time"

	"gorm.io/gorm"
)

type Team struct {
	gorm.Model
	Name        string       `json:"name" gorm:"not null;uniqueIndex"`
	CaptainID   uint         `json:"captainID" gorm:"not null;index"`
	Captain     User         `json:"captain" gorm:"foreignKey:CaptainID"`
	City        string       `json:"city" gorm:"index"`
	LogoURL     string       `json:"logoURL"`
	Description string       `json:"description" gorm:"size:500"`
	Wins        int          `json:"wins" gorm:"default:0"`
	Draws       int          `json:"draws" gorm:"default:0"`
	Losses      int          `json:"losses" gorm:"default:0"`
	Elo         int          `json:"elo" gorm:"default:1000"`
	Members     []TeamMember `json:"members" gorm:"foreignKey:TeamID"`
}

// TeamMember rows are unique per (user, status=active) via the partial index
// team_members_one_active, see storage.InitializeDB.
type TeamMember struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	TeamID   uint      `json:"teamID" gorm:"not null;index"`
	UserID   uint      `json:"userID" gorm:"not null;index"`
	User     User      `json:"user" gorm:"foreignKey:UserID"`
	Role     string    `json:"role" gorm:"size:16;default:member"` // captain, member
	Status   string    `json:"status" gorm:"size:16;index"`        // active, pending
	JoinedAt time.Time `json:"joinedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TeamInvitation struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	TeamID    uint `json:"teamID" gorm:"not null;index"`
	Team      Team `json:"team" gorm:"foreignKey:TeamID"`
	InviterID uint `json:"inviterID" gorm:"not null"`
	Inviter   User `json:"inviter" gorm:"foreignKey:InviterID"`
	InviteeID uint `json:"inviteeID" gorm:"not null;index"`
	Invitee   User `json:"invitee" gorm:"foreignKey:InviteeID"`

	Status  string `json:"status" gorm:"size:16;index"` // pending, accepted, rejected
	Message string `json:"message" gorm:"size:500"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	RespondedAt *time.Time `json:"respondedAt"`
}
