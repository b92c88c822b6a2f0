package models

import (
	"time"

	"gorm.io/gorm"
)

// OpponentSearchListing is a team's public ad looking for an opponent team.
type OpponentSearchListing struct {
	gorm.Model
	TeamID        uint       `json:"teamID" gorm:"not null;index"`
	Team          Team       `json:"team" gorm:"foreignKey:TeamID"`
	CreatedByID   uint       `json:"createdByID" gorm:"not null"`
	CreatedBy     User       `json:"createdBy" gorm:"foreignKey:CreatedByID"`
	City          string     `json:"city" gorm:"index"`
	PreferredDate *time.Time `json:"preferredDate" gorm:"type:date"`
	TimeRange     string     `json:"timeRange" gorm:"size:32"` // e.g. "20:00-22:00"
	Description   string     `json:"description" gorm:"size:500"`
	Status        string     `json:"status" gorm:"size:16;default:open;index"` // open, matched, closed
}

// MatchProposal is a concrete date/time offer from another team against a listing.
type MatchProposal struct {
	gorm.Model
	ListingID       uint                  `json:"listingID" gorm:"not null;index"`
	Listing         OpponentSearchListing `json:"listing" gorm:"foreignKey:ListingID"`
	ProposingTeamID uint                  `json:"proposingTeamID" gorm:"not null;index"`
	ProposingTeam   Team                  `json:"proposingTeam" gorm:"foreignKey:ProposingTeamID"`
	ProposedByID    uint                  `json:"proposedByID" gorm:"not null"`
	ProposedDate    time.Time             `json:"proposedDate" gorm:"type:date;not null"`
	StartTime       *string               `json:"startTime" gorm:"type:time"` // nil when the proposer left the slot open
	EndTime         *string               `json:"endTime" gorm:"type:time"`
	Message         string                `json:"message" gorm:"size:500"`
	Status          string                `json:"status" gorm:"size:16;default:pending;index"` // pending, accepted, rejected
	RespondedAt     *time.Time            `json:"respondedAt"`
}
