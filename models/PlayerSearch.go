package models

import (
	"time"

	"gorm.io/gorm"
)

// PlayerSearchListing asks for N extra players for an existing reservation.
// At most one open listing may exist per reservation; enforced in the handler.
type PlayerSearchListing struct {
	gorm.Model
	ReservationID uint        `json:"reservationID" gorm:"not null;index"`
	Reservation   Reservation `json:"reservation" gorm:"foreignKey:ReservationID"`
	OrganizerID   uint        `json:"organizerID" gorm:"not null;index"`
	Organizer     User        `json:"organizer" gorm:"foreignKey:OrganizerID"`
	PlayersNeeded int         `json:"playersNeeded" gorm:"not null"`
	Description   string      `json:"description" gorm:"size:500"`
	Status        string      `json:"status" gorm:"size:16;default:open;index"` // open, filled, closed
}

type PlayerSearchParticipant struct {
	ID        uint                `json:"id" gorm:"primaryKey"`
	ListingID uint                `json:"listingID" gorm:"not null;index"`
	Listing   PlayerSearchListing `json:"listing" gorm:"foreignKey:ListingID"`
	UserID    uint                `json:"userID" gorm:"not null;index"`
	User      User                `json:"user" gorm:"foreignKey:UserID"`

	Status  string `json:"status" gorm:"size:16;index"` // pending, accepted, rejected, withdrawn
	Message string `json:"message" gorm:"size:500"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
