package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation statuses. Overlap between non-cancelled reservations on the same
// field is rejected by the reservations_no_overlap exclusion constraint, see
// storage.InitializeDB.
const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
	ReservationStatusCompleted = "completed"
	ReservationStatusNoShow    = "no_show"
)

type Reservation struct {
	gorm.Model
	FieldID       uint      `json:"fieldID" gorm:"not null;index"`
	Field         Field     `json:"field" gorm:"foreignKey:FieldID"`
	UserID        uint      `json:"userID" gorm:"not null;index"`
	User          User      `json:"user" gorm:"foreignKey:UserID"`
	TeamID        *uint     `json:"teamID" gorm:"index"`
	Team          *Team     `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	Date          time.Time `json:"date" gorm:"type:date;not null"`
	StartTime     string    `json:"startTime" gorm:"type:time;not null"`
	EndTime       string    `json:"endTime" gorm:"type:time;not null"`
	Status        string    `json:"status" gorm:"size:16;default:pending;index"`
	PaymentStatus string    `json:"paymentStatus" gorm:"size:16;default:unpaid"` // unpaid, paid, refunded
	TotalPrice    float64   `json:"totalPrice"`
	Notes         string    `json:"notes" gorm:"size:500"`
}

// ReservationPlayer is the roster of a reservation: the booker, their team
// mates and any manually attached players.
type ReservationPlayer struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ReservationID uint      `json:"reservationID" gorm:"not null;uniqueIndex:idx_reservation_player"`
	UserID        uint      `json:"userID" gorm:"not null;uniqueIndex:idx_reservation_player;index"`
	User          User      `json:"user" gorm:"foreignKey:UserID"`
	Source        string    `json:"source" gorm:"size:16"` // booker, team, manual, player_search
	CreatedAt     time.Time `json:"createdAt"`
}
