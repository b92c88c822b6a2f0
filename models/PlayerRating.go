package models

import "gorm.io/gorm"

// PlayerRating: one rater may rate one ratee at most once per reservation,
// only after the reservation has ended. The composite unique index backs the
// once-per-triple rule at the database level.
type PlayerRating struct {
	gorm.Model
	ReservationID uint        `json:"reservationID" gorm:"not null;uniqueIndex:idx_rating_once"`
	Reservation   Reservation `json:"reservation" gorm:"foreignKey:ReservationID"`
	RaterID       uint        `json:"raterID" gorm:"not null;uniqueIndex:idx_rating_once"`
	Rater         User        `json:"rater" gorm:"foreignKey:RaterID"`
	RateeID       uint        `json:"rateeID" gorm:"not null;uniqueIndex:idx_rating_once;index"`
	Ratee         User        `json:"ratee" gorm:"foreignKey:RateeID"`
	Stars         int         `json:"stars" gorm:"not null;check:stars >= 1 AND stars <= 5"`
	Comment       string      `json:"comment" gorm:"size:500"`
}
