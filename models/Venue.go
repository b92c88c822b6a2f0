package models

import "gorm.io/gorm"

type Venue struct {
	gorm.Model
	OwnerID      uint    `json:"ownerID" gorm:"not null;index"`
	Owner        User    `json:"owner" gorm:"foreignKey:OwnerID"`
	Name         string  `json:"name" gorm:"not null"`
	City         string  `json:"city" gorm:"index"`
	District     string  `json:"district"`
	Address      string  `json:"address"`
	PhoneNumber  string  `json:"phoneNumber"`
	Description  string  `json:"description" gorm:"type:text"`
	PhotoURL     string  `json:"photoURL"`
	OpeningHour  string  `json:"openingHour" gorm:"type:time;default:'09:00'"`
	ClosingHour  string  `json:"closingHour" gorm:"type:time;default:'23:00'"`
	PricePerHour float64 `json:"pricePerHour" gorm:"not null"`
	IsActive     bool    `json:"isActive" gorm:"default:true"`
	Fields       []Field `json:"fields" gorm:"foreignKey:VenueID"`
}

type Field struct {
	gorm.Model
	VenueID      uint    `json:"venueID" gorm:"not null;index"`
	Name         string  `json:"name" gorm:"not null"`
	SurfaceType  string  `json:"surfaceType" gorm:"size:32;default:artificial_turf"` // artificial_turf, natural_grass
	Size         string  `json:"size" gorm:"size:16"`                                // 5v5, 6v6, 7v7, 8v8
	Indoor       bool    `json:"indoor" gorm:"default:false"`
	PricePerHour float64 `json:"pricePerHour"` // 0 means the venue rate applies
}
