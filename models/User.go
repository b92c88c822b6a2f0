package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName           string         `json:"firstName"`
	LastName            string         `json:"lastName"`
	Email               string         `json:"email" gorm:"uniqueIndex"`
	PhoneNumber         string         `json:"phoneNumber"`
	Password            string         `json:"-"`
	AvatarURL           string         `json:"avatarURL"`
	City                string         `json:"city"`
	Position            string         `json:"position"` // goalkeeper, defender, midfielder, forward
	Bio                 string         `json:"bio"`
	Role                string         `json:"role" gorm:"type:varchar(20);default:player;index"` // player, venue_owner, admin, super_admin
	Elo                 int            `json:"elo" gorm:"default:1000"`
	TrustScore          float64        `json:"trustScore" gorm:"default:5"`
	RatingCount         int            `json:"ratingCount" gorm:"default:0"`
	MatchesPlayed       int            `json:"matchesPlayed" gorm:"default:0"`
	PushTokens          datatypes.JSON `json:"pushTokens"`
	AllowsNotifications *bool          `json:"allowsNotifications"`
}

// Custom JSON marshaling so push tokens come out as a plain string slice
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		PushTokens []string `json:"pushTokens,omitempty"`
		*Alias
	}{
		PushTokens: []string{},
		Alias:      (*Alias)(u),
	}

	if u.PushTokens != nil {
		var tokens []string
		if err := json.Unmarshal(u.PushTokens, &tokens); err == nil {
			aux.PushTokens = tokens
		}
	}

	return json.Marshal(aux)
}
