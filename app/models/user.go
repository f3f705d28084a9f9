package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:191;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	LocationLat  *float64  `json:"location_lat"`
	LocationLong *float64  `json:"location_long"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

// HasLocation reports whether both coordinates are stored. They are only
// ever written as a pair, but rows predating a location update have neither.
func (u *User) HasLocation() bool {
	return u.LocationLat != nil && u.LocationLong != nil
}
