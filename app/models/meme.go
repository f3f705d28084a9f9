package models

import "time"

type Meme struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Caption    string    `gorm:"size:140;not null" json:"caption"`
	ImageURL   string    `gorm:"size:512;not null" json:"image_url"`
	Category   string    `gorm:"size:32;not null;index" json:"category"`
	UploaderID uint      `gorm:"index;not null" json:"uploader_id"`
	Uploader   *User     `gorm:"foreignKey:UploaderID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}

// FeedMeme is a meme row annotated with the aggregates the feed queries
// compute: the uploader's username and the distinct reaction count.
type FeedMeme struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Caption          string    `json:"caption"`
	ImageURL         string    `json:"image_url"`
	Category         string    `json:"category"`
	UploaderID       uint      `json:"uploader_id"`
	CreatedAt        time.Time `json:"created_at"`
	UploaderUsername string    `json:"uploader_username"`
	ReactionCount    int64     `json:"reaction_count"`
}

// LocatedFeedMeme additionally carries the uploader's stored coordinates.
// Only memes whose uploader has a location are ever fetched in this shape.
type LocatedFeedMeme struct {
	FeedMeme
	LocationLat  float64 `json:"location_lat"`
	LocationLong float64 `json:"location_long"`
}
