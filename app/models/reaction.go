package models

import "time"

// Reaction holds a single user's reaction to a single meme. The composite
// unique index is what makes the reaction upsert race-safe: a second row for
// the same (meme, user) pair cannot exist, concurrent inserts included. The
// cascading foreign keys keep a reaction from outliving its meme or user
// even when the insert races a delete.
type Reaction struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	MemeID       uint      `gorm:"not null;uniqueIndex:idx_reactions_meme_user" json:"meme_id"`
	Meme         *Meme     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_reactions_meme_user" json:"user_id"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ReactionType string    `gorm:"size:16;not null" json:"reaction_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReactionWithUser is a reaction row joined with the reacting user's name,
// as returned by the per-meme reaction listing.
type ReactionWithUser struct {
	ID           uint      `json:"id"`
	MemeID       uint      `json:"meme_id"`
	UserID       uint      `json:"user_id"`
	ReactionType string    `json:"reaction_type"`
	CreatedAt    time.Time `json:"created_at"`
	Username     string    `json:"username"`
}
