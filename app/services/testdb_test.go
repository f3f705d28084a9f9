package services

import (
	"fmt"
	"testing"
	"time"

	"grokmemehub/app/models"
	"grokmemehub/app/repo"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory store per test. The pool is pinned to a
// single connection so every statement sees the same :memory: database, and
// foreign keys are switched on so the cascade constraints behave as they do
// under MySQL.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Meme{}, &models.Reaction{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedLocatedUser(t *testing.T, db *gorm.DB, username string, lat, long float64) *models.User {
	t.Helper()
	u := seedUser(t, db, username)
	require.NoError(t, repo.NewUserRepository(db).UpdateLocation(u.ID, lat, long))
	u.LocationLat, u.LocationLong = &lat, &long
	return u
}

func seedMeme(t *testing.T, db *gorm.DB, uploaderID uint, title string, createdAt time.Time) *models.Meme {
	t.Helper()
	m := &models.Meme{
		Title:      title,
		Caption:    "caption for " + title,
		ImageURL:   "https://example.com/" + title + ".png",
		Category:   "AI",
		UploaderID: uploaderID,
		CreatedAt:  createdAt,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func seedReaction(t *testing.T, db *gorm.DB, memeID, userID uint, reactionType string, createdAt time.Time) *models.Reaction {
	t.Helper()
	re := &models.Reaction{MemeID: memeID, UserID: userID, ReactionType: reactionType, CreatedAt: createdAt}
	require.NoError(t, db.Create(re).Error)
	return re
}

func newFeedService(db *gorm.DB) *FeedService {
	return NewFeedService(repo.NewMemeRepository(db), repo.NewUserRepository(db))
}

func newMemeService(db *gorm.DB) *MemeService {
	return NewMemeService(repo.NewMemeRepository(db))
}

func newReactionService(db *gorm.DB) *ReactionService {
	return NewReactionService(repo.NewReactionRepository(db), repo.NewMemeRepository(db))
}
