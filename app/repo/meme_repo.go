package repo

import (
	"grokmemehub/app/models"

	"gorm.io/gorm"
)

type MemeRepository struct{ db *gorm.DB }

func NewMemeRepository(db *gorm.DB) *MemeRepository { return &MemeRepository{db: db} }

// FeedFilter narrows the annotated feed query. Zero values mean "no filter";
// Trending switches the order from pure recency to reaction count first.
type FeedFilter struct {
	Search   string
	Category string
	Trending bool
	Limit    int
}

func (r *MemeRepository) feedQuery() *gorm.DB {
	return r.db.Model(&models.Meme{}).
		Select("memes.*, users.username AS uploader_username, COUNT(DISTINCT reactions.id) AS reaction_count").
		Joins("LEFT JOIN users ON users.id = memes.uploader_id").
		Joins("LEFT JOIN reactions ON reactions.meme_id = memes.id").
		Group("memes.id")
}

// Feed returns one annotated row per meme matching the filter. Search and
// category are conjunctive; LIKE keeps the store's case-insensitive match.
func (r *MemeRepository) Feed(f FeedFilter) ([]models.FeedMeme, error) {
	q := r.feedQuery()
	if f.Search != "" {
		term := "%" + f.Search + "%"
		q = q.Where("(memes.title LIKE ? OR memes.caption LIKE ?)", term, term)
	}
	if f.Category != "" {
		q = q.Where("memes.category = ?", f.Category)
	}
	if f.Trending {
		q = q.Order("reaction_count DESC, memes.created_at DESC")
	} else {
		q = q.Order("memes.created_at DESC")
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var memes []models.FeedMeme
	err := q.Scan(&memes).Error
	return memes, err
}

// ByUploader returns the uploader's own memes, most recent first.
func (r *MemeRepository) ByUploader(uploaderID uint) ([]models.FeedMeme, error) {
	var memes []models.FeedMeme
	err := r.feedQuery().
		Where("memes.uploader_id = ?", uploaderID).
		Order("memes.created_at DESC").
		Scan(&memes).Error
	return memes, err
}

// Located returns every annotated meme whose uploader has stored
// coordinates, for distance filtering in the caller. Full scan by contract.
func (r *MemeRepository) Located() ([]models.LocatedFeedMeme, error) {
	var memes []models.LocatedFeedMeme
	err := r.db.Model(&models.Meme{}).
		Select("memes.*, users.username AS uploader_username, users.location_lat, users.location_long, COUNT(DISTINCT reactions.id) AS reaction_count").
		Joins("LEFT JOIN users ON users.id = memes.uploader_id").
		Joins("LEFT JOIN reactions ON reactions.meme_id = memes.id").
		Where("users.location_lat IS NOT NULL AND users.location_long IS NOT NULL").
		Group("memes.id").
		Scan(&memes).Error
	return memes, err
}

func (r *MemeRepository) Create(m *models.Meme) error { return r.db.Create(m).Error }

func (r *MemeRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Meme{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// FindOwned looks a meme up by id and uploader in one predicate, so
// "missing" and "not yours" are indistinguishable to the caller.
func (r *MemeRepository) FindOwned(id, uploaderID uint) (*models.Meme, error) {
	var m models.Meme
	if err := r.db.Where("id = ? AND uploader_id = ?", id, uploaderID).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateOwned keeps the owner in the write predicate itself, so the update
// cannot land on a meme that changed hands after the read.
func (r *MemeRepository) UpdateOwned(id, uploaderID uint, updates map[string]any) error {
	return r.db.Model(&models.Meme{}).
		Where("id = ? AND uploader_id = ?", id, uploaderID).
		Updates(updates).Error
}

// DeleteWithReactions removes a meme and all reactions referencing it as one
// transaction, so no orphan reaction is ever observable.
func (r *MemeRepository) DeleteWithReactions(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meme_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Meme{}, id).Error
	})
}
