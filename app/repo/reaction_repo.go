package repo

import (
	"errors"

	"grokmemehub/app/models"

	"gorm.io/gorm"
)

type ReactionRepository struct{ db *gorm.DB }

func NewReactionRepository(db *gorm.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// Upsert inserts the reaction, or updates the stored type in place when the
// (meme, user) pair already has one. The insert is attempted first and the
// unique index arbitrates: a concurrent insert for the same pair surfaces as
// a duplicate-key error and falls through to the update, so two rows can
// never exist. Returns true when a new row was created.
func (r *ReactionRepository) Upsert(re *models.Reaction) (bool, error) {
	err := r.db.Create(re).Error
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, err
	}
	err = r.db.Model(&models.Reaction{}).
		Where("meme_id = ? AND user_id = ?", re.MemeID, re.UserID).
		Update("reaction_type", re.ReactionType).Error
	return false, err
}

// FindOwned looks a reaction up by id and owner in one predicate.
func (r *ReactionRepository) FindOwned(id, userID uint) (*models.Reaction, error) {
	var re models.Reaction
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&re).Error; err != nil {
		return nil, err
	}
	return &re, nil
}

func (r *ReactionRepository) UpdateType(id uint, reactionType string) error {
	return r.db.Model(&models.Reaction{}).Where("id = ?", id).
		Update("reaction_type", reactionType).Error
}

func (r *ReactionRepository) Delete(id uint) error {
	return r.db.Delete(&models.Reaction{}, id).Error
}

func (r *ReactionRepository) ListByMeme(memeID uint) ([]models.ReactionWithUser, error) {
	var reactions []models.ReactionWithUser
	err := r.db.Model(&models.Reaction{}).
		Select("reactions.*, users.username").
		Joins("LEFT JOIN users ON users.id = reactions.user_id").
		Where("reactions.meme_id = ?", memeID).
		Order("reactions.created_at DESC").
		Scan(&reactions).Error
	return reactions, err
}
