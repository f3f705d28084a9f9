package services

import (
	"errors"

	"grokmemehub/app/models"
	"grokmemehub/app/repo"

	"gorm.io/gorm"
)

// ReactionTypes is the closed set of reactions a user may leave.
var ReactionTypes = []string{"laugh", "robot", "think"}

func ValidReactionType(t string) bool {
	for _, v := range ReactionTypes {
		if t == v {
			return true
		}
	}
	return false
}

type ReactionService struct {
	reactions *repo.ReactionRepository
	memes     *repo.MemeRepository
}

func NewReactionService(reactions *repo.ReactionRepository, memes *repo.MemeRepository) *ReactionService {
	return &ReactionService{reactions: reactions, memes: memes}
}

// UpsertResult reports whether the upsert created a row or retyped the
// user's existing one.
type UpsertResult struct {
	Created  bool
	Reaction *models.Reaction
}

// Upsert records the user's reaction to a meme, at most one per user. A
// repeat reaction changes the stored type rather than adding a row.
func (s *ReactionService) Upsert(memeID, userID uint, reactionType string) (*UpsertResult, error) {
	if !ValidReactionType(reactionType) {
		return nil, invalid("Invalid reaction type")
	}
	exists, err := s.memes.Exists(memeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}
	re := &models.Reaction{MemeID: memeID, UserID: userID, ReactionType: reactionType}
	created, err := s.reactions.Upsert(re)
	if err != nil {
		return nil, err
	}
	return &UpsertResult{Created: created, Reaction: re}, nil
}

func (s *ReactionService) Update(id, userID uint, reactionType string) error {
	if !ValidReactionType(reactionType) {
		return invalid("Invalid reaction type")
	}
	if _, err := s.reactions.FindOwned(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFoundOrUnauthorized
		}
		return err
	}
	return s.reactions.UpdateType(id, reactionType)
}

func (s *ReactionService) Delete(id, userID uint) error {
	if _, err := s.reactions.FindOwned(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFoundOrUnauthorized
		}
		return err
	}
	return s.reactions.Delete(id)
}

// ReactionCounts is a per-type tally over a single meme's reactions.
type ReactionCounts struct {
	Laugh int `json:"laugh"`
	Robot int `json:"robot"`
	Think int `json:"think"`
	Total int `json:"total"`
}

// List returns a meme's reactions, most recent first, with a tally computed
// from the returned rows themselves so the two can never disagree.
func (s *ReactionService) List(memeID uint) ([]models.ReactionWithUser, ReactionCounts, error) {
	reactions, err := s.reactions.ListByMeme(memeID)
	if err != nil {
		return nil, ReactionCounts{}, err
	}
	counts := ReactionCounts{Total: len(reactions)}
	for _, re := range reactions {
		switch re.ReactionType {
		case "laugh":
			counts.Laugh++
		case "robot":
			counts.Robot++
		case "think":
			counts.Think++
		}
	}
	return reactions, counts, nil
}
