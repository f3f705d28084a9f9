package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"grokmemehub/app/models"
	"grokmemehub/app/repo"

	"gorm.io/gorm"
)

// Categories is the closed set a meme may be filed under. Part of the
// external contract; callers validate against exactly these values.
var Categories = []string{"AI", "Grok", "xAI", "Futuristic"}

// MaxCaptionLen caps captions at tweet length, counted in characters.
const MaxCaptionLen = 140

func ValidCategory(c string) bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

type MemeService struct{ memes *repo.MemeRepository }

func NewMemeService(memes *repo.MemeRepository) *MemeService {
	return &MemeService{memes: memes}
}

type CreateMemeInput struct {
	Title      string
	Caption    string
	ImageURL   string
	Category   string
	UploaderID uint
}

func (s *MemeService) Create(in CreateMemeInput) (*models.Meme, error) {
	if in.Title == "" || in.Caption == "" {
		return nil, invalid("Title and caption are required")
	}
	if utf8.RuneCountInString(in.Caption) > MaxCaptionLen {
		return nil, invalid("Caption must be 140 characters or less")
	}
	if !ValidCategory(in.Category) {
		return nil, invalid("Invalid category")
	}
	if in.ImageURL == "" {
		return nil, invalid("Image is required")
	}
	m := &models.Meme{
		Title:      strings.TrimSpace(in.Title),
		Caption:    strings.TrimSpace(in.Caption),
		ImageURL:   in.ImageURL,
		Category:   in.Category,
		UploaderID: in.UploaderID,
	}
	if err := s.memes.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateMemeInput carries a partial update; empty fields are left unchanged.
type UpdateMemeInput struct {
	Title    string
	Caption  string
	Category string
}

// Update mutates a meme the caller owns. Ownership and existence are one
// predicate, so callers cannot tell someone else's meme from a missing one.
func (s *MemeService) Update(id, userID uint, in UpdateMemeInput) error {
	if _, err := s.memes.FindOwned(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFoundOrUnauthorized
		}
		return err
	}

	if in.Caption != "" && utf8.RuneCountInString(in.Caption) > MaxCaptionLen {
		return invalid("Caption must be 140 characters or less")
	}
	if in.Category != "" && !ValidCategory(in.Category) {
		return invalid("Invalid category")
	}

	updates := make(map[string]any)
	if in.Title != "" {
		updates["title"] = strings.TrimSpace(in.Title)
	}
	if in.Caption != "" {
		updates["caption"] = strings.TrimSpace(in.Caption)
	}
	if in.Category != "" {
		updates["category"] = in.Category
	}
	if len(updates) == 0 {
		return invalid("No fields to update")
	}
	return s.memes.UpdateOwned(id, userID, updates)
}

// Delete removes an owned meme together with its reactions.
func (s *MemeService) Delete(id, userID uint) error {
	if _, err := s.memes.FindOwned(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFoundOrUnauthorized
		}
		return err
	}
	return s.memes.DeleteWithReactions(id)
}
