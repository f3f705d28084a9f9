package services

import (
	"errors"

	"grokmemehub/app/geo"
	"grokmemehub/app/models"
	"grokmemehub/app/repo"

	"gorm.io/gorm"
)

const (
	DefaultFeedLimit      = 50
	DefaultTrendingLimit  = 10
	DefaultNearbyRadiusKm = 10
)

// SortTrending orders the feed by reaction count before recency.
const SortTrending = "trending"

type FeedService struct {
	memes *repo.MemeRepository
	users *repo.UserRepository
}

func NewFeedService(memes *repo.MemeRepository, users *repo.UserRepository) *FeedService {
	return &FeedService{memes: memes, users: users}
}

// FeedOptions come straight from query parameters; zero values fall back to
// the documented defaults.
type FeedOptions struct {
	Search   string
	Category string
	Sort     string
	Limit    int
}

// List assembles the main feed: one row per meme with uploader name and
// distinct reaction count, filtered conjunctively by search and category.
func (s *FeedService) List(opts FeedOptions) ([]models.FeedMeme, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return s.memes.Feed(repo.FeedFilter{
		Search:   opts.Search,
		Category: opts.Category,
		Trending: opts.Sort == SortTrending,
		Limit:    limit,
	})
}

// Trending always orders by reaction count then recency, regardless of any
// sort parameter, with its own smaller default limit.
func (s *FeedService) Trending(limit int) ([]models.FeedMeme, error) {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	return s.memes.Feed(repo.FeedFilter{Trending: true, Limit: limit})
}

// Mine returns the caller's own memes, most recent first.
func (s *FeedService) Mine(uploaderID uint) ([]models.FeedMeme, error) {
	return s.memes.ByUploader(uploaderID)
}

// Nearby restricts the feed to memes whose uploader is within radiusKm of
// the caller's stored location. The whole located set is fetched and
// filtered here; points at exactly the radius are included.
func (s *FeedService) Nearby(userID uint, radiusKm float64) ([]models.LocatedFeedMeme, error) {
	if radiusKm <= 0 {
		radiusKm = DefaultNearbyRadiusKm
	}
	u, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !u.HasLocation() {
		return nil, ErrLocationNotSet
	}

	memes, err := s.memes.Located()
	if err != nil {
		return nil, err
	}
	nearby := make([]models.LocatedFeedMeme, 0, len(memes))
	for _, m := range memes {
		d := geo.Distance(*u.LocationLat, *u.LocationLong, m.LocationLat, m.LocationLong)
		if d <= radiusKm {
			nearby = append(nearby, m)
		}
	}
	return nearby, nil
}
