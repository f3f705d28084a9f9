package dto

import "grokmemehub/app/models"

type CreateMemeRequest struct {
	Title    string `json:"title"`
	Caption  string `json:"caption"`
	Category string `json:"category"`
	ImageURL string `json:"image_url"`
}

type UpdateMemeRequest struct {
	Title    string `json:"title"`
	Caption  string `json:"caption"`
	Category string `json:"category"`
}

type FeedResponse struct {
	Memes []models.FeedMeme `json:"memes"`
	Count int               `json:"count"`
}

type LocatedFeedResponse struct {
	Memes []models.LocatedFeedMeme `json:"memes"`
	Count int                      `json:"count"`
}
