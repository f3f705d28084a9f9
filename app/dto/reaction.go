package dto

import (
	"grokmemehub/app/models"
	"grokmemehub/app/services"
)

type ReactionRequest struct {
	ReactionType string `json:"reaction_type"`
}

type ReactionResponse struct {
	Message  string           `json:"message"`
	Reaction *models.Reaction `json:"reaction,omitempty"`
}

type ReactionListResponse struct {
	Reactions []models.ReactionWithUser `json:"reactions"`
	Counts    services.ReactionCounts   `json:"counts"`
}
