package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"grokmemehub/app/dto"
	"grokmemehub/app/middleware"
	"grokmemehub/app/services"
	"grokmemehub/global"
)

type ReactionController struct{ Reactions *services.ReactionService }

func NewReactionController(reactions *services.ReactionService) *ReactionController {
	return &ReactionController{Reactions: reactions}
}

// Upsert POST /api/memes/{id}/reactions
func (c *ReactionController) Upsert(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	memeID, ok := pathID(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Invalid meme id")
		return
	}
	var req dto.ReactionRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	res, err := c.Reactions.Upsert(memeID, claims.UserID, req.ReactionType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrNotFound):
			writeJSONError(w, http.StatusNotFound, "Meme not found")
		default:
			global.Logger.Error().Err(err).Uint("meme", memeID).Uint("user", claims.UserID).Msg("failed to add reaction")
			writeJSONError(w, http.StatusInternalServerError, "Failed to add reaction")
		}
		return
	}
	if !res.Created {
		writeJSON(w, http.StatusOK, dto.ReactionResponse{Message: "Reaction updated successfully"})
		return
	}
	writeJSON(w, http.StatusCreated, dto.ReactionResponse{Message: "Reaction added successfully", Reaction: res.Reaction})
}

// Update PUT /api/memes/reactions/{id}
func (c *ReactionController) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Invalid reaction id")
		return
	}
	var req dto.ReactionRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if err := c.Reactions.Update(id, claims.UserID, req.ReactionType); err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrNotFoundOrUnauthorized):
			writeJSONError(w, http.StatusNotFound, "Reaction not found or unauthorized")
		default:
			global.Logger.Error().Err(err).Uint("reaction", id).Msg("failed to update reaction")
			writeJSONError(w, http.StatusInternalServerError, "Failed to update reaction")
		}
		return
	}
	writeJSON(w, http.StatusOK, dto.ReactionResponse{Message: "Reaction updated successfully"})
}

// Delete DELETE /api/memes/reactions/{id}
func (c *ReactionController) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Invalid reaction id")
		return
	}
	if err := c.Reactions.Delete(id, claims.UserID); err != nil {
		if errors.Is(err, services.ErrNotFoundOrUnauthorized) {
			writeJSONError(w, http.StatusNotFound, "Reaction not found or unauthorized")
			return
		}
		global.Logger.Error().Err(err).Uint("reaction", id).Msg("failed to delete reaction")
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete reaction")
		return
	}
	writeJSON(w, http.StatusOK, dto.ReactionResponse{Message: "Reaction deleted successfully"})
}

// List GET /api/memes/{id}/reactions
func (c *ReactionController) List(w http.ResponseWriter, r *http.Request) {
	memeID, ok := pathID(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Invalid meme id")
		return
	}
	reactions, counts, err := c.Reactions.List(memeID)
	if err != nil {
		global.Logger.Error().Err(err).Uint("meme", memeID).Msg("failed to list reactions")
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch reactions")
		return
	}
	writeJSON(w, http.StatusOK, dto.ReactionListResponse{Reactions: reactions, Counts: counts})
}
