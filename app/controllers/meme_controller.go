package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"grokmemehub/app/dto"
	"grokmemehub/app/middleware"
	"grokmemehub/app/services"
	"grokmemehub/app/upload"
	"grokmemehub/global"
)

const maxUploadBytes = 10 << 20

type MemeController struct {
	Feed    *services.FeedService
	Memes   *services.MemeService
	Uploads *upload.Store
}

func NewMemeController(feed *services.FeedService, memes *services.MemeService, uploads *upload.Store) *MemeController {
	return &MemeController{Feed: feed, Memes: memes, Uploads: uploads}
}

// List GET /api/memes?search=&category=&sort=&limit=
func (c *MemeController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	memes, err := c.Feed.List(services.FeedOptions{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
		Limit:    limit,
	})
	if err != nil {
		global.Logger.Error().Err(err).Msg("failed to fetch memes")
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch memes")
		return
	}
	writeJSON(w, http.StatusOK, dto.FeedResponse{Memes: memes, Count: len(memes)})
}

// Trending GET /api/memes/trending?limit=
func (c *MemeController) Trending(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	memes, err := c.Feed.Trending(limit)
	if err != nil {
		global.Logger.Error().Err(err).Msg("failed to fetch trending memes")
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch trending memes")
		return
	}
	writeJSON(w, http.StatusOK, dto.FeedResponse{Memes: memes, Count: len(memes)})
}

// Nearby GET /api/memes/nearby?radius=
func (c *MemeController) Nearby(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	radius, _ := strconv.ParseFloat(r.URL.Query().Get("radius"), 64)
	memes, err := c.Feed.Nearby(claims.UserID, radius)
	if err != nil {
		if errors.Is(err, services.ErrLocationNotSet) {
			writeJSONError(w, http.StatusBadRequest, "User location not set")
			return
		}
		global.Logger.Error().Err(err).Uint("user", claims.UserID).Msg("failed to fetch nearby memes")
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch nearby memes")
		return
	}
	writeJSON(w, http.StatusOK, dto.LocatedFeedResponse{Memes: memes, Count: len(memes)})
}

// Mine GET /api/memes/mine
func (c *MemeController) Mine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	memes, err := c.Feed.Mine(claims.UserID)
	if err != nil {
		global.Logger.Error().Err(err).Uint("user", claims.UserID).Msg("failed to fetch own memes")
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch your memes")
		return
	}
	writeJSON(w, http.StatusOK, dto.FeedResponse{Memes: memes, Count: len(memes)})
}

// Create POST /api/memes — multipart with an "image" file, or JSON with an
// external image_url.
func (c *MemeController) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req dto.CreateMemeRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		req.Title = r.FormValue("title")
		req.Caption = r.FormValue("caption")
		req.Category = r.FormValue("category")
		req.ImageURL = r.FormValue("image_url")
		if file, header, err := r.FormFile("image"); err == nil {
			defer file.Close()
			url, err := c.Uploads.Save(file, header)
			if err != nil {
				global.Logger.Error().Err(err).Msg("failed to store uploaded image")
				writeJSONError(w, http.StatusInternalServerError, "Failed to upload meme")
				return
			}
			req.ImageURL = url
		}
	} else {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	m, err := c.Memes.Create(services.CreateMemeInput{
		Title:      req.Title,
		Caption:    req.Caption,
		ImageURL:   req.ImageURL,
		Category:   req.Category,
		UploaderID: claims.UserID,
	})
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		global.Logger.Error().Err(err).Uint("user", claims.UserID).Msg("failed to create meme")
		writeJSONError(w, http.StatusInternalServerError, "Failed to upload meme")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Meme uploaded successfully", "meme": m})
}

// Update PUT /api/memes/{id}
func (c *MemeController) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Invalid meme id")
		return
	}
	var req dto.UpdateMemeRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	err := c.Memes.Update(id, claims.UserID, services.UpdateMemeInput{
		Title:    req.Title,
		Caption:  req.Caption,
		Category: req.Category,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFoundOrUnauthorized):
			writeJSONError(w, http.StatusNotFound, "Meme not found or unauthorized")
		case errors.Is(err, services.ErrValidation):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		default:
			global.Logger.Error().Err(err).Uint("meme", id).Msg("failed to update meme")
			writeJSONError(w, http.StatusInternalServerError, "Failed to update meme")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Meme updated successfully"})
}

// Delete DELETE /api/memes/{id}
func (c *MemeController) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Invalid meme id")
		return
	}
	if err := c.Memes.Delete(id, claims.UserID); err != nil {
		if errors.Is(err, services.ErrNotFoundOrUnauthorized) {
			writeJSONError(w, http.StatusNotFound, "Meme not found or unauthorized")
			return
		}
		global.Logger.Error().Err(err).Uint("meme", id).Msg("failed to delete meme")
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete meme")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Meme deleted successfully"})
}
