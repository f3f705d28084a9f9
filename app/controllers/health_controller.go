package controllers

import (
	"net/http"
	"time"
)

type HealthController struct{}

func NewHealthController() *HealthController { return &HealthController{} }

func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"message":   "GrokMemeHub API is running!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
