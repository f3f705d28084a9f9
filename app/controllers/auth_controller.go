package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"grokmemehub/app/dto"
	jwtutil "grokmemehub/app/jwt"
	"grokmemehub/app/middleware"
	"grokmemehub/app/services"
	"grokmemehub/global"
)

type AuthController struct {
	Users  *services.UserService
	Signer *jwtutil.Signer
}

func NewAuthController(users *services.UserService, signer *jwtutil.Signer) *AuthController {
	return &AuthController{Users: users, Signer: signer}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	u, err := c.Users.Register(req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrDuplicateUser):
			writeJSONError(w, http.StatusConflict, "Username or email already exists")
		default:
			global.Logger.Error().Err(err).Msg("registration failed")
			writeJSONError(w, http.StatusInternalServerError, "Registration failed")
		}
		return
	}
	token, err := c.Signer.Sign(u.ID, u.Username, u.Email)
	if err != nil {
		global.Logger.Error().Err(err).Uint("user", u.ID).Msg("token signing failed")
		writeJSONError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	writeJSON(w, http.StatusCreated, dto.AuthResponse{Message: "User registered successfully", Token: token, User: u})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Email == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	u, err := c.Users.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeJSONError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		global.Logger.Error().Err(err).Msg("login failed")
		writeJSONError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	token, err := c.Signer.Sign(u.ID, u.Username, u.Email)
	if err != nil {
		global.Logger.Error().Err(err).Uint("user", u.ID).Msg("token signing failed")
		writeJSONError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	writeJSON(w, http.StatusOK, dto.AuthResponse{Message: "Login successful", Token: token, User: u})
}

func (c *AuthController) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	var req dto.LocationRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Latitude == nil || req.Longitude == nil {
		writeJSONError(w, http.StatusBadRequest, "Latitude and longitude are required")
		return
	}
	if err := c.Users.UpdateLocation(claims.UserID, *req.Latitude, *req.Longitude); err != nil {
		if errors.Is(err, services.ErrValidation) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		global.Logger.Error().Err(err).Uint("user", claims.UserID).Msg("location update failed")
		writeJSONError(w, http.StatusInternalServerError, "Failed to update location")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Location updated successfully",
		"location": map[string]float64{"latitude": *req.Latitude, "longitude": *req.Longitude},
	})
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	u, err := c.Users.Get(claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "User not found")
			return
		}
		global.Logger.Error().Err(err).Uint("user", claims.UserID).Msg("failed to load user")
		writeJSONError(w, http.StatusInternalServerError, "Failed to get user info")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}
