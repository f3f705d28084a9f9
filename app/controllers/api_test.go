package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"grokmemehub/app/controllers"
	jwtutil "grokmemehub/app/jwt"
	"grokmemehub/app/middleware"
	"grokmemehub/app/models"
	"grokmemehub/app/repo"
	"grokmemehub/app/services"
	"grokmemehub/app/upload"
	"grokmemehub/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Meme{}, &models.Reaction{}))

	userRepo := repo.NewUserRepository(db)
	memeRepo := repo.NewMemeRepository(db)
	reactionRepo := repo.NewReactionRepository(db)

	signer := &jwtutil.Signer{Secret: []byte("test-secret"), Issuer: "test", ExpMin: 60}
	uploads, err := upload.NewStore(t.TempDir())
	require.NoError(t, err)

	return router.NewRouter(
		controllers.NewHealthController(),
		controllers.NewAuthController(services.NewUserService(userRepo), signer),
		controllers.NewMemeController(services.NewFeedService(memeRepo, userRepo), services.NewMemeService(memeRepo), uploads),
		controllers.NewReactionController(services.NewReactionService(reactionRepo, memeRepo)),
		&middleware.Auth{Signer: signer},
		middleware.NewRateLimiter(nil, time.Minute, 10),
		uploads.Dir(),
	)
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func registerUser(t *testing.T, h http.Handler, username string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	token, _ := decode(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createMeme(t *testing.T, h http.Handler, token, title string) uint {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/memes", token, map[string]string{
		"title":     title,
		"caption":   "a caption",
		"category":  "AI",
		"image_url": "https://example.com/x.png",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	meme := decode(t, rec)["meme"].(map[string]any)
	return uint(meme["id"].(float64))
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", decode(t, rec)["status"])
}

func TestUnknownRoute(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	h := newTestServer(t)
	registerUser(t, h, "alice")

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "bob", "email": "bob@example.com", "password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	h := newTestServer(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/memes"},
		{http.MethodGet, "/api/memes/mine"},
		{http.MethodGet, "/api/memes/nearby"},
		{http.MethodPut, "/api/auth/location"},
		{http.MethodPost, "/api/memes/1/reactions"},
	} {
		rec := doJSON(t, h, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestMemeLifecycle(t *testing.T) {
	h := newTestServer(t)
	alice := registerUser(t, h, "alice")
	bob := registerUser(t, h, "bob")
	memeID := createMeme(t, h, alice, "hello")
	memePath := fmt.Sprintf("/api/memes/%d", memeID)

	// Appears in the public feed with its annotations.
	rec := doJSON(t, h, http.MethodGet, "/api/memes", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	feed := decode(t, rec)
	assert.EqualValues(t, 1, feed["count"])

	// Someone else cannot touch it, and learns nothing from the attempt.
	rec = doJSON(t, h, http.MethodPut, memePath, bob, map[string]string{"title": "stolen"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doJSON(t, h, http.MethodDelete, memePath, bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPut, memePath, alice, map[string]string{"caption": "updated"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPut, memePath, alice, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "no fields to update")

	rec = doJSON(t, h, http.MethodDelete, memePath, alice, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/memes", "", nil)
	assert.EqualValues(t, 0, decode(t, rec)["count"])
}

func TestReactionEndpoints(t *testing.T) {
	h := newTestServer(t)
	alice := registerUser(t, h, "alice")
	bob := registerUser(t, h, "bob")
	createMeme(t, h, alice, "hello")

	rec := doJSON(t, h, http.MethodPost, "/api/memes/1/reactions", bob, map[string]string{"reaction_type": "laugh"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Second reaction from the same user retypes instead of stacking.
	rec = doJSON(t, h, http.MethodPost, "/api/memes/1/reactions", bob, map[string]string{"reaction_type": "robot"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/memes/1/reactions", bob, map[string]string{"reaction_type": "shrug"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/memes/99/reactions", bob, map[string]string{"reaction_type": "laugh"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/memes/1/reactions", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	counts := body["counts"].(map[string]any)
	assert.EqualValues(t, 1, counts["total"])
	assert.EqualValues(t, 1, counts["robot"])
	assert.EqualValues(t, 0, counts["laugh"])

	// Only the reactor can retype or remove their reaction.
	rec = doJSON(t, h, http.MethodPut, "/api/memes/reactions/1", alice, map[string]string{"reaction_type": "think"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doJSON(t, h, http.MethodDelete, "/api/memes/reactions/1", bob, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLocationAndNearby(t *testing.T) {
	h := newTestServer(t)
	alice := registerUser(t, h, "alice")
	bob := registerUser(t, h, "bob")
	createMeme(t, h, bob, "bobs meme")

	rec := doJSON(t, h, http.MethodGet, "/api/memes/nearby", alice, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "no stored location yet")

	rec = doJSON(t, h, http.MethodPut, "/api/auth/location", alice, map[string]float64{"latitude": 91, "longitude": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/api/auth/location", alice, map[string]float64{"latitude": 0, "longitude": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, h, http.MethodPut, "/api/auth/location", bob, map[string]float64{"latitude": 0, "longitude": 0.01})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/memes/nearby", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["count"])

	rec = doJSON(t, h, http.MethodGet, "/api/memes/nearby?radius=0.5", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decode(t, rec)["count"])
}

func TestCORSHeaders(t *testing.T) {
	h := newTestServer(t)

	// Preflight for a state-changing cross-origin call.
	req := httptest.NewRequest(http.MethodOptions, "/api/memes", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)

	// Plain cross-origin read.
	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMeEndpoint(t *testing.T) {
	h := newTestServer(t)
	alice := registerUser(t, h, "alice")

	rec := doJSON(t, h, http.MethodGet, "/api/auth/me", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode(t, rec)["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	_, leaked := user["password_hash"]
	assert.False(t, leaked)
}
