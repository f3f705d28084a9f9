package router

import (
	"net/http"

	"grokmemehub/app/controllers"
	"grokmemehub/app/middleware"
)

// NewRouter builds the route table. Auth-only endpoints are wrapped with the
// bearer-token middleware; login and register additionally pass through the
// rate limiter. The whole mux is served behind CORS for browser callers.
func NewRouter(
	healthCtrl *controllers.HealthController,
	authCtrl *controllers.AuthController,
	memeCtrl *controllers.MemeController,
	reactionCtrl *controllers.ReactionController,
	mw *middleware.Auth,
	rl *middleware.RateLimiter,
	uploadsDir string,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", healthCtrl.Health)

	// auth
	mux.Handle("POST /api/auth/register", rl.Limit(http.HandlerFunc(authCtrl.Register)))
	mux.Handle("POST /api/auth/login", rl.Limit(http.HandlerFunc(authCtrl.Login)))
	mux.Handle("PUT /api/auth/location", mw.RequireAuth(http.HandlerFunc(authCtrl.UpdateLocation)))
	mux.Handle("GET /api/auth/me", mw.RequireAuth(http.HandlerFunc(authCtrl.Me)))

	// feeds
	mux.HandleFunc("GET /api/memes", memeCtrl.List)
	mux.HandleFunc("GET /api/memes/trending", memeCtrl.Trending)
	mux.Handle("GET /api/memes/nearby", mw.RequireAuth(http.HandlerFunc(memeCtrl.Nearby)))
	mux.Handle("GET /api/memes/mine", mw.RequireAuth(http.HandlerFunc(memeCtrl.Mine)))

	// meme mutation
	mux.Handle("POST /api/memes", mw.RequireAuth(http.HandlerFunc(memeCtrl.Create)))
	mux.Handle("PUT /api/memes/{id}", mw.RequireAuth(http.HandlerFunc(memeCtrl.Update)))
	mux.Handle("DELETE /api/memes/{id}", mw.RequireAuth(http.HandlerFunc(memeCtrl.Delete)))

	// reactions
	mux.HandleFunc("GET /api/memes/{id}/reactions", reactionCtrl.List)
	mux.Handle("POST /api/memes/{id}/reactions", mw.RequireAuth(http.HandlerFunc(reactionCtrl.Upsert)))
	mux.Handle("PUT /api/memes/reactions/{id}", mw.RequireAuth(http.HandlerFunc(reactionCtrl.Update)))
	mux.Handle("DELETE /api/memes/reactions/{id}", mw.RequireAuth(http.HandlerFunc(reactionCtrl.Delete)))

	// uploaded images
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	// everything else
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Route not found"}`))
	})

	return middleware.CORS(mux)
}
