package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS opens the API to browser frontends on any origin, mirroring the
// permissive defaults the web client was built against. Credentials are not
// allowed; auth travels in the Authorization header.
func CORS(next http.Handler) http.Handler {
	return cors.AllowAll().Handler(next)
}
