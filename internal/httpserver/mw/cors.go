package mw

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the blog frontend and the browser extension to call the API.
// An empty origin list is permissive: credentials ride in headers or query
// params, never cookies, so any-origin is acceptable here.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
			http.MethodHead,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	})
	return c.Handler
}
