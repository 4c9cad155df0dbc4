package mw

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"blog-api/internal/logger"
)

// Guard checks requests against the configured admin credentials.
// Credentials travel as `username:password`, base64-encoded where noted.
type Guard struct {
	username string
	password string
	devMode  bool
}

// NewGuard creates the admin guard. Empty credentials mean the deployment
// has no admin user: access is then granted only in dev mode.
func NewGuard(username, password string, devMode bool) *Guard {
	return &Guard{username: username, password: password, devMode: devMode}
}

// HasAccess reports whether the request carries valid admin credentials.
// Accepted forms, in priority order:
//
//  1. `token` query parameter: base64("username:password")
//  2. `username` and `password` query parameters, plaintext
//  3. `Authorization: Basic <b64>` or `Authorization: Bearer <b64>` header
//     (the browser extension sends the admin token as a bearer credential)
func (g *Guard) HasAccess(r *http.Request) bool {
	if g.username == "" && g.password == "" {
		return g.devMode
	}

	q := r.URL.Query()
	if token := q.Get("token"); token != "" {
		return g.matchEncoded(token)
	}
	if user := q.Get("username"); user != "" || q.Get("password") != "" {
		return g.match(user, q.Get("password"))
	}

	header := r.Header.Get("Authorization")
	for _, scheme := range []string{"Basic ", "Bearer "} {
		if strings.HasPrefix(header, scheme) {
			return g.matchEncoded(strings.TrimSpace(header[len(scheme):]))
		}
	}

	return false
}

func (g *Guard) matchEncoded(token string) bool {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return false
	}
	user, pass, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return false
	}
	return g.match(user, pass)
}

func (g *Guard) match(user, pass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(g.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(g.password)) == 1
	return userOK && passOK
}

// RequireAdmin rejects requests that fail the guard with a 401 envelope.
func RequireAdmin(g *Guard, loggerClient logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !g.HasAccess(r) {
				loggerClient.Warn("admin access denied",
					logger.String("path", r.URL.Path),
					logger.String("remote_ip", r.RemoteAddr))
				writeErrorEnvelope(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
