package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"blog-api/internal/bookmarks"
	"blog-api/internal/httpserver/deps"
)

// ListBookmarks returns one page of saved tweets. Callers without admin
// credentials only ever see the public subset; admins may still request it
// explicitly with public=true.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		params := bookmarks.ListParams{
			Tag:   q.Get("tag"),
			Query: q.Get("q"),
		}
		if page, err := strconv.Atoi(q.Get("page")); err == nil {
			params.Page = page
		}
		if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
			params.Limit = limit
		}

		isAdmin := d.Guard.HasAccess(r)
		params.PublicOnly = !isAdmin || q.Get("public") == "true"

		result, err := d.Bookmarks.ListTweets(r.Context(), params)
		if err != nil {
			respondDomainError(w, d.Logger, err)
			return
		}

		respond(w, http.StatusOK, result)
	}
}

// CreateBookmark saves a tweet from its status URL.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input bookmarks.SaveTweetInput
		if err := decodeJSON(r, &input); err != nil {
			respondDomainError(w, d.Logger, err)
			return
		}

		saved, err := d.Bookmarks.SaveTweet(r.Context(), input)
		if err != nil {
			respondDomainError(w, d.Logger, err)
			return
		}

		respond(w, http.StatusCreated, saved)
	}
}

// GetBookmark returns one saved tweet. Private records require admin
// credentials; to a caller without them a private record does not exist.
func GetBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		bookmark, err := d.Bookmarks.GetTweet(r.Context(), id)
		if err != nil {
			respondDomainError(w, d.Logger, err)
			return
		}

		if !bookmark.IsPublic && !d.Guard.HasAccess(r) {
			respondError(w, http.StatusNotFound, "not found")
			return
		}

		respond(w, http.StatusOK, bookmark)
	}
}

// UpdateBookmark applies a partial update to tags, notes or visibility.
func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var input bookmarks.UpdateTweetInput
		if err := decodeJSON(r, &input); err != nil {
			respondDomainError(w, d.Logger, err)
			return
		}

		updated, err := d.Bookmarks.UpdateTweet(r.Context(), id, input)
		if err != nil {
			respondDomainError(w, d.Logger, err)
			return
		}

		respond(w, http.StatusOK, updated)
	}
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

// DeleteBookmark removes a saved tweet. Deleting an unknown id reports
// deleted=false rather than erroring.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		existed, err := d.Bookmarks.DeleteTweet(r.Context(), id)
		if err != nil {
			respondDomainError(w, d.Logger, err)
			return
		}

		respond(w, http.StatusOK, deleteResponse{Deleted: existed})
	}
}

type tagsResponse struct {
	Tags []string `json:"tags"`
}

// BookmarkTags returns the sorted union of tags across all saved tweets.
func BookmarkTags(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := d.Bookmarks.AllTags(r.Context())
		if err != nil {
			respondDomainError(w, d.Logger, err)
			return
		}

		respond(w, http.StatusOK, tagsResponse{Tags: tags})
	}
}

// ExportBookmarks dumps every saved tweet as JSON (default) or Markdown.
func ExportBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := d.Bookmarks.ExportAll(r.Context())
		if err != nil {
			respondDomainError(w, d.Logger, err)
			return
		}

		now := d.TimeNow()
		switch format := r.URL.Query().Get("format"); format {
		case "", "json":
			respond(w, http.StatusOK, bookmarks.NewExportEnvelope(all, now))
		case "markdown":
			w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="bookmarks.md"`)
			_, _ = w.Write([]byte(bookmarks.RenderMarkdown(all, now)))
		default:
			respondError(w, http.StatusBadRequest, "unsupported export format: "+format)
		}
	}
}
