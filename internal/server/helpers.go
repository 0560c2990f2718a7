package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-blog/internal/components"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/store"
)

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// mapError folds pipeline failures into the error page taxonomy. Authoring
// mistakes surface as a render failure rather than leaking internals.
func mapError(err error) (int, string, string) {
	if err == nil {
		return http.StatusInternalServerError, "Something Went Wrong", "An unknown error occurred."
	}

	var notFound *store.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, "Not Found", "That article does not exist."
	}
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound, "Not Found", "That article does not exist."
	}

	if errors.Is(err, components.ErrUnresolvedComponent) ||
		errors.Is(err, markdown.ErrMalformedSyntax) ||
		errors.Is(err, markdown.ErrMalformedMetadata) {
		return http.StatusInternalServerError, "Render Failure", "This article could not be rendered."
	}

	return http.StatusInternalServerError, "Something Went Wrong", "An unexpected error occurred."
}
