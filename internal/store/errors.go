package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates a document lookup missed.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicateSlug indicates two source files resolved to the same slug.
	ErrDuplicateSlug = errors.New("store: duplicate slug")
)

// NotFoundError carries the resource type and lookup key so HTTP handlers can
// surface a useful 404 message.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

// Is lets errors.Is treat every NotFoundError as ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DuplicateSlugError reports the slug and every source file claiming it.
type DuplicateSlugError struct {
	Slug  string
	Paths []string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("duplicate slug %q claimed by %s", e.Slug, strings.Join(e.Paths, ", "))
}

// Is lets errors.Is treat every DuplicateSlugError as ErrDuplicateSlug.
func (e *DuplicateSlugError) Is(target error) bool {
	return target == ErrDuplicateSlug
}
