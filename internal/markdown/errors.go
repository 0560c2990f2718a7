package markdown

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedMetadata marks documents whose front matter cannot be decoded or
// fails validation. Callers match it with errors.Is.
var ErrMalformedMetadata = errors.New("malformed metadata")

// ErrMalformedSyntax marks documents whose body cannot be rendered.
var ErrMalformedSyntax = errors.New("malformed syntax")

// MetadataError describes why a document's front matter was rejected,
// including the offending source path when known.
type MetadataError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MetadataError) Error() string {
	parts := make([]string, 0, 3)
	parts = append(parts, "malformed metadata")
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *MetadataError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrMalformedMetadata
}

// Is lets errors.Is treat every MetadataError as ErrMalformedMetadata.
func (e *MetadataError) Is(target error) bool {
	return target == ErrMalformedMetadata
}

// SyntaxError describes a body that the rendering engine rejected.
type SyntaxError struct {
	Path string
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed syntax: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("malformed syntax: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Is lets errors.Is treat every SyntaxError as ErrMalformedSyntax.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrMalformedSyntax
}
