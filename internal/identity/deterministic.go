package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// DocumentUUID derives the identifier for a stored document from its slug.
func DocumentUUID(slug string) uuid.UUID {
	return UUID("go-blog:document:" + strings.ToLower(strings.TrimSpace(slug)))
}

// ComponentDefinitionUUID derives the identifier for a registered component.
func ComponentDefinitionUUID(name string) uuid.UUID {
	return UUID("go-blog:component_definition:" + strings.ToLower(strings.TrimSpace(name)))
}

// ThemeUUID derives the identifier for a loaded theme directory.
func ThemeUUID(themePath string) uuid.UUID {
	return UUID("go-blog:theme:" + strings.TrimSpace(themePath))
}
