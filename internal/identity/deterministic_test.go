package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsDeterministic(t *testing.T) {
	first := UUID("go-blog:document:hello-world")
	second := UUID("go-blog:document:hello-world")
	if first != second {
		t.Fatalf("expected stable UUID, got %s and %s", first, second)
	}
	if first == uuid.Nil {
		t.Fatal("expected non-nil UUID for non-empty key")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if got := UUID("   "); got != uuid.Nil {
		t.Fatalf("expected uuid.Nil for blank key, got %s", got)
	}
}

func TestDocumentUUIDNormalizesSlug(t *testing.T) {
	if DocumentUUID("Hello-World") != DocumentUUID("  hello-world ") {
		t.Fatal("expected slug normalization to produce identical identifiers")
	}
}

func TestEntityKeysDoNotCollide(t *testing.T) {
	if DocumentUUID("midnight") == ThemeUUID("midnight") {
		t.Fatal("expected distinct identifiers across entity prefixes")
	}
}
