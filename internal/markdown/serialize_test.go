package markdown

import (
	"strings"
	"testing"
)

func TestMetadataRoundTrip(t *testing.T) {
	source := []byte(`---
title: Round Trip
description: Survives re-serialization
date: 2024-09-25
published: true
authors:
  - bucketbyte
  - guest
tags:
  - go
  - blog
project: bucketbyte
---

Body content stays put.
`)

	meta, body, err := ParseMetadata("round-trip.md", source)
	if err != nil {
		t.Fatalf("expected first parse to succeed, got %v", err)
	}

	recomposed, err := ComposeDocument(meta, body)
	if err != nil {
		t.Fatalf("expected compose to succeed, got %v", err)
	}

	again, body2, err := ParseMetadata("round-trip.md", recomposed)
	if err != nil {
		t.Fatalf("expected re-parse to succeed, got %v", err)
	}

	if again.Title != meta.Title {
		t.Fatalf("title changed: %q vs %q", again.Title, meta.Title)
	}
	if again.Description != meta.Description {
		t.Fatalf("description changed: %q vs %q", again.Description, meta.Description)
	}
	if !again.Date.Equal(meta.Date) {
		t.Fatalf("date changed: %v vs %v", again.Date, meta.Date)
	}
	if again.Published != meta.Published {
		t.Fatalf("published changed: %v vs %v", again.Published, meta.Published)
	}
	if len(again.Authors) != 2 || again.Authors[0] != "bucketbyte" || again.Authors[1] != "guest" {
		t.Fatalf("authors changed: %v", again.Authors)
	}
	if len(again.Tags) != 2 || again.Tags[0] != "go" || again.Tags[1] != "blog" {
		t.Fatalf("tags changed: %v", again.Tags)
	}
	if again.Custom["project"] != "bucketbyte" {
		t.Fatalf("custom key lost: %v", again.Custom)
	}
	if !strings.Contains(string(body2), "Body content stays put.") {
		t.Fatalf("body changed: %q", body2)
	}
}

func TestSerializeMetadataMergesSingleAuthor(t *testing.T) {
	source := []byte(`---
title: Single Author
date: 2024-09-25
author: bucketbyte
---

Body.
`)

	meta, body, err := ParseMetadata("single.md", source)
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}

	recomposed, err := ComposeDocument(meta, body)
	if err != nil {
		t.Fatalf("expected compose to succeed, got %v", err)
	}

	again, _, err := ParseMetadata("single.md", recomposed)
	if err != nil {
		t.Fatalf("expected re-parse to succeed, got %v", err)
	}
	if len(again.Authors) != 1 || again.Authors[0] != "bucketbyte" {
		t.Fatalf("expected author to survive as authors list, got %v", again.Authors)
	}
}

func TestSerializeMetadataWithoutRawMapping(t *testing.T) {
	meta, _, err := ParseMetadata("seed.md", []byte("---\ntitle: Seed\ndate: 2024-09-25\n---\n\nBody.\n"))
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	meta.Raw = nil

	out, err := SerializeMetadata(meta)
	if err != nil {
		t.Fatalf("expected serialize to succeed, got %v", err)
	}
	front := string(out)
	if !strings.Contains(front, "title: Seed") {
		t.Fatalf("expected title in output, got %q", front)
	}
	if !strings.Contains(front, "published: false") {
		t.Fatalf("expected published flag in output, got %q", front)
	}
}
