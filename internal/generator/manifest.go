package generator

import (
	"sort"
	"time"
)

const manifestPath = "manifest.json"

// buildManifest records what a build produced so deployments can diff outputs.
type buildManifest struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Pages       []manifestPage `json:"pages"`
}

type manifestPage struct {
	Slug       string    `json:"slug"`
	Route      string    `json:"route"`
	Output     string    `json:"output"`
	Checksum   string    `json:"checksum"`
	RenderedAt time.Time `json:"rendered_at"`
}

func newBuildManifest(generatedAt time.Time, pages []RenderedPage) buildManifest {
	manifest := buildManifest{
		GeneratedAt: generatedAt,
		Pages:       make([]manifestPage, 0, len(pages)),
	}
	for _, page := range pages {
		manifest.Pages = append(manifest.Pages, manifestPage{
			Slug:       page.Slug,
			Route:      page.Route,
			Output:     page.Output,
			Checksum:   page.Checksum,
			RenderedAt: generatedAt,
		})
	}
	sort.Slice(manifest.Pages, func(i, j int) bool {
		return manifest.Pages[i].Output < manifest.Pages[j].Output
	})
	return manifest
}
