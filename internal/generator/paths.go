package generator

import (
	"path"
	"path/filepath"
	"strings"
)

const listingOutputPath = "blog/index.html"

// outputPath maps an article slug to its pretty-URL output file.
func outputPath(slug string) string {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		return listingOutputPath
	}
	return path.Join("blog", slug, "index.html")
}

func routeFor(slug string) string {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		return "/blog"
	}
	return "/blog/" + slug
}

func detectAssetContentType(asset string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(asset), "."))
	switch ext {
	case "css":
		return "text/css"
	case "js":
		return "application/javascript"
	case "json":
		return "application/json"
	case "svg":
		return "image/svg+xml"
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "ico":
		return "image/x-icon"
	case "woff2":
		return "font/woff2"
	default:
		return "application/octet-stream"
	}
}
