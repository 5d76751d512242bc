package index

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category classifies a report file for display, independent of the bucket
// it lives in. Priority drives within-bucket ordering.
type Category struct {
	Label    string
	CSSClass string
	Priority int
}

var (
	categoryHeatmap   = Category{Label: "Heatmap", CSSClass: "type-heatmap", Priority: 0}
	categoryItems     = Category{Label: "Items", CSSClass: "type-dashboard", Priority: 1}
	categoryLocations = Category{Label: "Locations", CSSClass: "type-stats", Priority: 2}
	categoryView      = Category{Label: "View", CSSClass: "type-other", Priority: 3}
)

// CategoryOf matches known substrings in the file name, case-insensitive.
// Names matching nothing get the generic View category.
func CategoryOf(filename string) Category {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "-heatmap"):
		return categoryHeatmap
	case strings.Contains(name, "-items"):
		return categoryItems
	case strings.Contains(name, "-locations"):
		return categoryLocations
	default:
		return categoryView
	}
}

// DisplayName derives the human-readable name shown on a file card. Known
// category substrings map to fixed labels; everything else is title-cased
// from the file stem.
func DisplayName(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	folded := strings.ToLower(stem)
	switch {
	case strings.Contains(folded, "-heatmap"):
		return "Overview Heatmap"
	case strings.Contains(folded, "-items"):
		return "By Item"
	case strings.Contains(folded, "-locations"):
		return "By Location"
	}
	return TitleCaseName(stem)
}

// Label resolves a section or subsection key to its display label via the
// configured override table, falling back to title-casing.
func Label(labels map[string]string, key string) string {
	if l, ok := labels[strings.ToLower(key)]; ok && l != "" {
		return l
	}
	return TitleCaseName(key)
}

var nameCleaner = strings.NewReplacer("-", " ", "_", " ")

// TitleCaseName turns a raw directory name or file stem into a display
// label: hyphens and underscores become spaces, each word is title-cased.
func TitleCaseName(name string) string {
	return cases.Title(language.English).String(nameCleaner.Replace(name))
}
