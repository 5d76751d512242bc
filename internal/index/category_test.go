package index

import (
	"testing"

	"git.home.luguber.info/inful/reportindex/internal/config"
)

func TestCategoryOf(t *testing.T) {
	cases := []struct {
		filename string
		label    string
		priority int
	}{
		{"overview-heatmap.html", "Heatmap", 0},
		{"SEED1-ITEMS.HTML", "Items", 1},
		{"all-locations.html", "Locations", 2},
		{"notes.html", "View", 3},
		{"heatmap.html", "View", 3}, // no hyphen prefix, no match
		{"x-items-locations.html", "Items", 1},
	}

	for _, tc := range cases {
		got := CategoryOf(tc.filename)
		if got.Label != tc.label {
			t.Errorf("CategoryOf(%q).Label = %q, want %q", tc.filename, got.Label, tc.label)
		}
		if got.Priority != tc.priority {
			t.Errorf("CategoryOf(%q).Priority = %d, want %d", tc.filename, got.Priority, tc.priority)
		}
	}
}

func TestCategoryCSSClasses(t *testing.T) {
	expected := map[string]string{
		"a-heatmap.html":   "type-heatmap",
		"a-items.html":     "type-dashboard",
		"a-locations.html": "type-stats",
		"a.html":           "type-other",
	}
	for name, css := range expected {
		if got := CategoryOf(name).CSSClass; got != css {
			t.Errorf("CategoryOf(%q).CSSClass = %q, want %q", name, got, css)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"a-heatmap.html", "Overview Heatmap"},
		{"seed1-items.html", "By Item"},
		{"seed1-locations.html", "By Location"},
		{"SEED1-ITEMS.HTML", "By Item"},
		{"notes.html", "Notes"},
		{"multi-word_name.html", "Multi Word Name"},
		{"seed summary.html", "Seed Summary"},
	}

	for _, tc := range cases {
		if got := DisplayName(tc.filename); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.filename, got, tc.want)
		}
	}
}

func TestLabel(t *testing.T) {
	labels := config.Default().Labels

	cases := []struct {
		key  string
		want string
	}{
		{"archipelago", "Archipelago (MultiworldGG)"},
		{"ARCHIPELAGO", "Archipelago (MultiworldGG)"},
		{"single-player", "Single Player (1P)"},
		{"p3", "3-Player: Player 3"},
		{"custom-section", "Custom Section"}, // not in table, title-cased
		{"snake_case_dir", "Snake Case Dir"},
	}

	for _, tc := range cases {
		if got := Label(labels, tc.key); got != tc.want {
			t.Errorf("Label(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestLabelEmptyOverrideFallsBack(t *testing.T) {
	labels := map[string]string{"p1": ""}
	if got := Label(labels, "p1"); got != "P1" {
		t.Errorf("empty override should fall back to title case, got %q", got)
	}
}

func TestHref(t *testing.T) {
	cases := []struct {
		outDir   string
		filePath string
		want     string
	}{
		{"/srv/reports", "/srv/reports/a.html", "a.html"},
		{"/srv/reports", "/srv/reports/sec/sub/a.html", "sec/sub/a.html"},
		{"/srv/reports/out", "/srv/reports/a.html", "../a.html"},
		// Mixed absolute/relative inputs cannot be made relative; the path
		// is passed through with forward slashes instead of failing.
		{"/srv/reports", "elsewhere/a.html", "elsewhere/a.html"},
	}

	for _, tc := range cases {
		if got := Href(tc.outDir, tc.filePath); got != tc.want {
			t.Errorf("Href(%q, %q) = %q, want %q", tc.outDir, tc.filePath, got, tc.want)
		}
	}
}

func TestFormatKiB(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{0, "0.0"},
		{512, "0.5"},
		{1024, "1.0"},
		{5432, "5.3"},
		{1048576, "1024.0"},
	}
	for _, tc := range cases {
		if got := FormatKiB(tc.size); got != tc.want {
			t.Errorf("FormatKiB(%d) = %q, want %q", tc.size, got, tc.want)
		}
	}
}
