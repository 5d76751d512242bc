package config

import "git.home.luguber.info/inful/reportindex/internal/scan"

const (
	defaultTarget    = "./item-distributions"
	defaultTitle     = "TWW Randomizer Item Distributions"
	defaultSubtitle  = "Interactive visualizations of item placement distributions across randomizer seeds."
	defaultOutput    = "index.html"
	defaultExtension = ".html"
)

// Default returns the built-in configuration mirroring the published report
// layout. Loaded files override it field by field; label entries merge over
// these defaults.
func Default() *Config {
	return &Config{
		Target:    defaultTarget,
		Title:     defaultTitle,
		Subtitle:  defaultSubtitle,
		Output:    defaultOutput,
		Extension: defaultExtension,
		Sections:  []string{"archipelago", "wwrando", scan.SectionRoot},
		Subsections: []string{
			"single-player", "p1", "p2", "p3", "combined", scan.SubsectionFiles,
		},
		Labels: map[string]string{
			"archipelago":   "Archipelago (MultiworldGG)",
			"wwrando":       "WWRando (Standalone)",
			"single-player": "Single Player (1P)",
			"combined":      "3-Player Combined",
			"p1":            "3-Player: Player 1",
			"p2":            "3-Player: Player 2",
			"p3":            "3-Player: Player 3",
		},
		Intro:    ptrBool(true),
		GitStamp: ptrBool(true),
	}
}

func ptrBool(b bool) *bool { return &b }
