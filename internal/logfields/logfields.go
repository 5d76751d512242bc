package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyTarget     = "target"
	KeyOutput     = "output"
	KeyPath       = "path"
	KeyFile       = "file"
	KeySection    = "section"
	KeySubsection = "subsection"
	KeyFiles      = "files"
	KeySections   = "sections"
	KeyRunID      = "run_id"
	KeyInterval   = "interval"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Target(dir string) slog.Attr     { return slog.String(KeyTarget, dir) }
func Output(path string) slog.Attr    { return slog.String(KeyOutput, path) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(name string) slog.Attr      { return slog.String(KeyFile, name) }
func Section(s string) slog.Attr      { return slog.String(KeySection, s) }
func Subsection(s string) slog.Attr   { return slog.String(KeySubsection, s) }
func Files(n int) slog.Attr           { return slog.Int(KeyFiles, n) }
func Sections(n int) slog.Attr        { return slog.Int(KeySections, n) }
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Interval(d string) slog.Attr     { return slog.String(KeyInterval, d) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
