package index

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"git.home.luguber.info/inful/reportindex/internal/config"
	ierrors "git.home.luguber.info/inful/reportindex/internal/index/errors"
	"git.home.luguber.info/inful/reportindex/internal/scan"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

var templateKinds = []string{"page", "section", "subsection", "card"}

// Input carries the per-run pieces the renderer embeds beside the tree.
type Input struct {
	Tree       scan.Tree
	OutputPath string // document destination; hrefs are computed relative to its directory
	Intro      string // pre-rendered intro HTML, empty for none
	Revision   string // short commit hash for the footer stamp, empty for none
}

// Result reports what the rendered document contains.
type Result struct {
	Files    int // file cards included
	Sections int // sections that produced output
}

// Renderer produces the index document for a report tree. Buckets are
// sorted here, so scan traversal order never shows in the output.
type Renderer struct {
	cfg  *config.Config
	tmpl map[string]*template.Template
	now  func() time.Time
}

// NewRenderer parses the embedded templates once.
func NewRenderer(cfg *config.Config) (*Renderer, error) {
	r := &Renderer{
		cfg:  cfg,
		tmpl: make(map[string]*template.Template, len(templateKinds)),
		now:  time.Now,
	}
	for _, kind := range templateKinds {
		t, err := template.New(kind).
			Funcs(template.FuncMap{"kib": FormatKiB}).
			Parse(mustTemplate(kind))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ierrors.ErrTemplateParse, kind, err)
		}
		r.tmpl[kind] = t
	}
	return r, nil
}

// mustTemplate returns an embedded template body.
// Panics only if embedded defaults are missing (programmer error).
func mustTemplate(kind string) string {
	b, err := embeddedTemplates.ReadFile("templates/" + kind + ".tmpl")
	if err != nil {
		panic(fmt.Sprintf("embedded template missing for kind %s: %v", kind, err))
	}
	return string(b)
}

// Render produces the document plus the included-file and populated-section
// counts. Sections and subsections absent from the configured order lists
// are dropped silently; a tree yielding no content still renders a valid
// placeholder document.
func (r *Renderer) Render(in Input) (string, Result, error) {
	outDir := filepath.Dir(in.OutputPath)

	var res Result
	var sectionsHTML []string

	for _, sectionKey := range r.cfg.Sections {
		subs, ok := in.Tree[sectionKey]
		if !ok {
			continue
		}

		var subsectionsHTML []string
		for _, subKey := range r.cfg.Subsections {
			bucket := subs[subKey]
			if len(bucket) == 0 {
				continue
			}

			cards, err := r.renderCards(bucket, outDir)
			if err != nil {
				return "", Result{}, err
			}
			res.Files += len(bucket)

			// The reserved direct-files bucket renders as a bare grid.
			label := ""
			if subKey != scan.SubsectionFiles {
				label = Label(r.cfg.Labels, subKey)
			}
			html, err := r.exec("subsection", struct {
				Label string
				Cards string
			}{label, cards})
			if err != nil {
				return "", Result{}, err
			}
			subsectionsHTML = append(subsectionsHTML, html)
		}

		if len(subsectionsHTML) == 0 {
			continue
		}
		res.Sections++

		// The root section has no meaningful display name, so its content
		// is emitted without a section wrapper.
		if sectionKey == scan.SectionRoot {
			sectionsHTML = append(sectionsHTML, strings.Join(subsectionsHTML, "\n"))
			continue
		}
		html, err := r.exec("section", struct {
			Label       string
			Subsections string
		}{Label(r.cfg.Labels, sectionKey), strings.Join(subsectionsHTML, "\n")})
		if err != nil {
			return "", Result{}, err
		}
		sectionsHTML = append(sectionsHTML, html)
	}

	stamp := "reportindex"
	if in.Revision != "" {
		stamp = fmt.Sprintf("reportindex (rev %s)", in.Revision)
	}

	doc, err := r.exec("page", struct {
		Title     string
		Subtitle  string
		Intro     string
		Content   string
		Timestamp string
		Stamp     string
	}{
		Title:     r.cfg.Title,
		Subtitle:  r.cfg.Subtitle,
		Intro:     in.Intro,
		Content:   strings.Join(sectionsHTML, "\n"),
		Timestamp: r.now().Format("2006-01-02 15:04"),
		Stamp:     stamp,
	})
	if err != nil {
		return "", Result{}, err
	}

	return doc + "\n", res, nil
}

type cardContext struct {
	Href        string
	Category    string
	CSSClass    string
	DisplayName string
	Size        int64
}

func (r *Renderer) renderCards(bucket scan.Bucket, outDir string) (string, error) {
	records := sortBucket(bucket)
	cards := make([]string, 0, len(records))
	for _, rec := range records {
		cat := CategoryOf(rec.Name)
		html, err := r.exec("card", cardContext{
			Href:        Href(outDir, rec.Path),
			Category:    cat.Label,
			CSSClass:    cat.CSSClass,
			DisplayName: DisplayName(rec.Name),
			Size:        rec.Size,
		})
		if err != nil {
			return "", err
		}
		cards = append(cards, html)
	}
	return strings.Join(cards, "\n"), nil
}

func (r *Renderer) exec(kind string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl[kind].Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ierrors.ErrTemplateExecute, kind, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// sortBucket orders records by category priority, ties broken by folded
// file name. The incoming bucket is left untouched.
func sortBucket(bucket scan.Bucket) []scan.FileRecord {
	out := make([]scan.FileRecord, len(bucket))
	copy(out, bucket)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := CategoryOf(out[i].Name).Priority, CategoryOf(out[j].Name).Priority
		if pi != pj {
			return pi < pj
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Href computes the link target from the output document's directory to the
// file, forward slashes on every platform. Paths that cannot be made
// relative pass through unchanged rather than failing.
func Href(outDir, filePath string) string {
	rel, err := filepath.Rel(outDir, filePath)
	if err != nil {
		return filepath.ToSlash(filePath)
	}
	return filepath.ToSlash(rel)
}

// FormatKiB renders a byte count as kibibytes with one decimal place, the
// unit the page has always shown.
func FormatKiB(size int64) string {
	return fmt.Sprintf("%.1f", float64(size)/1024)
}

// WriteDocument persists a rendered document, creating parent directories
// as needed.
func WriteDocument(path, doc string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: %s: %w", ierrors.ErrOutputWrite, path, err)
		}
	}
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("%w: %s: %w", ierrors.ErrOutputWrite, path, err)
	}
	return nil
}
