package scan

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/reportindex/internal/logfields"
	serrors "git.home.luguber.info/inful/reportindex/internal/scan/errors"
)

// Reserved bucket keys. All tree keys are folded to lower case, so a real
// directory named "root" or "files" merges into the matching sentinel
// bucket by the ordinary depth rule.
const (
	SectionRoot     = "root"
	SubsectionFiles = "files"
)

// FileRecord represents one discovered report file.
type FileRecord struct {
	Path string // Absolute path to the file
	Name string // File name including extension
	Size int64  // Size in bytes
}

// Bucket is the ordered set of file records for one section/subsection pair.
// Order within a bucket is traversal order; presentation order is decided at
// render time.
type Bucket []FileRecord

// Tree maps section key -> subsection key -> bucket. Keys are folded to
// lower case at classification time; every record appears in exactly one
// bucket.
type Tree map[string]map[string]Bucket

// add places a record in its bucket, creating levels as needed.
func (t Tree) add(section, subsection string, rec FileRecord) {
	subs, ok := t[section]
	if !ok {
		subs = make(map[string]Bucket)
		t[section] = subs
	}
	subs[subsection] = append(subs[subsection], rec)
}

// TotalFiles returns the number of records across all buckets.
func (t Tree) TotalFiles() int {
	n := 0
	for _, subs := range t {
		for _, bucket := range subs {
			n += len(bucket)
		}
	}
	return n
}

// SectionKeys returns all section keys in lexical order.
func (t Tree) SectionKeys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SubsectionKeys returns the subsection keys of one section in lexical order.
func (t Tree) SubsectionKeys(section string) []string {
	subs, ok := t[section]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(subs))
	for k := range subs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Scanner builds a report tree from a root directory.
type Scanner struct {
	root    string
	ext     string // recognized report extension, folded, with leading dot
	exclude string // output file base name skipped during the walk
}

// NewScanner creates a scanner for the given root. extension defaults to
// ".html" and exclude to "index.html" when empty.
func NewScanner(root, extension, exclude string) *Scanner {
	if extension == "" {
		extension = ".html"
	}
	if exclude == "" {
		exclude = "index.html"
	}
	return &Scanner{
		root:    root,
		ext:     strings.ToLower(extension),
		exclude: exclude,
	}
}

// Root returns the absolute scan root, resolving it on first use.
func (s *Scanner) Root() (string, error) {
	abs, err := filepath.Abs(s.root)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", serrors.ErrRootNotFound, s.root, err)
	}
	return abs, nil
}

// Scan walks the root and classifies every recognized report file into its
// (section, subsection) bucket by path depth:
//
//	depth 1 -> "root"/"files"
//	depth 2 -> <dir>/"files"
//	depth 3+ -> <dir1>/<dir2> (deeper components ignored)
//
// Hidden files and directories are skipped, as is the output file itself,
// matched by exact base name.
func (s *Scanner) Scan() (Tree, error) {
	root, err := s.Root()
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", serrors.ErrRootNotFound, root)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", serrors.ErrRootNotFound, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", serrors.ErrRootNotDirectory, root)
	}

	tree := make(Tree)

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			// Skip hidden directories entirely, but never the root itself.
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(info.Name(), ".") {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(info.Name()), s.ext) {
			return nil
		}
		if info.Name() == s.exclude {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("%w: %w", serrors.ErrInvalidRelativePath, err)
		}

		section, subsection := Classify(relPath)
		tree.add(section, subsection, FileRecord{
			Path: path,
			Name: info.Name(),
			Size: info.Size(),
		})

		slog.Debug("Discovered report file",
			logfields.File(relPath),
			logfields.Section(section),
			logfields.Subsection(subsection))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", serrors.ErrWalkFailed, root, err)
	}

	return tree, nil
}

// Classify maps a root-relative file path to its bucket keys. It is a pure
// function of path depth and the first two directory components, folded to
// lower case.
func Classify(relPath string) (section, subsection string) {
	parts := strings.Split(filepath.ToSlash(relPath), "/")
	switch len(parts) {
	case 1:
		return SectionRoot, SubsectionFiles
	case 2:
		return strings.ToLower(parts[0]), SubsectionFiles
	default:
		return strings.ToLower(parts[0]), strings.ToLower(parts[1])
	}
}
