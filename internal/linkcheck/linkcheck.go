// Package linkcheck verifies that every local link on a generated index
// page resolves to an existing file.
package linkcheck

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	lcerrors "git.home.luguber.info/inful/reportindex/internal/linkcheck/errors"
)

// BrokenLink pairs a page href with the filesystem path it resolved to.
type BrokenLink struct {
	Href   string
	Target string
}

// Report summarizes one verification pass.
type Report struct {
	Checked int
	Broken  []BrokenLink
}

// Verify parses the index page at pagePath, extracts its anchor hrefs,
// and stats every verifiable local target against the page's directory.
// Broken targets yield ErrBrokenLinks; the report carries the details
// either way.
func Verify(pagePath string) (Report, error) {
	file, err := os.Open(filepath.Clean(pagePath))
	if err != nil {
		return Report{}, fmt.Errorf("open index page: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	doc, err := html.Parse(file)
	if err != nil {
		return Report{}, fmt.Errorf("parse index page: %w", err)
	}

	var report Report
	pageDir := filepath.Dir(pagePath)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := getAttr(n, "href"); href != "" {
				checkHref(href, pageDir, &report)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(report.Broken) > 0 {
		return report, fmt.Errorf("%w: %d of %d checked", lcerrors.ErrBrokenLinks, len(report.Broken), report.Checked)
	}
	return report, nil
}

func checkHref(href, pageDir string, report *Report) {
	target, ok := localTarget(href)
	if !ok {
		return
	}
	report.Checked++

	if !filepath.IsAbs(target) {
		target = filepath.Join(pageDir, target)
	}
	if _, err := os.Stat(target); err != nil {
		report.Broken = append(report.Broken, BrokenLink{Href: href, Target: target})
	}
}

// localTarget reduces an href to a filesystem path when the link is
// verifiable: fragments, special protocols, and anything carrying a
// scheme or host are out of scope.
func localTarget(href string) (string, bool) {
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	for _, prefix := range []string{"mailto:", "tel:", "javascript:", "data:"} {
		if strings.HasPrefix(href, prefix) {
			return "", false
		}
	}

	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
