package linkcheck

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/reportindex/internal/config"
	"git.home.luguber.info/inful/reportindex/internal/index"
	lcerrors "git.home.luguber.info/inful/reportindex/internal/linkcheck/errors"
	"git.home.luguber.info/inful/reportindex/internal/scan"
)

func writePage(t *testing.T, dir, body string) string {
	t.Helper()
	page := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(page, []byte("<html><body>"+body+"</body></html>"), 0644))
	return page
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestVerifyCleanPage(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a-heatmap.html"))
	touch(t, filepath.Join(dir, "archipelago", "p1", "seed1-items.html"))

	page := writePage(t, dir, `
		<a href="a-heatmap.html">heatmap</a>
		<a href="archipelago/p1/seed1-items.html?cache=1">items</a>
		<a href="#top">anchor</a>
		<a href="mailto:dev@example.com">mail</a>
		<a href="tel:+4712345678">phone</a>
		<a href="https://example.com/elsewhere.html">external</a>`)

	report, err := Verify(page)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Checked)
	assert.Empty(t, report.Broken)
}

func TestVerifyBrokenLinks(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "present.html"))

	page := writePage(t, dir, `
		<a href="present.html">ok</a>
		<a href="missing.html">gone</a>
		<a href="sub/also-missing.html">gone too</a>`)

	report, err := Verify(page)
	require.Error(t, err)
	assert.True(t, errors.Is(err, lcerrors.ErrBrokenLinks))

	assert.Equal(t, 3, report.Checked)
	require.Len(t, report.Broken, 2)
	assert.Equal(t, "missing.html", report.Broken[0].Href)
	assert.Equal(t, filepath.Join(dir, "missing.html"), report.Broken[0].Target)
	assert.Equal(t, "sub/also-missing.html", report.Broken[1].Href)
}

func TestVerifyPageWithoutLinks(t *testing.T) {
	dir := t.TempDir()
	page := writePage(t, dir, "<p>No reports found.</p>")

	report, err := Verify(page)
	require.NoError(t, err)
	assert.Zero(t, report.Checked)
	assert.Empty(t, report.Broken)
}

func TestVerifyMissingPage(t *testing.T) {
	_, err := Verify(filepath.Join(t.TempDir(), "absent.html"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, lcerrors.ErrBrokenLinks))
}

func TestLocalTarget(t *testing.T) {
	cases := []struct {
		href   string
		target string
		ok     bool
	}{
		{"report.html", "report.html", true},
		{"sub/report.html?v=2", filepath.FromSlash("sub/report.html"), true},
		{"../up/report.html", filepath.FromSlash("../up/report.html"), true},
		{"#section", "", false},
		{"", "", false},
		{"mailto:x@y.z", "", false},
		{"javascript:void(0)", "", false},
		{"data:text/plain;base64,eA==", "", false},
		{"https://example.com/r.html", "", false},
		{"//cdn.example.com/r.html", "", false},
	}
	for _, tc := range cases {
		target, ok := localTarget(tc.href)
		assert.Equal(t, tc.ok, ok, tc.href)
		assert.Equal(t, tc.target, target, tc.href)
	}
}

// A freshly built page must always verify clean: every admitted file
// appears in the link set and every link resolves.
func TestVerifyFreshBuild(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a-heatmap.html"))
	touch(t, filepath.Join(dir, "archipelago", "overview.html"))
	touch(t, filepath.Join(dir, "archipelago", "p1", "seed1-items.html"))
	touch(t, filepath.Join(dir, "wwrando", "combined", "dist-locations.html"))

	tree, err := scan.NewScanner(dir, ".html", "index.html").Scan()
	require.NoError(t, err)

	renderer, err := index.NewRenderer(config.Default())
	require.NoError(t, err)

	outPath := filepath.Join(dir, "index.html")
	doc, res, err := renderer.Render(index.Input{Tree: tree, OutputPath: outPath})
	require.NoError(t, err)
	require.NoError(t, index.WriteDocument(outPath, doc))

	report, err := Verify(outPath)
	require.NoError(t, err)
	assert.Equal(t, res.Files, report.Checked)
	assert.Empty(t, report.Broken)
}
