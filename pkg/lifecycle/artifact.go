package lifecycle

import (
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// maxSnapshotLength caps the text written to a DOM snapshot.
const maxSnapshotLength = 200000

var (
	errNoPage = errors.New("no page to capture")
	errNoName = errors.New("artifact name is required")
)

var artifactNameReplacer = strings.NewReplacer("/", "_", "\\", "_", " ", "_", ":", "_")

// commentText makes page-controlled text safe inside an HTML comment. With
// '>' escaped no "-->" or "--!>" can end the comment early.
func commentText(s string) string {
	return html.EscapeString(s)
}

// artifactPath returns <dir>/<name><ext>, creating dir. Path separators in
// name are flattened so subtest names stay inside dir.
func (l *Lifecycle) artifactPath(name, ext string) (string, error) {
	if name == "" {
		return "", errNoName
	}
	if err := os.MkdirAll(l.screenshotDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	return filepath.Join(l.screenshotDir, artifactNameReplacer.Replace(name)+ext), nil
}

// ScreenshotDir returns the artifact directory.
func (l *Lifecycle) ScreenshotDir() string {
	return l.screenshotDir
}

// CaptureScreenshot writes a full-page PNG of page to <dir>/<name>.png and
// returns its path.
func (l *Lifecycle) CaptureScreenshot(page playwright.Page, name string) (string, error) {
	if page == nil {
		return "", errNoPage
	}
	path, err := l.artifactPath(name, ".png")
	if err != nil {
		return "", err
	}

	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("failed to capture screenshot %q: %w", name, err)
	}

	l.logger.Infof("Screenshot saved: %s", path)
	return path, nil
}

// CaptureSnapshot writes a cleaned copy of page's DOM to <dir>/<name>.html
// and returns its path. Scripts, styles and comments are dropped; attributes
// useful for writing locators are kept.
func (l *Lifecycle) CaptureSnapshot(page playwright.Page, name string) (string, error) {
	if page == nil {
		return "", errNoPage
	}
	path, err := l.artifactPath(name, ".html")
	if err != nil {
		return "", err
	}

	raw, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}

	snapshot, err := cleanDOM(raw, maxSnapshotLength)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<!-- url: %s -->\n", commentText(page.URL()))
	if snapshot.Title != "" {
		fmt.Fprintf(&b, "<!-- title: %s -->\n", commentText(snapshot.Title))
	}
	if snapshot.Truncated {
		fmt.Fprintf(&b, "<!-- truncated at %d characters -->\n", maxSnapshotLength)
	}
	b.WriteString(snapshot.Body)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	l.logger.Infof("DOM snapshot saved: %s", path)
	return path, nil
}
