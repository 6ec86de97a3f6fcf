package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// HomePage is the page object for a site's landing page.
type HomePage struct {
	page playwright.Page
}

// NewHomePage wraps page.
func NewHomePage(page playwright.Page) *HomePage {
	return &HomePage{page: page}
}

// Open navigates to url and waits for the load event.
func (p *HomePage) Open(url string) error {
	if _, err := p.page.Goto(url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	if err := p.page.WaitForLoadState(); err != nil {
		return fmt.Errorf("wait for %s to load: %w", url, err)
	}
	return nil
}

// Title returns the document title.
func (p *HomePage) Title() (string, error) {
	title, err := p.page.Title()
	if err != nil {
		return "", fmt.Errorf("read title: %w", err)
	}
	return title, nil
}
