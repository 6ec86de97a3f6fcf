package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Locators for the login screen
const (
	usernameInput = "input[name='username']"
	passwordInput = "input[name='password']"
	loginButton   = "button[type='submit']"
	errorMessage  = ".error-message"
)

// DashboardPath is the URL fragment a successful login lands on.
const DashboardPath = "/dashboard"

// LoginPage is the page object for the login screen.
type LoginPage struct {
	page playwright.Page
}

// NewLoginPage wraps page.
func NewLoginPage(page playwright.Page) *LoginPage {
	return &LoginPage{page: page}
}

// Open navigates to the login screen at url.
func (p *LoginPage) Open(url string) error {
	if _, err := p.page.Goto(url); err != nil {
		return fmt.Errorf("open login page: %w", err)
	}
	return nil
}

// EnterUsername fills the username field.
func (p *LoginPage) EnterUsername(username string) error {
	if err := p.page.Fill(usernameInput, username); err != nil {
		return fmt.Errorf("enter username: %w", err)
	}
	return nil
}

// EnterPassword fills the password field.
func (p *LoginPage) EnterPassword(password string) error {
	if err := p.page.Fill(passwordInput, password); err != nil {
		return fmt.Errorf("enter password: %w", err)
	}
	return nil
}

// Submit clicks the login button.
func (p *LoginPage) Submit() error {
	if err := p.page.Click(loginButton); err != nil {
		return fmt.Errorf("submit login: %w", err)
	}
	return nil
}

// Login enters the credentials and submits, in that order. It stops at the
// first failing step; nothing is rolled back.
func (p *LoginPage) Login(username, password string) error {
	if err := p.EnterUsername(username); err != nil {
		return err
	}
	if err := p.EnterPassword(password); err != nil {
		return err
	}
	return p.Submit()
}

// ReadErrorMessage returns the text of the error banner. It fails when the
// banner does not appear, so call it only when a failure is expected.
func (p *LoginPage) ReadErrorMessage() (string, error) {
	text, err := p.page.TextContent(errorMessage)
	if err != nil {
		return "", fmt.Errorf("read error message: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// DidLoginSucceed reports whether the current URL is the dashboard.
func (p *LoginPage) DidLoginSucceed() bool {
	return strings.Contains(p.page.URL(), DashboardPath)
}
