package scenario

import (
	"fmt"
	"strings"

	"github.com/entrhq/pagecheck/pkg/pages"
)

// Built-in scenario names
const (
	HomepageTitle = "homepage-title"
	Login         = "login"
	LoginRejected = "login-rejected"
)

// Builtin returns a registry holding the built-in scenarios.
func Builtin() *Registry {
	r := NewRegistry()
	for _, s := range []Scenario{
		{
			Name:        HomepageTitle,
			Description: "Open the base URL and check the page title",
			Run:         runHomepageTitle,
		},
		{
			Name:        Login,
			Description: "Log in with the configured credentials and land on the dashboard",
			Run:         runLogin,
		},
		{
			Name:        LoginRejected,
			Description: "Log in with a wrong password and read the error banner",
			Run:         runLoginRejected,
		},
	} {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
	return r
}

func runHomepageTitle(env *Env) error {
	home := pages.NewHomePage(env.Page)
	if err := home.Open(env.Settings.BaseURL); err != nil {
		return err
	}

	title, err := home.Title()
	if err != nil {
		return err
	}
	env.Logger.Infof("Page title: %s", title)

	if !strings.Contains(title, env.Settings.ExpectedTitle) {
		return Assertf("page title %q should contain %q", title, env.Settings.ExpectedTitle)
	}
	return env.Screenshot("homepage")
}

func openLogin(env *Env) (*pages.LoginPage, error) {
	if env.Settings.Login.URL == "" {
		return nil, Skip("no login url configured")
	}
	login := pages.NewLoginPage(env.Page)
	if err := login.Open(env.Settings.Login.URL); err != nil {
		return nil, err
	}
	return login, nil
}

func submitted(env *Env) error {
	if err := env.Page.WaitForLoadState(); err != nil {
		return fmt.Errorf("wait for login response: %w", err)
	}
	return nil
}

func runLogin(env *Env) error {
	login, err := openLogin(env)
	if err != nil {
		return err
	}

	creds := env.Settings.Login
	if err := login.Login(creds.Username, creds.Password); err != nil {
		return err
	}
	if err := submitted(env); err != nil {
		return err
	}

	if !login.DidLoginSucceed() {
		if msg, err := login.ReadErrorMessage(); err == nil {
			return Assertf("login was rejected: %s", msg)
		}
		return Assertf("login should land on %s, got %s", pages.DashboardPath, env.Page.URL())
	}
	return env.Screenshot("login-success")
}

func runLoginRejected(env *Env) error {
	login, err := openLogin(env)
	if err != nil {
		return err
	}

	if err := login.Login(env.Settings.Login.Username, env.Settings.Login.Password+"-wrong"); err != nil {
		return err
	}
	if err := submitted(env); err != nil {
		return err
	}

	if login.DidLoginSucceed() {
		return Assertf("login with a wrong password reached %s", env.Page.URL())
	}

	msg, err := login.ReadErrorMessage()
	if err != nil {
		return err
	}
	if msg == "" {
		return Assertf("error banner should not be empty")
	}
	env.Logger.Infof("Error banner: %s", msg)
	return nil
}
