package e2etest_test

import (
	"testing"

	"github.com/entrhq/pagecheck/pkg/browser/browsertest"
	"github.com/entrhq/pagecheck/pkg/e2etest"
	"github.com/entrhq/pagecheck/pkg/pages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomePageTitle(t *testing.T) {
	h := e2etest.Start(t, nil)
	page := h.NewPage(t)

	home := pages.NewHomePage(page)
	require.NoError(t, home.Open(h.Settings.BaseURL))

	title, err := home.Title()
	require.NoError(t, err)
	assert.Contains(t, title, "Playwright")

	h.Screenshot(t, page, "homepage")
}

func TestLoginPage(t *testing.T) {
	h := e2etest.Start(t, nil)

	app := browsertest.NewLoginApp("tomsmith", "SuperSecretPassword!")
	t.Cleanup(app.Close)

	t.Run("valid credentials", func(t *testing.T) {
		page := h.NewPage(t)
		login := pages.NewLoginPage(page)

		require.NoError(t, login.Open(app.URL+"/login"))
		require.NoError(t, login.Login("tomsmith", "SuperSecretPassword!"))
		require.NoError(t, page.WaitForLoadState())

		assert.True(t, login.DidLoginSucceed())
	})

	t.Run("wrong password", func(t *testing.T) {
		page := h.NewPage(t)
		login := pages.NewLoginPage(page)

		require.NoError(t, login.Open(app.URL+"/login"))
		require.NoError(t, login.Login("tomsmith", "wrong"))
		require.NoError(t, page.WaitForLoadState())

		assert.False(t, login.DidLoginSucceed())
		msg, err := login.ReadErrorMessage()
		require.NoError(t, err)
		assert.Equal(t, "Invalid credentials for tomsmith", msg)
	})
}
