// Package pages holds page objects: one type per screen of the application
// under test, exposing intention-revealing actions over that screen's
// element locators.
//
// A page object references a playwright.Page it does not own. The page is
// created and closed by the lifecycle; a page object must not be used after
// its page's context has been closed. Locators never leave the page object,
// so scenarios are written against actions ("log in", "read the error")
// rather than selectors.
//
// Interactions are synchronous: each call waits for Playwright to complete
// the action or to hit its default timeout, and returns the failure wrapped
// with the action that was attempted.
package pages
