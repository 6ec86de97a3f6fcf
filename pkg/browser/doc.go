// Package browser launches Playwright browser engines and builds the browsing
// contexts end-to-end scenarios run in.
//
// The package is built around three concepts:
//
//  1. Engine: one of the supported rendering engines (chromium, firefox, webkit)
//  2. Driver: the Playwright driver process, which hands out a launcher per engine
//  3. Factory functions: Launch and BuildContext, which apply the scaffold's
//     fixed launch and context configuration
//
// # Engine selection
//
// SelectEngine accepts free text and is case-insensitive. "chrome" and
// "chromium" select chromium, "firefox" selects firefox, "webkit" and "safari"
// select webkit. Anything else, including the empty string, falls back to
// chromium. The fallback is a policy rather than an error.
//
// # Example Usage
//
//	driver := browser.NewDriver(browser.DriverOptions{})
//	if err := driver.Start(); err != nil {
//	    return err
//	}
//	defer driver.Stop()
//
//	b, engine, err := browser.Launch(driver, "firefox", browser.DefaultLaunchOptions())
//	if err != nil {
//	    return err
//	}
//	defer b.Close()
//
//	ctx, err := browser.BuildContext(b)
package browser
