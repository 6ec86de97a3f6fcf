package browser

import "strings"

// SelectEngine maps a free-text engine name to an Engine. Matching ignores
// case and surrounding whitespace. Unrecognized names select Chromium.
func SelectEngine(name string) Engine {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "chrome", "chromium":
		return Chromium
	case "firefox":
		return Firefox
	case "webkit", "safari":
		return WebKit
	default:
		return Chromium
	}
}
