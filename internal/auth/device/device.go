// Package device derives coarse client metadata from the User-Agent header.
// The auth service attaches it to login audit logs so unusual clients can be
// spotted without storing raw user agent strings.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// Metadata is the normalized client description attached to login events.
type Metadata struct {
	Browser  string
	OS       string
	Platform string
}

// Describe parses a User-Agent string into normalized client metadata.
// Unknown or empty input yields "unknown" fields rather than an error.
func Describe(userAgentString string) Metadata {
	if userAgentString == "" {
		return Metadata{Browser: "unknown", OS: "unknown", Platform: "unknown"}
	}

	ua := useragent.New(userAgentString)
	browser, _ := ua.Browser()
	browser = strings.ToLower(strings.TrimSpace(browser))
	if browser == "" {
		browser = "unknown"
	}

	os := strings.ToLower(strings.TrimSpace(ua.OS()))
	if os == "" {
		os = "unknown"
	}

	platform := "desktop"
	if ua.Mobile() {
		platform = "mobile"
	} else if ua.Bot() {
		platform = "bot"
	}

	return Metadata{Browser: browser, OS: os, Platform: platform}
}
