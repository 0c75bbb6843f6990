// Package device describes the visitor's browser from its request headers.
package device

import (
	"github.com/mssola/useragent"

	"datalayer/internal/datalayer/models"
)

// Describe builds the device fragment. Empty header values are reported as
// null.
func Describe(userAgent, acceptLanguage string) *models.Device {
	d := &models.Device{}
	if userAgent != "" {
		d.UserAgent = &userAgent
		d.IsMobile = IsMobile(userAgent)
	}
	if acceptLanguage != "" {
		d.Language = &acceptLanguage
	}
	return d
}

// IsMobile reports whether the User-Agent belongs to a phone or tablet
// browser.
func IsMobile(userAgent string) bool {
	if userAgent == "" {
		return false
	}
	return useragent.New(userAgent).Mobile()
}
