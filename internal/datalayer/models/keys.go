// Package models holds the wire types of the analytics data layer: the
// canonical Snapshot, the flattened Payload pushed to the tag manager, and
// the fragments both are built from.
//
// Key names are a contract with downstream tag configurations and dashboards
// and must not change.
package models

// Prefix namespaces every fragment field and flattened payload key.
const Prefix = "customDL_"

// EventName tags payloads of this shape in the tag manager queue.
const EventName = "customdl_init"

// DefaultSchemaVersion is reported in meta when no version is configured.
const DefaultSchemaVersion = "3.3.1"

// Top-level keys of the canonical snapshot.
const (
	KeyMeta      = "meta"
	KeySite      = "site"
	KeyTheme     = "theme"
	KeyDevice    = "device"
	KeyMarketing = "marketing"
	KeyUser      = "user"
	KeyCommerce  = "wc"
	KeyCart      = "cart"
)

// KeyEvent and KeySnapshot are the payload keys holding the event tag and the
// full snapshot.
const (
	KeyEvent    = "event"
	KeySnapshot = "customDL"
)

// Legacy scalar keys, placed at the snapshot top level and copied unprefixed
// into the payload.
const (
	KeyPageTitle         = Prefix + "pageTitle"
	KeyPageAttributes    = Prefix + "pageAttributes"
	KeyPageCategory      = Prefix + "pageCategory"
	KeyPagePostAuthor    = Prefix + "pagePostAuthor"
	KeyPagePostAuthorID  = Prefix + "pagePostAuthorID"
	KeyPagePostDate      = Prefix + "pagePostDate"
	KeyPagePostDateYear  = Prefix + "pagePostDateYear"
	KeyPagePostDateMonth = Prefix + "pagePostDateMonth"
	KeyPagePostDateDay   = Prefix + "pagePostDateDay"
	KeyPagePostType      = Prefix + "pagePostType"
	KeyPagePostType2     = Prefix + "pagePostType2"
	KeyPostCountOnPage   = Prefix + "postCountOnPage"
	KeyPostCountTotal    = Prefix + "postCountTotal"
	KeySiteSearchTerm    = Prefix + "siteSearchTerm"
	KeySiteSearchFrom    = Prefix + "siteSearchFrom"
	KeySiteSearchResults = Prefix + "siteSearchResults"
)

// LegacyKeys lists the legacy scalar keys in wire order.
var LegacyKeys = []string{
	KeyPageTitle,
	KeyPageAttributes,
	KeyPageCategory,
	KeyPagePostAuthor,
	KeyPagePostAuthorID,
	KeyPagePostDate,
	KeyPagePostDateYear,
	KeyPagePostDateMonth,
	KeyPagePostDateDay,
	KeyPagePostType,
	KeyPagePostType2,
	KeyPostCountOnPage,
	KeyPostCountTotal,
	KeySiteSearchTerm,
	KeySiteSearchFrom,
	KeySiteSearchResults,
}

// Key prefixes name with the namespace.
func Key(name string) string {
	return Prefix + name
}

// ErrorKey is the sibling key under which a failing collaborator's message is
// recorded.
func ErrorKey(source string) string {
	return Prefix + "error_" + source
}

// PrefixKeys returns a copy of m with every key namespaced. A nil map stays
// nil.
func PrefixKeys[V any](m map[string]V) map[string]V {
	if m == nil {
		return nil
	}
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[Prefix+k] = v
	}
	return out
}
