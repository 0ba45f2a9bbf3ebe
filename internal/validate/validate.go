// ABOUTME: Field validation helpers shared by the catalog and roster stores
// ABOUTME: Pure functions checking string length bounds and year range

package validate

// Maximum field lengths, matching the on-disk fixed-width record layout.
// A string is valid when it is non-empty and strictly shorter than its
// maximum, leaving room for NUL padding in the binary records.
const (
	MaxTitleLen    = 100
	MaxAuthorLen   = 100
	MaxISBNLen     = 20
	MaxUsernameLen = 50
	MaxNameLen     = 100
	MaxPasswordLen = 50
)

// String reports whether s is non-empty and shorter than max bytes.
func String(s string, max int) bool {
	return len(s) > 0 && len(s) < max
}

// Year reports whether y is a plausible publication year.
func Year(y int) bool {
	return y >= 0 && y <= 9999
}
