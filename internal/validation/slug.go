package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var destinationSlugRegex = regexp.MustCompile(`^[a-z0-9-]{3,60}$`)

// Path segments that would collide with API routes if used as catalog slugs.
var reservedDestinationSlugs = map[string]struct{}{
	"admin":        {},
	"api":          {},
	"auth":         {},
	"bookings":     {},
	"destinations": {},
	"health":       {},
	"login":        {},
	"me":           {},
	"metrics":      {},
	"payments":     {},
	"permits":      {},
	"signup":       {},
	"swagger":      {},
	"users":        {},
	"ws":           {},
}

// ValidateDestinationSlug validates catalog slug format and reserved names.
func ValidateDestinationSlug(slug string) error {
	if !destinationSlugRegex.MatchString(slug) {
		return fmt.Errorf("slug must be 3-60 characters and contain only lowercase letters, numbers, and hyphens")
	}

	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return fmt.Errorf("slug cannot start or end with a hyphen")
	}

	if _, exists := reservedDestinationSlugs[slug]; exists {
		return fmt.Errorf("slug is reserved")
	}

	return nil
}
