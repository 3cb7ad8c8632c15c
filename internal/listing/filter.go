// Package listing narrows and pages the kost collection for display.
package listing

import (
	"slices"
	"strings"

	"github.com/dewakost/dewakost/internal/domain"
)

// Apply returns the kosts matching f in collection order. Archived listings
// are only visible to privileged viewers.
func Apply(kosts []domain.Kost, f domain.FilterState, privileged bool) []domain.Kost {
	area := strings.ToLower(strings.TrimSpace(f.Area))

	out := make([]domain.Kost, 0, len(kosts))
	for _, k := range kosts {
		if k.IsArchived && !privileged {
			continue
		}
		if f.Gender != "" && f.Gender != domain.GenderAny && k.Gender != f.Gender {
			continue
		}
		if area != "" && !strings.Contains(strings.ToLower(k.Area), area) {
			continue
		}
		if f.MaxPrice > 0 && k.PricePerMonth > f.MaxPrice {
			continue
		}
		if !hasAll(k.Facilities, f.Facilities) {
			continue
		}
		if len(f.Campuses) > 0 && !hasAny(k.NearbyCampuses, f.Campuses) {
			continue
		}
		out = append(out, k)
	}
	return out
}

func hasAll(have, want []string) bool {
	for _, w := range want {
		if !slices.Contains(have, w) {
			return false
		}
	}
	return true
}

func hasAny(have, want []string) bool {
	for _, w := range want {
		if slices.Contains(have, w) {
			return true
		}
	}
	return false
}
