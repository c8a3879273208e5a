// Package query derives filtered and ordered views of the profile and project
// collections. Every function is pure: inputs are never mutated and results
// are freshly allocated.
package query

import (
	"strings"

	"middlebeat/internal/domain/user"
)

// ProfileFilter narrows a profile search. A nil or empty field means no
// constraint for that category.
type ProfileFilter struct {
	Skills    []string
	Genres    []string
	Location  string
	Verified  *bool
	MinRating *float64
}

// FilterProfiles keeps the profiles matching text and f, dropping the
// profile owned by excludeUserID. Categories combine with AND; the tags of a
// single category combine with OR. Source order is preserved.
func FilterProfiles(all []user.Profile, excludeUserID, text string, f ProfileFilter) []user.Profile {
	q := strings.ToLower(strings.TrimSpace(text))
	loc := strings.ToLower(strings.TrimSpace(f.Location))

	out := make([]user.Profile, 0, len(all))
	for _, p := range all {
		if p.UserID == excludeUserID {
			continue
		}
		if q != "" && !profileMatchesText(p, q) {
			continue
		}
		if len(f.Skills) > 0 && !intersects(p.Skills, f.Skills) {
			continue
		}
		if len(f.Genres) > 0 && !intersects(p.Genres, f.Genres) {
			continue
		}
		if loc != "" && !strings.Contains(strings.ToLower(p.Location), loc) {
			continue
		}
		if f.Verified != nil && p.IsVerified != *f.Verified {
			continue
		}
		if f.MinRating != nil && p.Rating < *f.MinRating {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}

func profileMatchesText(p user.Profile, q string) bool {
	return containsFold(p.FullName, q) ||
		containsFold(p.Bio, q) ||
		anyContainsFold(p.Skills, q) ||
		anyContainsFold(p.Genres, q) ||
		containsFold(p.Location, q)
}

// containsFold reports whether lowered q is a substring of s ignoring case.
func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), q)
}

func anyContainsFold(list []string, q string) bool {
	for _, s := range list {
		if containsFold(s, q) {
			return true
		}
	}
	return false
}

// intersects reports an exact match between any element of have and want.
func intersects(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
