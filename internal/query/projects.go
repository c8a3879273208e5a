package query

import (
	"errors"
	"sort"
	"strings"

	"middlebeat/internal/domain/project"
)

// StatusFilter is a project status or StatusAll.
type StatusFilter string

const StatusAll StatusFilter = "all"

type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortOldest     SortKey = "oldest"
	SortBudgetHigh SortKey = "budget-high"
	SortBudgetLow  SortKey = "budget-low"
	SortApplicants SortKey = "applicants"
)

var (
	ErrInvalidStatusFilter = errors.New("invalid status filter")
	ErrInvalidSortKey      = errors.New("invalid sort key")
)

// ParseStatusFilter accepts "all" (or empty) and the four project statuses.
func ParseStatusFilter(s string) (StatusFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == string(StatusAll) {
		return StatusAll, nil
	}
	if !project.Status(s).Valid() {
		return "", ErrInvalidStatusFilter
	}
	return StatusFilter(s), nil
}

// ParseSortKey defaults an empty key to SortNewest.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch SortKey(s) {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortBudgetHigh, SortBudgetLow, SortApplicants:
		return SortKey(s), nil
	}
	return "", ErrInvalidSortKey
}

// FilterProjects keeps the projects matching text and status, then orders
// them by key with a stable sort. Unknown keys order as SortNewest.
func FilterProjects(all []project.Project, text string, status StatusFilter, key SortKey) []project.Project {
	q := strings.ToLower(strings.TrimSpace(text))

	out := make([]project.Project, 0, len(all))
	for _, p := range all {
		if q != "" && !projectMatchesText(p, q) {
			continue
		}
		if status != "" && status != StatusAll && p.Status != project.Status(status) {
			continue
		}
		out = append(out, p.Clone())
	}

	sort.SliceStable(out, projectLess(out, key))
	return out
}

func projectMatchesText(p project.Project, q string) bool {
	return containsFold(p.Title, q) ||
		containsFold(p.Description, q) ||
		anyContainsFold(p.RequiredSkills, q) ||
		anyContainsFold(p.Genres, q) ||
		containsFold(p.CreatorName, q)
}

func projectLess(ps []project.Project, key SortKey) func(i, j int) bool {
	switch key {
	case SortOldest:
		return func(i, j int) bool { return ps[i].CreatedAt.Before(ps[j].CreatedAt) }
	case SortBudgetHigh:
		return func(i, j int) bool { return ps[i].BudgetMax() > ps[j].BudgetMax() }
	case SortBudgetLow:
		return func(i, j int) bool { return ps[i].BudgetMin() < ps[j].BudgetMin() }
	case SortApplicants:
		return func(i, j int) bool { return len(ps[i].Applicants) > len(ps[j].Applicants) }
	default:
		return func(i, j int) bool { return ps[i].CreatedAt.After(ps[j].CreatedAt) }
	}
}
