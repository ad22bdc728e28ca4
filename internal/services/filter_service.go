package services

import (
	"sort"
	"strings"
)

// FilterServiceImpl implements FilterService
type FilterServiceImpl struct{}

// NewFilterService creates a new filter service
func NewFilterService() *FilterServiceImpl {
	return &FilterServiceImpl{}
}

// DeriveFacets returns the distinct values of one facet across records:
// each field is split on commas, pieces are trimmed, empties dropped, and
// the union is returned sorted ascending.
func (s *FilterServiceImpl) DeriveFacets(records []ContactRecord, facet Facet) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for _, piece := range strings.Split(facetField(rec, facet), ",") {
			if p := strings.TrimSpace(piece); p != "" {
				seen[p] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Apply keeps a record iff, for each facet with a non-empty selection, at
// least one selected value is a substring of the record's raw comma-joined
// field. The three facet conditions are AND-composed. Matching is substring,
// not exact-token: a selected "dev" matches a stored "devops".
func (s *FilterServiceImpl) Apply(records []ContactRecord, sel FilterSelection) []ContactRecord {
	out := make([]ContactRecord, 0, len(records))
	for _, rec := range records {
		if matchesAny(rec.Project, sel.Projects) &&
			matchesAny(rec.Tags, sel.Tags) &&
			matchesAny(rec.Teams, sel.Teams) {
			out = append(out, rec)
		}
	}
	return out
}

func facetField(rec ContactRecord, facet Facet) string {
	switch facet {
	case FacetProject:
		return rec.Project
	case FacetTag:
		return rec.Tags
	case FacetTeam:
		return rec.Teams
	default:
		return ""
	}
}

// matchesAny is true when selected is empty (no constraint) or any selected
// value occurs as a substring of the raw field.
func matchesAny(field string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if strings.Contains(field, s) {
			return true
		}
	}
	return false
}
