package views

import (
	"sort"
	"strings"

	"business-directory/client"
)

// FilterState is the set of in-memory filters applied to an already
// fetched business list.
type FilterState struct {
	SearchTerm string
	Category   string
	Location   string
}

func (s FilterState) Active() bool {
	return s.SearchTerm != "" || s.Category != "" || s.Location != ""
}

// Apply keeps the businesses matching every non-empty clause of state.
// The input order is preserved.
func Apply(businesses []client.Business, state FilterState) []client.Business {
	term := strings.ToLower(strings.TrimSpace(state.SearchTerm))

	filtered := make([]client.Business, 0, len(businesses))
	for _, b := range businesses {
		if term != "" &&
			!strings.Contains(strings.ToLower(b.Name), term) &&
			!strings.Contains(strings.ToLower(b.Description), term) {
			continue
		}
		if state.Category != "" && b.Category != state.Category {
			continue
		}
		if state.Location != "" && b.Location != state.Location {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered
}

func Categories(businesses []client.Business) []string {
	return distinct(businesses, func(b client.Business) string { return b.Category })
}

func Locations(businesses []client.Business) []string {
	return distinct(businesses, func(b client.Business) string { return b.Location })
}

func distinct(businesses []client.Business, field func(client.Business) string) []string {
	seen := make(map[string]struct{}, len(businesses))
	values := []string{}
	for _, b := range businesses {
		v := field(b)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
