package views

import (
	"testing"

	"business-directory/client"

	"github.com/stretchr/testify/assert"
)

func sampleBusinesses() []client.Business {
	return []client.Business{
		{ID: "1", Name: "Corner Cafe", Description: "Espresso and pastries", Category: "Cafe", Location: "Portland"},
		{ID: "2", Name: "Bike Hub", Description: "Repairs and rentals", Category: "Retail", Location: "Seattle"},
		{ID: "3", Name: "Night Owl", Description: "Late night CAFE", Category: "Cafe", Location: "Seattle"},
		{ID: "4", Name: "Book Nook", Description: "Used books", Category: "Retail", Location: "Portland"},
	}
}

func ids(businesses []client.Business) []string {
	out := []string{}
	for _, b := range businesses {
		out = append(out, b.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		state    FilterState
		expected []string
	}{
		{"empty_state_keeps_all", FilterState{}, []string{"1", "2", "3", "4"}},
		{"search_name_or_description", FilterState{SearchTerm: "cafe"}, []string{"1", "3"}},
		{"search_ignores_category_and_location", FilterState{SearchTerm: "portland"}, []string{}},
		{"category_exact", FilterState{Category: "Retail"}, []string{"2", "4"}},
		{"category_is_case_sensitive", FilterState{Category: "retail"}, []string{}},
		{"location_exact", FilterState{Location: "Seattle"}, []string{"2", "3"}},
		{"all_clauses", FilterState{SearchTerm: "night", Category: "Cafe", Location: "Seattle"}, []string{"3"}},
		{"no_match", FilterState{SearchTerm: "cafe", Category: "Retail"}, []string{}},
		{"search_trimmed", FilterState{SearchTerm: "  books "}, []string{"4"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, ids(Apply(sampleBusinesses(), testCase.state)))
		})
	}
}

func TestFilterState_Active(t *testing.T) {
	assert.False(t, FilterState{}.Active())
	assert.True(t, FilterState{SearchTerm: "x"}.Active())
	assert.True(t, FilterState{Category: "Cafe"}.Active())
	assert.True(t, FilterState{Location: "Seattle"}.Active())
}

func TestCategoriesAndLocations(t *testing.T) {
	businesses := append(sampleBusinesses(), client.Business{ID: "5", Name: "Blank"})

	assert.Equal(t, []string{"Cafe", "Retail"}, Categories(businesses))
	assert.Equal(t, []string{"Portland", "Seattle"}, Locations(businesses))
	assert.Equal(t, []string{}, Categories(nil))
}
