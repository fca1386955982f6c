package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryForLabel(t *testing.T) {
	tests := []struct {
		name        string
		label       string
		wantCat     Category
		wantMapping LabelMapping
	}{
		{
			name:        "canonical basic",
			label:       "Basic",
			wantCat:     CategoryBasic,
			wantMapping: LabelMapped,
		},
		{
			name:        "payroll alias day rate maps to basic",
			label:       "Day Rate",
			wantCat:     CategoryBasic,
			wantMapping: LabelMapped,
		},
		{
			name:        "paired hrs suffix stripped",
			label:       "Night Rate Hrs",
			wantCat:     CategoryNightRate,
			wantMapping: LabelMapped,
		},
		{
			name:        "paired gross suffix stripped",
			label:       "Night Rate Gross",
			wantCat:     CategoryNightRate,
			wantMapping: LabelMapped,
		},
		{
			name:        "case and whitespace insensitive",
			label:       "  saturday   DAY  ",
			wantCat:     CategorySaturdayDay,
			wantMapping: LabelMapped,
		},
		{
			name:        "ssp abbreviation",
			label:       "SSP",
			wantCat:     CategoryStatutorySickPay,
			wantMapping: LabelMapped,
		},
		{
			name:        "cross function with and without space",
			label:       "Cross Function Day1",
			wantCat:     CategoryCrossFunctionDay1,
			wantMapping: LabelMapped,
		},
		{
			name:        "identity column is ignored",
			label:       "Staff Number",
			wantMapping: LabelIgnored,
		},
		{
			name:        "payroll identity column is ignored",
			label:       "Sequence",
			wantMapping: LabelIgnored,
		},
		{
			name:        "derived total column is ignored",
			label:       "Total Hours",
			wantMapping: LabelIgnored,
		},
		{
			name:        "empty label is ignored",
			label:       "   ",
			wantMapping: LabelIgnored,
		},
		{
			name:        "unknown label is unmapped, not merged into basic",
			label:       "Misc Adj",
			wantMapping: LabelUnmapped,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, mapping := CategoryForLabel(tt.label)
			assert.Equal(t, tt.wantMapping, mapping)
			if tt.wantMapping == LabelMapped {
				assert.Equal(t, tt.wantCat, cat)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 18)

	// Every category has a display name and resolves back to itself through
	// the label table.
	for _, c := range cats {
		assert.NotEqual(t, "Unknown", c.String())

		got, mapping := CategoryForLabel(c.String())
		assert.Equal(t, LabelMapped, mapping, "display name %q should resolve", c.String())
		assert.Equal(t, c, got)
	}
}

func TestCategoryString_OutOfRange(t *testing.T) {
	assert.Equal(t, "Unknown", Category(-1).String())
	assert.Equal(t, "Unknown", Category(99).String())
}
