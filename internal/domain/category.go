package domain

import "strings"

// Category is one of the fixed pay/hour types recognised across both sources.
type Category int

const (
	CategoryBasic Category = iota
	CategoryNightRate
	CategorySaturdayDay
	CategorySaturdayNight
	CategorySundayDay
	CategorySundayNight
	CategoryOldDaySatRate
	CategoryOldNightRate
	CategoryOldSundayRate
	CategoryExtraShiftBonus
	CategoryBackpay
	CategoryBankHoliday
	CategoryHolidayPay
	CategoryCrossFunctionDay1
	CategoryCrossFunctionDay2
	CategoryCrossFunctionSun1
	CategoryTrainingMeeting
	CategoryStatutorySickPay

	numCategories
)

var categoryNames = [numCategories]string{
	CategoryBasic:             "Basic",
	CategoryNightRate:         "Night Rate",
	CategorySaturdayDay:       "Saturday Day",
	CategorySaturdayNight:     "Saturday Night",
	CategorySundayDay:         "Sunday Day",
	CategorySundayNight:       "Sunday Night",
	CategoryOldDaySatRate:     "Old Day/Sat Rate",
	CategoryOldNightRate:      "Old Night Rate",
	CategoryOldSundayRate:     "Old Sunday Rate",
	CategoryExtraShiftBonus:   "Extra Shift Bonus",
	CategoryBackpay:           "Backpay",
	CategoryBankHoliday:       "Bank Holiday",
	CategoryHolidayPay:        "Holiday Pay",
	CategoryCrossFunctionDay1: "Cross Function Day 1",
	CategoryCrossFunctionDay2: "Cross Function Day 2",
	CategoryCrossFunctionSun1: "Cross Function Sun 1",
	CategoryTrainingMeeting:   "Training/Meeting",
	CategoryStatutorySickPay:  "Statutory Sick Pay",
}

// String returns the canonical display name of the category.
func (c Category) String() string {
	if c < 0 || c >= numCategories {
		return "Unknown"
	}
	return categoryNames[c]
}

// Categories returns all canonical categories in declaration order.
func Categories() []Category {
	out := make([]Category, numCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// LabelMapping is the outcome of resolving a raw column label.
type LabelMapping int

const (
	// LabelMapped means the label resolves to a canonical category.
	LabelMapped LabelMapping = iota
	// LabelIgnored means the label is a known non-category column and is
	// skipped without a data-quality warning.
	LabelIgnored
	// LabelUnmapped means the label is not recognised at all. Callers must
	// record a mapping warning; unmapped hours are never merged into Basic.
	LabelUnmapped
)

// categoryLabels maps normalised source column labels to canonical categories.
// The table is static: column discovery is never inferred from position, so a
// shifted column order in either export cannot silently misalign hours.
// "Day Rate" is the payroll export's historical name for Basic.
var categoryLabels = map[string]Category{
	"basic":                CategoryBasic,
	"day rate":             CategoryBasic,
	"night rate":           CategoryNightRate,
	"night":                CategoryNightRate,
	"sat day":              CategorySaturdayDay,
	"saturday day":         CategorySaturdayDay,
	"sat night":            CategorySaturdayNight,
	"saturday night":       CategorySaturdayNight,
	"sun day":              CategorySundayDay,
	"sunday day":           CategorySundayDay,
	"sun night":            CategorySundayNight,
	"sunday night":         CategorySundayNight,
	"old day/sat rate":     CategoryOldDaySatRate,
	"old day sat rate":     CategoryOldDaySatRate,
	"old night rate":       CategoryOldNightRate,
	"old sun rate":         CategoryOldSundayRate,
	"old sunday rate":      CategoryOldSundayRate,
	"extra shift bonus":    CategoryExtraShiftBonus,
	"backpay":              CategoryBackpay,
	"back pay":             CategoryBackpay,
	"bank holiday":         CategoryBankHoliday,
	"holiday pay":          CategoryHolidayPay,
	"cross function day1":  CategoryCrossFunctionDay1,
	"cross function day 1": CategoryCrossFunctionDay1,
	"cross function day2":  CategoryCrossFunctionDay2,
	"cross function day 2": CategoryCrossFunctionDay2,
	"cross function sun1":  CategoryCrossFunctionSun1,
	"cross function sun 1": CategoryCrossFunctionSun1,
	"training/meeting":     CategoryTrainingMeeting,
	"training meeting":     CategoryTrainingMeeting,
	"statutory sick pay":   CategoryStatutorySickPay,
	"ssp":                  CategoryStatutorySickPay,
}

// ignoredLabels are columns both sources carry that are not hour categories.
var ignoredLabels = map[string]struct{}{
	"staff number":    {},
	"sequence":        {},
	"name":            {},
	"forename":        {},
	"surname":         {},
	"department":      {},
	"department name": {},
	"depart":          {},
	"pay rate":        {},
	"gross pay":       {},
	"total hours":     {},
	"total":           {},
	"year":            {},
	"week":            {},
	"yearweek":        {},
	"source file":     {},
	"source_file":     {},
}

// NormalizeLabel lower-cases a raw column label, collapses whitespace and
// strips the payroll export's " Hrs"/" Gross" pair suffixes so both members
// of a paired column resolve to the same category.
func NormalizeLabel(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	l = strings.Join(strings.Fields(l), " ")
	l = strings.TrimSuffix(l, " hrs")
	l = strings.TrimSuffix(l, " hours")
	l = strings.TrimSuffix(l, " gross")
	return l
}

// CategoryForLabel resolves a raw column label from either source to its
// canonical category. The mapping is total over the known label sets of both
// exports; anything else comes back LabelUnmapped for data-quality reporting.
func CategoryForLabel(label string) (Category, LabelMapping) {
	l := NormalizeLabel(label)
	if l == "" {
		return 0, LabelIgnored
	}
	if c, ok := categoryLabels[l]; ok {
		return c, LabelMapped
	}
	if _, ok := ignoredLabels[l]; ok {
		return 0, LabelIgnored
	}
	return 0, LabelUnmapped
}
