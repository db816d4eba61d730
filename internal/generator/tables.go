package generator

import "actuarial-data-service/internal/models"

// Categorical reference tables. Adding a line of business is a data change
// here, not a code change in the generators.

var geographies = []string{"CA", "TX", "FL", "NY", "IL", "PA", "OH", "GA", "NC", "MI", "Other"}

var geographyWeights = []float64{0.12, 0.10, 0.08, 0.08, 0.06, 0.05, 0.05, 0.04, 0.04, 0.04, 0.34}

// Policy mix: Motor is the most common line.
var policyLineWeights = []float64{0.35, 0.25, 0.20, 0.15, 0.05}

// Claim frequency mix differs from the policy mix: short-tail lines claim
// more often.
var claimLineWeights = []float64{0.40, 0.30, 0.15, 0.10, 0.05}

// lognormalParams parameterizes a log-normal draw.
type lognormalParams struct {
	Mu    float64
	Sigma float64
}

// Sum insured bands per line of business.
var sumInsuredParams = map[models.LineOfBusiness]lognormalParams{
	models.LineMotor:    {Mu: 10.5, Sigma: 0.7}, // $25K-$100K
	models.LineProperty: {Mu: 12.5, Sigma: 0.8}, // $200K-$800K
	models.LineLife:     {Mu: 11.5, Sigma: 1.0}, // $50K-$500K
	models.LineHealth:   {Mu: 9.0, Sigma: 0.5},  // $5K-$20K
	models.LinePension:  {Mu: 13.0, Sigma: 0.6}, // $300K-$1M
}

// Claim causes per line, most common first. Draw weights are causeWeights.
var causesByLine = map[models.LineOfBusiness][]string{
	models.LineMotor:    {"Collision", "Theft", "Vandalism", "Weather", "Other"},
	models.LineProperty: {"Fire", "Theft", "Weather", "Water", "Other"},
	models.LineLife:     {"Natural", "Accident", "Illness", "Other", "Unknown"},
	models.LineHealth:   {"Surgery", "Emergency", "Routine", "Specialist", "Other"},
	models.LinePension:  {"Retirement", "Disability", "Death", "Withdrawal", "Other"},
}

var causeWeights = []float64{0.3, 0.2, 0.2, 0.2, 0.1}

// Accident year mix, skewed toward recent years.
var accidentYears = []int{2020, 2021, 2022, 2023, 2024}

var accidentYearWeights = []float64{0.15, 0.18, 0.20, 0.25, 0.22}

// Annual discount rates per line of business.
var discountRates = map[models.LineOfBusiness]float64{
	models.LineMotor:    0.045,
	models.LineProperty: 0.042,
	models.LineLife:     0.038,
	models.LineHealth:   0.040,
	models.LinePension:  0.035,
}

const defaultDiscountRate = 0.04

// normalParams parameterizes a normal draw.
type normalParams struct {
	Mean float64
	SD   float64
}

// Expected liability duration in years per line; long-tail for Life and
// Pension, short otherwise. Lines without an entry use shortDuration.
var durationParams = map[models.LineOfBusiness]normalParams{
	models.LineLife:    {Mean: 15, SD: 5},
	models.LinePension: {Mean: 20, SD: 8},
}

var shortDuration = normalParams{Mean: 3, SD: 1}

// intRange is an inclusive integer range.
type intRange struct {
	Lo int
	Hi int
}

// Expected coverage period in months per line. Lines without an entry use
// shortCoverageMonths.
var coverageMonthRanges = map[models.LineOfBusiness]intRange{
	models.LineLife:    {Lo: 120, Hi: 480}, // 10-40 years
	models.LinePension: {Lo: 240, Hi: 600}, // 20-50 years
}

var shortCoverageMonths = intRange{Lo: 12, Hi: 60} // 1-5 years
