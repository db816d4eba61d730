package generator

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"actuarial-data-service/internal/models"
)

// ErrInvalidCount is returned when a generator is asked for a non-positive
// number of rows.
var ErrInvalidCount = errors.New("row count must be positive")

var (
	policyWindowStart = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	policyWindowEnd   = time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// PolicyGenerator samples the policy table.
type PolicyGenerator struct {
	rng *Rand
}

// NewPolicyGenerator creates a policy generator with its own seeded state.
func NewPolicyGenerator(seed uint64) *PolicyGenerator {
	return &PolicyGenerator{rng: NewRand(seed)}
}

// Generate returns count policies with ids 1..count. Draws happen row by row
// in a fixed order (dates, line, sum insured, premium, geography,
// demographics, risk factors), so the same seed always yields the same table.
func (g *PolicyGenerator) Generate(count int) ([]models.Policy, error) {
	if count < 1 {
		return nil, fmt.Errorf("generate policies: %w: got %d", ErrInvalidCount, count)
	}

	slog.Info("generating policies", "count", count)

	windowDays := int(policyWindowEnd.Sub(policyWindowStart).Hours() / 24)

	policies := make([]models.Policy, count)
	for i := range policies {
		id := int64(i + 1)

		effective := policyWindowStart.AddDate(0, 0, g.rng.IntBetween(0, windowDays))

		// Most policies run a full year; about 10% lapse early.
		var expiry time.Time
		if g.rng.Bool(0.9) {
			expiry = effective.AddDate(0, 0, 365)
		} else {
			expiry = effective.AddDate(0, 0, g.rng.IntBetween(30, 364))
		}

		line := models.Lines[g.rng.WeightedIndex(policyLineWeights)]

		params := sumInsuredParams[line]
		sumInsured := roundTo(g.rng.LogNormal(params.Mu, params.Sigma), 2)

		premiumRate := g.rng.Uniform(0.02, 0.08)
		premium := roundTo(sumInsured*premiumRate, 2)

		geography := geographies[g.rng.WeightedIndex(geographyWeights)]

		age := g.sampleCustomerAge()

		gender := models.GenderMale
		if g.rng.Bool(0.52) {
			gender = models.GenderFemale
		}

		policies[i] = models.Policy{
			PolicyID:       id,
			PolicyNumber:   fmt.Sprintf("POL%08d", id),
			EffectiveDate:  effective,
			ExpiryDate:     expiry,
			LineOfBusiness: line,
			SumInsured:     sumInsured,
			Premium:        premium,
			Geography:      geography,
			CustomerAge:    age,
			CustomerGender: gender,
			RiskFactors:    g.sampleRiskFactors(line, age),
		}
	}

	return policies, nil
}

// sampleCustomerAge draws a gamma-skewed age clamped to the insurable range.
func (g *PolicyGenerator) sampleCustomerAge() int {
	age := int(g.rng.Gamma(2, 20))
	if age < 18 {
		return 18
	}
	if age > 85 {
		return 85
	}
	return age
}

// sampleRiskFactors fills the variant record for the lines that carry
// structured factors; Health and Pension stay empty.
func (g *PolicyGenerator) sampleRiskFactors(line models.LineOfBusiness, age int) models.RiskFactors {
	var rf models.RiskFactors

	switch line {
	case models.LineMotor:
		vehicleAge := g.rng.IntBetween(0, 19)
		experience := age - 16
		if experience < 0 {
			experience = 0
		}
		ratings := []models.SafetyRating{models.SafetyPoor, models.SafetyGood, models.SafetyExcellent}
		rating := ratings[g.rng.WeightedIndex([]float64{0.2, 0.6, 0.2})]
		rf.VehicleAge = &vehicleAge
		rf.DriverExperience = &experience
		rf.SafetyRating = &rating

	case models.LineProperty:
		year := g.rng.IntBetween(1950, 2023)
		types := []models.ConstructionType{models.ConstructionWood, models.ConstructionBrick, models.ConstructionConcrete}
		construction := types[g.rng.WeightedIndex([]float64{0.6, 0.3, 0.1})]
		zones := []models.FloodZone{models.FloodLow, models.FloodMedium, models.FloodHigh}
		zone := zones[g.rng.WeightedIndex([]float64{0.7, 0.2, 0.1})]
		rf.ConstructionYear = &year
		rf.ConstructionType = &construction
		rf.FloodZone = &zone

	case models.LineLife:
		smoker := g.rng.Bool(0.15)
		ratings := []models.HealthRating{models.HealthStandard, models.HealthPreferred, models.HealthSuperPreferred}
		health := ratings[g.rng.WeightedIndex([]float64{0.6, 0.3, 0.1})]
		classes := []models.OccupationClass{models.OccupationProfessional, models.OccupationStandard, models.OccupationHazardous}
		occupation := classes[g.rng.WeightedIndex([]float64{0.4, 0.5, 0.1})]
		rf.Smoker = &smoker
		rf.HealthRating = &health
		rf.OccupationClass = &occupation
	}

	return rf
}
