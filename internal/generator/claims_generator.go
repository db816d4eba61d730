package generator

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"actuarial-data-service/internal/models"
)

// Outstanding-reserve thresholds that decide claim status.
const (
	closedThreshold   = 10.0
	reservedThreshold = 1000.0
)

// ClaimsGenerator produces the claims table with loss-development behavior
// shaped for triangle analysis: report lags, development months and bucketed
// development factors.
type ClaimsGenerator struct {
	rng *Rand
}

// NewClaimsGenerator creates a claims generator with its own seeded state.
func NewClaimsGenerator(seed uint64) *ClaimsGenerator {
	return &ClaimsGenerator{rng: NewRand(seed)}
}

// Generate returns totalClaims claims referencing policy ids drawn uniformly
// from [1, policyCount]. Policy ids are sampled independently of the policy
// table on purpose: duplicates model repeat claimants, and ids may dangle
// when the two tables are generated with different counts.
//
// Per-claim draw order is fixed: policy id, accident date, report lag,
// initial reserve, development factor, payment pattern, line, cause,
// geography, attributes.
func (g *ClaimsGenerator) Generate(policyCount, totalClaims int) ([]models.Claim, error) {
	if policyCount < 1 {
		return nil, fmt.Errorf("generate claims: %w: policy count %d", ErrInvalidCount, policyCount)
	}
	if totalClaims < 1 {
		return nil, fmt.Errorf("generate claims: %w: claim count %d", ErrInvalidCount, totalClaims)
	}

	slog.Info("generating claims", "claims", totalClaims, "policies", policyCount)

	claims := make([]models.Claim, totalClaims)
	for i := range claims {
		id := int64(i + 1)

		policyID := int64(g.rng.IntBetween(1, policyCount))

		year := accidentYears[g.rng.WeightedIndex(accidentYearWeights)]
		month := g.rng.IntBetween(1, 12)
		day := g.rng.IntBetween(1, 28) // day 1-28 avoids month-length edge cases
		accidentDate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

		lag := g.rng.Exponential(30)
		if lag > 365 {
			lag = 365
		}
		reportDate := accidentDate.AddDate(0, 0, int(lag))

		devMonth := developmentMonth(accidentDate, reportDate)

		initialReserve := roundTo(g.rng.LogNormal(8.5, 1.5), 2)

		factor := g.developmentFactor(devMonth)
		incurred := roundTo(initialReserve*factor, 2)

		paymentPattern := g.rng.Beta(2, 5) // front-loaded payout
		paid := roundTo(incurred*paymentPattern, 2)

		outstanding := roundTo(math.Max(0, incurred-paid), 2)

		line := models.Lines[g.rng.WeightedIndex(claimLineWeights)]
		cause := causesByLine[line][g.rng.WeightedIndex(causeWeights)]
		geography := geographies[g.rng.WeightedIndex(geographyWeights)]

		claims[i] = models.Claim{
			ClaimID:            id,
			ClaimNumber:        fmt.Sprintf("CLM%08d", id),
			PolicyID:           policyID,
			AccidentDate:       accidentDate,
			ReportDate:         reportDate,
			AccidentYear:       year,
			DevelopmentMonth:   devMonth,
			LineOfBusiness:     line,
			Geography:          geography,
			ClaimCause:         cause,
			ClaimStatus:        statusFromOutstanding(outstanding),
			InitialReserve:     initialReserve,
			PaidAmount:         paid,
			OutstandingReserve: outstanding,
			IncurredAmount:     incurred,
			ClaimAttributes:    g.sampleAttributes(),
		}
	}

	return claims, nil
}

// developmentMonth counts whole months between accident and report dates,
// starting from month 1.
func developmentMonth(accident, report time.Time) int {
	months := (report.Year()-accident.Year())*12 + int(report.Month()) - int(accident.Month())
	if months+1 < 1 {
		return 1
	}
	return months + 1
}

// developmentFactor follows the industry triangle shape: claims trend down in
// the first year as information arrives, drift up slightly in year two, then
// stabilize. Floored at 0.1 so incurred amounts stay positive.
func (g *ClaimsGenerator) developmentFactor(devMonth int) float64 {
	var factor float64
	switch {
	case devMonth <= 12:
		factor = g.rng.Normal(0.95, 0.10)
	case devMonth <= 24:
		factor = g.rng.Normal(1.02, 0.05)
	case devMonth <= 36:
		factor = g.rng.Normal(1.01, 0.03)
	default:
		factor = g.rng.Normal(1.00, 0.02)
	}
	return math.Max(0.1, factor)
}

func statusFromOutstanding(outstanding float64) models.ClaimStatus {
	switch {
	case outstanding <= closedThreshold:
		return models.ClaimClosed
	case outstanding <= reservedThreshold:
		return models.ClaimOpen
	default:
		return models.ClaimReserved
	}
}

func (g *ClaimsGenerator) sampleAttributes() models.ClaimAttributes {
	tiers := []models.ComplexityTier{models.ComplexitySimple, models.ComplexityMedium, models.ComplexityComplex}
	return models.ClaimAttributes{
		Complexity:         tiers[g.rng.WeightedIndex([]float64{0.6, 0.3, 0.1})],
		LegalInvolvement:   g.rng.Bool(0.1),
		CatastropheRelated: g.rng.Bool(0.05),
		SalvagePotential:   g.rng.Bool(0.15),
	}
}
