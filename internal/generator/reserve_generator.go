package generator

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"actuarial-data-service/internal/models"
)

// valuationAnchor is the latest possible valuation date; cohorts are valued
// up to eight quarters before it.
var valuationAnchor = time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)

// quarterlyRecognitionRate paces CSM amortization per reporting period.
const quarterlyRecognitionRate = 0.25

var confidenceLevels = []float64{0.75, 0.85, 0.95}

var confidenceWeights = []float64{0.2, 0.6, 0.2}

// ReserveGenerator aggregates claims into IFRS 17 contract groups and values
// them: present values, risk adjustment, CSM or loss component, coverage-unit
// amortization and liabilities.
type ReserveGenerator struct {
	rng *Rand
}

// NewReserveGenerator creates a reserve generator with its own seeded state.
func NewReserveGenerator(seed uint64) *ReserveGenerator {
	return &ReserveGenerator{rng: NewRand(seed)}
}

// cohortAggregate accumulates claim-level totals for one cohort key.
type cohortAggregate struct {
	policyIDs        map[int64]struct{}
	claimCount       int
	totalIncurred    float64
	totalPaid        float64
	totalOutstanding float64
}

// Generate returns one valued contract group per (line, geography, accident
// year) present in the claims table. An empty claims table yields an empty
// result, not an error.
//
// Cohort keys are sorted before any random draw: Go map iteration order is
// randomized, and an unstable visit order would change every drawn assumption
// between runs of the same seed.
func (g *ReserveGenerator) Generate(claims []models.Claim) ([]models.ContractGroup, error) {
	aggregates := aggregateCohorts(claims)

	keys := make([]models.CohortKey, 0, len(aggregates))
	for key := range aggregates {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.LineOfBusiness != b.LineOfBusiness {
			return a.LineOfBusiness < b.LineOfBusiness
		}
		if a.Geography != b.Geography {
			return a.Geography < b.Geography
		}
		return a.CohortYear < b.CohortYear
	})

	slog.Info("generating reserves", "claims", len(claims), "cohorts", len(keys))

	groups := make([]models.ContractGroup, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, g.valueCohort(key, aggregates[key]))
	}
	return groups, nil
}

func aggregateCohorts(claims []models.Claim) map[models.CohortKey]*cohortAggregate {
	aggregates := make(map[models.CohortKey]*cohortAggregate)
	for _, claim := range claims {
		key := models.CohortKey{
			LineOfBusiness: claim.LineOfBusiness,
			Geography:      claim.Geography,
			CohortYear:     claim.AccidentYear,
		}
		agg := aggregates[key]
		if agg == nil {
			agg = &cohortAggregate{policyIDs: make(map[int64]struct{})}
			aggregates[key] = agg
		}
		agg.policyIDs[claim.PolicyID] = struct{}{}
		agg.claimCount++
		agg.totalIncurred += claim.IncurredAmount
		agg.totalPaid += claim.PaidAmount
		agg.totalOutstanding += claim.OutstandingReserve
	}
	return aggregates
}

// valueCohort runs the valuation pipeline for one cohort. Intermediate values
// are named so each invariant (CSM xor loss component, guarded ratios) can be
// read off directly. Draw order per cohort is fixed: valuation offset,
// duration, premium ratio, risk-adjustment rate, acquisition rate, coverage
// months, remaining ratio, confidence level.
func (g *ReserveGenerator) valueCohort(key models.CohortKey, agg *cohortAggregate) models.ContractGroup {
	quartersBack := g.rng.IntBetween(0, 7)
	valuationDate := snapToQuarterEnd(valuationAnchor.AddDate(0, 0, -quartersBack*90))

	discountRate, ok := discountRates[key.LineOfBusiness]
	if !ok {
		discountRate = defaultDiscountRate
	}
	duration := g.sampleDuration(key.LineOfBusiness)

	pvFactor := roundTo(math.Pow(1+discountRate, -duration), 6)
	pvClaims := roundTo(agg.totalIncurred*pvFactor, 2)

	// Premiums are estimated off claims at a profitability ratio.
	premiumRatio := g.rng.Uniform(1.10, 1.20)
	pvPremiums := roundTo(pvClaims*premiumRatio, 2)

	riskAdjustment := roundTo(pvClaims*g.rng.Uniform(0.05, 0.15), 2)
	acquisitionCosts := roundTo(pvPremiums*g.rng.Uniform(0.10, 0.25), 2)

	// Initial recognition: a cohort carries either a CSM or a loss component,
	// never both.
	netMargin := pvPremiums - pvClaims - acquisitionCosts - riskAdjustment
	var (
		initialCSM    float64
		lossComponent float64
		class         models.ProfitabilityClass
	)
	if netMargin > 0 {
		initialCSM = roundTo(netMargin, 2)
		class = models.ProfitabilityProfitable
	} else {
		lossComponent = roundTo(math.Abs(netMargin), 2)
		class = models.ProfitabilityOnerous
	}

	policyCount := len(agg.policyIDs)
	coverageMonths := g.sampleCoverageMonths(key.LineOfBusiness)
	unitsTotal := int64(policyCount) * int64(coverageMonths)
	remainingRatio := g.rng.Uniform(0.5, 1.0)
	unitsCurrent := int64(float64(unitsTotal) * remainingRatio)

	var csmAmortization float64
	if unitsTotal > 0 {
		amortRate := float64(unitsCurrent) / float64(unitsTotal)
		csmAmortization = roundTo(initialCSM*amortRate*quarterlyRecognitionRate, 2)
	}

	bel := roundTo(pvClaims+riskAdjustment, 2)
	lrc := roundTo(bel+initialCSM-lossComponent, 2)

	// max(1, pvClaims) guards the zero-claims cohort.
	adequacyRatio := roundTo(agg.totalOutstanding/math.Max(1, pvClaims), 4)
	riskMargin := roundTo(riskAdjustment/math.Max(1, pvClaims), 4)

	confidence := confidenceLevels[g.rng.WeightedIndex(confidenceWeights)]

	return models.ContractGroup{
		ContractGroupID:            key.String(),
		LineOfBusiness:             key.LineOfBusiness,
		Geography:                  key.Geography,
		CohortYear:                 key.CohortYear,
		PolicyCount:                policyCount,
		ClaimCount:                 agg.claimCount,
		TotalIncurred:              roundTo(agg.totalIncurred, 2),
		TotalPaid:                  roundTo(agg.totalPaid, 2),
		TotalOutstanding:           roundTo(agg.totalOutstanding, 2),
		ValuationDate:              valuationDate,
		PVFactor:                   pvFactor,
		PVClaims:                   pvClaims,
		PVPremiums:                 pvPremiums,
		RiskAdjustment:             riskAdjustment,
		AcquisitionCosts:           acquisitionCosts,
		InitialCSM:                 initialCSM,
		LossComponent:              lossComponent,
		ProfitabilityClass:         class,
		CoverageUnitsTotal:         unitsTotal,
		CoverageUnitsCurrent:       unitsCurrent,
		CSMAmortization:            csmAmortization,
		BestEstimateLiability:      bel,
		LiabilityRemainingCoverage: lrc,
		ReserveAdequacyRatio:       adequacyRatio,
		ReserveMetadata: models.ReserveMetadata{
			ActuarialAssumptions: models.ActuarialAssumptions{
				DiscountRate: discountRate,
				RiskMargin:   riskMargin,
			},
			ValuationMethod: "IFRS_17",
			ConfidenceLevel: confidence,
			LastUpdated:     valuationDate.Format(time.RFC3339),
		},
	}
}

func (g *ReserveGenerator) sampleDuration(line models.LineOfBusiness) float64 {
	params, ok := durationParams[line]
	if !ok {
		params = shortDuration
	}
	duration := g.rng.Normal(params.Mean, params.SD)
	return math.Max(0.5, duration)
}

func (g *ReserveGenerator) sampleCoverageMonths(line models.LineOfBusiness) int {
	r, ok := coverageMonthRanges[line]
	if !ok {
		r = shortCoverageMonths
	}
	return g.rng.IntBetween(r.Lo, r.Hi)
}

// snapToQuarterEnd moves a date forward to its calendar quarter end.
func snapToQuarterEnd(d time.Time) time.Time {
	year := d.Year()
	switch {
	case d.Month() <= time.March:
		return time.Date(year, time.March, 31, 0, 0, 0, 0, time.UTC)
	case d.Month() <= time.June:
		return time.Date(year, time.June, 30, 0, 0, 0, 0, time.UTC)
	case d.Month() <= time.September:
		return time.Date(year, time.September, 30, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
}
