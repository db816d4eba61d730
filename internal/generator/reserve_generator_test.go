package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"actuarial-data-service/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func makeTestClaim(id, policyID int64, line models.LineOfBusiness, geography string, year int, incurred, paid float64) models.Claim {
	outstanding := incurred - paid
	if outstanding < 0 {
		outstanding = 0
	}
	accident := time.Date(year, time.June, 15, 0, 0, 0, 0, time.UTC)
	return models.Claim{
		ClaimID:            id,
		PolicyID:           policyID,
		AccidentDate:       accident,
		ReportDate:         accident.AddDate(0, 0, 20),
		AccidentYear:       year,
		DevelopmentMonth:   2,
		LineOfBusiness:     line,
		Geography:          geography,
		ClaimCause:         "Collision",
		ClaimStatus:        models.ClaimOpen,
		InitialReserve:     incurred,
		PaidAmount:         paid,
		OutstandingReserve: outstanding,
		IncurredAmount:     incurred,
	}
}

// ============================================================================
// COHORT AGGREGATION
// ============================================================================

func TestGenerateReserves_SingleCohort(t *testing.T) {
	claims := []models.Claim{
		makeTestClaim(1, 10, models.LineMotor, "CA", 2023, 5000.00, 1000.00),
		makeTestClaim(2, 10, models.LineMotor, "CA", 2023, 3000.00, 500.00),
		makeTestClaim(3, 20, models.LineMotor, "CA", 2023, 2000.00, 2000.00),
	}

	groups, err := NewReserveGenerator(42).Generate(claims)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	cohort := groups[0]
	assert.Equal(t, "Motor_CA_2023", cohort.ContractGroupID)
	assert.Equal(t, models.LineMotor, cohort.LineOfBusiness)
	assert.Equal(t, "CA", cohort.Geography)
	assert.Equal(t, 2023, cohort.CohortYear)
	assert.Equal(t, 2, cohort.PolicyCount, "policy 10 claimed twice but counts once")
	assert.Equal(t, 3, cohort.ClaimCount)
	assert.Equal(t, 10000.00, cohort.TotalIncurred)
	assert.Equal(t, 3500.00, cohort.TotalPaid)
	assert.Equal(t, 6500.00, cohort.TotalOutstanding)
}

func TestGenerateReserves_OneRowPerCohortKey(t *testing.T) {
	claims := []models.Claim{
		makeTestClaim(1, 1, models.LineMotor, "CA", 2023, 1000, 100),
		makeTestClaim(2, 2, models.LineMotor, "CA", 2022, 1000, 100),
		makeTestClaim(3, 3, models.LineMotor, "TX", 2023, 1000, 100),
		makeTestClaim(4, 4, models.LineLife, "CA", 2023, 1000, 100),
		makeTestClaim(5, 5, models.LineMotor, "CA", 2023, 1000, 100),
	}

	groups, err := NewReserveGenerator(42).Generate(claims)
	require.NoError(t, err)
	require.Len(t, groups, 4)

	seen := map[string]bool{}
	for _, cohort := range groups {
		assert.False(t, seen[cohort.ContractGroupID], "duplicate cohort %s", cohort.ContractGroupID)
		seen[cohort.ContractGroupID] = true
	}
	assert.True(t, seen["Motor_CA_2023"])
	assert.True(t, seen["Motor_CA_2022"])
	assert.True(t, seen["Motor_TX_2023"])
	assert.True(t, seen["Life_CA_2023"])
}

func TestGenerateReserves_EmptyInput(t *testing.T) {
	groups, err := NewReserveGenerator(42).Generate(nil)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

// ============================================================================
// IFRS 17 VALUATION INVARIANTS
// ============================================================================

func TestGenerateReserves_ValuationInvariants(t *testing.T) {
	// Value the cohorts of a realistic claims batch.
	claims, err := NewClaimsGenerator(42).Generate(1000, 20000)
	require.NoError(t, err)
	groups, err := NewReserveGenerator(43).Generate(claims)
	require.NoError(t, err)
	require.NotEmpty(t, groups)

	for _, cohort := range groups {
		// Discounting keeps the PV factor in (0, 1].
		assert.Greater(t, cohort.PVFactor, 0.0, "cohort %s", cohort.ContractGroupID)
		assert.LessOrEqual(t, cohort.PVFactor, 1.0, "cohort %s", cohort.ContractGroupID)

		// Exactly one of CSM and loss component is set.
		if cohort.ProfitabilityClass == models.ProfitabilityProfitable {
			assert.Greater(t, cohort.InitialCSM, 0.0)
			assert.Zero(t, cohort.LossComponent)
		} else {
			assert.Equal(t, models.ProfitabilityOnerous, cohort.ProfitabilityClass)
			assert.Zero(t, cohort.InitialCSM)
			assert.GreaterOrEqual(t, cohort.LossComponent, 0.0)
		}

		// Liability identities hold at two decimals.
		assert.InDelta(t, cohort.PVClaims+cohort.RiskAdjustment, cohort.BestEstimateLiability, 0.005)
		assert.InDelta(t, cohort.BestEstimateLiability+cohort.InitialCSM-cohort.LossComponent,
			cohort.LiabilityRemainingCoverage, 0.005)

		// Coverage units and amortization.
		assert.GreaterOrEqual(t, cohort.CoverageUnitsTotal, cohort.CoverageUnitsCurrent)
		assert.GreaterOrEqual(t, float64(cohort.CoverageUnitsCurrent), 0.5*float64(cohort.CoverageUnitsTotal)-1)
		if cohort.InitialCSM == 0 {
			assert.Zero(t, cohort.CSMAmortization)
		}

		// Valuation date is a calendar quarter end.
		d := cohort.ValuationDate
		validQuarterEnd := (d.Month() == time.March && d.Day() == 31) ||
			(d.Month() == time.June && d.Day() == 30) ||
			(d.Month() == time.September && d.Day() == 30) ||
			(d.Month() == time.December && d.Day() == 31)
		assert.True(t, validQuarterEnd, "cohort %s valuation date %s", cohort.ContractGroupID, d)

		// Metadata reflects the assumption set.
		meta := cohort.ReserveMetadata
		assert.Equal(t, "IFRS_17", meta.ValuationMethod)
		assert.Contains(t, []float64{0.75, 0.85, 0.95}, meta.ConfidenceLevel)
		assert.Equal(t, discountRateFor(cohort.LineOfBusiness), meta.ActuarialAssumptions.DiscountRate)
	}
}

func TestGenerateReserves_ZeroIncurredCohort(t *testing.T) {
	// A cohort can project zero claims while still holding case reserves;
	// the max(1, pv_claims) guard keeps its ratios finite.
	claim := makeTestClaim(1, 1, models.LineHealth, "NY", 2022, 0, 0)
	claim.OutstandingReserve = 500.00

	groups, err := NewReserveGenerator(42).Generate([]models.Claim{claim})
	require.NoError(t, err)
	require.Len(t, groups, 1)

	cohort := groups[0]
	assert.Zero(t, cohort.PVClaims)
	assert.Zero(t, cohort.RiskAdjustment)
	assert.Zero(t, cohort.PVPremiums)
	assert.Equal(t, 500.00, cohort.ReserveAdequacyRatio, "guard divides by 1, not 0")
	assert.Zero(t, cohort.ReserveMetadata.ActuarialAssumptions.RiskMargin)
}

func TestGenerateReserves_Deterministic(t *testing.T) {
	claims, err := NewClaimsGenerator(7).Generate(500, 5000)
	require.NoError(t, err)

	first, err := NewReserveGenerator(11).Generate(claims)
	require.NoError(t, err)
	second, err := NewReserveGenerator(11).Generate(claims)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSnapToQuarterEnd(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{date(2024, time.January, 15), date(2024, time.March, 31)},
		{date(2024, time.March, 31), date(2024, time.March, 31)},
		{date(2024, time.April, 1), date(2024, time.June, 30)},
		{date(2024, time.August, 10), date(2024, time.September, 30)},
		{date(2024, time.October, 2), date(2024, time.December, 31)},
		{date(2023, time.December, 31), date(2023, time.December, 31)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, snapToQuarterEnd(tt.in))
	}
}

func discountRateFor(line models.LineOfBusiness) float64 {
	if rate, ok := discountRates[line]; ok {
		return rate
	}
	return defaultDiscountRate
}
