package generator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"actuarial-data-service/internal/models"
)

func TestGeneratePolicies_CountAndIDs(t *testing.T) {
	policies, err := NewPolicyGenerator(42).Generate(1000)
	require.NoError(t, err)
	require.Len(t, policies, 1000)

	for i, p := range policies {
		assert.Equal(t, int64(i+1), p.PolicyID)
		assert.Equal(t, fmt.Sprintf("POL%08d", i+1), p.PolicyNumber)
		assert.Greater(t, p.SumInsured, 0.0)
		assert.Greater(t, p.Premium, 0.0)
		assert.False(t, p.ExpiryDate.Before(p.EffectiveDate), "expiry must not precede effective date")
		assert.GreaterOrEqual(t, p.CustomerAge, 18)
		assert.LessOrEqual(t, p.CustomerAge, 85)
		assert.Contains(t, models.Lines, p.LineOfBusiness)
	}
}

func TestGeneratePolicies_PremiumFractionOfSumInsured(t *testing.T) {
	policies, err := NewPolicyGenerator(42).Generate(2000)
	require.NoError(t, err)

	for _, p := range policies {
		rate := p.Premium / p.SumInsured
		// 2-8% band, with slack for the two roundings.
		assert.Greater(t, rate, 0.019, "policy %d premium rate too low", p.PolicyID)
		assert.Less(t, rate, 0.081, "policy %d premium rate too high", p.PolicyID)
	}
}

func TestGeneratePolicies_RiskFactorVariants(t *testing.T) {
	policies, err := NewPolicyGenerator(42).Generate(5000)
	require.NoError(t, err)

	for _, p := range policies {
		rf := p.RiskFactors
		switch p.LineOfBusiness {
		case models.LineMotor:
			require.NotNil(t, rf.VehicleAge)
			require.NotNil(t, rf.DriverExperience)
			require.NotNil(t, rf.SafetyRating)
			assert.Nil(t, rf.Smoker)
			assert.GreaterOrEqual(t, *rf.DriverExperience, 0)
		case models.LineProperty:
			require.NotNil(t, rf.ConstructionYear)
			require.NotNil(t, rf.ConstructionType)
			require.NotNil(t, rf.FloodZone)
			assert.Nil(t, rf.VehicleAge)
		case models.LineLife:
			require.NotNil(t, rf.Smoker)
			require.NotNil(t, rf.HealthRating)
			require.NotNil(t, rf.OccupationClass)
			assert.Nil(t, rf.FloodZone)
		default:
			// Health and Pension carry an empty record.
			assert.Equal(t, models.RiskFactors{}, rf)
		}
	}
}

func TestGeneratePolicies_Deterministic(t *testing.T) {
	first, err := NewPolicyGenerator(99).Generate(500)
	require.NoError(t, err)
	second, err := NewPolicyGenerator(99).Generate(500)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGeneratePolicies_DifferentSeedsDiffer(t *testing.T) {
	first, err := NewPolicyGenerator(1).Generate(100)
	require.NoError(t, err)
	second, err := NewPolicyGenerator(2).Generate(100)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestGeneratePolicies_InvalidCount(t *testing.T) {
	for _, count := range []int{0, -1} {
		policies, err := NewPolicyGenerator(42).Generate(count)
		assert.ErrorIs(t, err, ErrInvalidCount)
		assert.Nil(t, policies)
	}
}
