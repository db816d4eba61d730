package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ============================================================================
// CONTRACT GROUP (IFRS 17 COHORT) TABLE
// ============================================================================

// CohortKey identifies one contract group: every claim with the same line of
// business, geography and accident year belongs to the same cohort.
type CohortKey struct {
	LineOfBusiness LineOfBusiness
	Geography      string
	CohortYear     int
}

func (k CohortKey) String() string {
	return fmt.Sprintf("%s_%s_%d", k.LineOfBusiness, k.Geography, k.CohortYear)
}

type ContractGroup struct {
	ContractGroupID            string             `json:"contract_group_id" db:"contract_group_id"`
	LineOfBusiness             LineOfBusiness     `json:"line_of_business" db:"line_of_business"`
	Geography                  string             `json:"geography" db:"geography"`
	CohortYear                 int                `json:"cohort_year" db:"cohort_year"`
	PolicyCount                int                `json:"policy_count" db:"policy_count"`
	ClaimCount                 int                `json:"claim_count" db:"claim_count"`
	TotalIncurred              float64            `json:"total_incurred" db:"total_incurred"`
	TotalPaid                  float64            `json:"total_paid" db:"total_paid"`
	TotalOutstanding           float64            `json:"total_outstanding" db:"total_outstanding"`
	ValuationDate              time.Time          `json:"valuation_date" db:"valuation_date"`
	PVFactor                   float64            `json:"pv_factor" db:"pv_factor"`
	PVClaims                   float64            `json:"pv_claims" db:"pv_claims"`
	PVPremiums                 float64            `json:"pv_premiums" db:"pv_premiums"`
	RiskAdjustment             float64            `json:"risk_adjustment" db:"risk_adjustment"`
	AcquisitionCosts           float64            `json:"acquisition_costs" db:"acquisition_costs"`
	InitialCSM                 float64            `json:"initial_csm" db:"initial_csm"`
	LossComponent              float64            `json:"loss_component" db:"loss_component"`
	ProfitabilityClass         ProfitabilityClass `json:"profitability_class" db:"profitability_class"`
	CoverageUnitsTotal         int64              `json:"coverage_units_total" db:"coverage_units_total"`
	CoverageUnitsCurrent       int64              `json:"coverage_units_current" db:"coverage_units_current"`
	CSMAmortization            float64            `json:"csm_amortization" db:"csm_amortization"`
	BestEstimateLiability      float64            `json:"best_estimate_liability" db:"best_estimate_liability"`
	LiabilityRemainingCoverage float64            `json:"liability_remaining_coverage" db:"liability_remaining_coverage"`
	ReserveAdequacyRatio       float64            `json:"reserve_adequacy_ratio" db:"reserve_adequacy_ratio"`
	ReserveMetadata            ReserveMetadata    `json:"reserve_metadata" db:"reserve_metadata"`
}

// ReserveMetadata records the assumptions a cohort was valued under.
type ReserveMetadata struct {
	ActuarialAssumptions ActuarialAssumptions `json:"actuarial_assumptions"`
	ValuationMethod      string               `json:"valuation_method"`
	ConfidenceLevel      float64              `json:"confidence_level"`
	LastUpdated          string               `json:"last_updated"`
}

type ActuarialAssumptions struct {
	DiscountRate float64 `json:"discount_rate"`
	RiskMargin   float64 `json:"risk_margin"`
}

func (rm ReserveMetadata) JSON() ([]byte, error) {
	return json.Marshal(rm)
}
