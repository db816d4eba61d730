package export

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"actuarial-data-service/internal/models"
)

const dateLayout = "2006-01-02"

// WritePolicies writes the policy table to a CSV file.
func WritePolicies(path string, policies []models.Policy) error {
	return writeTable(path, policyHeader, len(policies), func(i int) ([]string, error) {
		return policyRecord(policies[i])
	})
}

// WriteClaims writes the claims table to a CSV file.
func WriteClaims(path string, claims []models.Claim) error {
	return writeTable(path, claimHeader, len(claims), func(i int) ([]string, error) {
		return claimRecord(claims[i])
	})
}

// WriteReserves writes the contract-group table to a CSV file.
func WriteReserves(path string, groups []models.ContractGroup) error {
	return writeTable(path, reserveHeader, len(groups), func(i int) ([]string, error) {
		return reserveRecord(groups[i])
	})
}

func writeTable(path string, header []string, rows int, record func(int) ([]string, error)) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header to %s: %w", path, err)
	}
	for i := 0; i < rows; i++ {
		rec, err := record(i)
		if err != nil {
			return fmt.Errorf("encode row %d of %s: %w", i+1, path, err)
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row %d to %s: %w", i+1, path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	slog.Info("wrote table", "path", path, "rows", rows)
	return nil
}

var policyHeader = []string{
	"policy_id", "policy_number", "effective_date", "expiry_date",
	"line_of_business", "sum_insured", "premium", "geography",
	"customer_age", "customer_gender", "risk_factors",
}

func policyRecord(p models.Policy) ([]string, error) {
	riskFactors, err := p.RiskFactors.JSON()
	if err != nil {
		return nil, err
	}
	return []string{
		strconv.FormatInt(p.PolicyID, 10),
		p.PolicyNumber,
		p.EffectiveDate.Format(dateLayout),
		p.ExpiryDate.Format(dateLayout),
		string(p.LineOfBusiness),
		money(p.SumInsured),
		money(p.Premium),
		p.Geography,
		strconv.Itoa(p.CustomerAge),
		string(p.CustomerGender),
		string(riskFactors),
	}, nil
}

var claimHeader = []string{
	"claim_id", "claim_number", "policy_id", "accident_date", "report_date",
	"accident_year", "development_month", "line_of_business", "geography",
	"claim_cause", "claim_status", "initial_reserve", "paid_amount",
	"outstanding_reserve", "incurred_amount", "claim_attributes",
}

func claimRecord(c models.Claim) ([]string, error) {
	attributes, err := c.ClaimAttributes.JSON()
	if err != nil {
		return nil, err
	}
	return []string{
		strconv.FormatInt(c.ClaimID, 10),
		c.ClaimNumber,
		strconv.FormatInt(c.PolicyID, 10),
		c.AccidentDate.Format(dateLayout),
		c.ReportDate.Format(dateLayout),
		strconv.Itoa(c.AccidentYear),
		strconv.Itoa(c.DevelopmentMonth),
		string(c.LineOfBusiness),
		c.Geography,
		c.ClaimCause,
		string(c.ClaimStatus),
		money(c.InitialReserve),
		money(c.PaidAmount),
		money(c.OutstandingReserve),
		money(c.IncurredAmount),
		string(attributes),
	}, nil
}

var reserveHeader = []string{
	"contract_group_id", "line_of_business", "geography", "cohort_year",
	"policy_count", "claim_count", "total_incurred", "total_paid",
	"total_outstanding", "valuation_date", "pv_factor", "pv_claims",
	"pv_premiums", "risk_adjustment", "acquisition_costs", "initial_csm",
	"loss_component", "profitability_class", "coverage_units_total",
	"coverage_units_current", "csm_amortization", "best_estimate_liability",
	"liability_remaining_coverage", "reserve_adequacy_ratio", "reserve_metadata",
}

func reserveRecord(cg models.ContractGroup) ([]string, error) {
	metadata, err := cg.ReserveMetadata.JSON()
	if err != nil {
		return nil, err
	}
	return []string{
		cg.ContractGroupID,
		string(cg.LineOfBusiness),
		cg.Geography,
		strconv.Itoa(cg.CohortYear),
		strconv.Itoa(cg.PolicyCount),
		strconv.Itoa(cg.ClaimCount),
		money(cg.TotalIncurred),
		money(cg.TotalPaid),
		money(cg.TotalOutstanding),
		cg.ValuationDate.Format(dateLayout),
		decimal(cg.PVFactor, 6),
		money(cg.PVClaims),
		money(cg.PVPremiums),
		money(cg.RiskAdjustment),
		money(cg.AcquisitionCosts),
		money(cg.InitialCSM),
		money(cg.LossComponent),
		string(cg.ProfitabilityClass),
		strconv.FormatInt(cg.CoverageUnitsTotal, 10),
		strconv.FormatInt(cg.CoverageUnitsCurrent, 10),
		money(cg.CSMAmortization),
		money(cg.BestEstimateLiability),
		money(cg.LiabilityRemainingCoverage),
		decimal(cg.ReserveAdequacyRatio, 4),
		string(metadata),
	}, nil
}

func money(v float64) string {
	return decimal(v, 2)
}

func decimal(v float64, places int) string {
	return strconv.FormatFloat(v, 'f', places, 64)
}
