package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"actuarial-data-service/internal/models"
)

type ReserveRepository struct {
	db *sqlx.DB
}

func NewReserveRepository(db *sqlx.DB) *ReserveRepository {
	return &ReserveRepository{db: db}
}

// BulkInsert loads the contract-group table through COPY inside one
// transaction.
func (r *ReserveRepository) BulkInsert(ctx context.Context, groups []models.ContractGroup) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reserve load: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("reserves",
		"contract_group_id", "line_of_business", "geography", "cohort_year",
		"policy_count", "claim_count", "total_incurred", "total_paid",
		"total_outstanding", "valuation_date", "pv_factor", "pv_claims",
		"pv_premiums", "risk_adjustment", "acquisition_costs", "initial_csm",
		"loss_component", "profitability_class", "coverage_units_total",
		"coverage_units_current", "csm_amortization", "best_estimate_liability",
		"liability_remaining_coverage", "reserve_adequacy_ratio", "reserve_metadata",
	))
	if err != nil {
		return fmt.Errorf("failed to prepare reserve copy: %w", err)
	}

	for _, cg := range groups {
		metadata, err := cg.ReserveMetadata.JSON()
		if err != nil {
			return fmt.Errorf("failed to encode metadata for cohort %s: %w", cg.ContractGroupID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			cg.ContractGroupID, string(cg.LineOfBusiness), cg.Geography, cg.CohortYear,
			cg.PolicyCount, cg.ClaimCount, cg.TotalIncurred, cg.TotalPaid,
			cg.TotalOutstanding, cg.ValuationDate, cg.PVFactor, cg.PVClaims,
			cg.PVPremiums, cg.RiskAdjustment, cg.AcquisitionCosts, cg.InitialCSM,
			cg.LossComponent, string(cg.ProfitabilityClass), cg.CoverageUnitsTotal,
			cg.CoverageUnitsCurrent, cg.CSMAmortization, cg.BestEstimateLiability,
			cg.LiabilityRemainingCoverage, cg.ReserveAdequacyRatio, string(metadata),
		); err != nil {
			return fmt.Errorf("failed to copy cohort %s: %w", cg.ContractGroupID, err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to flush reserve copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("failed to close reserve copy: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reserve load: %w", err)
	}
	return nil
}

// Count returns the number of loaded cohorts.
func (r *ReserveRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM reserves`); err != nil {
		return 0, fmt.Errorf("failed to count reserves: %w", err)
	}
	return count, nil
}

// Truncate clears the table before a reload.
func (r *ReserveRepository) Truncate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `TRUNCATE TABLE reserves`); err != nil {
		return fmt.Errorf("failed to truncate reserves: %w", err)
	}
	return nil
}
