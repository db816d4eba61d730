package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"actuarial-data-service/internal/models"
)

type PolicyRepository struct {
	db *sqlx.DB
}

func NewPolicyRepository(db *sqlx.DB) *PolicyRepository {
	return &PolicyRepository{db: db}
}

// BulkInsert loads the policy table through COPY inside one transaction; a
// failure on any row aborts the whole load.
func (r *PolicyRepository) BulkInsert(ctx context.Context, policies []models.Policy) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin policy load: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("policies",
		"policy_id", "policy_number", "effective_date", "expiry_date",
		"line_of_business", "sum_insured", "premium", "geography",
		"customer_age", "customer_gender", "risk_factors",
	))
	if err != nil {
		return fmt.Errorf("failed to prepare policy copy: %w", err)
	}

	for _, p := range policies {
		riskFactors, err := p.RiskFactors.JSON()
		if err != nil {
			return fmt.Errorf("failed to encode risk factors for policy %d: %w", p.PolicyID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			p.PolicyID, p.PolicyNumber, p.EffectiveDate, p.ExpiryDate,
			string(p.LineOfBusiness), p.SumInsured, p.Premium, p.Geography,
			p.CustomerAge, string(p.CustomerGender), string(riskFactors),
		); err != nil {
			return fmt.Errorf("failed to copy policy %d: %w", p.PolicyID, err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to flush policy copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("failed to close policy copy: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit policy load: %w", err)
	}
	return nil
}

// Count returns the number of loaded policies, used for post-load
// verification.
func (r *PolicyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM policies`); err != nil {
		return 0, fmt.Errorf("failed to count policies: %w", err)
	}
	return count, nil
}

// Truncate clears the table before a reload.
func (r *PolicyRepository) Truncate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `TRUNCATE TABLE policies`); err != nil {
		return fmt.Errorf("failed to truncate policies: %w", err)
	}
	return nil
}
