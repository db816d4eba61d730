package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"actuarial-data-service/internal/models"
)

type ClaimRepository struct {
	db *sqlx.DB
}

func NewClaimRepository(db *sqlx.DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

// BulkInsert loads the claims table through COPY inside one transaction.
func (r *ClaimRepository) BulkInsert(ctx context.Context, claims []models.Claim) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin claim load: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("claims",
		"claim_id", "claim_number", "policy_id", "accident_date", "report_date",
		"accident_year", "development_month", "line_of_business", "geography",
		"claim_cause", "claim_status", "initial_reserve", "paid_amount",
		"outstanding_reserve", "incurred_amount", "claim_attributes",
	))
	if err != nil {
		return fmt.Errorf("failed to prepare claim copy: %w", err)
	}

	for _, c := range claims {
		attributes, err := c.ClaimAttributes.JSON()
		if err != nil {
			return fmt.Errorf("failed to encode attributes for claim %d: %w", c.ClaimID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			c.ClaimID, c.ClaimNumber, c.PolicyID, c.AccidentDate, c.ReportDate,
			c.AccidentYear, c.DevelopmentMonth, string(c.LineOfBusiness), c.Geography,
			c.ClaimCause, string(c.ClaimStatus), c.InitialReserve, c.PaidAmount,
			c.OutstandingReserve, c.IncurredAmount, string(attributes),
		); err != nil {
			return fmt.Errorf("failed to copy claim %d: %w", c.ClaimID, err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to flush claim copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("failed to close claim copy: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit claim load: %w", err)
	}
	return nil
}

// Count returns the number of loaded claims.
func (r *ClaimRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM claims`); err != nil {
		return 0, fmt.Errorf("failed to count claims: %w", err)
	}
	return count, nil
}

// Truncate clears the table before a reload.
func (r *ClaimRepository) Truncate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `TRUNCATE TABLE claims`); err != nil {
		return fmt.Errorf("failed to truncate claims: %w", err)
	}
	return nil
}
