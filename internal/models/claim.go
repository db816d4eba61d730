package models

import (
	"encoding/json"
	"time"
)

// ============================================================================
// CLAIM TABLE
// ============================================================================

type Claim struct {
	ClaimID            int64           `json:"claim_id" db:"claim_id"`
	ClaimNumber        string          `json:"claim_number" db:"claim_number"`
	PolicyID           int64           `json:"policy_id" db:"policy_id"`
	AccidentDate       time.Time       `json:"accident_date" db:"accident_date"`
	ReportDate         time.Time       `json:"report_date" db:"report_date"`
	AccidentYear       int             `json:"accident_year" db:"accident_year"`
	DevelopmentMonth   int             `json:"development_month" db:"development_month"`
	LineOfBusiness     LineOfBusiness  `json:"line_of_business" db:"line_of_business"`
	Geography          string          `json:"geography" db:"geography"`
	ClaimCause         string          `json:"claim_cause" db:"claim_cause"`
	ClaimStatus        ClaimStatus     `json:"claim_status" db:"claim_status"`
	InitialReserve     float64         `json:"initial_reserve" db:"initial_reserve"`
	PaidAmount         float64         `json:"paid_amount" db:"paid_amount"`
	OutstandingReserve float64         `json:"outstanding_reserve" db:"outstanding_reserve"`
	IncurredAmount     float64         `json:"incurred_amount" db:"incurred_amount"`
	ClaimAttributes    ClaimAttributes `json:"claim_attributes" db:"claim_attributes"`
}

type ClaimAttributes struct {
	Complexity         ComplexityTier `json:"complexity"`
	LegalInvolvement   bool           `json:"legal_involvement"`
	CatastropheRelated bool           `json:"catastrophe_related"`
	SalvagePotential   bool           `json:"salvage_potential"`
}

func (ca ClaimAttributes) JSON() ([]byte, error) {
	return json.Marshal(ca)
}
