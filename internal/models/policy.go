package models

import (
	"encoding/json"
	"time"
)

// ============================================================================
// POLICY TABLE
// ============================================================================

type Policy struct {
	PolicyID       int64          `json:"policy_id" db:"policy_id"`
	PolicyNumber   string         `json:"policy_number" db:"policy_number"`
	EffectiveDate  time.Time      `json:"effective_date" db:"effective_date"`
	ExpiryDate     time.Time      `json:"expiry_date" db:"expiry_date"`
	LineOfBusiness LineOfBusiness `json:"line_of_business" db:"line_of_business"`
	SumInsured     float64        `json:"sum_insured" db:"sum_insured"`
	Premium        float64        `json:"premium" db:"premium"`
	Geography      string         `json:"geography" db:"geography"`
	CustomerAge    int            `json:"customer_age" db:"customer_age"`
	CustomerGender Gender         `json:"customer_gender" db:"customer_gender"`
	RiskFactors    RiskFactors    `json:"risk_factors" db:"risk_factors"`
}

// RiskFactors is a per-line variant record. Only the fields for the policy's
// line of business are populated; Motor, Property and Life carry structured
// factors, the remaining lines serialize to an empty object.
type RiskFactors struct {
	// Motor
	VehicleAge       *int          `json:"vehicle_age,omitempty"`
	DriverExperience *int          `json:"driver_experience,omitempty"`
	SafetyRating     *SafetyRating `json:"safety_rating,omitempty"`

	// Property
	ConstructionYear *int              `json:"construction_year,omitempty"`
	ConstructionType *ConstructionType `json:"construction_type,omitempty"`
	FloodZone        *FloodZone        `json:"flood_zone,omitempty"`

	// Life
	Smoker          *bool            `json:"smoker,omitempty"`
	HealthRating    *HealthRating    `json:"health_rating,omitempty"`
	OccupationClass *OccupationClass `json:"occupation_class,omitempty"`
}

// JSON renders the risk factors as the key-value blob stored at the table
// boundary.
func (rf RiskFactors) JSON() ([]byte, error) {
	return json.Marshal(rf)
}
