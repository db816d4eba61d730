package models

type LineOfBusiness string

const (
	LineMotor    LineOfBusiness = "Motor"
	LineProperty LineOfBusiness = "Property"
	LineLife     LineOfBusiness = "Life"
	LineHealth   LineOfBusiness = "Health"
	LinePension  LineOfBusiness = "Pension"
)

// Lines lists every supported line of business in declaration order.
var Lines = []LineOfBusiness{LineMotor, LineProperty, LineLife, LineHealth, LinePension}

type ClaimStatus string

const (
	ClaimClosed   ClaimStatus = "Closed"
	ClaimOpen     ClaimStatus = "Open"
	ClaimReserved ClaimStatus = "Reserved"
)

type ProfitabilityClass string

const (
	ProfitabilityProfitable ProfitabilityClass = "Profitable"
	ProfitabilityOnerous    ProfitabilityClass = "Onerous"
)

type ComplexityTier string

const (
	ComplexitySimple  ComplexityTier = "Simple"
	ComplexityMedium  ComplexityTier = "Medium"
	ComplexityComplex ComplexityTier = "Complex"
)

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

type SafetyRating string

const (
	SafetyPoor      SafetyRating = "Poor"
	SafetyGood      SafetyRating = "Good"
	SafetyExcellent SafetyRating = "Excellent"
)

type ConstructionType string

const (
	ConstructionWood     ConstructionType = "Wood"
	ConstructionBrick    ConstructionType = "Brick"
	ConstructionConcrete ConstructionType = "Concrete"
)

type FloodZone string

const (
	FloodLow    FloodZone = "Low"
	FloodMedium FloodZone = "Medium"
	FloodHigh   FloodZone = "High"
)

type HealthRating string

const (
	HealthStandard       HealthRating = "Standard"
	HealthPreferred      HealthRating = "Preferred"
	HealthSuperPreferred HealthRating = "Super Preferred"
)

type OccupationClass string

const (
	OccupationProfessional OccupationClass = "Professional"
	OccupationStandard     OccupationClass = "Standard"
	OccupationHazardous    OccupationClass = "Hazardous"
)
