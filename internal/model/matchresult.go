package model

// MatchResult is the computed compatibility verdict for one (talent, offer)
// pair. It is derived per request and never persisted. The JSON shape is the
// contract consumed by the gateway.
type MatchResult struct {
	Score          int          `json:"score"` // always in [0,100]
	CanApply       bool         `json:"canApply"`
	Recommendation string       `json:"recommendation"`
	Message        string       `json:"message"`
	Details        MatchDetails `json:"details"`
	AlreadyApplied bool         `json:"alreadyApplied"`
}

// MatchDetails carries the per-dimension breakdown used for explanations.
type MatchDetails struct {
	Skills       SkillsDetail       `json:"skills"`
	Experience   ExperienceDetail   `json:"experience"`
	Rate         RateDetail         `json:"rate"`
	Availability AvailabilityDetail `json:"availability"`
	Location     LocationDetail     `json:"location"`
}

// SkillsDetail lists which required skills matched and which are missing.
// Bonus lists desired-skill matches; they are displayed but never scored.
type SkillsDetail struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	Bonus   []string `json:"bonus"`
	Score   int      `json:"score"`
}

// ExperienceDetail explains the experience sub-score.
type ExperienceDetail struct {
	Required *int   `json:"required"`
	Actual   int    `json:"actual"`
	Status   string `json:"status"`
	Message  string `json:"message"`
	Score    int    `json:"score"`
}

// RateDetail explains the rate sub-score.
type RateDetail struct {
	OfferMin *int   `json:"offerMin"`
	OfferMax *int   `json:"offerMax"`
	Actual   *int   `json:"actual"`
	Status   string `json:"status"`
	Message  string `json:"message"`
	Score    int    `json:"score"`
}

// AvailabilityDetail explains the availability sub-score. Conflicts holds one
// human-readable line per conflicting entry type found in the offer window.
type AvailabilityDetail struct {
	Status    string   `json:"status"`
	Message   string   `json:"message"`
	Conflicts []string `json:"conflicts"`
	Score     int      `json:"score"`
}

// LocationDetail surfaces the mobility compatibility verdict. It is a
// pass/fail signal shown in the breakdown, not a weighted sub-score.
type LocationDetail struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Recommendation tiers ordered from best to worst.
const (
	RecommendationExcellent      = "excellent"
	RecommendationGood           = "good"
	RecommendationMedium         = "medium"
	RecommendationWeak           = "weak"
	RecommendationNotRecommended = "not_recommended"
)

// Dimension status codes.
const (
	StatusOK           = "ok"
	StatusNotSpecified = "not_specified"

	StatusBelowMinimum  = "below_minimum"
	StatusOverqualified = "overqualified"

	StatusTooHigh = "too_high"
	StatusTooLow  = "too_low"

	StatusAvailable   = "available"
	StatusEnMission   = "en_mission"
	StatusBusy        = "busy"
	StatusSoon        = "soon"
	StatusUnavailable = "unavailable"

	StatusCompatible   = "compatible"
	StatusIncompatible = "incompatible"
)
