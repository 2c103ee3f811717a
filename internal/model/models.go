// Package model defines the shared data structures of the matching service.
//
// Entities are hydrated by the store package and consumed read-only by the
// matching and alert packages. Optional fields are pointers: a nil pointer
// means "not provided" and is resolved to a documented neutral sub-score by
// the evaluators, never to an error.
package model

import "time"

// ─── Enums ───────────────────────────────────────────────────────────────────

// Availability mirrors the availability_status enum in PostgreSQL.
type Availability string

const (
	AvailabilityImmediate     Availability = "IMMEDIATE"
	AvailabilityWithin15Days  Availability = "WITHIN_15_DAYS"
	AvailabilityWithin1Month  Availability = "WITHIN_1_MONTH"
	AvailabilityWithin2Months Availability = "WITHIN_2_MONTHS"
	AvailabilityUnavailable   Availability = "UNAVAILABLE"
)

// Mobility mirrors the mobility enum in PostgreSQL. It is used both for a
// talent's preference and for an offer's requirement.
type Mobility string

const (
	MobilityFullRemote Mobility = "FULL_REMOTE"
	MobilityHybrid     Mobility = "HYBRID"
	MobilityOnSite     Mobility = "ON_SITE"
	MobilityFlexible   Mobility = "FLEXIBLE"
)

// EntryType mirrors the calendar_entry_type enum in PostgreSQL.
type EntryType string

const (
	EntryInMission   EntryType = "IN_MISSION"
	EntryLeave       EntryType = "LEAVE"
	EntrySickLeave   EntryType = "SICK_LEAVE"
	EntryUnavailable EntryType = "UNAVAILABLE"
	EntryOther       EntryType = "OTHER"
)

// Frequency mirrors the alert_frequency enum in PostgreSQL.
type Frequency string

const (
	FrequencyInstant Frequency = "INSTANT"
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
)

// OfferStatus mirrors the offer_status enum in PostgreSQL.
// Only PUBLISHED offers are matchable.
type OfferStatus string

const (
	OfferDraft     OfferStatus = "DRAFT"
	OfferPublished OfferStatus = "PUBLISHED"
	OfferClosed    OfferStatus = "CLOSED"
)

// ─── Entities ────────────────────────────────────────────────────────────────

// TalentProfile is the normalized contractor profile consumed by the score
// engine. It is owned and mutated by the profile-edit flows of the gateway;
// the matching service only reads it.
type TalentProfile struct {
	ID              string
	Skills          []string
	ExperienceYears *int
	DailyRate       *int // TJM in euros
	Availability    Availability
	Mobility        Mobility
	Location        *string
}

// CalendarEntry is a single dated entry of a talent's calendar.
// Read-only for the availability evaluator.
type CalendarEntry struct {
	ID       string
	TalentID string
	Date     time.Time
	Type     EntryType
}

// Offer is a job posting. EndDate defaults to StartDate + 90 days for
// conflict-window purposes when absent; see Offer.Window.
type Offer struct {
	ID             string
	Slug           string
	Title          string
	RequiredSkills []string
	DesiredSkills  []string
	MinExperience  *int
	RateMin        *int
	RateMax        *int
	Mobility       Mobility
	Location       *string
	StartDate      *time.Time
	EndDate        *time.Time
	Status         OfferStatus
	PublishedAt    time.Time
}

// DefaultMissionDays is the assumed mission length when an offer has a start
// date but no end date.
const DefaultMissionDays = 90

// Window returns the offer's effective conflict window. ok is false when the
// offer has no start date, in which case no calendar scan applies.
func (o Offer) Window() (start, end time.Time, ok bool) {
	if o.StartDate == nil {
		return time.Time{}, time.Time{}, false
	}
	start = *o.StartDate
	if o.EndDate != nil {
		end = *o.EndDate
	} else {
		end = start.AddDate(0, 0, DefaultMissionDays)
	}
	return start, end, true
}

// Alert is a saved subscription owned by a talent. Alerts are deactivated,
// never hard-deleted, so the sent counter and history stay auditable.
type Alert struct {
	ID             string
	TalentID       string
	Name           string
	Skills         []string
	RateMin        *int // minimum acceptable TJM
	Mobility       *Mobility
	Locations      []string
	Frequency      Frequency
	Active         bool
	LastNotifiedAt *time.Time
	SentCount      int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Notification is the row handed to the notification sink. The service
// produces notifications but does not deliver them; delivery belongs to the
// gateway's channels.
type Notification struct {
	ID          string
	RecipientID string
	Type        string
	Title       string
	Message     string
	Link        string
	CreatedAt   time.Time
}

// Notification types.
const (
	NotificationAlertOffer  = "ALERT_OFFER"  // one offer, instant alerts
	NotificationAlertDigest = "ALERT_DIGEST" // aggregate, daily/weekly alerts
)
