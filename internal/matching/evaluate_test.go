package matching_test

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"talentmatch/matching-service/internal/matching"
	"talentmatch/matching-service/internal/model"
)

func intPtr(v int) *int { return &v }

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

// consultant is the reference profile used across the scenario tests:
// Java/Spring/Angular, 5 years, 500 € TJM, immediately available.
func consultant() model.TalentProfile {
	return model.TalentProfile{
		ID:              "talent-1",
		Skills:          []string{"Java", "Spring", "Angular"},
		ExperienceYears: intPtr(5),
		DailyRate:       intPtr(500),
		Availability:    model.AvailabilityImmediate,
		Mobility:        model.MobilityFullRemote,
	}
}

func javaOffer() model.Offer {
	return model.Offer{
		ID:             "offer-1",
		Slug:           "dev-java-spring",
		Title:          "Développeur Java/Spring",
		RequiredSkills: []string{"Java", "Spring", "Kubernetes"},
		MinExperience:  intPtr(3),
		Mobility:       model.MobilityFlexible,
		Status:         model.OfferPublished,
	}
}

// ── Full evaluation scenarios ──────────────────────────────────────────────

// 2/3 required skills, enough experience, rate in range, no dates: the
// weighted total lands at 84 and the offer is an excellent match.
func TestEvaluate_StrongMatch(t *testing.T) {
	result := matching.Evaluate(consultant(), javaOffer(), nil, false)

	if result.Details.Skills.Score != 67 {
		t.Errorf("skills score = %d, want 67", result.Details.Skills.Score)
	}
	if result.Details.Experience.Score != 100 {
		t.Errorf("experience score = %d, want 100", result.Details.Experience.Score)
	}
	if result.Details.Rate.Score != 100 {
		t.Errorf("rate score = %d, want 100", result.Details.Rate.Score)
	}
	if result.Details.Availability.Score != 100 {
		t.Errorf("availability score = %d, want 100", result.Details.Availability.Score)
	}
	if result.Score != 84 {
		t.Errorf("final score = %d, want 84", result.Score)
	}
	if result.Recommendation != model.RecommendationExcellent {
		t.Errorf("recommendation = %q, want %q", result.Recommendation, model.RecommendationExcellent)
	}
	if !result.CanApply {
		t.Error("canApply should be true")
	}
	if !reflect.DeepEqual(result.Details.Skills.Missing, []string{"Kubernetes"}) {
		t.Errorf("missing skills = %v, want [Kubernetes]", result.Details.Skills.Missing)
	}
}

// An on-site offer against a full-remote talent surfaces the incompatible
// verdict in the breakdown without touching the arithmetic score.
func TestEvaluate_MobilityVetoDoesNotChangeScore(t *testing.T) {
	offer := javaOffer()
	baseline := matching.Evaluate(consultant(), offer, nil, false)

	offer.Mobility = model.MobilityOnSite
	vetoed := matching.Evaluate(consultant(), offer, nil, false)

	if vetoed.Details.Location.Status != model.StatusIncompatible {
		t.Errorf("location status = %q, want %q", vetoed.Details.Location.Status, model.StatusIncompatible)
	}
	if vetoed.Score != baseline.Score {
		t.Errorf("score changed by mobility veto: %d != %d", vetoed.Score, baseline.Score)
	}
}

// A mission inside the offer window blocks the application regardless of the
// other sub-scores, and the conflict message overrides the recommendation.
func TestEvaluate_MissionConflictVeto(t *testing.T) {
	offer := javaOffer()
	offer.StartDate = datePtr(2026, time.September, 1)

	calendar := []model.CalendarEntry{
		{TalentID: "talent-1", Date: time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC), Type: model.EntryInMission},
	}

	result := matching.Evaluate(consultant(), offer, calendar, false)

	if result.Details.Availability.Score != 20 {
		t.Errorf("availability score = %d, want 20", result.Details.Availability.Score)
	}
	if result.Details.Availability.Status != model.StatusEnMission {
		t.Errorf("availability status = %q, want %q", result.Details.Availability.Status, model.StatusEnMission)
	}
	if result.CanApply {
		t.Error("canApply must be false on a mission conflict")
	}
	if !strings.Contains(result.Message, "mission") {
		t.Errorf("message %q should state the mission conflict", result.Message)
	}
}

// The default 90-day window applies when the offer has no end date: an
// entry 120 days after the start is not a conflict.
func TestEvaluate_DefaultWindowEnd(t *testing.T) {
	offer := javaOffer()
	offer.StartDate = datePtr(2026, time.September, 1)

	calendar := []model.CalendarEntry{
		{Date: time.Date(2026, time.December, 30, 0, 0, 0, 0, time.UTC), Type: model.EntryInMission},
	}

	result := matching.Evaluate(consultant(), offer, calendar, false)
	if result.Details.Availability.Score != 100 {
		t.Errorf("availability score = %d, want 100 (entry outside 90-day default window)", result.Details.Availability.Score)
	}
	if !result.CanApply {
		t.Error("canApply should be true when the mission is outside the window")
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	offer := javaOffer()
	offer.StartDate = datePtr(2026, time.September, 1)
	calendar := []model.CalendarEntry{
		{Date: time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC), Type: model.EntryLeave},
	}

	first := matching.Evaluate(consultant(), offer, calendar, true)
	second := matching.Evaluate(consultant(), offer, calendar, true)
	if !reflect.DeepEqual(first, second) {
		t.Error("Evaluate must be deterministic for unchanged inputs")
	}
	if !first.AlreadyApplied {
		t.Error("alreadyApplied flag should pass through")
	}
}

// Score stays in [0,100] across a grid of profile/offer shapes.
func TestEvaluate_ScoreBounds(t *testing.T) {
	profiles := []model.TalentProfile{
		{},
		{Skills: []string{"cobol"}, Availability: model.AvailabilityUnavailable},
		{Skills: []string{"go"}, ExperienceYears: intPtr(0), DailyRate: intPtr(2000), Availability: model.AvailabilityWithin2Months},
		consultant(),
	}
	offers := []model.Offer{
		{},
		javaOffer(),
		{RequiredSkills: []string{"go", "rust", "zig"}, MinExperience: intPtr(15), RateMax: intPtr(300), Mobility: model.MobilityOnSite, StartDate: datePtr(2026, time.September, 1)},
	}
	for _, p := range profiles {
		for _, o := range offers {
			result := matching.Evaluate(p, o, nil, false)
			if result.Score < 0 || result.Score > 100 {
				t.Errorf("score %d out of [0,100] for profile %+v offer %+v", result.Score, p, o)
			}
		}
	}
}

// Below the weak tier, applying stays possible while the skill sub-score
// holds at 30; under that the application is blocked.
func TestEvaluate_NotRecommendedGatesOnSkills(t *testing.T) {
	profile := model.TalentProfile{
		Skills:          []string{"cobol"},
		ExperienceYears: intPtr(0),
		DailyRate:       intPtr(2000),
		Availability:    model.AvailabilityUnavailable,
	}
	offer := model.Offer{
		RequiredSkills: []string{"go", "rust", "kubernetes"},
		MinExperience:  intPtr(10),
		RateMax:        intPtr(400),
		Status:         model.OfferPublished,
	}

	result := matching.Evaluate(profile, offer, nil, false)
	if result.Recommendation != model.RecommendationNotRecommended {
		t.Fatalf("recommendation = %q, want %q", result.Recommendation, model.RecommendationNotRecommended)
	}
	if result.Details.Skills.Score != 0 {
		t.Errorf("skills score = %d, want 0", result.Details.Skills.Score)
	}
	if result.CanApply {
		t.Error("canApply should be false below the weak tier with no skill match")
	}
}

// ── Sub-score rules ────────────────────────────────────────────────────────

func TestEvaluateExperienceRules(t *testing.T) {
	cases := []struct {
		name       string
		talent     *int
		required   *int
		wantScore  int
		wantStatus string
	}{
		{"no minimum", intPtr(2), nil, 100, model.StatusOK},
		{"exact match", intPtr(3), intPtr(3), 100, model.StatusOK},
		{"one year short", intPtr(2), intPtr(3), 80, model.StatusBelowMinimum},
		{"four years short", intPtr(1), intPtr(5), 20, model.StatusBelowMinimum},
		{"floor at zero", intPtr(0), intPtr(10), 0, model.StatusBelowMinimum},
		{"overqualified", intPtr(12), intPtr(3), 90, model.StatusOverqualified},
		{"five over is still ok", intPtr(8), intPtr(3), 100, model.StatusOK},
		{"unknown experience", nil, intPtr(3), 80, model.StatusNotSpecified},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := model.TalentProfile{ExperienceYears: c.talent, Availability: model.AvailabilityImmediate}
			o := model.Offer{MinExperience: c.required}
			result := matching.Evaluate(p, o, nil, false)
			if result.Details.Experience.Score != c.wantScore {
				t.Errorf("experience score = %d, want %d", result.Details.Experience.Score, c.wantScore)
			}
			if result.Details.Experience.Status != c.wantStatus {
				t.Errorf("experience status = %q, want %q", result.Details.Experience.Status, c.wantStatus)
			}
		})
	}
}

func TestEvaluateRateRules(t *testing.T) {
	cases := []struct {
		name       string
		talent     *int
		offerMin   *int
		offerMax   *int
		wantScore  int
		wantStatus string
	}{
		{"unset rate", nil, intPtr(400), intPtr(600), 80, model.StatusNotSpecified},
		{"in range", intPtr(500), intPtr(400), intPtr(600), 100, model.StatusOK},
		{"no range at all", intPtr(500), nil, nil, 100, model.StatusOK},
		{"slightly above max tolerated", intPtr(700), nil, intPtr(600), 100, model.StatusOK},
		{"far above max", intPtr(900), nil, intPtr(600), 40, model.StatusTooHigh},
		{"slightly below min tolerated", intPtr(300), intPtr(400), nil, 100, model.StatusOK},
		{"far below min", intPtr(250), intPtr(400), nil, 70, model.StatusTooLow},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := model.TalentProfile{DailyRate: c.talent, Availability: model.AvailabilityImmediate}
			o := model.Offer{RateMin: c.offerMin, RateMax: c.offerMax}
			result := matching.Evaluate(p, o, nil, false)
			if result.Details.Rate.Score != c.wantScore {
				t.Errorf("rate score = %d, want %d", result.Details.Rate.Score, c.wantScore)
			}
			if result.Details.Rate.Status != c.wantStatus {
				t.Errorf("rate status = %q, want %q", result.Details.Rate.Status, c.wantStatus)
			}
		})
	}
}

func TestEvaluateAvailabilityRules(t *testing.T) {
	start := datePtr(2026, time.September, 1)
	inWindow := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name         string
		availability model.Availability
		entries      []model.CalendarEntry
		wantScore    int
		wantStatus   string
	}{
		{"free calendar, immediate", model.AvailabilityImmediate, nil, 100, model.StatusAvailable},
		{"leave in window", model.AvailabilityImmediate,
			[]model.CalendarEntry{{Date: inWindow, Type: model.EntryLeave}}, 60, model.StatusBusy},
		{"mission beats leave", model.AvailabilityImmediate,
			[]model.CalendarEntry{{Date: inWindow, Type: model.EntryLeave}, {Date: inWindow.AddDate(0, 0, 1), Type: model.EntryInMission}},
			20, model.StatusEnMission},
		{"profile unavailable forces 30", model.AvailabilityUnavailable, nil, 30, model.StatusUnavailable},
		{"within 15 days keeps score", model.AvailabilityWithin15Days, nil, 100, model.StatusAvailable},
		{"within a month downgrades", model.AvailabilityWithin1Month, nil, 80, model.StatusSoon},
		{"soon never raises a busy score", model.AvailabilityWithin2Months,
			[]model.CalendarEntry{{Date: inWindow, Type: model.EntrySickLeave}}, 60, model.StatusBusy},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := model.TalentProfile{Availability: c.availability}
			o := model.Offer{StartDate: start}
			result := matching.Evaluate(p, o, c.entries, false)
			if result.Details.Availability.Score != c.wantScore {
				t.Errorf("availability score = %d, want %d", result.Details.Availability.Score, c.wantScore)
			}
			if result.Details.Availability.Status != c.wantStatus {
				t.Errorf("availability status = %q, want %q", result.Details.Availability.Status, c.wantStatus)
			}
		})
	}
}

// Conflicting days are reported per entry type for the explanation.
func TestEvaluate_ConflictBreakdown(t *testing.T) {
	offer := javaOffer()
	offer.StartDate = datePtr(2026, time.September, 1)

	day := func(d int) time.Time { return time.Date(2026, time.September, d, 0, 0, 0, 0, time.UTC) }
	calendar := []model.CalendarEntry{
		{Date: day(2), Type: model.EntryInMission},
		{Date: day(3), Type: model.EntryInMission},
		{Date: day(4), Type: model.EntryLeave},
		{Date: day(5), Type: model.EntrySickLeave},
		{Date: time.Date(2027, time.January, 4, 0, 0, 0, 0, time.UTC), Type: model.EntryLeave}, // outside window
	}

	result := matching.Evaluate(consultant(), offer, calendar, false)
	conflicts := result.Details.Availability.Conflicts
	if len(conflicts) != 3 {
		t.Fatalf("conflicts = %v, want 3 lines", conflicts)
	}
	if !strings.Contains(conflicts[0], "2 jour(s) en mission") {
		t.Errorf("conflicts[0] = %q, want mission day count", conflicts[0])
	}
}

// ── Recommendation tiers ───────────────────────────────────────────────────

func TestRecommendationThresholds(t *testing.T) {
	// Drive the final score through the skill dimension only: with all other
	// sub-scores at 100 the total is skills*0.5 + 50.
	cases := []struct {
		matched  int
		total    int
		wantTier string
	}{
		{3, 3, model.RecommendationExcellent}, // 100 → 100
		{2, 3, model.RecommendationExcellent}, // 67 → 84
		{1, 3, model.RecommendationGood},      // 33 → 67
		{0, 3, model.RecommendationMedium},    // 0 → 50
	}
	for _, c := range cases {
		skills := []string{"go", "rust", "zig"}
		p := model.TalentProfile{
			Skills:       skills[:c.matched],
			DailyRate:    intPtr(500),
			Availability: model.AvailabilityImmediate,
		}
		o := model.Offer{RequiredSkills: skills}
		result := matching.Evaluate(p, o, nil, false)
		if result.Recommendation != c.wantTier {
			t.Errorf("matched %d/%d: recommendation = %q (score %d), want %q",
				c.matched, c.total, result.Recommendation, result.Score, c.wantTier)
		}
	}
}
