package model_test

import (
	"testing"
	"time"

	"talentmatch/matching-service/internal/model"
)

// ─── Enum parsing ────────────────────────────────────────────────────────────

func TestParseAvailability(t *testing.T) {
	valid := []string{"IMMEDIATE", "WITHIN_15_DAYS", "WITHIN_1_MONTH", "WITHIN_2_MONTHS", "UNAVAILABLE"}
	for _, s := range valid {
		a, err := model.ParseAvailability(s)
		if err != nil {
			t.Errorf("ParseAvailability(%q): %v", s, err)
		}
		if string(a) != s {
			t.Errorf("ParseAvailability(%q) = %q", s, a)
		}
	}
	for _, s := range []string{"", "immediate", "NOW", "AVAILABLE"} {
		if _, err := model.ParseAvailability(s); err == nil {
			t.Errorf("ParseAvailability(%q): expected error", s)
		}
	}
}

func TestParseMobility(t *testing.T) {
	valid := []string{"FULL_REMOTE", "HYBRID", "ON_SITE", "FLEXIBLE"}
	for _, s := range valid {
		if _, err := model.ParseMobility(s); err != nil {
			t.Errorf("ParseMobility(%q): %v", s, err)
		}
	}
	for _, s := range []string{"", "remote", "REMOTE", "onsite"} {
		if _, err := model.ParseMobility(s); err == nil {
			t.Errorf("ParseMobility(%q): expected error", s)
		}
	}
}

func TestParseEntryType(t *testing.T) {
	valid := []string{"IN_MISSION", "LEAVE", "SICK_LEAVE", "UNAVAILABLE", "OTHER"}
	for _, s := range valid {
		if _, err := model.ParseEntryType(s); err != nil {
			t.Errorf("ParseEntryType(%q): %v", s, err)
		}
	}
	if _, err := model.ParseEntryType("VACATION"); err == nil {
		t.Error("ParseEntryType(VACATION): expected error")
	}
}

func TestParseFrequency(t *testing.T) {
	cases := []struct {
		in       string
		want     model.Frequency
		periodic bool
	}{
		{"INSTANT", model.FrequencyInstant, false},
		{"DAILY", model.FrequencyDaily, true},
		{"WEEKLY", model.FrequencyWeekly, true},
	}
	for _, c := range cases {
		f, err := model.ParseFrequency(c.in)
		if err != nil {
			t.Errorf("ParseFrequency(%q): %v", c.in, err)
			continue
		}
		if f != c.want {
			t.Errorf("ParseFrequency(%q) = %q", c.in, f)
		}
		if f.IsPeriodic() != c.periodic {
			t.Errorf("%q.IsPeriodic() = %v, want %v", f, f.IsPeriodic(), c.periodic)
		}
	}
	for _, s := range []string{"", "daily", "MONTHLY", "HOURLY"} {
		if _, err := model.ParseFrequency(s); err == nil {
			t.Errorf("ParseFrequency(%q): expected error", s)
		}
	}
}

// ─── Offer window ────────────────────────────────────────────────────────────

func TestOfferWindow(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

	t.Run("no start date", func(t *testing.T) {
		var o model.Offer
		if _, _, ok := o.Window(); ok {
			t.Error("offer with no start date should have no window")
		}
	})

	t.Run("explicit end", func(t *testing.T) {
		o := model.Offer{StartDate: &start, EndDate: &end}
		s, e, ok := o.Window()
		if !ok || !s.Equal(start) || !e.Equal(end) {
			t.Errorf("Window() = %v, %v, %v", s, e, ok)
		}
	})

	t.Run("default end", func(t *testing.T) {
		o := model.Offer{StartDate: &start}
		_, e, ok := o.Window()
		if !ok {
			t.Fatal("expected a window")
		}
		want := start.AddDate(0, 0, model.DefaultMissionDays)
		if !e.Equal(want) {
			t.Errorf("default end = %v, want %v", e, want)
		}
	})
}
