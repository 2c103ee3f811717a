package model

import "fmt"

// ParseAvailability converts a raw string to an Availability, returning an
// error for unknown values.
func ParseAvailability(s string) (Availability, error) {
	a := Availability(s)
	switch a {
	case AvailabilityImmediate, AvailabilityWithin15Days, AvailabilityWithin1Month,
		AvailabilityWithin2Months, AvailabilityUnavailable:
		return a, nil
	}
	return "", fmt.Errorf("unknown availability status %q", s)
}

// ParseMobility converts a raw string to a Mobility, returning an error for
// unknown values.
func ParseMobility(s string) (Mobility, error) {
	m := Mobility(s)
	switch m {
	case MobilityFullRemote, MobilityHybrid, MobilityOnSite, MobilityFlexible:
		return m, nil
	}
	return "", fmt.Errorf("unknown mobility %q", s)
}

// ParseEntryType converts a raw string to an EntryType, returning an error
// for unknown values.
func ParseEntryType(s string) (EntryType, error) {
	t := EntryType(s)
	switch t {
	case EntryInMission, EntryLeave, EntrySickLeave, EntryUnavailable, EntryOther:
		return t, nil
	}
	return "", fmt.Errorf("unknown calendar entry type %q", s)
}

// ParseFrequency converts a raw string to a Frequency, returning an error
// for unknown values.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(s)
	switch f {
	case FrequencyInstant, FrequencyDaily, FrequencyWeekly:
		return f, nil
	}
	return "", fmt.Errorf("unknown alert frequency %q", s)
}

// IsPeriodic returns true for the frequencies dispatched by the cron path.
func (f Frequency) IsPeriodic() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}
