// Package alert implements saved offer subscriptions: boolean matching of
// published offers against alerts, the instant and periodic notification
// dispatchers, and the subscription CRUD surface.
package alert

import (
	"strings"

	"talentmatch/matching-service/internal/matching"
	"talentmatch/matching-service/internal/model"
)

// Matches decides whether a published offer triggers the alert.
//
// The check is disjunctive: any single satisfied criterion (skills, rate,
// location or mobility) makes the whole alert match. An alert whose criteria
// are all empty matches nothing, since no signal can fire. The wide-net
// semantics are intentional and mirror what talents see in the preview.
func Matches(offer model.Offer, a model.Alert) bool {
	return matchesSkills(offer, a) ||
		matchesRate(offer, a) ||
		matchesLocation(offer, a) ||
		matchesMobility(a.Mobility, offer.Mobility)
}

// matchesSkills intersects the alert's target skills with the union of the
// offer's required and desired skills, using the same fuzzy substring rule
// as the score engine.
func matchesSkills(offer model.Offer, a model.Alert) bool {
	if len(a.Skills) == 0 {
		return false
	}
	offerSkills := make([]string, 0, len(offer.RequiredSkills)+len(offer.DesiredSkills))
	offerSkills = append(offerSkills, offer.RequiredSkills...)
	offerSkills = append(offerSkills, offer.DesiredSkills...)
	if len(offerSkills) == 0 {
		return false
	}
	for _, skill := range a.Skills {
		if matching.SkillSatisfied(offerSkills, skill) {
			return true
		}
	}
	return false
}

// matchesRate fires when the offer's budget can reach the alert's minimum
// acceptable TJM.
func matchesRate(offer model.Offer, a model.Alert) bool {
	if a.RateMin == nil || offer.RateMax == nil {
		return false
	}
	return *offer.RateMax >= *a.RateMin
}

// matchesLocation fires when any alert location and the offer location
// contain one another, case-insensitively.
func matchesLocation(offer model.Offer, a model.Alert) bool {
	if len(a.Locations) == 0 || offer.Location == nil {
		return false
	}
	offerLoc := strings.ToLower(strings.TrimSpace(*offer.Location))
	if offerLoc == "" {
		return false
	}
	for _, loc := range a.Locations {
		want := strings.ToLower(strings.TrimSpace(loc))
		if want == "" {
			continue
		}
		if strings.Contains(offerLoc, want) || strings.Contains(want, offerLoc) {
			return true
		}
	}
	return false
}

// matchesMobility fires when the offer satisfies the alert's remote-work
// preference. A FLEXIBLE preference accepts every offer; a HYBRID preference
// accepts hybrid and full-remote offers.
func matchesMobility(pref *model.Mobility, offerMobility model.Mobility) bool {
	if pref == nil {
		return false
	}
	switch *pref {
	case model.MobilityFlexible:
		return true
	case model.MobilityFullRemote:
		return offerMobility == model.MobilityFullRemote
	case model.MobilityHybrid:
		return offerMobility == model.MobilityHybrid || offerMobility == model.MobilityFullRemote
	default:
		return false
	}
}
