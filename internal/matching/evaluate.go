package matching

import (
	"fmt"
	"math"
	"time"

	"talentmatch/matching-service/internal/model"
)

// Scoring weights. The location check is a pass/fail veto surfaced in the
// breakdown and does not carry a weight.
const (
	weightSkills       = 0.50
	weightExperience   = 0.20
	weightRate         = 0.15
	weightAvailability = 0.15
)

// Recommendation tier thresholds on the final score.
const (
	thresholdExcellent = 80
	thresholdGood      = 65
	thresholdMedium    = 50
	thresholdWeak      = 35

	// Below thresholdWeak, applying is still possible as long as the skill
	// sub-score reaches this floor.
	minSkillScoreToApply = 30
)

// Evaluate computes the full MatchResult for one (talent, offer) pair.
// Pure function: deterministic, no I/O, never fails. Missing optional fields
// degrade to neutral sub-scores.
func Evaluate(p model.TalentProfile, o model.Offer, calendar []model.CalendarEntry, alreadyApplied bool) model.MatchResult {
	skills := evaluateSkills(p, o)
	experience := evaluateExperience(p, o)
	rate := evaluateRate(p, o)
	availability := evaluateAvailability(p, o, calendar)
	location := evaluateLocation(p, o)

	weighted := float64(skills.Score)*weightSkills +
		float64(experience.Score)*weightExperience +
		float64(rate.Score)*weightRate +
		float64(availability.Score)*weightAvailability
	score := int(math.Round(weighted))

	recommendation, message := recommend(score)

	canApply := true
	if score < thresholdWeak && skills.Score < minSkillScoreToApply {
		canApply = false
	}

	// A mission conflict is a hard veto: it blocks the application and its
	// message overrides any recommendation text.
	if availability.Status == model.StatusEnMission {
		canApply = false
		message = "Vous êtes en mission sur la période de cette offre : candidature impossible."
	}

	return model.MatchResult{
		Score:          score,
		CanApply:       canApply,
		Recommendation: recommendation,
		Message:        message,
		Details: model.MatchDetails{
			Skills:       skills,
			Experience:   experience,
			Rate:         rate,
			Availability: availability,
			Location:     location,
		},
		AlreadyApplied: alreadyApplied,
	}
}

// ─── Dimension evaluators ────────────────────────────────────────────────────

// evaluateSkills scores matched required skills. An offer without required
// skills scores 100 by convention. Desired-skill matches are recorded as
// bonus for display only.
func evaluateSkills(p model.TalentProfile, o model.Offer) model.SkillsDetail {
	detail := model.SkillsDetail{
		Matched: []string{},
		Missing: []string{},
		Bonus:   MatchSkills(p.Skills, o.DesiredSkills),
		Score:   100,
	}
	if len(o.RequiredSkills) == 0 {
		return detail
	}

	detail.Matched = MatchSkills(p.Skills, o.RequiredSkills)
	for _, skill := range o.RequiredSkills {
		if !SkillSatisfied(p.Skills, skill) {
			detail.Missing = append(detail.Missing, skill)
		}
	}
	detail.Score = int(math.Round(float64(len(detail.Matched)) / float64(len(o.RequiredSkills)) * 100))
	return detail
}

// evaluateExperience compares the talent's years of experience with the
// offer's minimum. Each missing year costs 20 points; more than 5 years
// above the minimum takes a small overqualification penalty.
func evaluateExperience(p model.TalentProfile, o model.Offer) model.ExperienceDetail {
	detail := model.ExperienceDetail{Required: o.MinExperience}
	if p.ExperienceYears != nil {
		detail.Actual = *p.ExperienceYears
	}

	if o.MinExperience == nil {
		detail.Score = 100
		detail.Status = model.StatusOK
		detail.Message = "Aucune expérience minimale requise."
		return detail
	}

	if p.ExperienceYears == nil {
		detail.Score = 80
		detail.Status = model.StatusNotSpecified
		detail.Message = "Expérience non renseignée sur votre profil."
		return detail
	}

	diff := *p.ExperienceYears - *o.MinExperience
	switch {
	case diff < 0:
		score := 100 + diff*20
		if score < 0 {
			score = 0
		}
		detail.Score = score
		detail.Status = model.StatusBelowMinimum
		detail.Message = fmt.Sprintf("Il vous manque %d an(s) d'expérience pour cette offre.", -diff)
	case diff > 5:
		detail.Score = 90
		detail.Status = model.StatusOverqualified
		detail.Message = "Votre expérience dépasse largement le besoin de l'offre."
	default:
		detail.Score = 100
		detail.Status = model.StatusOK
		detail.Message = "Votre expérience correspond au besoin de l'offre."
	}
	return detail
}

// evaluateRate compares the talent's TJM with the offer's range. A missing
// talent rate is penalized for missing data, never disqualifying. The range
// is elastic: up to 20% above the max and down to 30% below the min still
// score full marks.
func evaluateRate(p model.TalentProfile, o model.Offer) model.RateDetail {
	detail := model.RateDetail{OfferMin: o.RateMin, OfferMax: o.RateMax, Actual: p.DailyRate}

	if p.DailyRate == nil {
		detail.Score = 80
		detail.Status = model.StatusNotSpecified
		detail.Message = "TJM non renseigné sur votre profil."
		return detail
	}

	rate := float64(*p.DailyRate)
	switch {
	case o.RateMax != nil && rate > float64(*o.RateMax)*1.2:
		detail.Score = 40
		detail.Status = model.StatusTooHigh
		detail.Message = fmt.Sprintf("Votre TJM (%d €) dépasse nettement le budget de l'offre.", *p.DailyRate)
	case o.RateMin != nil && rate < float64(*o.RateMin)*0.7:
		detail.Score = 70
		detail.Status = model.StatusTooLow
		detail.Message = fmt.Sprintf("Votre TJM (%d €) est bien en dessous de la fourchette de l'offre.", *p.DailyRate)
	default:
		detail.Score = 100
		detail.Status = model.StatusOK
		detail.Message = "Votre TJM est cohérent avec l'offre."
	}
	return detail
}

// evaluateAvailability scans the talent's calendar over the offer's
// effective window, then applies the profile-level availability status.
// A mission conflict is the hard signal picked up by the veto in Evaluate.
func evaluateAvailability(p model.TalentProfile, o model.Offer, calendar []model.CalendarEntry) model.AvailabilityDetail {
	detail := model.AvailabilityDetail{
		Status:    model.StatusAvailable,
		Message:   "Vous êtes disponible sur la période de l'offre.",
		Conflicts: []string{},
		Score:     100,
	}

	if start, end, ok := o.Window(); ok {
		var mission, leave, sick, other int
		for _, entry := range calendar {
			if !inWindow(entry.Date, start, end) {
				continue
			}
			switch entry.Type {
			case model.EntryInMission:
				mission++
			case model.EntryLeave:
				leave++
			case model.EntrySickLeave:
				sick++
			default:
				other++
			}
		}

		detail.Conflicts = conflictLines(mission, leave, sick, other)
		if mission > 0 {
			detail.Score = 20
			detail.Status = model.StatusEnMission
			detail.Message = "Vous êtes en mission sur la période de l'offre."
		} else if leave+sick+other > 0 {
			detail.Score = 60
			detail.Status = model.StatusBusy
			detail.Message = "Votre calendrier contient des indisponibilités sur la période de l'offre."
		}
	}

	switch p.Availability {
	case model.AvailabilityUnavailable:
		// Forced down regardless of the calendar. The en_mission status is
		// kept when present so the application veto still fires.
		detail.Score = 30
		if detail.Status != model.StatusEnMission {
			detail.Status = model.StatusUnavailable
			detail.Message = "Votre profil est indiqué comme indisponible."
		}
	case model.AvailabilityImmediate, model.AvailabilityWithin15Days:
		// Keeps the calendar-derived score.
	default:
		if detail.Score > 80 {
			detail.Score = 80
			detail.Status = model.StatusSoon
			detail.Message = "Vous serez disponible prochainement, pas immédiatement."
		}
	}

	return detail
}

// evaluateLocation surfaces the mobility veto: an on-site offer is
// incompatible with a full-remote talent. The verdict is shown in the
// breakdown; it does not change the numeric score.
func evaluateLocation(p model.TalentProfile, o model.Offer) model.LocationDetail {
	if o.Mobility == model.MobilityOnSite && p.Mobility == model.MobilityFullRemote {
		return model.LocationDetail{
			Status:  model.StatusIncompatible,
			Message: "L'offre exige une présence sur site et votre profil est en full remote.",
		}
	}
	return model.LocationDetail{
		Status:  model.StatusCompatible,
		Message: "Mobilité compatible avec l'offre.",
	}
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// inWindow reports whether d falls inside [start, end], bounds included.
func inWindow(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

func conflictLines(mission, leave, sick, other int) []string {
	lines := []string{}
	if mission > 0 {
		lines = append(lines, fmt.Sprintf("%d jour(s) en mission", mission))
	}
	if leave > 0 {
		lines = append(lines, fmt.Sprintf("%d jour(s) de congés", leave))
	}
	if sick > 0 {
		lines = append(lines, fmt.Sprintf("%d jour(s) d'arrêt maladie", sick))
	}
	if other > 0 {
		lines = append(lines, fmt.Sprintf("%d jour(s) d'indisponibilité", other))
	}
	return lines
}

// recommend maps a final score to a recommendation tier and its default
// user-facing message.
func recommend(score int) (string, string) {
	switch {
	case score >= thresholdExcellent:
		return model.RecommendationExcellent, "Excellente compatibilité : cette offre correspond très bien à votre profil."
	case score >= thresholdGood:
		return model.RecommendationGood, "Bonne compatibilité : cette offre correspond à votre profil."
	case score >= thresholdMedium:
		return model.RecommendationMedium, "Compatibilité moyenne : certains critères de l'offre ne sont pas remplis."
	case score >= thresholdWeak:
		return model.RecommendationWeak, "Compatibilité faible : cette offre s'éloigne de votre profil."
	default:
		return model.RecommendationNotRecommended, "Offre non recommandée : votre profil ne correspond pas aux critères."
	}
}
