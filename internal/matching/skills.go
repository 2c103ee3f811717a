// Package matching implements the compatibility score engine.
//
// The package splits in two layers: pure evaluation functions over already
// loaded entities (skills.go, evaluate.go) and a repository-backed Service
// that fetches inputs and delegates to them (service.go). The pure layer has
// no I/O and no failure modes.
package matching

import "strings"

// SkillSatisfied reports whether any talent skill satisfies the offer skill.
// A skill is satisfied by bidirectional substring containment after
// lower-casing, so "js" matches "javascript" and "javascript" matches "js".
// Deliberately permissive: abbreviations match at the cost of the occasional
// false positive ("c" also matches "c++").
func SkillSatisfied(talentSkills []string, skill string) bool {
	needle := strings.ToLower(strings.TrimSpace(skill))
	if needle == "" {
		return false
	}
	for _, ts := range talentSkills {
		have := strings.ToLower(strings.TrimSpace(ts))
		if have == "" {
			continue
		}
		if strings.Contains(needle, have) || strings.Contains(have, needle) {
			return true
		}
	}
	return false
}

// MatchSkills returns the subset of offerSkills satisfied by talentSkills,
// preserving the offer's order. Empty inputs yield an empty result.
func MatchSkills(talentSkills, offerSkills []string) []string {
	matched := make([]string, 0, len(offerSkills))
	for _, skill := range offerSkills {
		if SkillSatisfied(talentSkills, skill) {
			matched = append(matched, skill)
		}
	}
	return matched
}
