// Package match implements the relevance rules that decide whether a
// company's openings are shown to a user as recommended matches. It is a
// pure function of the profile and the openings: no storage, no ordering
// changes, no error states.
package match

import "strings"

// Profile is the slice of a user profile the matcher needs.
type Profile struct {
	Role   string
	Skills []string
}

// Opening is the slice of a job opening the matcher needs.
type Opening struct {
	Role      string
	TechStack []string
}

// talentKeywords is the generic technical-keyword fallback applied to users
// with the plain "talent" role and no listed skills.
var talentKeywords = []string{
	"developer",
	"engineer",
	"designer",
	"architect",
	"analyst",
	"manager",
	"lead",
}

// MatchesCompany reports whether any opening matches the profile. A company
// with zero openings never matches.
func MatchesCompany(p Profile, openings []Opening) bool {
	for _, opening := range openings {
		if MatchesOpening(p, opening) {
			return true
		}
	}
	return false
}

// MatchesOpening evaluates the rule cascade against one opening:
//
//  1. role-category: a specific (non-"talent") user role appearing as a
//     substring of the opening's role title;
//  2. skill overlap: any user skill appearing in the role title, or equal
//     (case-insensitively) to a tech-stack entry;
//  3. talent fallback: for "talent" users with no usable skills, a generic
//     technical keyword in the role title.
//
// Later rules are only consulted when earlier ones did not match. A user who
// lists skills is judged by those skills alone; the keyword fallback exists
// for profiles that carry nothing but the generic role.
func MatchesOpening(p Profile, o Opening) bool {
	openingRole := strings.ToLower(o.Role)
	userRole := strings.ToLower(strings.TrimSpace(p.Role))

	if userRole != "" && userRole != "talent" && strings.Contains(openingRole, userRole) {
		return true
	}

	hasSkills := false
	for _, skill := range p.Skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		hasSkills = true
		if strings.Contains(openingRole, strings.ToLower(skill)) {
			return true
		}
		for _, tech := range o.TechStack {
			if strings.EqualFold(strings.TrimSpace(tech), skill) {
				return true
			}
		}
	}

	if userRole == "talent" && !hasSkills {
		for _, keyword := range talentKeywords {
			if strings.Contains(openingRole, keyword) {
				return true
			}
		}
	}

	return false
}
