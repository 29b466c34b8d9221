package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesOpening_RoleCategory(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		opening Opening
		want    bool
	}{
		{
			name:    "founder matches co-founder search",
			profile: Profile{Role: "founder"},
			opening: Opening{Role: "Co-Founder Search"},
			want:    true,
		},
		{
			name:    "role is case-insensitive",
			profile: Profile{Role: "Designer"},
			opening: Opening{Role: "senior DESIGNER"},
			want:    true,
		},
		{
			name:    "unrelated role does not match",
			profile: Profile{Role: "founder"},
			opening: Opening{Role: "Backend Developer"},
			want:    false,
		},
		{
			name:    "talent role never matches by name alone",
			profile: Profile{Role: "talent"},
			opening: Opening{Role: "talent scout"},
			want:    false,
		},
		{
			name:    "empty role does not match",
			profile: Profile{Role: ""},
			opening: Opening{Role: "Backend Developer"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesOpening(tt.profile, tt.opening))
		})
	}
}

func TestMatchesOpening_SkillOverlap(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		opening Opening
		want    bool
	}{
		{
			name:    "skill equals tech stack entry",
			profile: Profile{Role: "talent", Skills: []string{"React"}},
			opening: Opening{Role: "Frontend Eng", TechStack: []string{"React", "CSS"}},
			want:    true,
		},
		{
			name:    "tech stack comparison is case-insensitive",
			profile: Profile{Role: "talent", Skills: []string{"react"}},
			opening: Opening{Role: "Frontend Eng", TechStack: []string{"React"}},
			want:    true,
		},
		{
			name:    "skill appears in role title",
			profile: Profile{Role: "talent", Skills: []string{"frontend"}},
			opening: Opening{Role: "Frontend Eng", TechStack: nil},
			want:    true,
		},
		{
			name:    "no overlap",
			profile: Profile{Role: "talent", Skills: []string{"React"}},
			opening: Opening{Role: "Sales Lead", TechStack: []string{}},
			want:    false,
		},
		{
			name:    "blank skills are skipped",
			profile: Profile{Role: "other", Skills: []string{"", "  "}},
			opening: Opening{Role: "Backend Developer", TechStack: []string{"Go"}},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesOpening(tt.profile, tt.opening))
		})
	}
}

func TestMatchesOpening_TalentFallback(t *testing.T) {
	profile := Profile{Role: "talent"}

	assert.True(t, MatchesOpening(profile, Opening{Role: "Backend Developer"}))
	assert.True(t, MatchesOpening(profile, Opening{Role: "Engineering Manager"}))
	assert.False(t, MatchesOpening(profile, Opening{Role: "Accountant"}))

	// The fallback applies only to the plain talent role
	assert.False(t, MatchesOpening(Profile{Role: "founder"}, Opening{Role: "Backend Developer"}))

	// A talent user who lists skills is judged by those skills alone
	assert.False(t, MatchesOpening(Profile{Role: "talent", Skills: []string{"React"}}, Opening{Role: "Sales Lead"}))
	assert.True(t, MatchesOpening(Profile{Role: "talent", Skills: []string{"", "  "}}, Opening{Role: "Sales Lead"}))
}

func TestMatchesCompany_ZeroOpenings(t *testing.T) {
	profile := Profile{Role: "talent", Skills: []string{"React"}}

	assert.False(t, MatchesCompany(profile, nil))
	assert.False(t, MatchesCompany(profile, []Opening{}))
}

func TestMatchesCompany_AnyOpeningSuffices(t *testing.T) {
	profile := Profile{Role: "talent", Skills: []string{"Go"}}
	openings := []Opening{
		{Role: "Sales Lead"},
		{Role: "Backend", TechStack: []string{"Go", "Postgres"}},
	}

	assert.True(t, MatchesCompany(profile, openings))
}

// Adding a skill that appears in some opening's tech stack can only grow the
// matched set, never shrink it.
func TestMatchesCompany_SkillMonotonicity(t *testing.T) {
	tests := []struct {
		name     string
		openings []Opening
		skill    string
	}{
		{
			name:     "skill from the stack of a keyword-matched opening",
			openings: []Opening{{Role: "Backend Developer", TechStack: []string{"Go"}}},
			skill:    "Go",
		},
		{
			name: "skill from one opening among several",
			openings: []Opening{
				{Role: "Frontend Eng", TechStack: []string{"React", "CSS"}},
				{Role: "Engineering Manager", TechStack: []string{"React"}},
			},
			skill: "React",
		},
		{
			name:     "zero openings stay unmatched either way",
			openings: nil,
			skill:    "React",
		},
	}

	before := Profile{Role: "talent", Skills: nil}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			after := Profile{Role: "talent", Skills: []string{tt.skill}}
			if MatchesCompany(before, tt.openings) {
				assert.True(t, MatchesCompany(after, tt.openings),
					"adding %q must not remove a match", tt.skill)
			}
		})
	}
}

func TestMatchesOpening_Deterministic(t *testing.T) {
	profile := Profile{Role: "talent", Skills: []string{"React", "Go"}}
	opening := Opening{Role: "Fullstack Developer", TechStack: []string{"Go", "React"}}

	first := MatchesOpening(profile, opening)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, MatchesOpening(profile, opening))
	}
}
