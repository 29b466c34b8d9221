package user

import (
	"time"

	"github.com/google/uuid"
)

// Experience brackets and roles accepted on profiles. Empty means unset.
var (
	ExperienceBrackets = []string{"0-2", "3-5", "6-10", "10+"}
	Roles              = []string{"founder", "co-founder", "investor", "talent"}
)

// User is one platform participant. Secret hashes never appear in JSON;
// PasswordHash is empty for identity-provider-only accounts.
type User struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	SecurityQuestion   string    `json:"securityQuestion,omitempty"`
	SecurityAnswerHash string    `json:"-"`
	Country            string    `json:"country"`
	Experience         string    `json:"experience"`
	Role               string    `json:"role"`
	Skills             []string  `json:"skills"`
	Achievements       string    `json:"achievements"`
	Seeking            string    `json:"seeking"`
	Motto              string    `json:"motto"`
	Availability       string    `json:"availability"`
	ProfilePicture     string    `json:"profilePicture"`
	IsOnboarded        bool      `json:"isOnboarded"`
	LinkedInURL        string    `json:"linkedinUrl"`
	GitHubURL          string    `json:"githubUrl"`
	PortfolioURL       string    `json:"portfolioUrl"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// CreateParams carries the fields required to insert a new user.
type CreateParams struct {
	Name               string
	Email              string // already lowercased by the caller
	PasswordHash       *string
	SecurityQuestion   string
	SecurityAnswerHash *string
	ProfilePicture     string
	IsOnboarded        bool
}

// ProfileUpdate is an explicit partial update: a nil field is left untouched,
// a non-nil field is applied even when it points at an empty value. This is
// what lets a client clear a skills list or a free-text field.
type ProfileUpdate struct {
	Name               *string
	PasswordHash       *string
	SecurityQuestion   *string
	SecurityAnswerHash *string
	Country            *string
	Experience         *string
	Role               *string
	Skills             *[]string
	Achievements       *string
	Seeking            *string
	Motto              *string
	Availability       *string
	ProfilePicture     *string
	IsOnboarded        *bool
	LinkedInURL        *string
	GitHubURL          *string
	PortfolioURL       *string
}

// Empty reports whether the update contains no fields at all.
func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.PasswordHash == nil && p.SecurityQuestion == nil &&
		p.SecurityAnswerHash == nil && p.Country == nil && p.Experience == nil &&
		p.Role == nil && p.Skills == nil && p.Achievements == nil &&
		p.Seeking == nil && p.Motto == nil && p.Availability == nil &&
		p.ProfilePicture == nil && p.IsOnboarded == nil && p.LinkedInURL == nil &&
		p.GitHubURL == nil && p.PortfolioURL == nil
}
