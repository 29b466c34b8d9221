package company

import (
	"time"

	"github.com/google/uuid"
)

// Work models accepted on openings.
const (
	WorkModelRemote = "Remote"
	WorkModelHybrid = "Hybrid"
	WorkModelOnsite = "Onsite"
)

// Opening is one open role inside a company. It is embedded, not
// independently addressable.
type Opening struct {
	Role          string   `json:"role"`
	Experience    string   `json:"experience"`
	TechStack     []string `json:"techStack"`
	WorkModel     string   `json:"workModel"`
	Collaboration string   `json:"collaboration"`
}

// Creator is the public view of the user who published a company.
type Creator struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	ProfilePicture string    `json:"profilePicture"`
}

// Company is one organization profile.
type Company struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Tagline      string    `json:"tagline"`
	Description  string    `json:"description"`
	Industry     string    `json:"industry"`
	FundingStage string    `json:"fundingStage"`
	Logo         string    `json:"logo"`
	Benefits     []string  `json:"benefits"`
	Openings     []Opening `json:"openings"`
	Website      string    `json:"website"`
	Location     string    `json:"location"`
	CreatorID    uuid.UUID `json:"creatorId"`
	Creator      *Creator  `json:"creator,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateParams carries the fields required to publish a company.
type CreateParams struct {
	Name         string
	Tagline      string
	Description  string
	Industry     string
	FundingStage string
	Logo         string
	Benefits     []string
	Openings     []Opening
	Website      string
	Location     string
	CreatorID    uuid.UUID
}
