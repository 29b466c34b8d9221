package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the database row for a platform participant.
// PasswordHash is nil for accounts created through an external identity
// provider; SecurityAnswerHash is nil until a security question is set.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID                 uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name               string     `bun:"name,notnull"`
	Email              string     `bun:"email,notnull,unique"`
	PasswordHash       *string    `bun:"password_hash"`
	SecurityQuestion   string     `bun:"security_question"`
	SecurityAnswerHash *string    `bun:"security_answer_hash"`
	Country            string     `bun:"country"`
	Experience         string     `bun:"experience"`
	Role               string     `bun:"role"`
	Skills             []string   `bun:"skills,array"`
	Achievements       string     `bun:"achievements"`
	Seeking            string     `bun:"seeking"`
	Motto              string     `bun:"motto"`
	Availability       string     `bun:"availability"`
	ProfilePicture     string     `bun:"profile_picture"`
	IsOnboarded        bool       `bun:"is_onboarded,notnull,default:false"`
	LinkedInURL        string     `bun:"linkedin_url"`
	GitHubURL          string     `bun:"github_url"`
	PortfolioURL       string     `bun:"portfolio_url"`
	CreatedAt          time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt          time.Time  `bun:"updated_at,notnull,default:current_timestamp"`
}

// Opening is embedded in Company.Openings as JSONB; it has no row identity.
type Opening struct {
	Role          string   `json:"role"`
	Experience    string   `json:"experience"`
	TechStack     []string `json:"techStack"`
	WorkModel     string   `json:"workModel"`
	Collaboration string   `json:"collaboration"`
}

// Company is the database row for an organization profile.
type Company struct {
	bun.BaseModel `bun:"table:companies,alias:c"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name         string    `bun:"name,notnull"`
	Tagline      string    `bun:"tagline,notnull"`
	Description  string    `bun:"description,notnull"`
	Industry     string    `bun:"industry,notnull"`
	FundingStage string    `bun:"funding_stage,notnull"`
	Logo         string    `bun:"logo"`
	Benefits     []string  `bun:"benefits,array"`
	Openings     []Opening `bun:"openings,type:jsonb"`
	Website      string    `bun:"website"`
	Location     string    `bun:"location"`
	CreatorID    uuid.UUID `bun:"creator_id,notnull,type:uuid"`
	Creator      *User     `bun:"rel:belongs-to,join:creator_id=id"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// SavedCompany is one membership in a user's saved-companies set.
// The composite primary key makes duplicate bookmarks impossible.
type SavedCompany struct {
	bun.BaseModel `bun:"table:user_saved_companies,alias:usc"`

	UserID    uuid.UUID `bun:"user_id,pk,type:uuid"`
	CompanyID uuid.UUID `bun:"company_id,pk,type:uuid"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// Reset request lifecycle states.
const (
	ResetRequestPending  = "pending"
	ResetRequestReviewed = "reviewed"
	ResetRequestResolved = "resolved"
)

// ResetRequest is a support ticket filed when a user cannot answer their
// security question. Mutated only by an administrative process.
type ResetRequest struct {
	bun.BaseModel `bun:"table:reset_requests,alias:rr"`

	ID         uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Email      string    `bun:"email,notnull"`
	FullName   string    `bun:"full_name,notnull"`
	Reason     string    `bun:"reason,notnull"`
	Status     string    `bun:"status,notnull,default:'pending'"`
	AdminNotes string    `bun:"admin_notes"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt  time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
