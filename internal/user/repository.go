package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/launchpair/launchpair/internal/database"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Repository handles user data persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user into the database
func (r *Repository) Create(ctx context.Context, params CreateParams) (*User, error) {
	dbUser := &database.User{
		Name:               params.Name,
		Email:              params.Email,
		PasswordHash:       params.PasswordHash,
		SecurityQuestion:   params.SecurityQuestion,
		SecurityAnswerHash: params.SecurityAnswerHash,
		ProfilePicture:     params.ProfilePicture,
		IsOnboarded:        params.IsOnboarded,
		Skills:             []string{},
	}

	_, err := r.db.NewInsert().
		Model(dbUser).
		Returning("*").
		Exec(ctx)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByEmail retrieves a user by email, case-insensitively.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("lower(email) = ?", strings.ToLower(email)).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByID retrieves a user by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// List returns all users, newest first. When exclude is non-nil the matching
// user is filtered out (used by the directory to hide the caller).
func (r *Repository) List(ctx context.Context, exclude uuid.UUID) ([]User, error) {
	var dbUsers []database.User
	q := r.db.NewSelect().
		Model(&dbUsers).
		Order("created_at DESC")

	if exclude != uuid.Nil {
		q = q.Where("id != ?", exclude)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, *mapDBUserToModel(&dbUsers[i]))
	}
	return users, nil
}

// Update applies a partial update and returns the refreshed user.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, patch ProfileUpdate) (*User, error) {
	if !patch.Empty() {
		q := r.db.NewUpdate().
			Model((*database.User)(nil)).
			Where("id = ?", id).
			Set("updated_at = NOW()")

		if patch.Name != nil {
			q = q.Set("name = ?", *patch.Name)
		}
		if patch.PasswordHash != nil {
			q = q.Set("password_hash = ?", *patch.PasswordHash)
		}
		if patch.SecurityQuestion != nil {
			q = q.Set("security_question = ?", *patch.SecurityQuestion)
		}
		if patch.SecurityAnswerHash != nil {
			q = q.Set("security_answer_hash = ?", *patch.SecurityAnswerHash)
		}
		if patch.Country != nil {
			q = q.Set("country = ?", *patch.Country)
		}
		if patch.Experience != nil {
			q = q.Set("experience = ?", *patch.Experience)
		}
		if patch.Role != nil {
			q = q.Set("role = ?", *patch.Role)
		}
		if patch.Skills != nil {
			q = q.Set("skills = ?", pgdialect.Array(nonNil(*patch.Skills)))
		}
		if patch.Achievements != nil {
			q = q.Set("achievements = ?", *patch.Achievements)
		}
		if patch.Seeking != nil {
			q = q.Set("seeking = ?", *patch.Seeking)
		}
		if patch.Motto != nil {
			q = q.Set("motto = ?", *patch.Motto)
		}
		if patch.Availability != nil {
			q = q.Set("availability = ?", *patch.Availability)
		}
		if patch.ProfilePicture != nil {
			q = q.Set("profile_picture = ?", *patch.ProfilePicture)
		}
		if patch.IsOnboarded != nil {
			q = q.Set("is_onboarded = ?", *patch.IsOnboarded)
		}
		if patch.LinkedInURL != nil {
			q = q.Set("linkedin_url = ?", *patch.LinkedInURL)
		}
		if patch.GitHubURL != nil {
			q = q.Set("github_url = ?", *patch.GitHubURL)
		}
		if patch.PortfolioURL != nil {
			q = q.Set("portfolio_url = ?", *patch.PortfolioURL)
		}

		result, err := q.Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return nil, ErrNotFound
		}
	}

	return r.GetByID(ctx, id)
}

// UpdatePassword updates a user's password hash
func (r *Repository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result, err := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("password_hash = ?", passwordHash).
		Set("updated_at = NOW()").
		Where("id = ?", userID).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// nonNil normalizes a nil slice to an empty one so the array parameter is
// always a valid text[] literal.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// mapDBUserToModel converts database model to domain model
func mapDBUserToModel(dbu *database.User) *User {
	skills := dbu.Skills
	if skills == nil {
		skills = []string{}
	}

	u := &User{
		ID:               dbu.ID,
		Name:             dbu.Name,
		Email:            dbu.Email,
		SecurityQuestion: dbu.SecurityQuestion,
		Country:          dbu.Country,
		Experience:       dbu.Experience,
		Role:             dbu.Role,
		Skills:           skills,
		Achievements:     dbu.Achievements,
		Seeking:          dbu.Seeking,
		Motto:            dbu.Motto,
		Availability:     dbu.Availability,
		ProfilePicture:   dbu.ProfilePicture,
		IsOnboarded:      dbu.IsOnboarded,
		LinkedInURL:      dbu.LinkedInURL,
		GitHubURL:        dbu.GitHubURL,
		PortfolioURL:     dbu.PortfolioURL,
		CreatedAt:        dbu.CreatedAt,
		UpdatedAt:        dbu.UpdatedAt,
	}
	if dbu.PasswordHash != nil {
		u.PasswordHash = *dbu.PasswordHash
	}
	if dbu.SecurityAnswerHash != nil {
		u.SecurityAnswerHash = *dbu.SecurityAnswerHash
	}
	return u
}
