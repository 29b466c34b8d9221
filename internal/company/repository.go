package company

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/launchpair/launchpair/internal/database"
)

var (
	ErrNotFound     = errors.New("company not found")
	ErrUserNotFound = errors.New("user not found")
)

// Repository handles company data persistence, including the per-user
// saved-companies set.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new company owned by params.CreatorID.
func (r *Repository) Create(ctx context.Context, params CreateParams) (*Company, error) {
	dbCompany := &database.Company{
		Name:         params.Name,
		Tagline:      params.Tagline,
		Description:  params.Description,
		Industry:     params.Industry,
		FundingStage: params.FundingStage,
		Logo:         params.Logo,
		Benefits:     nonNil(params.Benefits),
		Openings:     mapOpeningsToRows(params.Openings),
		Website:      params.Website,
		Location:     params.Location,
		CreatorID:    params.CreatorID,
	}

	_, err := r.db.NewInsert().
		Model(dbCompany).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	return mapDBCompanyToModel(dbCompany), nil
}

// List returns the full catalog, newest first, with creators populated.
func (r *Repository) List(ctx context.Context) ([]Company, error) {
	var rows []database.Company
	err := r.db.NewSelect().
		Model(&rows).
		Relation("Creator").
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	return mapDBCompaniesToModels(rows), nil
}

// ListByCreator returns the companies published by one user.
func (r *Repository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]Company, error) {
	var rows []database.Company
	err := r.db.NewSelect().
		Model(&rows).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies by creator: %w", err)
	}

	return mapDBCompaniesToModels(rows), nil
}

// GetByID returns one company with its creator populated.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	row := new(database.Company)
	err := r.db.NewSelect().
		Model(row).
		Relation("Creator").
		Where("c.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return mapDBCompanyToModel(row), nil
}

// ToggleSaved flips the membership of companyID in userID's saved set and
// returns the resulting state. Each membership write is a single atomic
// statement, so concurrent toggles converge and can never duplicate a row.
func (r *Repository) ToggleSaved(ctx context.Context, userID, companyID uuid.UUID) (bool, error) {
	userExists, err := r.db.NewSelect().
		Model((*database.User)(nil)).
		Where("id = ?", userID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	if !userExists {
		return false, ErrUserNotFound
	}

	companyExists, err := r.db.NewSelect().
		Model((*database.Company)(nil)).
		Where("id = ?", companyID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check company: %w", err)
	}
	if !companyExists {
		return false, ErrNotFound
	}

	result, err := r.db.NewDelete().
		Model((*database.SavedCompany)(nil)).
		Where("user_id = ?", userID).
		Where("company_id = ?", companyID).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to remove saved company: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if removed > 0 {
		return false, nil
	}

	_, err = r.db.NewInsert().
		Model(&database.SavedCompany{UserID: userID, CompanyID: companyID}).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to save company: %w", err)
	}

	return true, nil
}

// ListSavedByUser returns the full company records in the user's saved set,
// in membership-creation order.
func (r *Repository) ListSavedByUser(ctx context.Context, userID uuid.UUID) ([]Company, error) {
	var rows []database.Company
	err := r.db.NewSelect().
		Model(&rows).
		Join("JOIN user_saved_companies AS usc ON usc.company_id = c.id").
		Where("usc.user_id = ?", userID).
		OrderExpr("usc.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved companies: %w", err)
	}

	return mapDBCompaniesToModels(rows), nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func mapOpeningsToRows(openings []Opening) []database.Opening {
	rows := make([]database.Opening, 0, len(openings))
	for _, o := range openings {
		rows = append(rows, database.Opening{
			Role:          o.Role,
			Experience:    o.Experience,
			TechStack:     nonNil(o.TechStack),
			WorkModel:     o.WorkModel,
			Collaboration: o.Collaboration,
		})
	}
	return rows
}

func mapRowsToOpenings(rows []database.Opening) []Opening {
	openings := make([]Opening, 0, len(rows))
	for _, row := range rows {
		openings = append(openings, Opening{
			Role:          row.Role,
			Experience:    row.Experience,
			TechStack:     nonNil(row.TechStack),
			WorkModel:     row.WorkModel,
			Collaboration: row.Collaboration,
		})
	}
	return openings
}

// mapDBCompanyToModel converts database model to domain model
func mapDBCompanyToModel(row *database.Company) *Company {
	c := &Company{
		ID:           row.ID,
		Name:         row.Name,
		Tagline:      row.Tagline,
		Description:  row.Description,
		Industry:     row.Industry,
		FundingStage: row.FundingStage,
		Logo:         row.Logo,
		Benefits:     nonNil(row.Benefits),
		Openings:     mapRowsToOpenings(row.Openings),
		Website:      row.Website,
		Location:     row.Location,
		CreatorID:    row.CreatorID,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.Creator != nil {
		c.Creator = &Creator{
			ID:             row.Creator.ID,
			Name:           row.Creator.Name,
			Email:          row.Creator.Email,
			Role:           row.Creator.Role,
			ProfilePicture: row.Creator.ProfilePicture,
		}
	}
	return c
}

func mapDBCompaniesToModels(rows []database.Company) []Company {
	companies := make([]Company, 0, len(rows))
	for i := range rows {
		companies = append(companies, *mapDBCompanyToModel(&rows[i]))
	}
	return companies
}
