package company

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/launchpair/launchpair/internal/logging"
	"github.com/launchpair/launchpair/internal/match"
)

var (
	ErrMissingCompanyFields = errors.New("name, tagline, description, industry and fundingStage are required")
	ErrOpeningMissingFields = errors.New("each opening requires a role and an experience bracket")
	ErrInvalidWorkModel     = errors.New("work model must be Remote, Hybrid or Onsite")
)

// Store defines the persistence operations the service needs.
type Store interface {
	Create(ctx context.Context, params CreateParams) (*Company, error)
	List(ctx context.Context) ([]Company, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
	ToggleSaved(ctx context.Context, userID, companyID uuid.UUID) (bool, error)
	ListSavedByUser(ctx context.Context, userID uuid.UUID) ([]Company, error)
}

// Service handles company catalog business logic.
type Service struct {
	store  Store
	cache  *Cache // nil disables caching
	logger *logging.Logger
}

func NewService(store Store, cache *Cache, logger *logging.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// Create validates and publishes a new company, then drops the catalog cache.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Company, error) {
	if params.Name == "" || params.Tagline == "" || params.Description == "" ||
		params.Industry == "" || params.FundingStage == "" {
		return nil, ErrMissingCompanyFields
	}

	for i := range params.Openings {
		opening := &params.Openings[i]
		if opening.Role == "" || opening.Experience == "" {
			return nil, ErrOpeningMissingFields
		}
		if opening.WorkModel == "" {
			opening.WorkModel = WorkModelRemote
		}
		switch opening.WorkModel {
		case WorkModelRemote, WorkModelHybrid, WorkModelOnsite:
		default:
			return nil, ErrInvalidWorkModel
		}
	}

	created, err := s.store.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("failed to invalidate catalog cache", "error", err)
		}
	}

	s.logger.Info("company published", "company_id", created.ID, "creator_id", created.CreatorID)
	return created, nil
}

// List returns the public catalog, served from cache when possible.
func (s *Service) List(ctx context.Context) ([]Company, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("catalog cache read failed", "error", err)
		} else if ok {
			return cached, nil
		}
	}

	companies, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, companies); err != nil {
			s.logger.Warn("catalog cache write failed", "error", err)
		}
	}

	return companies, nil
}

// ListByCreator returns the caller's own companies.
func (s *Service) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]Company, error) {
	return s.store.ListByCreator(ctx, creatorID)
}

// Get returns one company by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Company, error) {
	return s.store.GetByID(ctx, id)
}

// ToggleSaved flips a company's membership in the user's saved set.
func (s *Service) ToggleSaved(ctx context.Context, userID, companyID uuid.UUID) (bool, error) {
	return s.store.ToggleSaved(ctx, userID, companyID)
}

// ListSaved returns the user's saved companies in set order.
func (s *Service) ListSaved(ctx context.Context, userID uuid.UUID) ([]Company, error) {
	return s.store.ListSavedByUser(ctx, userID)
}

// Matches filters the catalog down to the companies relevant to the given
// role and skills, preserving catalog order. Each company is consulted once.
func (s *Service) Matches(ctx context.Context, role string, skills []string) ([]Company, error) {
	catalog, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	profile := match.Profile{Role: role, Skills: skills}

	matched := make([]Company, 0)
	for _, c := range catalog {
		openings := make([]match.Opening, 0, len(c.Openings))
		for _, o := range c.Openings {
			openings = append(openings, match.Opening{Role: o.Role, TechStack: o.TechStack})
		}
		if match.MatchesCompany(profile, openings) {
			matched = append(matched, c)
		}
	}

	return matched, nil
}
