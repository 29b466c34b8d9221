package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/launchpair/launchpair/internal/logging"
)

var (
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidExperience = errors.New("invalid experience bracket")
)

// Store defines the persistence operations the service needs.
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Update(ctx context.Context, id uuid.UUID, patch ProfileUpdate) (*User, error)
	List(ctx context.Context, exclude uuid.UUID) ([]User, error)
}

// Service handles profile business logic.
type Service struct {
	store      Store
	hashSecret func(string) (string, error)
	logger     *logging.Logger
}

func NewService(store Store, hashSecret func(string) (string, error), logger *logging.Logger) *Service {
	return &Service{
		store:      store,
		hashSecret: hashSecret,
		logger:     logger,
	}
}

// UpdateProfileParams is a ProfileUpdate plus the plaintext secrets that must
// be hashed before they touch storage.
type UpdateProfileParams struct {
	ProfileUpdate
	Password       *string
	SecurityAnswer *string
}

// Profile returns the caller's full profile.
func (s *Service) Profile(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.store.GetByID(ctx, id)
}

// UpdateProfile applies a partial profile update. Omitted fields are left
// untouched; present fields always win, including explicit empty values.
// The onboarding flag flips to true when the update populates a role or a
// non-empty skills list, unless the caller sets it explicitly.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, params UpdateProfileParams) (*User, error) {
	patch := params.ProfileUpdate

	if patch.Role != nil && *patch.Role != "" && !contains(Roles, *patch.Role) {
		return nil, ErrInvalidRole
	}
	if patch.Experience != nil && *patch.Experience != "" && !contains(ExperienceBrackets, *patch.Experience) {
		return nil, ErrInvalidExperience
	}

	if params.Password != nil && *params.Password != "" {
		if len(*params.Password) < 8 {
			return nil, ErrPasswordTooShort
		}
		hash, err := s.hashSecret(*params.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	if params.SecurityAnswer != nil && *params.SecurityAnswer != "" {
		hash, err := s.hashSecret(*params.SecurityAnswer)
		if err != nil {
			return nil, fmt.Errorf("failed to hash security answer: %w", err)
		}
		patch.SecurityAnswerHash = &hash
	}

	// Onboarding heuristic: populating a role or skills completes onboarding.
	// An explicit isOnboarded in the update always wins.
	if patch.IsOnboarded == nil {
		roleSet := patch.Role != nil && *patch.Role != ""
		skillsSet := patch.Skills != nil && len(*patch.Skills) > 0
		if roleSet || skillsSet {
			onboarded := true
			patch.IsOnboarded = &onboarded
		}
	}

	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", id)
	return updated, nil
}

// List returns the public user directory, optionally excluding one id.
func (s *Service) List(ctx context.Context, exclude uuid.UUID) ([]User, error) {
	return s.store.List(ctx, exclude)
}

// Get returns one user's public profile by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.store.GetByID(ctx, id)
}

// MatchProfile returns the role and skills the relevance matcher needs.
func (s *Service) MatchProfile(ctx context.Context, id uuid.UUID) (string, []string, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return "", nil, err
	}
	return u.Role, u.Skills, nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
