package company

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchpair/launchpair/internal/logging"
)

type fakeCompanyStore struct {
	companies []Company
	saved     map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeCompanyStore(companies ...Company) *fakeCompanyStore {
	return &fakeCompanyStore{
		companies: companies,
		saved:     make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (f *fakeCompanyStore) Create(ctx context.Context, params CreateParams) (*Company, error) {
	c := Company{
		ID:           uuid.New(),
		Name:         params.Name,
		Tagline:      params.Tagline,
		Description:  params.Description,
		Industry:     params.Industry,
		FundingStage: params.FundingStage,
		Openings:     params.Openings,
		CreatorID:    params.CreatorID,
	}
	f.companies = append(f.companies, c)
	return &c, nil
}

func (f *fakeCompanyStore) List(ctx context.Context) ([]Company, error) {
	out := make([]Company, len(f.companies))
	copy(out, f.companies)
	return out, nil
}

func (f *fakeCompanyStore) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]Company, error) {
	var out []Company
	for _, c := range f.companies {
		if c.CreatorID == creatorID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCompanyStore) GetByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	for _, c := range f.companies {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeCompanyStore) ToggleSaved(ctx context.Context, userID, companyID uuid.UUID) (bool, error) {
	if _, err := f.GetByID(ctx, companyID); err != nil {
		return false, err
	}
	if f.saved[userID] == nil {
		f.saved[userID] = make(map[uuid.UUID]bool)
	}
	if f.saved[userID][companyID] {
		delete(f.saved[userID], companyID)
		return false, nil
	}
	f.saved[userID][companyID] = true
	return true, nil
}

func (f *fakeCompanyStore) ListSavedByUser(ctx context.Context, userID uuid.UUID) ([]Company, error) {
	out := make([]Company, 0)
	for _, c := range f.companies {
		if f.saved[userID][c.ID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func newCompanyService(t *testing.T, companies ...Company) (*Service, *fakeCompanyStore) {
	t.Helper()
	store := newFakeCompanyStore(companies...)
	return NewService(store, nil, logging.NewLogger(true)), store
}

func validParams() CreateParams {
	return CreateParams{
		Name:         "Acme",
		Tagline:      "We make everything",
		Description:  "A very long description",
		Industry:     "Manufacturing",
		FundingStage: "Seed",
		CreatorID:    uuid.New(),
	}
}

func TestCreate_MandatoryFields(t *testing.T) {
	svc, _ := newCompanyService(t)
	ctx := context.Background()

	fields := []func(*CreateParams){
		func(p *CreateParams) { p.Name = "" },
		func(p *CreateParams) { p.Tagline = "" },
		func(p *CreateParams) { p.Description = "" },
		func(p *CreateParams) { p.Industry = "" },
		func(p *CreateParams) { p.FundingStage = "" },
	}

	for _, clear := range fields {
		params := validParams()
		clear(&params)
		_, err := svc.Create(ctx, params)
		assert.ErrorIs(t, err, ErrMissingCompanyFields)
	}

	_, err := svc.Create(ctx, validParams())
	assert.NoError(t, err)
}

func TestCreate_OpeningValidation(t *testing.T) {
	svc, _ := newCompanyService(t)
	ctx := context.Background()

	params := validParams()
	params.Openings = []Opening{{Role: "", Experience: "3-5"}}
	_, err := svc.Create(ctx, params)
	assert.ErrorIs(t, err, ErrOpeningMissingFields)

	params.Openings = []Opening{{Role: "Backend Dev", Experience: ""}}
	_, err = svc.Create(ctx, params)
	assert.ErrorIs(t, err, ErrOpeningMissingFields)

	params.Openings = []Opening{{Role: "Backend Dev", Experience: "3-5", WorkModel: "Spaceship"}}
	_, err = svc.Create(ctx, params)
	assert.ErrorIs(t, err, ErrInvalidWorkModel)
}

func TestCreate_WorkModelDefaultsToRemote(t *testing.T) {
	svc, _ := newCompanyService(t)

	params := validParams()
	params.Openings = []Opening{{Role: "Backend Dev", Experience: "3-5"}}

	created, err := svc.Create(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, created.Openings, 1)
	assert.Equal(t, WorkModelRemote, created.Openings[0].WorkModel)
}

func TestToggleSaved_DoubleToggle(t *testing.T) {
	company := Company{ID: uuid.New(), Name: "Acme"}
	svc, _ := newCompanyService(t, company)
	ctx := context.Background()
	userID := uuid.New()

	saved, err := svc.ToggleSaved(ctx, userID, company.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = svc.ToggleSaved(ctx, userID, company.ID)
	require.NoError(t, err)
	assert.False(t, saved)

	list, err := svc.ListSaved(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestToggleSaved_UnknownCompany(t *testing.T) {
	svc, _ := newCompanyService(t)

	_, err := svc.ToggleSaved(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMatches_FiltersAndPreservesOrder(t *testing.T) {
	frontend := Company{
		ID:       uuid.New(),
		Name:     "Frontend Co",
		Openings: []Opening{{Role: "Frontend Eng", Experience: "3-5", TechStack: []string{"React", "CSS"}}},
	}
	sales := Company{
		ID:       uuid.New(),
		Name:     "Sales Co",
		Openings: []Opening{{Role: "Sales Lead", Experience: "3-5", TechStack: []string{}}},
	}
	empty := Company{ID: uuid.New(), Name: "No Openings Co"}
	backend := Company{
		ID:       uuid.New(),
		Name:     "Backend Co",
		Openings: []Opening{{Role: "Backend Developer", Experience: "6-10", TechStack: []string{"Go"}}},
	}

	svc, _ := newCompanyService(t, frontend, sales, empty, backend)
	ctx := context.Background()

	// With skills listed, only skill overlap counts: frontend matches via
	// React, the keyword fallback stays out of play
	matched, err := svc.Matches(ctx, "talent", []string{"React"})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, frontend.ID, matched[0].ID)

	// Without skills the keyword fallback kicks in, catalog order preserved
	fallback, err := svc.Matches(ctx, "talent", nil)
	require.NoError(t, err)
	require.Len(t, fallback, 2)
	assert.Equal(t, sales.ID, fallback[0].ID)
	assert.Equal(t, backend.ID, fallback[1].ID)

	// Deterministic across invocations
	again, err := svc.Matches(ctx, "talent", []string{"React"})
	require.NoError(t, err)
	assert.Equal(t, matched, again)
}

func TestMatches_NoProfileSignalsMeansEmpty(t *testing.T) {
	c := Company{
		ID:       uuid.New(),
		Openings: []Opening{{Role: "Frontend Eng", Experience: "3-5", TechStack: []string{"React"}}},
	}
	svc, _ := newCompanyService(t, c)

	matched, err := svc.Matches(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Empty(t, matched)
}
