package company

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/launchpair/launchpair/internal/httputil"
	"github.com/launchpair/launchpair/internal/logging"
)

// ProfileSource supplies the caller's role and skills to the matches
// endpoint.
type ProfileSource interface {
	MatchProfile(ctx context.Context, id uuid.UUID) (role string, skills []string, err error)
}

// Handler contains HTTP handlers for company and saved-set endpoints
type Handler struct {
	service  *Service
	profiles ProfileSource
	logger   *logging.Logger
}

func NewHandler(service *Service, profiles ProfileSource, logger *logging.Logger) *Handler {
	return &Handler{
		service:  service,
		profiles: profiles,
		logger:   logger,
	}
}

// CreateCompanyRequest represents the company publication body
type CreateCompanyRequest struct {
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
}

// SaveResponse reports the resulting bookmark state after a toggle
type SaveResponse struct {
	IsSaved bool `json:"isSaved"`
}

// Create handles POST /api/companies
// @Summary      Publish a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateCompanyRequest true "Company fields"
// @Success      201 {object} Company
// @Failure      400 {object} httputil.ErrorResponse
// @Router       /api/companies [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := httputil.UserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid create company body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), CreateParams{
		Name:         req.Name,
		Tagline:      req.Tagline,
		Description:  req.Description,
		Industry:     req.Industry,
		FundingStage: req.FundingStage,
		Logo:         req.Logo,
		Benefits:     req.Benefits,
		Openings:     req.Openings,
		Website:      req.Website,
		Location:     req.Location,
		CreatorID:    userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingCompanyFields),
			errors.Is(err, ErrOpeningMissingFields),
			errors.Is(err, ErrInvalidWorkModel):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeMissingFields, http.StatusBadRequest)
		default:
			logger.Error("failed to create company", "error", err.Error())
			httputil.RespondErrorWithCode(w, "failed to create company", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	httputil.RespondJSON(w, created, http.StatusCreated)
}

// List handles GET /api/companies
// @Summary      List the public company catalog
// @Tags         companies
// @Produce      json
// @Success      200 {array} Company
// @Router       /api/companies [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	companies, err := h.service.List(r.Context())
	if err != nil {
		logger.Error("failed to list companies", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list companies", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, companies, http.StatusOK)
}

// MyCompanies handles GET /api/companies/my-companies
// @Summary      List the caller's companies
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Company
// @Router       /api/companies/my-companies [get]
func (h *Handler) MyCompanies(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := httputil.UserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	companies, err := h.service.ListByCreator(r.Context(), userID)
	if err != nil {
		logger.Error("failed to list own companies", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list companies", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, companies, http.StatusOK)
}

// Matches handles GET /api/companies/matches
// @Summary      List companies relevant to the caller
// @Description  Applies the role/skill/keyword cascade over the catalog, preserving catalog order.
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Company
// @Router       /api/companies/matches [get]
func (h *Handler) Matches(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := httputil.UserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	role, skills, err := h.profiles.MatchProfile(r.Context(), userID)
	if err != nil {
		logger.Error("failed to load match profile", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to compute matches", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	matched, err := h.service.Matches(r.Context(), role, skills)
	if err != nil {
		logger.Error("failed to compute matches", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to compute matches", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, matched, http.StatusOK)
}

// Get handles GET /api/companies/{id}
// @Summary      Get one company
// @Tags         companies
// @Produce      json
// @Param        id path string true "Company id"
// @Success      200 {object} Company
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid company id", httputil.CodeInvalidID, http.StatusBadRequest)
		return
	}

	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "company not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to get company", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to get company", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, c, http.StatusOK)
}

// ToggleSave handles POST /api/auth/save-company/{id}
// @Summary      Toggle a company bookmark
// @Description  Adds the company to the caller's saved set if absent, removes it if present.
// @Tags         saved
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Company id"
// @Success      200 {object} SaveResponse
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/auth/save-company/{id} [post]
func (h *Handler) ToggleSave(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := httputil.UserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	companyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid company id", httputil.CodeInvalidID, http.StatusBadRequest)
		return
	}

	isSaved, err := h.service.ToggleSaved(r.Context(), userID, companyID)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUserNotFound) {
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to toggle saved company", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to toggle saved company", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("saved set toggled", "company_id", companyID, "is_saved", isSaved)
	httputil.RespondJSON(w, SaveResponse{IsSaved: isSaved}, http.StatusOK)
}

// ListSaved handles GET /api/auth/saved-companies
// @Summary      List the caller's saved companies
// @Tags         saved
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Company
// @Router       /api/auth/saved-companies [get]
func (h *Handler) ListSaved(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := httputil.UserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	companies, err := h.service.ListSaved(r.Context(), userID)
	if err != nil {
		logger.Error("failed to list saved companies", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list saved companies", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, companies, http.StatusOK)
}
