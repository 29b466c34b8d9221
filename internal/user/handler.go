package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/launchpair/launchpair/internal/httputil"
	"github.com/launchpair/launchpair/internal/logging"
)

// TokenIssuer mints a fresh session token after a profile update so the
// client's cached session stays self-consistent.
type TokenIssuer interface {
	CreateToken(userID uuid.UUID, email string, duration time.Duration) (string, error)
}

// Handler contains HTTP handlers for profile and directory endpoints
type Handler struct {
	service       *Service
	tokens        TokenIssuer
	tokenDuration time.Duration
	logger        *logging.Logger
}

func NewHandler(service *Service, tokens TokenIssuer, tokenDuration time.Duration, logger *logging.Logger) *Handler {
	return &Handler{
		service:       service,
		tokens:        tokens,
		tokenDuration: tokenDuration,
		logger:        logger,
	}
}

// UpdateProfileRequest represents the partial profile update body. Pointer
// fields distinguish "omitted" from "explicitly cleared".
type UpdateProfileRequest struct {
	Name             *string   `json:"name"`
	Password         *string   `json:"password"`
	SecurityQuestion *string   `json:"securityQuestion"`
	SecurityAnswer   *string   `json:"securityAnswer"`
	Country          *string   `json:"country"`
	Experience       *string   `json:"experience"`
	Role             *string   `json:"role"`
	Skills           *[]string `json:"skills"`
	Achievements     *string   `json:"achievements"`
	Seeking          *string   `json:"seeking"`
	Motto            *string   `json:"motto"`
	Availability     *string   `json:"availability"`
	ProfilePicture   *string   `json:"profilePicture"`
	IsOnboarded      *bool     `json:"isOnboarded"`
	LinkedInURL      *string   `json:"linkedinUrl"`
	GitHubURL        *string   `json:"githubUrl"`
	PortfolioURL     *string   `json:"portfolioUrl"`
}

// ProfileResponse is a profile plus a freshly issued token.
type ProfileResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// GetProfile handles GET /api/auth/profile
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} User
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/auth/profile [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := httputil.UserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	profile, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.Warn("profile not found", "user_id", userID)
			httputil.RespondErrorWithCode(w, "user not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to load profile", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to load profile", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, profile, http.StatusOK)
}

// UpdateProfile handles PUT /api/auth/profile
// @Summary      Update own profile
// @Description  Partial update; omitted fields stay untouched, present fields always apply. Returns a fresh token.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateProfileRequest true "Fields to update"
// @Success      200 {object} ProfileResponse
// @Failure      400 {object} httputil.ErrorResponse
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/auth/profile [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := httputil.UserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid profile update body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	params := UpdateProfileParams{
		ProfileUpdate: ProfileUpdate{
			Name:             req.Name,
			SecurityQuestion: req.SecurityQuestion,
			Country:          req.Country,
			Experience:       req.Experience,
			Role:             req.Role,
			Skills:           req.Skills,
			Achievements:     req.Achievements,
			Seeking:          req.Seeking,
			Motto:            req.Motto,
			Availability:     req.Availability,
			ProfilePicture:   req.ProfilePicture,
			IsOnboarded:      req.IsOnboarded,
			LinkedInURL:      req.LinkedInURL,
			GitHubURL:        req.GitHubURL,
			PortfolioURL:     req.PortfolioURL,
		},
		Password:       req.Password,
		SecurityAnswer: req.SecurityAnswer,
	}

	updated, err := h.service.UpdateProfile(r.Context(), userID, params)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httputil.RespondErrorWithCode(w, "user not found", httputil.CodeNotFound, http.StatusNotFound)
		case errors.Is(err, ErrPasswordTooShort):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodePasswordTooShort, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidRole), errors.Is(err, ErrInvalidExperience):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		default:
			logger.Error("failed to update profile", "error", err.Error())
			httputil.RespondErrorWithCode(w, "failed to update profile", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	token, err := h.tokens.CreateToken(updated.ID, updated.Email, h.tokenDuration)
	if err != nil {
		logger.Error("failed to issue token after profile update", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to update profile", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("profile updated", "user_id", userID)
	httputil.RespondJSON(w, ProfileResponse{User: updated, Token: token}, http.StatusOK)
}

// ListUsers handles GET /api/auth/users
// @Summary      List users
// @Description  Public user directory. ?exclude=<id> filters one user out.
// @Tags         users
// @Produce      json
// @Param        exclude query string false "User id to exclude"
// @Success      200 {array} User
// @Router       /api/auth/users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	exclude := uuid.Nil
	if raw := r.URL.Query().Get("exclude"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			httputil.RespondErrorWithCode(w, "invalid exclude id", httputil.CodeInvalidID, http.StatusBadRequest)
			return
		}
		exclude = parsed
	}

	users, err := h.service.List(r.Context(), exclude)
	if err != nil {
		logger.Error("failed to list users", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list users", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, users, http.StatusOK)
}

// GetUser handles GET /api/auth/users/{id}
// @Summary      Get one user
// @Tags         users
// @Produce      json
// @Param        id path string true "User id"
// @Success      200 {object} User
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /api/auth/users/{id} [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid user id", httputil.CodeInvalidID, http.StatusBadRequest)
		return
	}

	u, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "user not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to get user", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to get user", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, u, http.StatusOK)
}
