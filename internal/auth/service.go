package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/launchpair/launchpair/internal/logging"
	"github.com/launchpair/launchpair/internal/user"
)

var (
	ErrNameRequired          = errors.New("name is required")
	ErrEmailRequired         = errors.New("email is required")
	ErrPasswordRequired      = errors.New("password is required")
	ErrPasswordTooShort      = errors.New("password must be at least 8 characters")
	ErrInvalidEmailFormat    = errors.New("invalid email format")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrInvalidSecurityAnswer = errors.New("security answer does not match")
	ErrNoSecurityQuestion    = errors.New("no security question on record")
	ErrMissingTicketFields   = errors.New("email, full name and reason are required")
)

// UserStore defines the user persistence operations the service needs.
type UserStore interface {
	Create(ctx context.Context, params user.CreateParams) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// TicketStore persists recovery fallback tickets.
type TicketStore interface {
	Create(ctx context.Context, email, fullName, reason string) (uuid.UUID, error)
}

// EmailService defines the interface for outbound notifications.
type EmailService interface {
	SendRecoveryTicketAlert(ctx context.Context, claimantEmail, fullName, reason string, ticketID uuid.UUID) error
	SendPasswordChangedEmail(ctx context.Context, toEmail string) error
}

// Service handles authentication business logic
type Service struct {
	users         UserStore
	tickets       TicketStore
	tokens        TokenService
	email         EmailService
	logger        *logging.Logger
	tokenDuration time.Duration
}

func NewService(
	users UserStore,
	tickets TicketStore,
	tokens TokenService,
	email EmailService,
	logger *logging.Logger,
	tokenDuration time.Duration,
) *Service {
	return &Service{
		users:         users,
		tickets:       tickets,
		tokens:        tokens,
		email:         email,
		logger:        logger,
		tokenDuration: tokenDuration,
	}
}

// Register creates a new local-password account and returns it with a token.
func (s *Service) Register(ctx context.Context, name, email, password string) (*user.User, string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, "", ErrNameRequired
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, "", ErrEmailRequired
	}
	if len(email) > 254 {
		return nil, "", ErrInvalidEmailFormat
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return nil, "", ErrInvalidEmailFormat
	}
	if password == "" {
		return nil, "", ErrPasswordRequired
	}
	if len(password) < 8 {
		return nil, "", ErrPasswordTooShort
	}

	passwordHash, err := HashSecret(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.users.Create(ctx, user.CreateParams{
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(addr.Address),
		PasswordHash: &passwordHash,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, "", user.ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.CreateToken(newUser.ID, newUser.Email, s.tokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}

	return newUser, token, nil
}

// Login authenticates an email/password pair. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	// Identity-provider-only accounts have no local password
	if existing.PasswordHash == "" || !VerifySecret(existing.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(existing.ID, existing.Email, s.tokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}

	return existing, token, nil
}

// ExternalLogin resolves an identity-provider-verified caller to a local
// account, creating a password-less one on first sight. Idempotent per email.
func (s *Service) ExternalLogin(ctx context.Context, email, name, pictureURL string) (*user.User, string, error) {
	if email == "" {
		return nil, "", ErrEmailRequired
	}

	normalized := strings.ToLower(email)

	existing, err := s.users.GetByEmail(ctx, normalized)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			return nil, "", fmt.Errorf("failed to get user: %w", err)
		}

		existing, err = s.users.Create(ctx, user.CreateParams{
			Name:           name,
			Email:          normalized,
			ProfilePicture: pictureURL,
		})
		if err != nil {
			// Two first-sight logins can race; the loser re-reads.
			if errors.Is(err, user.ErrDuplicateEmail) {
				existing, err = s.users.GetByEmail(ctx, normalized)
			}
			if err != nil {
				return nil, "", fmt.Errorf("failed to create user: %w", err)
			}
		} else {
			s.logger.Info("account created from external identity", "user_id", existing.ID)
		}
	}

	token, err := s.tokens.CreateToken(existing.ID, existing.Email, s.tokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}

	return existing, token, nil
}

// SecurityQuestion returns the stored question text for an account, never the
// answer.
func (s *Service) SecurityQuestion(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", ErrEmailRequired
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", user.ErrNotFound
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if existing.SecurityQuestion == "" {
		return "", ErrNoSecurityQuestion
	}

	return existing.SecurityQuestion, nil
}

// ResetPasswordWithAnswer overwrites the password hash after verifying the
// security answer.
func (s *Service) ResetPasswordWithAnswer(ctx context.Context, email, answer, newPassword string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if newPassword == "" {
		return ErrPasswordRequired
	}
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if existing.SecurityAnswerHash == "" || !VerifySecret(existing.SecurityAnswerHash, answer) {
		return ErrInvalidSecurityAnswer
	}

	passwordHash, err := HashSecret(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, existing.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	// Notify in a goroutine (non-blocking); a fresh context avoids
	// cancellation when the request finishes first.
	go func() {
		emailCtx := context.Background()
		if err := s.email.SendPasswordChangedEmail(emailCtx, existing.Email); err != nil {
			s.logger.Warn("failed to send password changed email", "email", existing.Email, "error", err)
		}
	}()

	return nil
}

// SubmitRecoveryTicket files a support ticket for manual account recovery.
// It deliberately does not check whether the email matches an account.
func (s *Service) SubmitRecoveryTicket(ctx context.Context, email, fullName, reason string) (uuid.UUID, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(fullName) == "" || strings.TrimSpace(reason) == "" {
		return uuid.Nil, ErrMissingTicketFields
	}

	ticketID, err := s.tickets.Create(ctx, strings.ToLower(email), strings.TrimSpace(fullName), strings.TrimSpace(reason))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create recovery ticket: %w", err)
	}

	s.logger.Info("recovery ticket filed", "ticket_id", ticketID)

	go func() {
		emailCtx := context.Background()
		if err := s.email.SendRecoveryTicketAlert(emailCtx, email, fullName, reason, ticketID); err != nil {
			s.logger.Warn("failed to send recovery ticket alert", "ticket_id", ticketID, "error", err)
		}
	}()

	return ticketID, nil
}
