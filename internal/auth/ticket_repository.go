package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/launchpair/launchpair/internal/database"
)

// TicketRepository persists recovery fallback tickets.
type TicketRepository struct {
	db *bun.DB
}

func NewTicketRepository(db *bun.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create inserts a new ticket in the pending state and returns its id.
func (r *TicketRepository) Create(ctx context.Context, email, fullName, reason string) (uuid.UUID, error) {
	ticket := &database.ResetRequest{
		Email:    email,
		FullName: fullName,
		Reason:   reason,
		Status:   database.ResetRequestPending,
	}

	_, err := r.db.NewInsert().
		Model(ticket).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create reset request: %w", err)
	}

	return ticket.ID, nil
}
