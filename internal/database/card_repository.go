package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/carebase/counseld/internal/domain"
)

// initializeCard creates the empty counsel card for a freshly reserved
// session, inside the reservation's own transaction so the card commits with
// the session or not at all.
func initializeCard(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO counsel_cards (counsel_session_id, card_record_status)
		VALUES ($1, $2)
	`, sessionID, domain.CardNotStarted)
	if err != nil {
		return fmt.Errorf("failed to initialize counsel card: %w", err)
	}
	return nil
}
