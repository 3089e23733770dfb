package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// initializeConsent creates the consent record for a freshly reserved
// session with consent not yet given, inside the reservation's transaction.
func initializeConsent(ctx context.Context, tx pgx.Tx, sessionID, counseleeID uuid.UUID) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO counselee_consents (counsel_session_id, counselee_id, is_consent)
		VALUES ($1, $2, FALSE)
	`, sessionID, counseleeID)
	if err != nil {
		return fmt.Errorf("failed to initialize consent record: %w", err)
	}
	return nil
}
