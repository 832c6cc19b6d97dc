package repository

import (
	"context"
	"fmt"

	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/handlers/mysql"
	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/model"
	"github.com/jmenichole/TiltCheck-sub005/internal/ledger"
)

type EventRepository struct {
	dbhandler mysql.Handler
}

func NewEventRepository(dbhandler mysql.Handler) *EventRepository {
	return &EventRepository{dbhandler: dbhandler}
}

// AppendEvent adds one immutable audit entry and drops entries beyond the
// retention bound, oldest first.
func (repo *EventRepository) AppendEvent(ctx context.Context, event model.VerificationEvent) error {
	const op = "repository.event.AppendEvent"

	const query = "INSERT INTO verification_events(type," +
		" user_id," +
		" casino_id," +
		" session_id," +
		" ref_id," +
		" payload," +
		" created_at) " +
		"VALUES(?, ?, ?, ?, ?, ?, ?)"

	_, err := repo.dbhandler.PrepareAndExecute(ctx, query,
		event.Type,
		event.UserID,
		event.CasinoID,
		event.SessionID,
		event.RefID,
		event.Payload,
		event.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	const trim = "DELETE e FROM verification_events e " +
		"JOIN (SELECT id FROM verification_events " +
		"ORDER BY id DESC LIMIT 18446744073709551615 OFFSET ?) old ON e.id = old.id"

	_, err = repo.dbhandler.PrepareAndExecute(ctx, trim, ledger.MaxEventEntries)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
