package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/handlers/mysql"
	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/model"
)

type VerificationRepository struct {
	dbhandler mysql.Handler
}

func NewVerificationRepository(dbhandler mysql.Handler) *VerificationRepository {
	return &VerificationRepository{dbhandler: dbhandler}
}

// SaveVerdict is insert-only: a session verdict is evidence and is never
// rewritten once stored.
func (repo *VerificationRepository) SaveVerdict(ctx context.Context, verdict model.SessionVerdict) error {
	const op = "repository.verification.SaveVerdict"

	const query = "INSERT INTO session_verdicts(verification_id," +
		" user_id," +
		" casino_id," +
		" session_id," +
		" total_bets," +
		" verified_count," +
		" failed_count," +
		" suspicious_count," +
		" classification," +
		" bets," +
		" evidence," +
		" created_at) " +
		"VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

	bets, err := json.Marshal(verdict.Bets)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	evidence, err := json.Marshal(verdict.Evidence)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = repo.dbhandler.PrepareAndExecute(ctx, query,
		verdict.VerificationID,
		verdict.UserID,
		verdict.CasinoID,
		verdict.SessionID,
		verdict.TotalBets,
		verdict.VerifiedCount,
		verdict.FailedCount,
		verdict.SuspiciousCount,
		verdict.Classification,
		bets,
		evidence,
		verdict.Timestamp)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (repo *VerificationRepository) VerificationHistory(ctx context.Context, userID string) ([]model.SessionVerdict, error) {
	const op = "repository.verification.VerificationHistory"

	const query = "SELECT verification_id," +
		" user_id," +
		" casino_id," +
		" session_id," +
		" total_bets," +
		" verified_count," +
		" failed_count," +
		" suspicious_count," +
		" classification," +
		" bets," +
		" evidence," +
		" created_at " +
		"FROM session_verdicts WHERE user_id = ? ORDER BY created_at DESC"

	rows, err := repo.dbhandler.PrepareAndQuery(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var history []model.SessionVerdict

	for rows.Next() {
		var (
			verdict  model.SessionVerdict
			bets     []byte
			evidence []byte
		)

		err = rows.Scan(
			&verdict.VerificationID,
			&verdict.UserID,
			&verdict.CasinoID,
			&verdict.SessionID,
			&verdict.TotalBets,
			&verdict.VerifiedCount,
			&verdict.FailedCount,
			&verdict.SuspiciousCount,
			&verdict.Classification,
			&bets,
			&evidence,
			&verdict.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if err = json.Unmarshal(bets, &verdict.Bets); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if len(evidence) > 0 {
			if err = json.Unmarshal(evidence, &verdict.Evidence); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}

		history = append(history, verdict)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return history, nil
}
