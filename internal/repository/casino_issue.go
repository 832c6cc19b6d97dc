package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/handlers/mysql"
	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/model"
	"github.com/jmenichole/TiltCheck-sub005/internal/ledger"
)

type CasinoIssueRepository struct {
	dbhandler mysql.Handler
}

func NewCasinoIssueRepository(dbhandler mysql.Handler) *CasinoIssueRepository {
	return &CasinoIssueRepository{dbhandler: dbhandler}
}

// RecordIssue bumps the casino's counters in a single upsert statement, so
// concurrent sessions for the same casino never lose updates. Evidence rows
// are plain inserts (append-only) and are trimmed to the retention bound.
func (repo *CasinoIssueRepository) RecordIssue(ctx context.Context, casinoID string, evidence []model.BetVerdict) error {
	const op = "repository.casino_issue.RecordIssue"

	const upsert = "INSERT INTO casino_issues(casino_id," +
		" total_verifications," +
		" failed_verifications," +
		" first_issue_at," +
		" last_issue_at) " +
		"VALUES(?, 1, 1, ?, ?) " +
		"ON DUPLICATE KEY UPDATE" +
		" total_verifications = total_verifications + 1," +
		" failed_verifications = failed_verifications + 1," +
		" last_issue_at = VALUES(last_issue_at)"

	now := time.Now().UTC()

	_, err := repo.dbhandler.PrepareAndExecute(ctx, upsert, casinoID, now, now)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	const insertBet = "INSERT INTO casino_suspicious_bets(casino_id," +
		" bet_id," +
		" expected_hash," +
		" actual_hash," +
		" reason," +
		" created_at) " +
		"VALUES(?, ?, ?, ?, ?, ?)"

	for _, bet := range evidence {
		_, err = repo.dbhandler.PrepareAndExecute(ctx, insertBet,
			casinoID,
			bet.BetID,
			bet.ExpectedHash,
			bet.ActualHash,
			bet.Reason,
			now)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = repo.trimSuspiciousBets(ctx, casinoID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (repo *CasinoIssueRepository) trimSuspiciousBets(ctx context.Context, casinoID string) error {
	const op = "repository.casino_issue.trimSuspiciousBets"

	const query = "DELETE b FROM casino_suspicious_bets b " +
		"JOIN (SELECT id FROM casino_suspicious_bets WHERE casino_id = ? " +
		"ORDER BY id DESC LIMIT 18446744073709551615 OFFSET ?) old ON b.id = old.id"

	_, err := repo.dbhandler.PrepareAndExecute(ctx, query, casinoID, ledger.MaxSuspiciousBets)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (repo *CasinoIssueRepository) CasinoIssues(ctx context.Context, casinoID string) (*model.CasinoIssueRecord, error) {
	const op = "repository.casino_issue.CasinoIssues"

	const query = "SELECT casino_id," +
		" total_verifications," +
		" failed_verifications," +
		" first_issue_at," +
		" last_issue_at " +
		"FROM casino_issues WHERE casino_id = ?"

	row, err := repo.dbhandler.PrepareAndQueryRow(ctx, query, casinoID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var record model.CasinoIssueRecord

	err = row.Scan(
		&record.CasinoID,
		&record.TotalVerifications,
		&record.FailedVerifications,
		&record.FirstIssueAt,
		&record.LastIssueAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	record.SuspiciousBets, err = repo.suspiciousBets(ctx, casinoID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &record, nil
}

func (repo *CasinoIssueRepository) suspiciousBets(ctx context.Context, casinoID string) ([]model.BetVerdict, error) {
	const op = "repository.casino_issue.suspiciousBets"

	const query = "SELECT bet_id, expected_hash, actual_hash, reason " +
		"FROM casino_suspicious_bets WHERE casino_id = ? ORDER BY id"

	rows, err := repo.dbhandler.PrepareAndQuery(ctx, query, casinoID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var bets []model.BetVerdict

	for rows.Next() {
		bet := model.BetVerdict{HashMismatch: true}

		err = rows.Scan(&bet.BetID, &bet.ExpectedHash, &bet.ActualHash, &bet.Reason)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		bets = append(bets, bet)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bets, nil
}
