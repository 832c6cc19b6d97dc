package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/model"
	"github.com/jmenichole/TiltCheck-sub005/internal/lib/converter"
	"github.com/jmenichole/TiltCheck-sub005/internal/lib/logger/sl"
)

// Audit log appends are retried with growing pauses before the failure is
// surfaced; verdict and issue writes fail fast because the caller must know
// a verdict was computed but not durably recorded.
const (
	appendAttempts = 3
	appendBackoff  = 100 * time.Millisecond
)

const (
	highlySuspiciousRate = 0.5
	suspiciousRate       = 0.2
)

// Ledger is the durable, append-only record of session verdicts and per
// casino issue statistics. Nothing here deletes or rewrites a prior verdict.
type Ledger struct {
	log   *slog.Logger
	store Store
}

func New(log *slog.Logger, store Store) *Ledger {
	return &Ledger{
		log:   log,
		store: store,
	}
}

// RecordVerdict persists a session verdict, updates the casino's issue
// record when the session carries suspicious bets, and appends the audit
// event.
func (l *Ledger) RecordVerdict(ctx context.Context, verdict model.SessionVerdict) error {
	const op = "ledger.RecordVerdict"

	if err := l.store.SaveVerdict(ctx, verdict); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if verdict.SuspiciousCount > 0 {
		if err := l.store.RecordIssue(ctx, verdict.CasinoID, verdict.Evidence); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		l.log.Warn("hash issues recorded for casino",
			sl.String("casino_id", verdict.CasinoID),
			sl.Int("suspicious", verdict.SuspiciousCount))
	}

	event := model.VerificationEvent{
		Type:      model.EventSeedVerification,
		UserID:    verdict.UserID,
		CasinoID:  verdict.CasinoID,
		SessionID: verdict.SessionID,
		RefID:     verdict.VerificationID,
		Payload:   verdictEventPayload(verdict),
		CreatedAt: verdict.Timestamp,
	}

	if err := l.appendEvent(ctx, event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RecordNotification persists an issued notification and its audit event.
func (l *Ledger) RecordNotification(ctx context.Context, notification model.PendingNotification) error {
	const op = "ledger.RecordNotification"

	if err := l.store.SaveNotification(ctx, notification); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	event := model.VerificationEvent{
		Type:      model.EventSeedCollectionNotification,
		UserID:    notification.UserID,
		CasinoID:  notification.CasinoID,
		SessionID: notification.SessionID,
		RefID:     notification.NotificationID,
		CreatedAt: notification.Timestamp,
	}

	if err := l.appendEvent(ctx, event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Summary reports the running issue statistics for one casino.
func (l *Ledger) Summary(ctx context.Context, casinoID string) (*model.CasinoIssueSummary, error) {
	const op = "ledger.Summary"

	record, err := l.store.CasinoIssues(ctx, casinoID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if record == nil {
		return &model.CasinoIssueSummary{
			CasinoID: casinoID,
			Message:  "No hash verification issues found",
		}, nil
	}

	rate := converter.FailureRate(record.FailedVerifications, record.TotalVerifications)

	return &model.CasinoIssueSummary{
		CasinoID:            record.CasinoID,
		HasIssues:           true,
		TotalVerifications:  record.TotalVerifications,
		FailedVerifications: record.FailedVerifications,
		FailureRate:         converter.FormatPercent(rate),
		SuspiciousBetsCount: len(record.SuspiciousBets),
		FirstIssueAt:        &record.FirstIssueAt,
		LastIssueAt:         &record.LastIssueAt,
		Verdict:             issueLabel(rate),
	}, nil
}

func (l *Ledger) PendingNotifications(ctx context.Context, userID string) ([]model.PendingNotification, error) {
	const op = "ledger.PendingNotifications"

	notifications, err := l.store.PendingNotifications(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return notifications, nil
}

func (l *Ledger) VerificationHistory(ctx context.Context, userID string) ([]model.SessionVerdict, error) {
	const op = "ledger.VerificationHistory"

	verdicts, err := l.store.VerificationHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return verdicts, nil
}

func (l *Ledger) appendEvent(ctx context.Context, event model.VerificationEvent) error {
	var err error

	for attempt := 0; attempt < appendAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(appendBackoff << (attempt - 1))
		}

		if err = l.store.AppendEvent(ctx, event); err == nil {
			return nil
		}

		l.log.Error("failed to append event, retrying",
			sl.String("type", string(event.Type)),
			sl.Int("attempt", attempt+1),
			sl.Err(err))
	}

	return err
}

func issueLabel(rate float64) model.IssueLabel {
	switch {
	case rate > highlySuspiciousRate:
		return model.LabelHighlySuspicious
	case rate > suspiciousRate:
		return model.LabelSuspicious
	default:
		return model.LabelMonitoring
	}
}

func verdictEventPayload(verdict model.SessionVerdict) string {
	payload, err := json.Marshal(map[string]interface{}{
		"total_bets":   verdict.TotalBets,
		"verified":     verdict.VerifiedCount,
		"failed":       verdict.FailedCount,
		"suspicious":   verdict.SuspiciousCount,
		"verdict":      verdict.Classification,
		"has_evidence": len(verdict.Evidence) > 0,
	})
	if err != nil {
		return ""
	}

	return string(payload)
}
