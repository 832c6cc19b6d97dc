package ledger

import (
	"context"

	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/model"
)

const (
	// MaxSuspiciousBets bounds the evidence kept per casino; oldest drop first.
	MaxSuspiciousBets = 100
	// MaxEventEntries bounds the audit event log.
	MaxEventEntries = 10000
)

// Store is the persistence boundary of the ledger. Implementations must make
// RecordIssue atomic per casino: concurrent sessions for the same casino must
// not lose count updates. Different casinos are independent.
//
//go:generate go run github.com/vektra/mockery/v2@v2.28.2 --name=Store
type Store interface {
	SaveVerdict(ctx context.Context, verdict model.SessionVerdict) error
	SaveNotification(ctx context.Context, notification model.PendingNotification) error
	AppendEvent(ctx context.Context, event model.VerificationEvent) error

	// RecordIssue increments the casino's verification counters by one and
	// appends the evidence, bounded to the most recent MaxSuspiciousBets.
	RecordIssue(ctx context.Context, casinoID string, evidence []model.BetVerdict) error

	// CasinoIssues returns nil when the casino has no recorded issues.
	CasinoIssues(ctx context.Context, casinoID string) (*model.CasinoIssueRecord, error)
	PendingNotifications(ctx context.Context, userID string) ([]model.PendingNotification, error)
	VerificationHistory(ctx context.Context, userID string) ([]model.SessionVerdict, error)
}
