package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/model"
)

// InMemoryStore keeps the ledger in process memory. It backs tests and
// single-node deployments without a database; the mutex makes RecordIssue
// atomic per casino.
type InMemoryStore struct {
	mu            sync.Mutex
	verdicts      map[string][]model.SessionVerdict
	notifications map[string][]model.PendingNotification
	issues        map[string]*model.CasinoIssueRecord
	events        []model.VerificationEvent
	nextEventID   int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		verdicts:      make(map[string][]model.SessionVerdict),
		notifications: make(map[string][]model.PendingNotification),
		issues:        make(map[string]*model.CasinoIssueRecord),
	}
}

func (s *InMemoryStore) SaveVerdict(_ context.Context, verdict model.SessionVerdict) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.verdicts[verdict.UserID] = append(s.verdicts[verdict.UserID], verdict)

	return nil
}

func (s *InMemoryStore) SaveNotification(_ context.Context, notification model.PendingNotification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications[notification.UserID] = append(s.notifications[notification.UserID], notification)

	return nil
}

func (s *InMemoryStore) AppendEvent(_ context.Context, event model.VerificationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEventID++
	event.ID = s.nextEventID
	s.events = append(s.events, event)

	if len(s.events) > MaxEventEntries {
		s.events = s.events[len(s.events)-MaxEventEntries:]
	}

	return nil
}

func (s *InMemoryStore) RecordIssue(_ context.Context, casinoID string, evidence []model.BetVerdict) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()

	record, ok := s.issues[casinoID]
	if !ok {
		record = &model.CasinoIssueRecord{
			CasinoID:     casinoID,
			FirstIssueAt: now,
		}
		s.issues[casinoID] = record
	}

	record.TotalVerifications++
	record.FailedVerifications++
	record.LastIssueAt = now
	record.SuspiciousBets = append(record.SuspiciousBets, evidence...)

	if len(record.SuspiciousBets) > MaxSuspiciousBets {
		record.SuspiciousBets = record.SuspiciousBets[len(record.SuspiciousBets)-MaxSuspiciousBets:]
	}

	return nil
}

func (s *InMemoryStore) CasinoIssues(_ context.Context, casinoID string) (*model.CasinoIssueRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.issues[casinoID]
	if !ok {
		return nil, nil
	}

	copied := *record
	copied.SuspiciousBets = append([]model.BetVerdict(nil), record.SuspiciousBets...)

	return &copied, nil
}

func (s *InMemoryStore) PendingNotifications(_ context.Context, userID string) ([]model.PendingNotification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.PendingNotification(nil), s.notifications[userID]...), nil
}

func (s *InMemoryStore) VerificationHistory(_ context.Context, userID string) ([]model.SessionVerdict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append([]model.SessionVerdict(nil), s.verdicts[userID]...)

	// Most recent first, matching the mysql store.
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}

	return history, nil
}

// Events returns a copy of the audit log, oldest first.
func (s *InMemoryStore) Events() []model.VerificationEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.VerificationEvent(nil), s.events...)
}
