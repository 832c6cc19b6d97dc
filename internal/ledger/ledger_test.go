package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"

	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// suspiciousVerdict builds a session verdict carrying n hash mismatches.
func suspiciousVerdict(userID, casinoID, sessionID string, n int) model.SessionVerdict {
	verdict := model.SessionVerdict{
		VerificationID: sessionID + "-verification",
		UserID:         userID,
		CasinoID:       casinoID,
		SessionID:      sessionID,
		Timestamp:      time.Now().UTC(),
		TotalBets:      n,
		FailedCount:    n,
		Classification: model.Fraudulent,
	}

	for i := 0; i < n; i++ {
		bet := model.BetVerdict{
			BetID:        fmt.Sprintf("%s-bet-%d", sessionID, i),
			HashMismatch: true,
			Reason:       "server seed hash does not match",
		}
		verdict.Bets = append(verdict.Bets, bet)
		verdict.Evidence = append(verdict.Evidence, bet)
	}

	verdict.SuspiciousCount = n

	return verdict
}

func fairVerdict(userID, casinoID, sessionID string) model.SessionVerdict {
	return model.SessionVerdict{
		VerificationID: sessionID + "-verification",
		UserID:         userID,
		CasinoID:       casinoID,
		SessionID:      sessionID,
		Timestamp:      time.Now().UTC(),
		TotalBets:      1,
		VerifiedCount:  1,
		Classification: model.Fair,
	}
}

func TestRecordVerdictConcurrentSameCasino(t *testing.T) {
	const (
		sessions       = 20
		betsPerSession = 2
	)

	store := NewInMemoryStore()
	l := New(testLogger(), store)

	g, ctx := errgroup.WithContext(context.Background())

	for i := 0; i < sessions; i++ {
		i := i

		g.Go(func() error {
			verdict := suspiciousVerdict("user-1", "stake", fmt.Sprintf("session-%d", i), betsPerSession)

			return l.RecordVerdict(ctx, verdict)
		})
	}

	require.NoError(t, g.Wait())

	record, err := store.CasinoIssues(context.Background(), "stake")
	require.NoError(t, err)
	require.NotNil(t, record)

	// Counts must be exact: no update may be lost under concurrency.
	assert.Equal(t, sessions, record.TotalVerifications)
	assert.Equal(t, sessions, record.FailedVerifications)
	assert.Len(t, record.SuspiciousBets, sessions*betsPerSession)

	assert.Len(t, store.Events(), sessions)
}

func TestRecordVerdictFairSessionSkipsIssue(t *testing.T) {
	store := NewInMemoryStore()
	l := New(testLogger(), store)

	err := l.RecordVerdict(context.Background(), fairVerdict("user-1", "stake", "session-1"))
	require.NoError(t, err)

	record, err := store.CasinoIssues(context.Background(), "stake")
	require.NoError(t, err)
	assert.Nil(t, record)

	events := store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, model.EventSeedVerification, events[0].Type)
	assert.Equal(t, "session-1-verification", events[0].RefID)
	assert.Contains(t, events[0].Payload, `"verified":1`)
}

func TestRecordVerdictBoundsEvidence(t *testing.T) {
	store := NewInMemoryStore()
	l := New(testLogger(), store)

	// 12 sessions of 10 mismatches each overflow the retention bound.
	for i := 0; i < 12; i++ {
		verdict := suspiciousVerdict("user-1", "stake", fmt.Sprintf("session-%d", i), 10)
		require.NoError(t, l.RecordVerdict(context.Background(), verdict))
	}

	record, err := store.CasinoIssues(context.Background(), "stake")
	require.NoError(t, err)
	require.NotNil(t, record)

	// Counts keep growing while evidence is trimmed to the most recent.
	assert.Equal(t, 12, record.FailedVerifications)
	require.Len(t, record.SuspiciousBets, MaxSuspiciousBets)
	assert.Equal(t, "session-2-bet-0", record.SuspiciousBets[0].BetID)
	assert.Equal(t, "session-11-bet-9", record.SuspiciousBets[len(record.SuspiciousBets)-1].BetID)
}

func TestSummaryNoIssues(t *testing.T) {
	l := New(testLogger(), NewInMemoryStore())

	summary, err := l.Summary(context.Background(), "stake")
	require.NoError(t, err)

	assert.False(t, summary.HasIssues)
	assert.Equal(t, "stake", summary.CasinoID)
	assert.Equal(t, "No hash verification issues found", summary.Message)
	assert.Empty(t, summary.Verdict)
}

// issueStore serves a canned issue record so label boundaries can be probed
// at arbitrary failure rates.
type issueStore struct {
	*InMemoryStore
	record model.CasinoIssueRecord
}

func (s *issueStore) CasinoIssues(_ context.Context, _ string) (*model.CasinoIssueRecord, error) {
	record := s.record

	return &record, nil
}

func TestSummaryLabels(t *testing.T) {
	cases := []struct {
		name     string
		failed   int
		total    int
		wantRate string
		want     model.IssueLabel
	}{
		{
			name:     "OverHalfIsHighlySuspicious",
			failed:   6,
			total:    10,
			wantRate: "60.00%",
			want:     model.LabelHighlySuspicious,
		},
		{
			name:     "ExactlyHalfIsSuspicious",
			failed:   5,
			total:    10,
			wantRate: "50.00%",
			want:     model.LabelSuspicious,
		},
		{
			name:     "OverTwentyPercentIsSuspicious",
			failed:   3,
			total:    10,
			wantRate: "30.00%",
			want:     model.LabelSuspicious,
		},
		{
			name:     "ExactlyTwentyPercentIsMonitoring",
			failed:   2,
			total:    10,
			wantRate: "20.00%",
			want:     model.LabelMonitoring,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			now := time.Now().UTC()
			store := &issueStore{
				InMemoryStore: NewInMemoryStore(),
				record: model.CasinoIssueRecord{
					CasinoID:            "stake",
					TotalVerifications:  tc.total,
					FailedVerifications: tc.failed,
					FirstIssueAt:        now,
					LastIssueAt:         now,
				},
			}

			summary, err := New(testLogger(), store).Summary(context.Background(), "stake")
			require.NoError(t, err)

			assert.True(t, summary.HasIssues)
			assert.Equal(t, tc.wantRate, summary.FailureRate)
			assert.Equal(t, tc.want, summary.Verdict)
		})
	}
}

func TestRecordNotificationAndPending(t *testing.T) {
	store := NewInMemoryStore()
	l := New(testLogger(), store)

	notification := model.PendingNotification{
		NotificationID: "abc123",
		UserID:         "user-1",
		CasinoID:       "stake",
		SessionID:      "session-1",
		Timestamp:      time.Now().UTC(),
		Urgency:        model.UrgencyHigh,
	}

	require.NoError(t, l.RecordNotification(context.Background(), notification))

	pending, err := l.PendingNotifications(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "abc123", pending[0].NotificationID)

	other, err := l.PendingNotifications(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Empty(t, other)

	events := store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, model.EventSeedCollectionNotification, events[0].Type)
	assert.Equal(t, "abc123", events[0].RefID)
}

func TestVerificationHistoryMostRecentFirst(t *testing.T) {
	store := NewInMemoryStore()
	l := New(testLogger(), store)

	for i := 0; i < 3; i++ {
		verdict := fairVerdict("user-1", "stake", fmt.Sprintf("session-%d", i))
		require.NoError(t, l.RecordVerdict(context.Background(), verdict))
	}

	history, err := l.VerificationHistory(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, history, 3)
	assert.Equal(t, "session-2", history[0].SessionID)
	assert.Equal(t, "session-0", history[2].SessionID)
}

// flakyStore fails the first appendFailures AppendEvent calls.
type flakyStore struct {
	*InMemoryStore
	appendFailures int
	attempts       int
}

func (s *flakyStore) AppendEvent(ctx context.Context, event model.VerificationEvent) error {
	s.attempts++
	if s.attempts <= s.appendFailures {
		return errors.New("transient store failure")
	}

	return s.InMemoryStore.AppendEvent(ctx, event)
}

func TestAppendEventRetries(t *testing.T) {
	store := &flakyStore{InMemoryStore: NewInMemoryStore(), appendFailures: 2}
	l := New(testLogger(), store)

	err := l.RecordVerdict(context.Background(), fairVerdict("user-1", "stake", "session-1"))
	require.NoError(t, err)

	assert.Equal(t, 3, store.attempts)
	assert.Len(t, store.Events(), 1)
}

func TestAppendEventGivesUp(t *testing.T) {
	store := &flakyStore{InMemoryStore: NewInMemoryStore(), appendFailures: appendAttempts}
	l := New(testLogger(), store)

	err := l.RecordVerdict(context.Background(), fairVerdict("user-1", "stake", "session-1"))

	require.Error(t, err)
	assert.Equal(t, appendAttempts, store.attempts)
	assert.Empty(t, store.Events())
}
