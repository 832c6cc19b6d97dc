package fairness

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"

	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/model"
)

// Bets are independent of each other, so verification fans out over a small
// worker group. Verdicts are written by index, keeping input order.
const maxParallelVerifications = 8

type SessionVerifier struct {
	log      *slog.Logger
	registry *Registry
	verifier *BetVerifier
}

func NewSessionVerifier(log *slog.Logger, registry *Registry) *SessionVerifier {
	return &SessionVerifier{
		log:      log,
		registry: registry,
		verifier: NewBetVerifier(log),
	}
}

// VerifySession runs the bet verifier over every bet of one request and
// renders the session verdict. An empty batch is an input error, not a
// zero-division fallthrough.
func (s *SessionVerifier) VerifySession(
	ctx context.Context,
	userID, casinoID, sessionID string,
	bets []model.SeedBet) (*model.SessionVerdict, error) {
	const op = "fairness.session.VerifySession"

	if len(bets) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyBatch)
	}

	profile := s.registry.Profile(casinoID)

	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", userID),
		slog.String("casino_id", casinoID),
	)

	log.Info("verifying bets", slog.Int("total", len(bets)))

	verdicts := make([]model.BetVerdict, len(bets))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelVerifications)

	for i, bet := range bets {
		i, bet := i, bet

		g.Go(func() error {
			verdicts[i] = s.verifier.Verify(bet, profile)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	verdict := &model.SessionVerdict{
		VerificationID: uuid.New().String(),
		UserID:         userID,
		CasinoID:       casinoID,
		SessionID:      sessionID,
		Timestamp:      time.Now().UTC(),
		TotalBets:      len(bets),
		Bets:           verdicts,
	}

	for _, bv := range verdicts {
		if bv.Verified {
			verdict.VerifiedCount++

			continue
		}

		verdict.FailedCount++

		if bv.HashMismatch {
			verdict.SuspiciousCount++
			verdict.Evidence = append(verdict.Evidence, bv)
		}
	}

	verdict.Classification = classify(verdict.FailedCount, verdict.TotalBets)

	log.Info("verification complete",
		slog.String("verification_id", verdict.VerificationID),
		slog.String("classification", string(verdict.Classification)),
		slog.Int("verified", verdict.VerifiedCount),
		slog.Int("failed", verdict.FailedCount),
		slog.Int("suspicious", verdict.SuspiciousCount))

	return verdict, nil
}

// classify buckets a session by failure rate. Boundary values land in the
// upper bucket: exactly 0.10 is SUSPICIOUS, exactly 0.30 is FRAUDULENT.
func classify(failed, total int) model.Classification {
	rate := float64(failed) / float64(total)

	switch {
	case rate == 0:
		return model.Fair
	case rate < 0.1:
		return model.MostlyFair
	case rate < 0.3:
		return model.Suspicious
	default:
		return model.Fraudulent
	}
}
