package fairness

import (
	"math"

	"golang.org/x/exp/slog"

	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/model"
	"github.com/jmenichole/TiltCheck-sub005/internal/lib/logger/sl"
)

const (
	// resultTolerance absorbs display rounding on numeric results; it is not
	// a fraud allowance. A genuine discrepancy is never under 0.01.
	resultTolerance = 0.01

	ReasonHashMismatch   = "server seed hash does not match"
	ReasonResultMismatch = "game result does not match calculated result"
)

type BetVerifier struct {
	log *slog.Logger
}

func NewBetVerifier(log *slog.Logger) *BetVerifier {
	return &BetVerifier{log: log}
}

// Verify checks one bet against the casino's disclosed algorithm.
//
// The commitment is checked first: when the recomputed server seed hash does
// not match the disclosed one, the verdict short-circuits with HashMismatch
// set — an unverifiable commitment makes the outcome comparison meaningless.
// Computation failures (empty seed, missing HMAC key) become failed verdicts
// with a reason; Verify never aborts the surrounding batch.
func (v *BetVerifier) Verify(bet model.SeedBet, profile AlgorithmProfile) model.BetVerdict {
	const op = "fairness.verify.Verify"

	verdict := model.BetVerdict{
		BetID:         bet.BetID,
		ClaimedResult: bet.ClaimedResult,
	}

	if bet.ServerSeed == "" {
		verdict.Reason = "verification error: " + ErrEmptyServerSeed.Error()

		return verdict
	}

	calculated, err := HashSeed(bet.ServerSeed, profile)
	if err != nil {
		v.log.Error("failed to hash server seed",
			sl.String("bet_id", bet.BetID),
			sl.Err(err))

		verdict.Reason = "verification error: " + err.Error()

		return verdict
	}

	verdict.ExpectedHash = bet.ServerSeedHash
	verdict.ActualHash = calculated

	if calculated != bet.ServerSeedHash {
		verdict.HashMismatch = true
		verdict.Reason = ReasonHashMismatch

		return verdict
	}

	expected, err := ComputeOutcome(bet.ServerSeed, bet.ClientSeed, bet.Nonce, bet.GameType, profile)
	if err != nil {
		v.log.Error("failed to compute outcome",
			sl.String("bet_id", bet.BetID),
			sl.Err(err))

		verdict.Reason = "verification error: " + err.Error()

		return verdict
	}

	verdict.ExpectedResult = &expected

	if resultsMatch(expected, bet.ClaimedResult) {
		verdict.Verified = true
	} else {
		verdict.Reason = ReasonResultMismatch
	}

	return verdict
}

func resultsMatch(expected, claimed model.ResultValue) bool {
	if expected.Numeric && claimed.Numeric {
		return math.Abs(expected.Number-claimed.Number) < resultTolerance
	}

	if !expected.Numeric && !claimed.Numeric {
		return expected.Text == claimed.Text
	}

	return false
}
