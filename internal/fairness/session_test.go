package fairness

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmenichole/TiltCheck-sub005/internal/config"
	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/model"
)

// brokenCommitmentBet is a bet whose disclosed hash cannot belong to the
// server seed; it always produces a hash mismatch verdict.
func brokenCommitmentBet(id string) model.SeedBet {
	bet := validDiceBet()
	bet.BetID = id
	bet.ServerSeedHash = "1111111111111111111111111111111111111111111111111111111111111111"

	return bet
}

func namedValidBet(id string) model.SeedBet {
	bet := validDiceBet()
	bet.BetID = id

	return bet
}

func sessionBets(valid, broken int) []model.SeedBet {
	bets := make([]model.SeedBet, 0, valid+broken)

	for i := 0; i < valid; i++ {
		bets = append(bets, namedValidBet(fmt.Sprintf("ok-%d", i)))
	}

	for i := 0; i < broken; i++ {
		bets = append(bets, brokenCommitmentBet(fmt.Sprintf("bad-%d", i)))
	}

	return bets
}

func TestVerifySessionEmptyBatch(t *testing.T) {
	verifier := NewSessionVerifier(testLogger(), NewRegistry())

	_, err := verifier.VerifySession(context.Background(), "user-1", "stake", "session-1", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestVerifySessionClassificationBoundaries(t *testing.T) {
	cases := []struct {
		name   string
		valid  int
		broken int
		want   model.Classification
	}{
		{
			name:  "AllVerifiedIsFair",
			valid: 10,
			want:  model.Fair,
		},
		{
			name:   "UnderTenPercentIsMostlyFair",
			valid:  19,
			broken: 1,
			want:   model.MostlyFair,
		},
		{
			name:   "ExactlyTenPercentIsSuspicious",
			valid:  9,
			broken: 1,
			want:   model.Suspicious,
		},
		{
			name:   "ExactlyThirtyPercentIsFraudulent",
			valid:  7,
			broken: 3,
			want:   model.Fraudulent,
		},
		{
			name:   "MajorityBrokenIsFraudulent",
			valid:  1,
			broken: 9,
			want:   model.Fraudulent,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			verifier := NewSessionVerifier(testLogger(), NewRegistry())

			verdict, err := verifier.VerifySession(
				context.Background(), "user-1", "stake", "session-1", sessionBets(tc.valid, tc.broken))
			require.NoError(t, err)

			assert.Equal(t, tc.want, verdict.Classification)
			assert.Equal(t, tc.valid, verdict.VerifiedCount)
			assert.Equal(t, tc.broken, verdict.FailedCount)
			assert.Equal(t, tc.broken, verdict.SuspiciousCount)
			assert.Equal(t, tc.valid+tc.broken, verdict.TotalBets)
		})
	}
}

func TestVerifySessionPartialFailureIsolation(t *testing.T) {
	verifier := NewSessionVerifier(testLogger(), NewRegistry())

	bets := []model.SeedBet{
		namedValidBet("bet-1"),
		namedValidBet("bet-2"),
		namedValidBet("bet-3"),
		namedValidBet("bet-4"),
		namedValidBet("bet-5"),
	}
	bets[2].ServerSeed = "" // malformed

	verdict, err := verifier.VerifySession(context.Background(), "user-1", "stake", "session-1", bets)
	require.NoError(t, err)

	require.Len(t, verdict.Bets, 5)
	assert.Equal(t, 4, verdict.VerifiedCount)
	assert.Equal(t, 1, verdict.FailedCount)
	assert.Equal(t, 0, verdict.SuspiciousCount)

	assert.False(t, verdict.Bets[2].Verified)
	assert.Contains(t, verdict.Bets[2].Reason, "verification error")

	for _, i := range []int{0, 1, 3, 4} {
		assert.True(t, verdict.Bets[i].Verified, "bet %d", i)
	}
}

func TestVerifySessionPreservesInputOrder(t *testing.T) {
	verifier := NewSessionVerifier(testLogger(), NewRegistry())

	bets := []model.SeedBet{
		namedValidBet("first"),
		brokenCommitmentBet("second"),
		namedValidBet("third"),
		brokenCommitmentBet("fourth"),
	}

	verdict, err := verifier.VerifySession(context.Background(), "user-1", "stake", "session-1", bets)
	require.NoError(t, err)

	require.Len(t, verdict.Bets, 4)
	for i, bet := range bets {
		assert.Equal(t, bet.BetID, verdict.Bets[i].BetID)
	}

	// Evidence holds only commitment mismatches, still in bet order.
	require.Len(t, verdict.Evidence, 2)
	assert.Equal(t, "second", verdict.Evidence[0].BetID)
	assert.Equal(t, "fourth", verdict.Evidence[1].BetID)
}

func TestVerifySessionResultMismatchIsNotEvidence(t *testing.T) {
	verifier := NewSessionVerifier(testLogger(), NewRegistry())

	bet := namedValidBet("off-by-much")
	bet.ClaimedResult = model.NumberResult(99.99)

	verdict, err := verifier.VerifySession(
		context.Background(), "user-1", "stake", "session-1", []model.SeedBet{bet})
	require.NoError(t, err)

	assert.Equal(t, 1, verdict.FailedCount)
	assert.Equal(t, 0, verdict.SuspiciousCount)
	assert.Empty(t, verdict.Evidence)
	assert.Equal(t, model.Fraudulent, verdict.Classification)
}

func TestVerifySessionEndToEnd(t *testing.T) {
	verifier := NewSessionVerifier(testLogger(), NewRegistry())

	bet := model.SeedBet{
		BetID:          "bet-1",
		ServerSeed:     "abc",
		ServerSeedHash: abcHash,
		ClientSeed:     "xyz",
		Nonce:          1,
		GameType:       config.Dice,
		ClaimedResult:  model.NumberResult(abcXyzDice),
	}

	verdict, err := verifier.VerifySession(
		context.Background(), "user-1", "stake", "session-1", []model.SeedBet{bet})
	require.NoError(t, err)

	assert.NotEmpty(t, verdict.VerificationID)
	assert.Equal(t, model.Fair, verdict.Classification)
	assert.Equal(t, 1, verdict.VerifiedCount)
	assert.True(t, verdict.Bets[0].Verified)
}
