package fairness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmenichole/TiltCheck-sub005/internal/config"
)

func sha256Profile() AlgorithmProfile {
	return AlgorithmProfile{
		CasinoID:   "stake",
		Algorithm:  config.SHA256,
		SeedFormat: FormatServerClientNonce,
	}
}

func TestHashSeed(t *testing.T) {
	cases := []struct {
		name    string
		seed    string
		profile AlgorithmProfile
		want    string
	}{
		{
			name:    "SHA256KnownVector",
			seed:    "abc",
			profile: sha256Profile(),
			want:    "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			name:    "SHA256EmptyString",
			seed:    "",
			profile: sha256Profile(),
			want:    "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:    "MD5Legacy",
			seed:    "abc",
			profile: AlgorithmProfile{Algorithm: config.MD5},
			want:    "900150983cd24fb0d6963f7d28e17f72",
		},
		{
			name:    "HMACSHA256WithKey",
			seed:    "abc",
			profile: AlgorithmProfile{Algorithm: config.HMACSHA256, HMACKey: "k1"},
			want:    "64071a976c47a77f3f60a264c41b01a6f22c17b8ccca9482b6b3a692e898858b",
		},
		{
			name:    "UnknownAlgorithmDegradesToSHA256",
			seed:    "abc",
			profile: AlgorithmProfile{Algorithm: "whirlpool"},
			want:    "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := HashSeed(tc.seed, tc.profile)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHashSeedMissingHMACKey(t *testing.T) {
	profile := AlgorithmProfile{
		CasinoID:  "rollbit",
		Algorithm: config.HMACSHA256,
	}

	_, err := HashSeed("abc", profile)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingHMACKey)
}

func TestCombineSeeds(t *testing.T) {
	cases := []struct {
		name   string
		format string
		want   string
	}{
		{
			name:   "ServerClientNonce",
			format: FormatServerClientNonce,
			want:   "srv:cli:7",
		},
		{
			name:   "ClientServerNonce",
			format: FormatClientServerNonce,
			want:   "cli:srv:7",
		},
		{
			name:   "UnknownFormatFallsBack",
			format: "something-else",
			want:   "srv:cli:7",
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := CombineSeeds("srv", "cli", 7, AlgorithmProfile{SeedFormat: tc.format})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestComputeOutcomeMappings(t *testing.T) {
	// sha256("abc:xyz:1") = 7fbb2e2b... -> h = 0x7fbb2e2b = 2142973483.
	cases := []struct {
		name     string
		gameType config.GameType
		want     float64
	}{
		{
			name:     "Dice",
			gameType: config.Dice,
			want:     34.83,
		},
		{
			name:     "Crash",
			gameType: config.Crash,
			want:     35.83,
		},
		{
			name:     "Slots",
			gameType: config.Slots,
			want:     83,
		},
		{
			name:     "OtherPercentile",
			gameType: config.Other,
			want:     83,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ComputeOutcome("abc", "xyz", 1, tc.gameType, sha256Profile())
			require.NoError(t, err)
			require.True(t, got.Numeric)
			assert.InDelta(t, tc.want, got.Number, 1e-9)
		})
	}
}

func TestComputeOutcomeSeedOrder(t *testing.T) {
	profile := sha256Profile()
	profile.SeedFormat = FormatClientServerNonce

	// sha256("xyz:abc:1") = 8b77efcf... -> dice 31.99.
	got, err := ComputeOutcome("abc", "xyz", 1, config.Dice, profile)
	require.NoError(t, err)
	assert.InDelta(t, 31.99, got.Number, 1e-9)
}

func TestComputeOutcomeMD5(t *testing.T) {
	profile := AlgorithmProfile{Algorithm: config.MD5, SeedFormat: FormatServerClientNonce}

	// md5("abc:xyz:7") = 84c38bdd... -> dice 78.37.
	got, err := ComputeOutcome("abc", "xyz", 7, config.Dice, profile)
	require.NoError(t, err)
	assert.InDelta(t, 78.37, got.Number, 1e-9)
}

func TestComputeOutcomeHMAC(t *testing.T) {
	profile := AlgorithmProfile{
		Algorithm:  config.HMACSHA256,
		SeedFormat: FormatServerClientNonce,
		HMACKey:    "k1",
	}

	// hmac-sha256("abc:xyz:2", key "k1") = fcc41d4f... -> dice 9.91.
	got, err := ComputeOutcome("abc", "xyz", 2, config.Dice, profile)
	require.NoError(t, err)
	assert.InDelta(t, 9.91, got.Number, 1e-9)
}

func TestComputeOutcomeDeterminism(t *testing.T) {
	profile := sha256Profile()

	first, err := ComputeOutcome("abc", "xyz", 1, config.Dice, profile)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		again, err := ComputeOutcome("abc", "xyz", 1, config.Dice, profile)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputeOutcomeEmptySeeds(t *testing.T) {
	_, err := ComputeOutcome("", "xyz", 1, config.Dice, sha256Profile())
	assert.ErrorIs(t, err, ErrEmptyServerSeed)

	_, err = ComputeOutcome("abc", "", 1, config.Dice, sha256Profile())
	assert.ErrorIs(t, err, ErrEmptyClientSeed)
}
