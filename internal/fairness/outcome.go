package fairness

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/jmenichole/TiltCheck-sub005/internal/config"
	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/model"
)

// HashSeed computes the hex digest of seed under the profile's algorithm.
// An unknown algorithm value degrades to SHA-256, mirroring the registry's
// default profile.
func HashSeed(seed string, profile AlgorithmProfile) (string, error) {
	const op = "fairness.outcome.HashSeed"

	switch profile.Algorithm {
	case config.HMACSHA256:
		if profile.HMACKey == "" {
			return "", fmt.Errorf("%s: casino %s: %w", op, profile.CasinoID, ErrMissingHMACKey)
		}

		mac := hmac.New(sha256.New, []byte(profile.HMACKey))
		mac.Write([]byte(seed))

		return hex.EncodeToString(mac.Sum(nil)), nil
	case config.MD5:
		sum := md5.Sum([]byte(seed))

		return hex.EncodeToString(sum[:]), nil
	default:
		sum := sha256.Sum256([]byte(seed))

		return hex.EncodeToString(sum[:]), nil
	}
}

// CombineSeeds builds the pre-hash material in the profile's seed order.
func CombineSeeds(serverSeed, clientSeed string, nonce uint64, profile AlgorithmProfile) string {
	nonceStr := strconv.FormatUint(nonce, 10)

	switch profile.SeedFormat {
	case FormatClientServerNonce:
		return clientSeed + ":" + serverSeed + ":" + nonceStr
	default:
		return serverSeed + ":" + clientSeed + ":" + nonceStr
	}
}

// ComputeOutcome derives the expected game result from seed material. It is
// pure: identical inputs always produce the identical outcome, across calls
// and across processes.
//
// The first 8 hex characters of the digest are read as an unsigned 32-bit
// integer and mapped per game:
//
//	dice:  (h % 10000) / 100    -> [0.00, 99.99]
//	crash: 1 + (h % 10000) / 100 -> [1.00, 100.00]
//	slots: h % 100               -> symbol index [0, 99]
//	other: h % 100               -> generic percentile
func ComputeOutcome(serverSeed, clientSeed string, nonce uint64, gameType config.GameType, profile AlgorithmProfile) (model.ResultValue, error) {
	const op = "fairness.outcome.ComputeOutcome"

	if serverSeed == "" {
		return model.ResultValue{}, fmt.Errorf("%s: %w", op, ErrEmptyServerSeed)
	}

	if clientSeed == "" {
		return model.ResultValue{}, fmt.Errorf("%s: %w", op, ErrEmptyClientSeed)
	}

	combined := CombineSeeds(serverSeed, clientSeed, nonce, profile)

	digest, err := HashSeed(combined, profile)
	if err != nil {
		return model.ResultValue{}, fmt.Errorf("%s: %w", op, err)
	}

	h64, err := strconv.ParseUint(digest[:8], 16, 32)
	if err != nil {
		return model.ResultValue{}, fmt.Errorf("%s: %w", op, err)
	}

	h := uint32(h64)

	switch gameType {
	case config.Dice:
		return model.NumberResult(float64(h%10000) / 100), nil
	case config.Crash:
		return model.NumberResult(1 + float64(h%10000)/100), nil
	case config.Slots:
		return model.NumberResult(float64(h % 100)), nil
	default:
		return model.NumberResult(float64(h % 100)), nil
	}
}
