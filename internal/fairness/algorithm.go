package fairness

import (
	"github.com/jmenichole/TiltCheck-sub005/internal/config"
)

// Seed concatenation orders observed across casinos. A profile selects one;
// anything unrecognised falls back to the server:client:nonce order.
const (
	FormatServerClientNonce = "server_seed:client_seed:nonce"
	FormatClientServerNonce = "client_seed:server_seed:nonce"
)

// AlgorithmProfile describes one casino's published provably-fair scheme plus
// the instructions a user needs to locate their seeds on that casino's site.
type AlgorithmProfile struct {
	CasinoID     string               `json:"casino_id"`
	Name         string               `json:"name"`
	Algorithm    config.HashAlgorithm `json:"algorithm"`
	SeedFormat   string               `json:"seed_format"`
	Instructions string               `json:"instructions"`
	DocsURL      string               `json:"docs_url,omitempty"`
	// HMACKey is the casino's published HMAC key. Required when Algorithm is
	// HMACSHA256; hashing fails with ErrMissingHMACKey when it is absent.
	HMACKey string `json:"-"`
}

const defaultCasinoID = "default"

// Registry maps casino ids to their disclosed algorithm profiles. It is
// loaded once at startup and read-only afterwards, so it is safe to share
// across concurrent verifications.
type Registry struct {
	profiles map[string]AlgorithmProfile
}

func NewRegistry() *Registry {
	profiles := map[string]AlgorithmProfile{
		"stake": {
			CasinoID:     "stake",
			Name:         "Stake",
			Algorithm:    config.SHA256,
			SeedFormat:   FormatServerClientNonce,
			Instructions: "Go to Settings -> Fairness -> View Game History",
			DocsURL:      "https://stake.com/provably-fair/overview",
		},
		"bc.game": {
			CasinoID:     "bc.game",
			Name:         "BC.Game",
			Algorithm:    config.SHA256,
			SeedFormat:   FormatServerClientNonce,
			Instructions: "Click on game -> Fairness -> Export seed pairs",
			DocsURL:      "https://bc.game/provably-fair",
		},
		"rollbit": {
			CasinoID:     "rollbit",
			Name:         "Rollbit",
			Algorithm:    config.HMACSHA256,
			SeedFormat:   FormatClientServerNonce,
			Instructions: "Profile -> Provably Fair -> Download session data",
			DocsURL:      "https://rollbit.com/fairness",
		},
		"shuffle": {
			CasinoID:     "shuffle",
			Name:         "Shuffle",
			Algorithm:    config.SHA256,
			SeedFormat:   FormatServerClientNonce,
			Instructions: "Game menu -> Fairness verification",
			DocsURL:      "https://shuffle.com/fairness-verification",
		},
		defaultCasinoID: {
			CasinoID:     defaultCasinoID,
			Name:         "Unknown Casino",
			Algorithm:    config.SHA256,
			SeedFormat:   FormatServerClientNonce,
			Instructions: "Look for \"Provably Fair\" or \"Fairness\" section on casino website",
		},
	}

	return &Registry{profiles: profiles}
}

// WithHMACKey sets the configured HMAC key for a casino. Called during
// wiring, before the registry is shared.
func (r *Registry) WithHMACKey(casinoID, key string) *Registry {
	if profile, ok := r.profiles[casinoID]; ok && key != "" {
		profile.HMACKey = key
		r.profiles[casinoID] = profile
	}

	return r
}

// Profile never fails: unknown casino ids get the default profile so that
// verification still runs, at reduced confidence, against unlisted casinos.
func (r *Registry) Profile(casinoID string) AlgorithmProfile {
	if profile, ok := r.profiles[casinoID]; ok {
		return profile
	}

	return r.profiles[defaultCasinoID]
}

func (r *Registry) Known(casinoID string) bool {
	_, ok := r.profiles[casinoID]

	return ok
}
