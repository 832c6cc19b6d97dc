package fairness

import "errors"

var (
	// ErrEmptyBatch rejects a verification request before any bet is touched.
	ErrEmptyBatch = errors.New("bet batch is empty")

	// ErrMissingHMACKey means a profile demands HMAC-SHA256 but no key was
	// configured for that casino. Hashing with a placeholder key would
	// produce a wrong digest for every bet, so the engine refuses instead.
	ErrMissingHMACKey = errors.New("hmac key is not configured for casino profile")

	ErrEmptyServerSeed = errors.New("server seed is empty")
	ErrEmptyClientSeed = errors.New("client seed is empty")
)
