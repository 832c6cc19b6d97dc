package model

// BetVerdict is the outcome of verifying a single bet.
//
// ExpectedHash is the commitment the casino disclosed before play;
// ActualHash is what the server seed actually hashes to. HashMismatch means
// the commitment is broken, which is the strongest fraud signal the engine
// produces.
type BetVerdict struct {
	BetID          string       `json:"bet_id"`
	Verified       bool         `json:"verified"`
	HashMismatch   bool         `json:"hash_mismatch"`
	ExpectedHash   string       `json:"expected_hash"`
	ActualHash     string       `json:"actual_hash"`
	ExpectedResult *ResultValue `json:"expected_result,omitempty"`
	ClaimedResult  ResultValue  `json:"claimed_result"`
	Reason         string       `json:"reason,omitempty"`
}
