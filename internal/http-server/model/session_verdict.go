package model

import "time"

type Classification string

const (
	Fair       Classification = "FAIR"
	MostlyFair Classification = "MOSTLY_FAIR"
	Suspicious Classification = "SUSPICIOUS"
	Fraudulent Classification = "FRAUDULENT"
)

// SessionVerdict aggregates the bet verdicts of one verification request.
// Verdicts are append-only evidence: once created they are persisted and
// never rewritten.
type SessionVerdict struct {
	VerificationID  string         `json:"verification_id"`
	UserID          string         `json:"user_id"`
	CasinoID        string         `json:"casino_id"`
	SessionID       string         `json:"session_id"`
	Timestamp       time.Time      `json:"timestamp"`
	TotalBets       int            `json:"total_bets"`
	VerifiedCount   int            `json:"verified_count"`
	FailedCount     int            `json:"failed_count"`
	SuspiciousCount int            `json:"suspicious_count"`
	Classification  Classification `json:"classification"`
	Bets            []BetVerdict   `json:"bets"`
	// Evidence carries only the commitment mismatches, in bet order.
	// Result-only mismatches stay in Bets but are too weak to elevate.
	Evidence []BetVerdict `json:"evidence"`
}
