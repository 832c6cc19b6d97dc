package model

import "time"

// CasinoIssueRecord accumulates hash verification failures per casino across
// all users and sessions. Counts only ever increase.
type CasinoIssueRecord struct {
	CasinoID            string       `json:"casino_id"`
	TotalVerifications  int          `json:"total_verifications"`
	FailedVerifications int          `json:"failed_verifications"`
	SuspiciousBets      []BetVerdict `json:"suspicious_bets"`
	FirstIssueAt        time.Time    `json:"first_issue_at"`
	LastIssueAt         time.Time    `json:"last_issue_at"`
}

type IssueLabel string

const (
	LabelHighlySuspicious IssueLabel = "HIGHLY_SUSPICIOUS"
	LabelSuspicious       IssueLabel = "SUSPICIOUS"
	LabelMonitoring       IssueLabel = "MONITORING"
)

type CasinoIssueSummary struct {
	CasinoID            string     `json:"casino_id"`
	HasIssues           bool       `json:"has_issues"`
	Message             string     `json:"message,omitempty"`
	TotalVerifications  int        `json:"total_verifications,omitempty"`
	FailedVerifications int        `json:"failed_verifications,omitempty"`
	FailureRate         string     `json:"failure_rate,omitempty"`
	SuspiciousBetsCount int        `json:"suspicious_bets_count,omitempty"`
	FirstIssueAt        *time.Time `json:"first_issue_at,omitempty"`
	LastIssueAt         *time.Time `json:"last_issue_at,omitempty"`
	Verdict             IssueLabel `json:"verdict,omitempty"`
}
