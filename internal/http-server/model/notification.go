package model

import (
	"time"

	"github.com/jmenichole/TiltCheck-sub005/internal/config"
)

type Urgency string

const (
	UrgencyHigh   Urgency = "HIGH"
	UrgencyMedium Urgency = "MEDIUM"
	UrgencyLow    Urgency = "LOW"
)

// PendingNotification tells a user how to collect seed material from a casino
// after the external deviation detector flagged their session. It is created
// once and read by the UI; the engine never mutates an issued notification.
type PendingNotification struct {
	NotificationID  string                 `json:"notification_id"`
	UserID          string                 `json:"user_id"`
	CasinoID        string                 `json:"casino_id"`
	CasinoName      string                 `json:"casino_name"`
	SessionID       string                 `json:"session_id"`
	Timestamp       time.Time              `json:"timestamp"`
	Severity        string                 `json:"severity"`
	Deviation       string                 `json:"deviation"`
	Title           string                 `json:"title"`
	Urgency         Urgency                `json:"urgency"`
	Message         string                 `json:"message"`
	Instructions    CollectionInstructions `json:"instructions"`
	VerificationURL string                 `json:"verification_url"`
	LegalImportance string                 `json:"legal_importance"`
}

type CollectionInstructions struct {
	Casino         string               `json:"casino"`
	Algorithm      config.HashAlgorithm `json:"algorithm"`
	Format         string               `json:"format"`
	Steps          string               `json:"steps"`
	DocsURL        string               `json:"docs_url,omitempty"`
	SuspiciousBets []SuspiciousBetRef   `json:"suspicious_bets"`
	WhatToCollect  []string             `json:"what_to_collect"`
	HowToVerify    []string             `json:"how_to_verify"`
}

// SuspiciousBetRef points at a bet the detector wants verified first.
type SuspiciousBetRef struct {
	BetID  string `json:"bet_id"`
	Reason string `json:"reason"`
}
