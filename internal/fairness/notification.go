package fairness

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/model"
	"github.com/jmenichole/TiltCheck-sub005/internal/lib/converter"
	"github.com/jmenichole/TiltCheck-sub005/internal/lib/random"
)

// Detector severities that escalate a notification to HIGH urgency.
const (
	SeverityCritical = "critical"
	SeverityMajor    = "major"
)

const notificationIDBytes = 8

// MismatchData is what the external RTP deviation detector reports when it
// decides seed collection is warranted. Severity comes from the detector's
// own classification; the composer maps it, it never recomputes it.
type MismatchData struct {
	UserID         string
	CasinoID       string
	CasinoName     string
	SessionID      string
	Deviation      float64
	Severity       string
	SuspiciousBets []model.SuspiciousBetRef
}

type NotificationComposer struct {
	log      *slog.Logger
	registry *Registry
}

func NewNotificationComposer(log *slog.Logger, registry *Registry) *NotificationComposer {
	return &NotificationComposer{
		log:      log,
		registry: registry,
	}
}

// Compose builds the seed collection notification for one detected mismatch.
// Pure message construction; no verification logic lives here.
func (c *NotificationComposer) Compose(data MismatchData) model.PendingNotification {
	const op = "fairness.notification.Compose"

	profile := c.registry.Profile(data.CasinoID)

	urgency := model.UrgencyMedium
	if data.Severity == SeverityCritical || data.Severity == SeverityMajor {
		urgency = model.UrgencyHigh
	}

	notification := model.PendingNotification{
		NotificationID: random.NewHexID(notificationIDBytes),
		UserID:         data.UserID,
		CasinoID:       data.CasinoID,
		CasinoName:     data.CasinoName,
		SessionID:      data.SessionID,
		Timestamp:      time.Now().UTC(),
		Severity:       data.Severity,
		Deviation:      converter.FormatPercent(data.Deviation),
		Title:          "Verify Casino Fairness - Collect Your Seeds",
		Urgency:        urgency,
		Message:        buildCollectionMessage(data.CasinoName, profile, data.SuspiciousBets),
		Instructions: model.CollectionInstructions{
			Casino:         data.CasinoName,
			Algorithm:      profile.Algorithm,
			Format:         profile.SeedFormat,
			Steps:          profile.Instructions,
			DocsURL:        profile.DocsURL,
			SuspiciousBets: data.SuspiciousBets,
			WhatToCollect: []string{
				"Server Seed (usually hashed)",
				"Client Seed (your seed)",
				"Nonce (bet number)",
				"Game result",
				"Timestamp of each bet",
			},
			HowToVerify: []string{
				"1. Collect seeds from casino",
				"2. Return to TiltCheck",
				"3. Paste seeds into verification tool",
				"4. We'll verify if results match",
				"5. If mismatch found, legal evidence is created",
			},
		},
		VerificationURL: fmt.Sprintf("/verify-seeds/%s/%s", data.UserID, data.SessionID),
		LegalImportance: legalImportanceNote,
	}

	c.log.Info("seed collection notification composed",
		slog.String("op", op),
		slog.String("notification_id", notification.NotificationID),
		slog.String("user_id", data.UserID),
		slog.String("casino_id", data.CasinoID),
		slog.String("urgency", string(urgency)))

	return notification
}

const legalImportanceNote = `If the casino's seeds don't verify correctly, this is PROOF of manipulation.
This evidence can be used in:
- Complaints to licensing authorities
- Chargebacks with payment processors
- Class action lawsuits
- Public exposure of the casino`

func buildCollectionMessage(casinoName string, profile AlgorithmProfile, suspiciousBets []model.SuspiciousBetRef) string {
	var b strings.Builder

	fmt.Fprintf(&b, "IMPORTANT: Verify Casino Fairness\n\n")
	fmt.Fprintf(&b, "We detected unusual results in your %s gameplay. To verify if the casino\n", casinoName)
	fmt.Fprintf(&b, "is operating fairly, we need you to collect your game seeds.\n\n")
	fmt.Fprintf(&b, "WHAT ARE SEEDS?\n")
	fmt.Fprintf(&b, "Provably fair casinos use cryptographic seeds to generate game results.\n")
	fmt.Fprintf(&b, "You can verify these seeds to prove whether results were fair.\n\n")
	fmt.Fprintf(&b, "WHY THIS MATTERS:\n")
	fmt.Fprintf(&b, "If the seeds don't verify, it's PROOF the casino manipulated your games.\n\n")
	fmt.Fprintf(&b, "WHERE TO FIND THEM:\n%s\n", profile.Instructions)

	if len(suspiciousBets) > 0 {
		fmt.Fprintf(&b, "\nPRIORITY BETS TO VERIFY:\n")
		fmt.Fprintf(&b, "We identified %d particularly suspicious bets. Get seeds for these first:\n", len(suspiciousBets))

		priority := suspiciousBets
		if len(priority) > 5 {
			priority = priority[:5]
		}

		for i, bet := range priority {
			fmt.Fprintf(&b, "%d. Bet #%s - %s\n", i+1, bet.BetID, bet.Reason)
		}
	}

	fmt.Fprintf(&b, "\nTIME SENSITIVE:\n")
	fmt.Fprintf(&b, "Some casinos delete seed data after 24-48 hours.\n")
	fmt.Fprintf(&b, "Collect your seeds NOW while they're still available.\n\n")
	fmt.Fprintf(&b, "After collecting seeds, return to TiltCheck and we'll verify them for you.")

	return b.String()
}
