package event

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/exp/slog"

	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/model"
	"github.com/jmenichole/TiltCheck-sub005/internal/lib/logger/sl"
)

// VerdictPublisher pushes verdict and notification events to the ws hub so
// dashboards see verification results live. The hub conn allows one writer
// at a time, hence the mutex.
type VerdictPublisher struct {
	log   *slog.Logger
	conn  *websocket.Conn
	mutex sync.Mutex
}

type Message struct {
	Channel string                 `json:"channel"`
	Event   string                 `json:"event"`
	Data    map[string]interface{} `json:"data"`
}

func NewVerdictPublisher(log *slog.Logger, conn *websocket.Conn) *VerdictPublisher {
	return &VerdictPublisher{
		log:  log,
		conn: conn,
	}
}

func (p *VerdictPublisher) Trigger(m Message) error {
	const op = "handlers.event.Trigger"

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if err := p.conn.WriteJSON(m); err != nil {
		p.log.Error("failed to publish event",
			sl.String("channel", m.Channel),
			sl.String("event", m.Event),
			sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func NewSessionVerdictMessage(verdict *model.SessionVerdict) Message {
	return Message{
		Channel: "casino." + verdict.CasinoID,
		Event:   "session-verdict",
		Data: map[string]interface{}{
			"verification_id": verdict.VerificationID,
			"user_id":         verdict.UserID,
			"session_id":      verdict.SessionID,
			"classification":  verdict.Classification,
			"total_bets":      verdict.TotalBets,
			"verified":        verdict.VerifiedCount,
			"failed":          verdict.FailedCount,
			"suspicious":      verdict.SuspiciousCount,
		},
	}
}

func NewNotificationMessage(notification *model.PendingNotification) Message {
	return Message{
		Channel: "user." + notification.UserID,
		Event:   "collect-seeds",
		Data: map[string]interface{}{
			"notification_id": notification.NotificationID,
			"casino_id":       notification.CasinoID,
			"casino_name":     notification.CasinoName,
			"session_id":      notification.SessionID,
			"urgency":         notification.Urgency,
			"deviation":       notification.Deviation,
			"title":           notification.Title,
		},
	}
}
