package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/handlers/mysql"
	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/model"
)

type NotificationRepository struct {
	dbhandler mysql.Handler
}

func NewNotificationRepository(dbhandler mysql.Handler) *NotificationRepository {
	return &NotificationRepository{dbhandler: dbhandler}
}

func (repo *NotificationRepository) SaveNotification(ctx context.Context, notification model.PendingNotification) error {
	const op = "repository.notification.SaveNotification"

	const query = "INSERT INTO pending_notifications(notification_id," +
		" user_id," +
		" casino_id," +
		" session_id," +
		" severity," +
		" urgency," +
		" deviation," +
		" payload," +
		" created_at) " +
		"VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)"

	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = repo.dbhandler.PrepareAndExecute(ctx, query,
		notification.NotificationID,
		notification.UserID,
		notification.CasinoID,
		notification.SessionID,
		notification.Severity,
		notification.Urgency,
		notification.Deviation,
		payload,
		notification.Timestamp)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (repo *NotificationRepository) PendingNotifications(ctx context.Context, userID string) ([]model.PendingNotification, error) {
	const op = "repository.notification.PendingNotifications"

	const query = "SELECT payload FROM pending_notifications WHERE user_id = ? ORDER BY id"

	rows, err := repo.dbhandler.PrepareAndQuery(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var notifications []model.PendingNotification

	for rows.Next() {
		var payload []byte

		if err = rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		var notification model.PendingNotification

		if err = json.Unmarshal(payload, &notification); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		notifications = append(notifications, notification)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return notifications, nil
}
