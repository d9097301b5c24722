package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/MrJamesThe3rd/cofre/internal/notification"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListNotifications(ctx context.Context) ([]notification.Notification, error) {
	query := `
		SELECT id, title, message, type, category, is_read, created_at, priority, action_required, data
		FROM notifications
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var list []notification.Notification

	for rows.Next() {
		var (
			n                       notification.Notification
			typ, category, priority string
			data                    []byte
		)

		if err := rows.Scan(
			&n.ID, &n.Title, &n.Message, &typ, &category, &n.IsRead,
			&n.CreatedAt, &priority, &n.ActionRequired, &data,
		); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}

		n.Type = notification.Type(typ)
		n.Category = notification.Category(category)
		n.Priority = notification.Priority(priority)

		if len(data) > 0 {
			if err := json.Unmarshal(data, &n.Data); err != nil {
				return nil, fmt.Errorf("decoding notification %s data: %w", n.ID, err)
			}
		}

		list = append(list, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notification rows: %w", err)
	}

	return list, nil
}

// ReplaceNotifications overwrites the stored list in one transaction.
func (s *Store) ReplaceNotifications(ctx context.Context, list []notification.Notification) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM notifications`); err != nil {
		return fmt.Errorf("clearing notifications: %w", err)
	}

	query := `
		INSERT INTO notifications (id, position, title, message, type, category, is_read, created_at, priority, action_required, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for i, n := range list {
		var data any

		if n.Data != nil {
			b, err := json.Marshal(n.Data)
			if err != nil {
				return fmt.Errorf("encoding notification %s data: %w", n.ID, err)
			}

			data = string(b)
		}

		if _, err := dbTx.ExecContext(ctx, query,
			n.ID,
			i,
			n.Title,
			n.Message,
			string(n.Type),
			string(n.Category),
			n.IsRead,
			n.CreatedAt,
			string(n.Priority),
			n.ActionRequired,
			data,
		); err != nil {
			return fmt.Errorf("inserting notification %s: %w", n.ID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) MarkAsRead(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("marking notification as read: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}

	if n == 0 {
		return notification.ErrNotFound
	}

	return nil
}

func (s *Store) MarkAllAsRead(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE is_read = FALSE`); err != nil {
		return fmt.Errorf("marking all notifications as read: %w", err)
	}

	return nil
}
