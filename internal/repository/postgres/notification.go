package postgres

import (
	"settler/models"

	"github.com/jmoiron/sqlx"
)

type NotificationRepository struct {
	conn *sqlx.DB
}

func NewNotificationRepository(conn *sqlx.DB) NotificationRepo {
	return &NotificationRepository{
		conn: conn,
	}
}

func (r *NotificationRepository) Store(m *models.Notification) error {
	if _, err := r.conn.NamedExec(
		"INSERT INTO notifications (id,target_id,message,category,link,read,created_at) "+
			"VALUES (:id,:target_id,:message,:category,:link,:read,:created_at)", m); err != nil {
		return err
	}

	return nil
}

func (r *NotificationRepository) GetByTargetID(targetID string) ([]models.Notification, error) {
	var notifications []models.Notification

	if err := r.conn.Select(&notifications, "SELECT * FROM notifications WHERE target_id = $1 ORDER BY created_at DESC;", targetID); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *NotificationRepository) SetRead(id string) error {
	if _, err := r.conn.Exec("UPDATE notifications SET read = true WHERE id = $1;", id); err != nil {
		return err
	}

	return nil
}
