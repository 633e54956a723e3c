package postgres

import (
	"settler/models"
	"time"
)

//go:generate mockery --case=snake --name=OrderRepo
//go:generate mockery --case=snake --name=NotificationRepo

type OrderRepo interface {
	Store(m *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByStatus(status string) ([]models.Order, error)
	GetByAccountID(accountID string) ([]models.Order, error)
	GetWithInterval(sTime, eTime time.Time) ([]models.Order, error)
	SetStatus(id, expected, status string) error
	SetReminded(id string) error
}

type NotificationRepo interface {
	Store(m *models.Notification) error
	GetByTargetID(targetID string) ([]models.Notification, error)
	SetRead(id string) error
}
