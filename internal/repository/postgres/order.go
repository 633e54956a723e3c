package postgres

import (
	"database/sql"
	"errors"
	"time"

	"settler/models"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrStaleStatus means the expected-status guard missed: another writer
	// moved the order first.
	ErrStaleStatus = errors.New("order status changed since read")

	// ErrInvalidTransition means the requested status change is not in the
	// order state machine.
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrAlreadyReminded means the reminded flag was already set.
	ErrAlreadyReminded = errors.New("order already reminded")

	ErrOrderNotFound = errors.New("order not found")
)

type OrderRepository struct {
	conn *sqlx.DB
}

func NewOrderRepository(conn *sqlx.DB) OrderRepo {
	return &OrderRepository{
		conn: conn,
	}
}

func (r *OrderRepository) Store(m *models.Order) error {
	if _, err := r.conn.NamedExec(
		"INSERT INTO orders (id,account_id,pair,direction,stake,asset,entry_price,profit_rate,timeframe,reference,status,reminded,created_at,expires_at) "+
			"VALUES (:id,:account_id,:pair,:direction,:stake,:asset,:entry_price,:profit_rate,:timeframe,:reference,:status,:reminded,:created_at,:expires_at)", m); err != nil {
		return err
	}

	return nil
}

func (r *OrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order

	if err := r.conn.QueryRowx("SELECT * FROM orders WHERE id = $1 LIMIT 1", id).StructScan(&order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}

		return nil, err
	}

	return &order, nil
}

func (r *OrderRepository) GetByStatus(status string) ([]models.Order, error) {
	var orders []models.Order

	if err := r.conn.Select(&orders, "SELECT * FROM orders WHERE status = $1 ORDER BY expires_at;", status); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrderRepository) GetByAccountID(accountID string) ([]models.Order, error) {
	var orders []models.Order

	if err := r.conn.Select(&orders, "SELECT * FROM orders WHERE account_id = $1 ORDER BY created_at DESC;", accountID); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrderRepository) GetWithInterval(sTime, eTime time.Time) ([]models.Order, error) {
	var orders []models.Order

	if err := r.conn.Select(&orders, "SELECT * FROM orders WHERE created_at > $1 AND created_at < $2;", sTime.UTC(), eTime.UTC()); err != nil {
		return nil, err
	}

	return orders, nil
}

// SetStatus commits the transition only if the stored status still equals
// expected. A stale writer fails closed with ErrStaleStatus.
func (r *OrderRepository) SetStatus(id, expected, status string) error {
	if !models.ValidTransition(expected, status) {
		return ErrInvalidTransition
	}

	res, err := r.conn.Exec("UPDATE orders SET status = $1 WHERE id = $2 AND status = $3;", status, id, expected)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return ErrStaleStatus
	}

	return nil
}

// SetReminded flips the reminded flag false to true at most once.
func (r *OrderRepository) SetReminded(id string) error {
	res, err := r.conn.Exec("UPDATE orders SET reminded = true WHERE id = $1 AND reminded = false;", id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return ErrAlreadyReminded
	}

	return nil
}
