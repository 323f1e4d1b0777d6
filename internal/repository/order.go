package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/mkorobov/qrpay/internal/models"
	"github.com/mkorobov/qrpay/internal/repository/postgres"
)

const pgErrUniqueViolationCode = "23505"

const (
	insertOrderQuery = `
						INSERT INTO orders (application_id, order_id, order_number, status, amount, rq_uid)
						VALUES ($1, $2, $3, $4, $5, $6)
						RETURNING id, application_id, order_id, order_number, status, amount, rq_uid, created_at, updated_at
`
	selectOrderByOrderIDQuery = `
						SELECT id, application_id, order_id, order_number, status, amount, rq_uid, created_at, updated_at
						FROM orders
						WHERE order_id = $1
`
	updateOrderStatusQuery = `
						UPDATE orders
						SET status = $1, updated_at = now()
						WHERE order_id = $2
`
	selectPendingOrdersQuery = `
						SELECT id, application_id, order_id, order_number, status, amount, rq_uid, created_at, updated_at
						FROM orders
						WHERE status IN ('NEW', 'REGISTERED')
`
)

// OrderRepository stores local records of gateway orders
type OrderRepository struct {
	db *postgres.DB
}

// NewOrderRepository creates new OrderRepository instance
func NewOrderRepository(db *postgres.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder inserts new order record
func (or *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	err := or.db.QueryRow(ctx, insertOrderQuery,
		order.ApplicationID, order.OrderID, order.OrderNumber, order.Status, order.Amount, order.RqUID,
	).Scan(&order.ID, &order.ApplicationID, &order.OrderID, &order.OrderNumber, &order.Status, &order.Amount, &order.RqUID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errCode := or.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return order, nil
}

// GetOrderByOrderID returns order record by remote order id
func (or *OrderRepository) GetOrderByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	order := models.Order{}
	err := or.db.QueryRow(ctx, selectOrderByOrderIDQuery, orderID).Scan(
		&order.ID, &order.ApplicationID, &order.OrderID, &order.OrderNumber, &order.Status, &order.Amount, &order.RqUID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &order, nil
}

// UpdateOrderStatus updates order status by remote order id
func (or *OrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status string) error {
	cmd, err := or.db.Exec(ctx, updateOrderStatusQuery, status, orderID)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// GetPendingOrders returns orders that have not reached a final state
func (or *OrderRepository) GetPendingOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := or.db.Query(ctx, selectPendingOrdersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}

	for rows.Next() {
		order := models.Order{}
		err = rows.Scan(&order.ID, &order.ApplicationID, &order.OrderID, &order.OrderNumber, &order.Status, &order.Amount, &order.RqUID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			continue
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
