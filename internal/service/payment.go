package service

import (
	"context"
	"errors"
	"time"

	"github.com/mkorobov/qrpay/internal/logger"
	"github.com/mkorobov/qrpay/internal/models"
	"github.com/mkorobov/qrpay/internal/sberqr"
	"go.uber.org/zap"
)

const (
	// bounded retry for read operations on transport failures
	maxReadAttempts  = 3
	readRetryBackoff = 100 * time.Millisecond
)

// ApplicationRepository is interface for reading application data
type ApplicationRepository interface {
	// GetApplicationByID returns application with its products
	GetApplicationByID(ctx context.Context, id uint64) (*models.Application, error)
}

// OrderRepository is interface for interacting with local order records
type OrderRepository interface {
	// CreateOrder inserts new order record
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	// GetOrderByOrderID returns order record by remote order id
	GetOrderByOrderID(ctx context.Context, orderID string) (*models.Order, error)
	// UpdateOrderStatus updates order status by remote order id
	UpdateOrderStatus(ctx context.Context, orderID string, status string) error
	// GetPendingOrders returns orders that have not reached a final state
	GetPendingOrders(ctx context.Context) ([]models.Order, error)
}

// Gateway is the SberQR client surface used by the orchestrator
type Gateway interface {
	CreateOrder(ctx context.Context, order *sberqr.OrderCreation) (sberqr.Response, error)
	OrderStatus(ctx context.Context, orderID string) (sberqr.Response, error)
	RevokeOrder(ctx context.Context, orderID string) (sberqr.Response, error)
	CancelOrder(ctx context.Context, orderID string) (sberqr.Response, error)
	Registry(ctx context.Context, params map[string]any) (sberqr.Response, error)
}

// IdempotencyStore guards order creation against duplicate submission
type IdempotencyStore interface {
	Key(applicationID uint64) string
	Claim(ctx context.Context, key string) (string, bool, error)
	Release(ctx context.Context, key string) error
}

// PaymentService orchestrates the order lifecycle against the gateway
type PaymentService struct {
	apps    ApplicationRepository
	orders  OrderRepository
	gateway Gateway
	idem    IdempotencyStore
	qrID    string
}

// NewPaymentService creates new PaymentService instance
func NewPaymentService(apps ApplicationRepository, orders OrderRepository, gateway Gateway, idem IdempotencyStore, qrID string) *PaymentService {
	return &PaymentService{
		apps:    apps,
		orders:  orders,
		gateway: gateway,
		idem:    idem,
		qrID:    qrID,
	}
}

// CreateOrder creates gateway order for application. Creation is never
// retried: a duplicate submission would charge the customer twice.
func (ps *PaymentService) CreateOrder(ctx context.Context, applicationID uint64) (sberqr.Response, error) {
	app, err := ps.apps.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	// validate and build before any network call
	payload, err := sberqr.BuildOrderCreation(app, ps.qrID)
	if err != nil {
		return nil, err
	}

	key := ps.idem.Key(applicationID)
	_, claimed, err := ps.idem.Claim(ctx, key)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, models.ErrDuplicateOrder
	}

	resp, err := ps.gateway.CreateOrder(ctx, payload)
	if err != nil {
		// a transport failure is ambiguous: the remote order may exist,
		// so the claim stays until its TTL runs out
		var transportErr models.TransportError
		if !errors.As(err, &transportErr) {
			if relErr := ps.idem.Release(ctx, key); relErr != nil {
				logger.Log.Error("release idempotency key", zap.String("key", key), zap.Error(relErr))
			}
		}
		return nil, err
	}

	order := &models.Order{
		ApplicationID: applicationID,
		OrderID:       responseOrderID(resp),
		OrderNumber:   payload.OrderNumber,
		Status:        models.OrderStatusRegistered,
		Amount:        payload.OrderSum,
		RqUID:         payload.RqUID,
	}

	if _, err := ps.orders.CreateOrder(ctx, order); err != nil {
		// the remote order exists; losing the local record is recoverable
		// via the registry, the response still goes to the caller
		logger.Log.Error("persist order record",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
	}

	return resp, nil
}

// OrderStatus queries order status, retrying transport failures
func (ps *PaymentService) OrderStatus(ctx context.Context, orderID string) (sberqr.Response, error) {
	resp, err := ps.withReadRetry(ctx, func() (sberqr.Response, error) {
		return ps.gateway.OrderStatus(ctx, orderID)
	})
	if err != nil {
		return nil, err
	}

	if status := responseOrderState(resp); status != "" {
		if err := ps.orders.UpdateOrderStatus(ctx, orderID, status); err != nil && !errors.Is(err, models.ErrDataNotFound) {
			logger.Log.Error("update order status", zap.String("order_id", orderID), zap.Error(err))
		}
	}

	return resp, nil
}

// RevokeOrder revokes an unpaid order. The gateway decides whether the
// order is still revocable; its rejection is returned to the caller.
func (ps *PaymentService) RevokeOrder(ctx context.Context, orderID string) (sberqr.Response, error) {
	resp, err := ps.gateway.RevokeOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := ps.orders.UpdateOrderStatus(ctx, orderID, models.OrderStatusRevoked); err != nil && !errors.Is(err, models.ErrDataNotFound) {
		logger.Log.Error("update order status", zap.String("order_id", orderID), zap.Error(err))
	}

	return resp, nil
}

// CancelOrder cancels a paid order
func (ps *PaymentService) CancelOrder(ctx context.Context, orderID string) (sberqr.Response, error) {
	resp, err := ps.gateway.CancelOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := ps.orders.UpdateOrderStatus(ctx, orderID, models.OrderStatusCancelled); err != nil && !errors.Is(err, models.ErrDataNotFound) {
		logger.Log.Error("update order status", zap.String("order_id", orderID), zap.Error(err))
	}

	return resp, nil
}

// Registry queries the order registry with pass-through parameters
func (ps *PaymentService) Registry(ctx context.Context, params map[string]any) (sberqr.Response, error) {
	return ps.withReadRetry(ctx, func() (sberqr.Response, error) {
		return ps.gateway.Registry(ctx, params)
	})
}

// withReadRetry retries an idempotent read on transport errors only,
// with exponential backoff. Application errors are returned at once.
func (ps *PaymentService) withReadRetry(ctx context.Context, call func() (sberqr.Response, error)) (sberqr.Response, error) {
	var lastErr error
	backoff := readRetryBackoff

	for attempt := 0; attempt < maxReadAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, models.TransportError{Err: ctx.Err()}
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		resp, err := call()
		if err == nil {
			return resp, nil
		}

		var transportErr models.TransportError
		if !errors.As(err, &transportErr) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// StatusForPendingOrders polls status for orders from channel.
// It is driven by the worker.
func (ps *PaymentService) StatusForPendingOrders(ctx context.Context, orderCh <-chan string) {
	for {
		select {
		case <-ctx.Done():
			logger.Log.Debug("status polling is done")
			return
		case orderID, ok := <-orderCh:
			if !ok {
				return
			}

			logger.Log.Debug("poll order status", zap.String("order_id", orderID))
			if _, err := ps.OrderStatus(ctx, orderID); err != nil {
				logger.Log.Error("order status request error", zap.String("order_id", orderID), zap.Error(err))
			}
		}
	}
}

// GetOrdersForPolling writes pending order ids to channel for polling
func (ps *PaymentService) GetOrdersForPolling(ctx context.Context, orderCh chan<- string) error {
	orders, err := ps.orders.GetPendingOrders(ctx)
	if err != nil {
		return err
	}

	for _, order := range orders {
		orderCh <- order.OrderID
	}

	return nil
}

// responseOrderID extracts the remote order handle from a creation response
func responseOrderID(resp sberqr.Response) string {
	if id, ok := resp["order_id"].(string); ok {
		return id
	}
	return ""
}

// responseOrderState extracts order state from a status response
func responseOrderState(resp sberqr.Response) string {
	if state, ok := resp["order_state"].(string); ok {
		return state
	}
	return ""
}
