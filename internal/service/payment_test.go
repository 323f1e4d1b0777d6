package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/mkorobov/qrpay/internal/models"
	"github.com/mkorobov/qrpay/internal/sberqr"
	"github.com/mkorobov/qrpay/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentMocks struct {
	apps    *mocks.MockApplicationRepository
	orders  *mocks.MockOrderRepository
	gateway *mocks.MockGateway
	idem    *mocks.MockIdempotencyStore
}

func newPaymentService(t *testing.T) (*PaymentService, paymentMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := paymentMocks{
		apps:    mocks.NewMockApplicationRepository(ctrl),
		orders:  mocks.NewMockOrderRepository(ctrl),
		gateway: mocks.NewMockGateway(ctrl),
		idem:    mocks.NewMockIdempotencyStore(ctrl),
	}

	svc := NewPaymentService(m.apps, m.orders, m.gateway, m.idem, "qr-test-id")
	return svc, m
}

func validApplication() *models.Application {
	return &models.Application{
		ID:        42,
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Products: []models.ApplicationProduct{
			{Name: "Тариф базовый", Price: 1000.005},
			{Name: "Тариф расширенный", Price: 2500.00},
		},
	}
}

func TestPaymentServiceCreateOrder(t *testing.T) {
	svc, m := newPaymentService(t)

	m.apps.EXPECT().GetApplicationByID(gomock.Any(), uint64(42)).Return(validApplication(), nil)
	m.idem.EXPECT().Key(uint64(42)).Return("qrpay:create:42")
	m.idem.EXPECT().Claim(gomock.Any(), "qrpay:create:42").Return("claim-token", true, nil)

	var sentOrder *sberqr.OrderCreation
	m.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, order *sberqr.OrderCreation) (sberqr.Response, error) {
			sentOrder = order
			return sberqr.Response{"order_id": "remote-1", "order_state": "CREATED"}, nil
		})
	m.orders.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, order *models.Order) (*models.Order, error) {
			assert.Equal(t, "remote-1", order.OrderID)
			assert.Equal(t, models.OrderStatusRegistered, order.Status)
			assert.Equal(t, int64(350001), order.Amount)
			return order, nil
		})

	resp, err := svc.CreateOrder(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, "remote-1", resp["order_id"])
	require.NotNil(t, sentOrder)
	assert.Equal(t, int64(350001), sentOrder.OrderSum)
	assert.Equal(t, "qr-test-id", sentOrder.IDQR)
}

func TestPaymentServiceCreateOrderApplicationNotFound(t *testing.T) {
	svc, m := newPaymentService(t)

	m.apps.EXPECT().GetApplicationByID(gomock.Any(), uint64(7)).Return(nil, models.ErrApplicationNotFound)
	m.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.CreateOrder(context.Background(), 7)
	assert.ErrorIs(t, err, models.ErrApplicationNotFound)
}

func TestPaymentServiceCreateOrderNoLineItems(t *testing.T) {
	svc, m := newPaymentService(t)

	app := &models.Application{ID: 7, CreatedAt: time.Now()}
	m.apps.EXPECT().GetApplicationByID(gomock.Any(), uint64(7)).Return(app, nil)

	// validation fails before any network call or idempotency claim
	m.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Times(0)
	m.idem.EXPECT().Claim(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.CreateOrder(context.Background(), 7)

	var validationErr models.ValidationError
	require.True(t, errors.As(err, &validationErr))
}

func TestPaymentServiceCreateOrderDuplicate(t *testing.T) {
	svc, m := newPaymentService(t)

	m.apps.EXPECT().GetApplicationByID(gomock.Any(), uint64(42)).Return(validApplication(), nil)
	m.idem.EXPECT().Key(uint64(42)).Return("qrpay:create:42")
	m.idem.EXPECT().Claim(gomock.Any(), "qrpay:create:42").Return("", false, nil)
	m.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.CreateOrder(context.Background(), 42)
	assert.ErrorIs(t, err, models.ErrDuplicateOrder)
}

func TestPaymentServiceCreateOrderTransportErrorKeepsClaim(t *testing.T) {
	svc, m := newPaymentService(t)

	m.apps.EXPECT().GetApplicationByID(gomock.Any(), uint64(42)).Return(validApplication(), nil)
	m.idem.EXPECT().Key(uint64(42)).Return("qrpay:create:42")
	m.idem.EXPECT().Claim(gomock.Any(), "qrpay:create:42").Return("claim-token", true, nil)
	m.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil, models.TransportError{Err: errors.New("timeout")})

	// the remote order may exist, the claim must survive
	m.idem.EXPECT().Release(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.CreateOrder(context.Background(), 42)

	var transportErr models.TransportError
	assert.True(t, errors.As(err, &transportErr))
}

func TestPaymentServiceCreateOrderGatewayRejectionReleasesClaim(t *testing.T) {
	svc, m := newPaymentService(t)

	m.apps.EXPECT().GetApplicationByID(gomock.Any(), uint64(42)).Return(validApplication(), nil)
	m.idem.EXPECT().Key(uint64(42)).Return("qrpay:create:42")
	m.idem.EXPECT().Claim(gomock.Any(), "qrpay:create:42").Return("claim-token", true, nil)
	m.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil, models.GatewayError{StatusCode: 400, Code: "11"})
	m.idem.EXPECT().Release(gomock.Any(), "qrpay:create:42").Return(nil)

	_, err := svc.CreateOrder(context.Background(), 42)

	var gatewayErr models.GatewayError
	require.True(t, errors.As(err, &gatewayErr))
	assert.Equal(t, "11", gatewayErr.Code)
}

func TestPaymentServiceCreateOrderNeverRetries(t *testing.T) {
	svc, m := newPaymentService(t)

	m.apps.EXPECT().GetApplicationByID(gomock.Any(), uint64(42)).Return(validApplication(), nil)
	m.idem.EXPECT().Key(uint64(42)).Return("qrpay:create:42")
	m.idem.EXPECT().Claim(gomock.Any(), "qrpay:create:42").Return("claim-token", true, nil)
	m.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil, models.TransportError{Err: errors.New("timeout")}).Times(1)

	_, err := svc.CreateOrder(context.Background(), 42)
	assert.Error(t, err)
}

func TestPaymentServiceOrderStatus(t *testing.T) {
	svc, m := newPaymentService(t)

	m.gateway.EXPECT().OrderStatus(gomock.Any(), "remote-1").Return(sberqr.Response{"order_state": "PAID"}, nil)
	m.orders.EXPECT().UpdateOrderStatus(gomock.Any(), "remote-1", "PAID").Return(nil)

	resp, err := svc.OrderStatus(context.Background(), "remote-1")
	require.NoError(t, err)
	assert.Equal(t, "PAID", resp["order_state"])
}

func TestPaymentServiceOrderStatusRetriesTransportErrors(t *testing.T) {
	svc, m := newPaymentService(t)

	gomock.InOrder(
		m.gateway.EXPECT().OrderStatus(gomock.Any(), "remote-1").Return(nil, models.TransportError{Err: errors.New("reset")}),
		m.gateway.EXPECT().OrderStatus(gomock.Any(), "remote-1").Return(nil, models.TransportError{Err: errors.New("reset")}),
		m.gateway.EXPECT().OrderStatus(gomock.Any(), "remote-1").Return(sberqr.Response{"order_state": "PAID"}, nil),
	)
	m.orders.EXPECT().UpdateOrderStatus(gomock.Any(), "remote-1", "PAID").Return(nil)

	resp, err := svc.OrderStatus(context.Background(), "remote-1")
	require.NoError(t, err)
	assert.Equal(t, "PAID", resp["order_state"])
}

func TestPaymentServiceOrderStatusNoRetryOnGatewayError(t *testing.T) {
	svc, m := newPaymentService(t)

	m.gateway.EXPECT().OrderStatus(gomock.Any(), "missing").
		Return(nil, models.GatewayError{StatusCode: 404, Code: "6", Message: "Заказ не найден"}).
		Times(1)

	_, err := svc.OrderStatus(context.Background(), "missing")

	// the remote code must come through verbatim
	var gatewayErr models.GatewayError
	require.True(t, errors.As(err, &gatewayErr))
	assert.Equal(t, "6", gatewayErr.Code)
	assert.Equal(t, "Заказ не найден", gatewayErr.Message)
}

func TestPaymentServiceRevokeOrder(t *testing.T) {
	svc, m := newPaymentService(t)

	m.gateway.EXPECT().RevokeOrder(gomock.Any(), "remote-1").Return(sberqr.Response{"order_state": "REVOKED"}, nil)
	m.orders.EXPECT().UpdateOrderStatus(gomock.Any(), "remote-1", models.OrderStatusRevoked).Return(nil)

	_, err := svc.RevokeOrder(context.Background(), "remote-1")
	assert.NoError(t, err)
}

func TestPaymentServiceRevokeOrderGatewayIsAuthoritative(t *testing.T) {
	svc, m := newPaymentService(t)

	// an already paid order is not revocable; the rejection is surfaced, not pre-empted
	m.gateway.EXPECT().RevokeOrder(gomock.Any(), "remote-1").Return(nil, models.GatewayError{StatusCode: 400, Code: "22"})
	m.orders.EXPECT().UpdateOrderStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.RevokeOrder(context.Background(), "remote-1")

	var gatewayErr models.GatewayError
	assert.True(t, errors.As(err, &gatewayErr))
}

func TestPaymentServiceCancelOrder(t *testing.T) {
	svc, m := newPaymentService(t)

	m.gateway.EXPECT().CancelOrder(gomock.Any(), "remote-1").Return(sberqr.Response{"order_state": "CANCELLED"}, nil)
	m.orders.EXPECT().UpdateOrderStatus(gomock.Any(), "remote-1", models.OrderStatusCancelled).Return(nil)

	_, err := svc.CancelOrder(context.Background(), "remote-1")
	assert.NoError(t, err)
}

func TestPaymentServiceRegistry(t *testing.T) {
	svc, m := newPaymentService(t)

	params := map[string]any{"start_period": "2026-01-01T00:00:00Z"}
	m.gateway.EXPECT().Registry(gomock.Any(), params).Return(sberqr.Response{"orders": []any{}}, nil)

	resp, err := svc.Registry(context.Background(), params)
	require.NoError(t, err)
	assert.NotNil(t, resp["orders"])
}

func TestPaymentServiceGetOrdersForPolling(t *testing.T) {
	svc, m := newPaymentService(t)

	m.orders.EXPECT().GetPendingOrders(gomock.Any()).Return([]models.Order{
		{OrderID: "remote-1", Status: models.OrderStatusRegistered},
		{OrderID: "remote-2", Status: models.OrderStatusNew},
	}, nil)

	orderCh := make(chan string, 10)
	require.NoError(t, svc.GetOrdersForPolling(context.Background(), orderCh))
	close(orderCh)

	var got []string
	for id := range orderCh {
		got = append(got, id)
	}
	assert.Equal(t, []string{"remote-1", "remote-2"}, got)
}
