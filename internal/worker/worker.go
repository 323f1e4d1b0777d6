package worker

import (
	"context"
	"time"

	"github.com/mkorobov/qrpay/internal/logger"
)

const pollingInterval = 15 * time.Second

type PaymentService interface {
	StatusForPendingOrders(ctx context.Context, orderCh <-chan string)
	GetOrdersForPolling(ctx context.Context, orderCh chan<- string) error
}

// StatusPoller is worker that polls gateway status for pending orders
type StatusPoller struct {
	svc PaymentService
}

// NewStatusPoller creates new status poller
func NewStatusPoller(svc PaymentService) *StatusPoller {
	return &StatusPoller{svc: svc}
}

// Run polls pending orders until context is cancelled
func (sp *StatusPoller) Run(ctx context.Context) {
	orders := make(chan string, 10)

	go sp.svc.StatusForPendingOrders(ctx, orders)

	ticker := time.NewTicker(pollingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Debug("status poller is done")
			return
		case <-ticker.C:
			if err := sp.svc.GetOrdersForPolling(ctx, orders); err != nil {
				logger.Log.Error("error get orders for polling")
			}
		}
	}
}
