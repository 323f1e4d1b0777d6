package models

import "time"

//NEW — заказ создан локально, на шлюз ещё не отправлен;
//REGISTERED — шлюз принял заказ, ожидается оплата;
//PAID — заказ оплачен;
//DECLINED — шлюз отклонил оплату;
//REVOKED — заказ отозван до оплаты;
//CANCELLED — оплаченный заказ отменён;
//EXPIRED — срок действия QR-кода истёк.

// order status
const (
	OrderStatusNew        = "NEW"
	OrderStatusRegistered = "REGISTERED"
	OrderStatusPaid       = "PAID"
	OrderStatusDeclined   = "DECLINED"
	OrderStatusRevoked    = "REVOKED"
	OrderStatusCancelled  = "CANCELLED"
	OrderStatusExpired    = "EXPIRED"
)

// IsFinalOrderStatus reports whether status can no longer change.
func IsFinalOrderStatus(status string) bool {
	switch status {
	case OrderStatusPaid, OrderStatusDeclined, OrderStatusRevoked, OrderStatusCancelled, OrderStatusExpired:
		return true
	}
	return false
}

// Order is local record of an order submitted to the gateway.
// OrderID is the remote handle used by status/revoke/cancel calls.
type Order struct {
	ID            uint64
	ApplicationID uint64
	OrderID       string
	OrderNumber   string
	Status        string
	Amount        int64
	RqUID         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
