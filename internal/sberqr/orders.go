package sberqr

import (
	"context"
)

// CreateOrder submits an order-creation payload to the gateway.
// Never call this twice for one logical order: creation is not idempotent
// on the remote side, the caller guards against duplicates.
func (c *Client) CreateOrder(ctx context.Context, order *OrderCreation) (Response, error) {
	return c.postJSON(ctx, pathOrderCreation, ScopeCreate, order.RqUID, order)
}

// OrderStatus queries the current state of an order.
func (c *Client) OrderStatus(ctx context.Context, orderID string) (Response, error) {
	q := BuildOrderQuery(orderID)
	return c.postJSON(ctx, pathOrderStatus, ScopeStatus, q.RqUID, q)
}

// RevokeOrder revokes an unpaid order. The gateway is authoritative on
// whether the order is still revocable; its rejection is surfaced as-is.
func (c *Client) RevokeOrder(ctx context.Context, orderID string) (Response, error) {
	q := BuildOrderQuery(orderID)
	return c.postJSON(ctx, pathOrderRevoke, ScopeRevoke, q.RqUID, q)
}

// CancelOrder cancels a paid order.
func (c *Client) CancelOrder(ctx context.Context, orderID string) (Response, error) {
	q := BuildOrderQuery(orderID)
	return c.postJSON(ctx, pathOrderCancel, ScopeCancel, q.RqUID, q)
}

// Registry queries the paginated order registry. Parameters are defined
// by the remote and passed through unchanged.
func (c *Client) Registry(ctx context.Context, params map[string]any) (Response, error) {
	q := BuildRegistryQuery(params)
	rqUID, _ := q["rq_uid"].(string)
	return c.postJSON(ctx, pathOrderRegistry, ScopeRegistry, rqUID, q)
}
