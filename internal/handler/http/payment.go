package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mkorobov/qrpay/internal/models"
	"github.com/mkorobov/qrpay/internal/sberqr"
)

type PaymentService interface {
	CreateOrder(ctx context.Context, applicationID uint64) (sberqr.Response, error)
	OrderStatus(ctx context.Context, orderID string) (sberqr.Response, error)
	RevokeOrder(ctx context.Context, orderID string) (sberqr.Response, error)
	CancelOrder(ctx context.Context, orderID string) (sberqr.Response, error)
	Registry(ctx context.Context, params map[string]any) (sberqr.Response, error)
}

// PaymentHandler represents HTTP handler for payment-related requests
type PaymentHandler struct {
	svc PaymentService
}

// NewPaymentHandler creates new PaymentHandler instance
// 200 — успешная обработка запроса;
// 400 — неверные данные заявки;
// 404 — заявка не найдена;
// 409 — заказ по заявке уже отправлен;
// 502 — шлюз отклонил запрос;
// 504 — шлюз недоступен.
func NewPaymentHandler(svc PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// CreateOrder creates gateway order for application
func (ph *PaymentHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicationID, err := strconv.ParseUint(chi.URLParam(r, "applicationID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid application id", http.StatusBadRequest)
			return
		}

		resp, err := ph.svc.CreateOrder(r.Context(), applicationID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeResponse(w, resp)
	}
}

// OrderStatus returns gateway status of order
func (ph *PaymentHandler) OrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := chi.URLParam(r, "orderID")
		if orderID == "" {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		resp, err := ph.svc.OrderStatus(r.Context(), orderID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeResponse(w, resp)
	}
}

// RevokeOrder revokes an unpaid order
func (ph *PaymentHandler) RevokeOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := chi.URLParam(r, "orderID")
		if orderID == "" {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		resp, err := ph.svc.RevokeOrder(r.Context(), orderID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeResponse(w, resp)
	}
}

// CancelOrder cancels a paid order
func (ph *PaymentHandler) CancelOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := chi.URLParam(r, "orderID")
		if orderID == "" {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		resp, err := ph.svc.CancelOrder(r.Context(), orderID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeResponse(w, resp)
	}
}

// Registry queries the order registry with pass-through parameters
func (ph *PaymentHandler) Registry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := map[string]any{}
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
				http.Error(w, "bad request", http.StatusBadRequest)
				return
			}
		}
		defer r.Body.Close()

		resp, err := ph.svc.Registry(r.Context(), params)
		if err != nil {
			writeError(w, err)
			return
		}

		writeResponse(w, resp)
	}
}

func writeResponse(w http.ResponseWriter, resp sberqr.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeError maps typed service errors to HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr models.ValidationError
		authErr       models.AuthenticationError
		gatewayErr    models.GatewayError
		transportErr  models.TransportError
	)

	switch {
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrApplicationNotFound):
		http.Error(w, "application not found", http.StatusNotFound)
	case errors.Is(err, models.ErrDuplicateOrder):
		http.Error(w, "order already submitted", http.StatusConflict)
	case errors.As(err, &authErr):
		// credential rot must be distinguishable from gateway flakiness
		http.Error(w, "gateway authorization failed", http.StatusBadGateway)
	case errors.As(err, &gatewayErr):
		http.Error(w, gatewayErr.Error(), http.StatusBadGateway)
	case errors.As(err, &transportErr):
		http.Error(w, "gateway unavailable", http.StatusGatewayTimeout)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
