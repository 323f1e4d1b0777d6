package sberqr

import (
	"math"
	"strconv"
	"time"

	"github.com/mkorobov/qrpay/internal/models"
	"github.com/mkorobov/qrpay/internal/rqid"
)

// timeLayout is the gateway timestamp format. Values are always UTC;
// the trailing Z is the RFC 3339 UTC designator, not a literal suffix
// on local time.
const timeLayout = "2006-01-02T15:04:05Z"

const currencyRUB = "RUB"

// rqUIDLen matches the gateway's correlation id length
const rqUIDLen = 32

// OrderPosition is one line item of an order creation request.
type OrderPosition struct {
	Name        string        `json:"position_name"`
	Count       PositionCount `json:"position_count"`
	Sum         int64         `json:"position_sum"`
	Description string        `json:"position_description"`
}

type PositionCount struct {
	Value   int    `json:"value"`
	Measure string `json:"measure"`
}

// OrderCreation is the order-creation payload. Monetary amounts are in
// minor units (kopecks).
type OrderCreation struct {
	RqUID           string          `json:"rq_uid"`
	RqTm            string          `json:"rq_tm"`
	MemberID        string          `json:"member_id"`
	OrderNumber     string          `json:"order_number"`
	OrderCreateDate string          `json:"order_create_date"`
	Positions       []OrderPosition `json:"order_params_type"`
	IDQR            string          `json:"id_qr"`
	OrderSum        int64           `json:"order_sum"`
	Currency        string          `json:"currency"`
	Description     string          `json:"description"`
}

// OrderQuery addresses an already created order for status/revoke/cancel.
type OrderQuery struct {
	RqUID   string `json:"rq_uid"`
	RqTm    string `json:"rq_tm"`
	OrderID string `json:"order_id"`
}

// roundEps absorbs binary representation error of decimal prices:
// 1000.005 stored as float64 is fractionally below 1000.005, and a bare
// half-up round would drop the kopeck.
const roundEps = 1e-9

// MinorUnits converts a price in major units to minor units, rounding
// half-up to the nearest kopeck.
func MinorUnits(major float64) (int64, error) {
	if major < 0 {
		return 0, models.ErrNegativeAmount
	}
	return int64(math.Floor(major*100 + 0.5 + roundEps)), nil
}

// BuildOrderCreation assembles the creation payload from an application.
// Each position is rounded to minor units independently, then summed;
// the total is never rounded separately.
func BuildOrderCreation(app *models.Application, qrID string) (*OrderCreation, error) {
	if len(app.Products) == 0 {
		return nil, models.ValidationError{Field: "products", Err: models.ErrNoLineItems}
	}

	positions := make([]OrderPosition, 0, len(app.Products))
	var total int64
	for _, p := range app.Products {
		sum, err := MinorUnits(p.Price)
		if err != nil {
			return nil, models.ValidationError{Field: "products." + p.Name, Err: err}
		}
		positions = append(positions, OrderPosition{
			Name:  p.Name,
			Count: PositionCount{Value: 1, Measure: "шт"},
			Sum:   sum,
		})
		total += sum
	}

	paymentID := app.PaymentID()

	return &OrderCreation{
		RqUID:           rqid.New(rqUIDLen),
		RqTm:            time.Now().UTC().Format(timeLayout),
		MemberID:        strconv.FormatUint(app.ID, 10),
		OrderNumber:     paymentID,
		OrderCreateDate: app.CreatedAt.UTC().Format(timeLayout),
		Positions:       positions,
		IDQR:            qrID,
		OrderSum:        total,
		Currency:        currencyRUB,
		Description:     "Номер заказа: " + paymentID,
	}, nil
}

// BuildOrderQuery assembles the payload addressing an existing order.
func BuildOrderQuery(orderID string) *OrderQuery {
	return &OrderQuery{
		RqUID:   rqid.New(rqUIDLen),
		RqTm:    time.Now().UTC().Format(timeLayout),
		OrderID: orderID,
	}
}

// BuildRegistryQuery injects correlation fields into caller parameters.
// Registry parameters are defined by the remote and passed through opaque.
func BuildRegistryQuery(params map[string]any) map[string]any {
	q := make(map[string]any, len(params)+2)
	for k, v := range params {
		q[k] = v
	}
	q["rq_uid"] = rqid.New(rqUIDLen)
	q["rq_tm"] = time.Now().UTC().Format(timeLayout)
	return q
}
