package models

import (
	"strconv"
	"time"
)

// Application is the domain aggregate the shop creates before payment.
// This service only reads it.
type Application struct {
	ID        uint64
	CreatedAt time.Time
	Products  []ApplicationProduct
}

// ApplicationProduct is a single position of an application.
// Price is in major currency units (rubles).
type ApplicationProduct struct {
	Name  string
	Price float64
}

// PaymentID returns the order number sent to the gateway.
func (a *Application) PaymentID() string {
	return a.CreatedAt.UTC().Format("20060102") + "-" + strconv.FormatUint(a.ID, 10)
}
