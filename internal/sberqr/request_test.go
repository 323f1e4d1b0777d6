package sberqr

import (
	"errors"
	"testing"
	"time"

	"github.com/mkorobov/qrpay/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		name    string
		major   float64
		want    int64
		wantErr error
	}{
		{name: "whole_rubles", major: 2500.00, want: 250000},
		{name: "half_kopeck_rounds_up", major: 1000.005, want: 100001},
		{name: "below_half_kopeck_rounds_down", major: 1000.004, want: 100000},
		{name: "single_kopeck", major: 0.01, want: 1},
		{name: "zero", major: 0, want: 0},
		{name: "negative_is_rejected", major: -1.00, wantErr: models.ErrNegativeAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MinorUnits(tt.major)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildOrderCreation(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	app := &models.Application{
		ID:        42,
		CreatedAt: createdAt,
		Products: []models.ApplicationProduct{
			{Name: "Тариф базовый", Price: 1000.005},
			{Name: "Тариф расширенный", Price: 2500.00},
		},
	}

	order, err := BuildOrderCreation(app, "qr-test-id")
	require.NoError(t, err)

	// each position rounds independently, total is the sum of rounded positions
	require.Len(t, order.Positions, 2)
	assert.Equal(t, int64(100001), order.Positions[0].Sum)
	assert.Equal(t, int64(250000), order.Positions[1].Sum)
	assert.Equal(t, int64(350001), order.OrderSum)

	assert.Equal(t, "42", order.MemberID)
	assert.Equal(t, "20260314-42", order.OrderNumber)
	assert.Equal(t, "qr-test-id", order.IDQR)
	assert.Equal(t, "RUB", order.Currency)
	assert.Equal(t, "2026-03-14T09:30:00Z", order.OrderCreateDate)
	assert.Equal(t, "Номер заказа: 20260314-42", order.Description)
	assert.Len(t, order.RqUID, 32)
}

func TestBuildOrderCreationTotalInvariant(t *testing.T) {
	app := &models.Application{
		ID:        1,
		CreatedAt: time.Now(),
		Products: []models.ApplicationProduct{
			{Name: "a", Price: 0.015},
			{Name: "b", Price: 0.015},
			{Name: "c", Price: 99.994},
		},
	}

	order, err := BuildOrderCreation(app, "qr")
	require.NoError(t, err)

	var sum int64
	for _, p := range order.Positions {
		assert.GreaterOrEqual(t, p.Sum, int64(0))
		sum += p.Sum
	}
	assert.Equal(t, sum, order.OrderSum)
}

func TestBuildOrderCreationNoLineItems(t *testing.T) {
	app := &models.Application{ID: 7, CreatedAt: time.Now()}

	_, err := BuildOrderCreation(app, "qr")

	var validationErr models.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.ErrorIs(t, err, models.ErrNoLineItems)
}

func TestBuildOrderCreationNegativePrice(t *testing.T) {
	app := &models.Application{
		ID:        7,
		CreatedAt: time.Now(),
		Products:  []models.ApplicationProduct{{Name: "a", Price: -10}},
	}

	_, err := BuildOrderCreation(app, "qr")

	var validationErr models.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.ErrorIs(t, err, models.ErrNegativeAmount)
}

func TestBuildOrderQuery(t *testing.T) {
	q := BuildOrderQuery("remote-1")

	assert.Equal(t, "remote-1", q.OrderID)
	assert.Len(t, q.RqUID, 32)

	// timestamps are UTC with an explicit Z designator
	tm, err := time.Parse(timeLayout, q.RqTm)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), tm, time.Minute)
}

func TestBuildRegistryQueryPassThrough(t *testing.T) {
	params := map[string]any{
		"start_period": "2026-01-01T00:00:00Z",
		"end_period":   "2026-02-01T00:00:00Z",
		"page":         1,
	}

	q := BuildRegistryQuery(params)

	assert.Equal(t, params["start_period"], q["start_period"])
	assert.Equal(t, params["end_period"], q["end_period"])
	assert.Equal(t, params["page"], q["page"])
	assert.NotEmpty(t, q["rq_uid"])
	assert.NotEmpty(t, q["rq_tm"])

	// caller map is not mutated
	_, ok := params["rq_uid"]
	assert.False(t, ok)
}
