package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/mkorobov/qrpay/internal/models"
	"github.com/mkorobov/qrpay/internal/repository/postgres"
)

const (
	selectApplicationQuery = `
						SELECT id, created_at FROM applications
						WHERE id = $1
`
	selectApplicationProductsQuery = `
						SELECT name, price FROM application_products
						WHERE application_id = $1
						ORDER BY id
`
)

// ApplicationRepository reads application aggregates. This service never
// writes them; the shop owns the records.
type ApplicationRepository struct {
	db *postgres.DB
}

// NewApplicationRepository creates new ApplicationRepository instance
func NewApplicationRepository(db *postgres.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// GetApplicationByID returns application with its products
func (ar *ApplicationRepository) GetApplicationByID(ctx context.Context, id uint64) (*models.Application, error) {
	app := models.Application{}
	err := ar.db.QueryRow(ctx, selectApplicationQuery, id).Scan(&app.ID, &app.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrApplicationNotFound
		}
		return nil, err
	}

	rows, err := ar.db.Query(ctx, selectApplicationProductsQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		product := models.ApplicationProduct{}
		if err := rows.Scan(&product.Name, &product.Price); err != nil {
			continue
		}
		app.Products = append(app.Products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &app, nil
}
