package store

import (
	"context"
	"fmt"
	"time"

	"app/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ForecastStore implements the forecasting engine's data-source interfaces
// over the application's Postgres pool.
type ForecastStore struct {
	db *pgxpool.Pool
}

func NewForecastStore(db *pgxpool.Pool) *ForecastStore {
	return &ForecastStore{db: db}
}

// ConsumptionHistory returns the consumption events for a restaurant from
// the given date onward, joined with the item catalog for names and costs.
func (s *ForecastStore) ConsumptionHistory(ctx context.Context, restaurantID string, from time.Time) ([]models.ConsumptionRecord, error) {
	query := `
		SELECT ch.date, ch.item_id, i.name, ch.quantity, COALESCE(i.cost_per_unit, 0)
		FROM consumption_history ch
		JOIN inventory_items i ON ch.item_id = i.id
		WHERE ch.restaurant_id = $1 AND ch.date >= $2
		ORDER BY ch.date ASC
	`
	rows, err := s.db.Query(ctx, query, restaurantID, from.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query consumption history: %w", err)
	}
	defer rows.Close()

	var records []models.ConsumptionRecord
	for rows.Next() {
		var rec models.ConsumptionRecord
		if err := rows.Scan(&rec.Date, &rec.ProductID, &rec.ProductName, &rec.Quantity, &rec.UnitCost); err != nil {
			return nil, fmt.Errorf("failed to scan consumption record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read consumption history: %w", err)
	}
	return records, nil
}

// ProductStock returns the current stock level and unit cost for one item.
func (s *ForecastStore) ProductStock(ctx context.Context, productID string) (models.ProductStock, error) {
	query := `
		SELECT COALESCE(current_stock, 0), COALESCE(cost_per_unit, 0)
		FROM inventory_items
		WHERE id = $1
	`
	var stock models.ProductStock
	err := s.db.QueryRow(ctx, query, productID).Scan(&stock.CurrentStock, &stock.UnitCost)
	if err != nil {
		return models.ProductStock{}, fmt.Errorf("failed to fetch stock for item %s: %w", productID, err)
	}
	return stock, nil
}

// Products lists a restaurant's catalog items, bounded by limit. Used only
// by the synthetic-series fallback.
func (s *ForecastStore) Products(ctx context.Context, restaurantID string, limit int) ([]models.Product, error) {
	query := `
		SELECT id, name, COALESCE(cost_per_unit, 0)
		FROM inventory_items
		WHERE restaurant_id = $1
		ORDER BY name ASC
		LIMIT $2
	`
	rows, err := s.db.Query(ctx, query, restaurantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query product catalog: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.UnitCost); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product catalog: %w", err)
	}
	return products, nil
}

// ActiveRestaurantIDs lists the restaurants the scheduler refreshes.
func (s *ForecastStore) ActiveRestaurantIDs(ctx context.Context) ([]string, error) {
	query := `SELECT id FROM restaurants WHERE is_active = true ORDER BY created_at ASC`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan restaurant id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read restaurants: %w", err)
	}
	return ids, nil
}
