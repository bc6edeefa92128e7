package queries

import (
	"context"

	"foodgo/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// AvailableOrdersQueryHandler reads the unclaimed order pool.
type AvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewAvailableOrdersQueryHandler creates a handler for the open order pool.
func NewAvailableOrdersQueryHandler(db *gorm.DB) AvailableOrdersQueryHandler {
	return AvailableOrdersQueryHandler{db: db}
}

// Handle executes the query. Only unassigned orders in a claimable status
// qualify; terminal and already-claimed orders never show up.
func (h AvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query AvailableOrdersQuery,
) ([]AvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]AvailableOrdersQueryResponse, 0)
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, restaurant_name, restaurant_lat, restaurant_lng,
			drop_street, drop_city, drop_lat, drop_lng,
			status, total, delivery_fee, created_at
		FROM orders
		WHERE partner_id IS NULL AND status IN ?
		ORDER BY created_at ASC
	`, []string{order.StatusPlaced.String(), order.StatusConfirmed.String()}).
		Scan(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}
