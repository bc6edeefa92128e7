package queries

import (
	"context"

	"foodgo/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads pages of order summaries scoped to the caller.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the query, newest orders first.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id, customer_id, partner_id, restaurant_name, status, total,
			payment_status, estimated_delivery_time, created_at
		FROM orders
		WHERE 1 = 1
	`
	args := make([]any, 0, 4)

	switch query.ActorRole() {
	case kernel.RoleCustomer:
		sql += " AND customer_id = ?"
		args = append(args, query.ActorID().Bytes())
	case kernel.RoleDeliveryPartner:
		sql += " AND partner_id = ?"
		args = append(args, query.ActorID().Bytes())
	case kernel.RoleAdmin:
	}

	if status := query.Status(); status != nil {
		sql += " AND status = ?"
		args = append(args, status.String())
	}

	sql += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, query.Limit(), query.Offset())

	orders := make([]ListOrdersQueryResponse, 0)
	if err := h.db.WithContext(ctx).Raw(sql, args...).Scan(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}
