package queries

import (
	"context"
	"encoding/json"
	"time"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order row, scoped to the caller.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order lookups.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

type orderRow struct {
	ID         string
	CustomerID string
	PartnerID  *string

	RestaurantName     string
	RestaurantAddress  string
	RestaurantPlatform string

	Items []byte

	Subtotal    float64
	DeliveryFee float64
	Taxes       float64
	Discount    float64
	Total       float64

	DropStreet string
	DropCity   string
	DropState  string

	Status string

	PaymentMethod string
	PaymentStatus string

	EstimatedDeliveryTime time.Time
	ActualDeliveryTime    *time.Time

	CurrentLat *float64
	CurrentLng *float64

	SpecialInstructions string
	CreatedAt           time.Time
}

// Handle executes the query. A row hidden by the caller's scope is reported
// the same way as a missing one, so callers cannot probe for foreign orders.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (*GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id, customer_id, partner_id,
			restaurant_name, restaurant_address, restaurant_platform,
			items,
			subtotal, delivery_fee, taxes, discount, total,
			drop_street, drop_city, drop_state,
			status,
			payment_method, payment_status,
			estimated_delivery_time, actual_delivery_time,
			current_lat, current_lng,
			special_instructions, created_at
		FROM orders
		WHERE id = ?
	`
	args := []any{query.OrderID().String()}

	switch query.ActorRole() {
	case kernel.RoleCustomer:
		sql += " AND customer_id = ?"
		args = append(args, query.ActorID().Bytes())
	case kernel.RoleDeliveryPartner:
		sql += " AND partner_id = ?"
		args = append(args, query.ActorID().Bytes())
	case kernel.RoleAdmin:
	}

	var row orderRow
	result := h.db.WithContext(ctx).Raw(sql, args...).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	var items []OrderItemResponse
	if len(row.Items) > 0 {
		if err := json.Unmarshal(row.Items, &items); err != nil {
			return nil, err
		}
	}

	return &GetOrderQueryResponse{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		PartnerID:  row.PartnerID,

		RestaurantName:    row.RestaurantName,
		RestaurantAddress: row.RestaurantAddress,
		Platform:          row.RestaurantPlatform,

		Items: items,

		Subtotal:    row.Subtotal,
		DeliveryFee: row.DeliveryFee,
		Taxes:       row.Taxes,
		Discount:    row.Discount,
		Total:       row.Total,

		DropStreet: row.DropStreet,
		DropCity:   row.DropCity,
		DropState:  row.DropState,

		Status: row.Status,

		PaymentMethod: row.PaymentMethod,
		PaymentStatus: row.PaymentStatus,

		EstimatedDeliveryTime: row.EstimatedDeliveryTime,
		ActualDeliveryTime:    row.ActualDeliveryTime,

		CurrentLat: row.CurrentLat,
		CurrentLng: row.CurrentLng,

		SpecialInstructions: row.SpecialInstructions,
		CreatedAt:           row.CreatedAt,
	}, nil
}
