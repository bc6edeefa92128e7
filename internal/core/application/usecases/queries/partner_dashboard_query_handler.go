package queries

import (
	"context"

	"foodgo/internal/core/domain/model/order"
	"foodgo/internal/pkg/errs"

	"gorm.io/gorm"
)

// PartnerDashboardQueryHandler aggregates a partner's standing and workload
// from the partner row and their order history.
type PartnerDashboardQueryHandler struct {
	db *gorm.DB
}

// NewPartnerDashboardQueryHandler creates a handler for partner dashboards.
func NewPartnerDashboardQueryHandler(db *gorm.DB) PartnerDashboardQueryHandler {
	return PartnerDashboardQueryHandler{db: db}
}

type dashboardPartnerRow struct {
	Name            string
	IsOnline        bool
	RatingAverage   float64
	RatingCount     int
	EarningsTotal   float64
	EarningsPending float64
}

type dashboardOrdersRow struct {
	TotalOrders     int
	DeliveredOrders int
	TodaysOrders    int
	TodaysEarnings  float64
}

// Handle executes the query. Today's earnings are the delivery fees of orders
// delivered since midnight; the trip fee is what the partner keeps.
func (h PartnerDashboardQueryHandler) Handle(
	ctx context.Context,
	query PartnerDashboardQuery,
) (*PartnerDashboardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var partnerRow dashboardPartnerRow
	result := h.db.WithContext(ctx).Raw(`
		SELECT
			name, is_online, rating_average, rating_count,
			earnings_total, earnings_pending
		FROM delivery_partners
		WHERE id = ?
	`, query.PartnerID().Bytes()).Scan(&partnerRow)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("delivery partner", query.PartnerID().String())
	}

	var ordersRow dashboardOrdersRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_orders,
			COUNT(*) FILTER (WHERE status = ?) AS delivered_orders,
			COUNT(*) FILTER (WHERE created_at >= CURRENT_DATE) AS todays_orders,
			COALESCE(SUM(delivery_fee) FILTER (
				WHERE status = ? AND actual_delivery_time >= CURRENT_DATE
			), 0) AS todays_earnings
		FROM orders
		WHERE partner_id = ?
	`,
		order.StatusDelivered.String(),
		order.StatusDelivered.String(),
		query.PartnerID().Bytes(),
	).Scan(&ordersRow).Error
	if err != nil {
		return nil, err
	}

	return &PartnerDashboardQueryResponse{
		PartnerID: query.PartnerID(),
		Name:      partnerRow.Name,
		IsOnline:  partnerRow.IsOnline,

		RatingAverage: partnerRow.RatingAverage,
		RatingCount:   partnerRow.RatingCount,

		EarningsTotal:   partnerRow.EarningsTotal,
		EarningsPending: partnerRow.EarningsPending,

		TotalOrders:     ordersRow.TotalOrders,
		DeliveredOrders: ordersRow.DeliveredOrders,
		TodaysOrders:    ordersRow.TodaysOrders,
		TodaysEarnings:  ordersRow.TodaysEarnings,
	}, nil
}
