package queries

import (
	"errors"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/pkg/guard"
)

var ErrPartnerDashboardQueryIsNotConstructed = errors.New(
	"PartnerDashboardQuery must be created via NewPartnerDashboardQuery constructor",
)

// PartnerDashboardQuery retrieves the daily work summary a delivery partner
// sees on their home screen: delivery counts, today's activity, rating and
// earnings balances.
type PartnerDashboardQuery struct {
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPartnerDashboardQuery creates a dashboard query for one partner.
func NewPartnerDashboardQuery(partnerID kernel.UUID) (PartnerDashboardQuery, error) {
	if err := partnerID.Validate(); err != nil {
		return PartnerDashboardQuery{}, err
	}

	return PartnerDashboardQuery{
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q PartnerDashboardQuery) Validate() error {
	return q.guard.Validate(ErrPartnerDashboardQueryIsNotConstructed)
}

// PartnerID returns the partner whose dashboard is requested.
func (q PartnerDashboardQuery) PartnerID() kernel.UUID {
	return q.partnerID
}

// PartnerDashboardQueryResponse aggregates the partner's standing and
// workload. Today's figures reset at local database midnight.
type PartnerDashboardQueryResponse struct {
	PartnerID kernel.UUID
	Name      string
	IsOnline  bool

	RatingAverage float64
	RatingCount   int

	EarningsTotal   float64
	EarningsPending float64

	TotalOrders     int
	DeliveredOrders int
	TodaysOrders    int
	TodaysEarnings  float64
}
