package queries_test

import (
	"context"
	"testing"

	"foodgo/internal/core/application/usecases/queries"
	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type PartnerDashboardQueryHandlerTestSuite struct {
	postgresQuerySuite
	handler queries.PartnerDashboardQueryHandler
}

func (suite *PartnerDashboardQueryHandlerTestSuite) SetupSuite() {
	suite.postgresQuerySuite.SetupSuite()
	suite.handler = queries.NewPartnerDashboardQueryHandler(suite.db)
}

func (suite *PartnerDashboardQueryHandlerTestSuite) TestHandle_AggregatesWorkload() {
	aggregate := suite.newPartner("Ravi Kumar")
	aggregate.SetOnline(true)
	suite.Require().NoError(aggregate.ApplyRating(4))
	suite.Require().NoError(aggregate.ApplyRating(5))
	suite.Require().NoError(aggregate.AddEarnings(500))
	suite.Require().NoError(aggregate.WithdrawEarnings(200))
	suite.savePartner(aggregate)

	// One delivered today, one still on the road, one cancelled.
	delivered := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(delivered.Accept(aggregate.ID()))
	suite.deliverOrder(delivered)
	suite.saveOrder(delivered)

	active := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(active.Accept(aggregate.ID()))
	suite.saveOrder(active)

	cancelled := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(cancelled.Accept(aggregate.ID()))
	suite.Require().NoError(cancelled.Cancel())
	suite.saveOrder(cancelled)

	query, err := queries.NewPartnerDashboardQuery(aggregate.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal("Ravi Kumar", result.Name)
	suite.True(result.IsOnline)
	suite.InDelta(4.5, result.RatingAverage, 0.001)
	suite.Equal(2, result.RatingCount)
	suite.InDelta(500, result.EarningsTotal, 0.001)
	suite.InDelta(300, result.EarningsPending, 0.001)

	suite.Equal(3, result.TotalOrders)
	suite.Equal(1, result.DeliveredOrders)
	suite.Equal(3, result.TodaysOrders)
	suite.InDelta(40, result.TodaysEarnings, 0.001, "delivery fee of today's delivered order")
}

func (suite *PartnerDashboardQueryHandlerTestSuite) TestHandle_NoOrdersYet() {
	aggregate := suite.newPartner("Fresh Partner")
	suite.savePartner(aggregate)

	query, err := queries.NewPartnerDashboardQuery(aggregate.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(0, result.TotalOrders)
	suite.Equal(0, result.DeliveredOrders)
	suite.InDelta(0, result.TodaysEarnings, 0.001)
	suite.InDelta(0, result.RatingAverage, 0.001)
}

func (suite *PartnerDashboardQueryHandlerTestSuite) TestHandle_UnknownPartner() {
	query, err := queries.NewPartnerDashboardQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PartnerDashboardQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.PartnerDashboardQuery{})

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewPartnerDashboardQuery constructor")
}

func TestPartnerDashboardQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PartnerDashboardQueryHandlerTestSuite))
}
