package queries_test

import (
	"context"
	"testing"
	"time"

	"foodgo/internal/core/application/usecases/queries"
	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
)

type ListOrdersQueryHandlerTestSuite struct {
	postgresQuerySuite
	handler queries.ListOrdersQueryHandler
}

func (suite *ListOrdersQueryHandlerTestSuite) SetupSuite() {
	suite.postgresQuerySuite.SetupSuite()
	suite.handler = queries.NewListOrdersQueryHandler(suite.db)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_CustomerScope_NewestFirst() {
	customerID := kernel.NewUUID()

	older := suite.newOrder(customerID)
	suite.saveOrder(older)
	time.Sleep(10 * time.Millisecond)
	newer := suite.newOrder(customerID)
	suite.saveOrder(newer)

	foreign := suite.newOrder(kernel.NewUUID())
	suite.saveOrder(foreign)

	query, err := queries.NewListOrdersQuery(customerID, kernel.RoleCustomer, nil, 0, 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 2)
	suite.Equal(newer.ID().String(), result[0].ID)
	suite.Equal(older.ID().String(), result[1].ID)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_PartnerScope() {
	partnerID := kernel.NewUUID()

	assigned := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(assigned.Accept(partnerID))
	suite.saveOrder(assigned)

	unassigned := suite.newOrder(kernel.NewUUID())
	suite.saveOrder(unassigned)

	query, err := queries.NewListOrdersQuery(partnerID, kernel.RoleDeliveryPartner, nil, 0, 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.Equal(assigned.ID().String(), result[0].ID)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_StatusFilter() {
	customerID := kernel.NewUUID()

	placed := suite.newOrder(customerID)
	suite.saveOrder(placed)

	cancelled := suite.newOrder(customerID)
	suite.Require().NoError(cancelled.Cancel())
	suite.saveOrder(cancelled)

	status := order.StatusCancelled
	query, err := queries.NewListOrdersQuery(customerID, kernel.RoleCustomer, &status, 0, 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.Equal(cancelled.ID().String(), result[0].ID)
	suite.Equal(order.StatusCancelled.String(), result[0].Status)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_AdminSeesEverythingPaged() {
	for range 3 {
		suite.saveOrder(suite.newOrder(kernel.NewUUID()))
		time.Sleep(5 * time.Millisecond)
	}

	query, err := queries.NewListOrdersQuery(kernel.NewUUID(), kernel.RoleAdmin, nil, 2, 0)
	suite.Require().NoError(err)

	firstPage, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Len(firstPage, 2)

	query, err = queries.NewListOrdersQuery(kernel.NewUUID(), kernel.RoleAdmin, nil, 2, 2)
	suite.Require().NoError(err)

	secondPage, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Len(secondPage, 1)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_EmptyResult() {
	query, err := queries.NewListOrdersQuery(kernel.NewUUID(), kernel.RoleCustomer, nil, 0, 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.ListOrdersQuery{})

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewListOrdersQuery constructor")
}

func TestListOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListOrdersQueryHandlerTestSuite))
}
