package queries_test

import (
	"context"
	"testing"

	"foodgo/internal/core/application/usecases/queries"
	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/partner"

	"github.com/stretchr/testify/suite"
)

type NearbyPartnersQueryHandlerTestSuite struct {
	postgresQuerySuite
	handler queries.NearbyPartnersQueryHandler
}

func (suite *NearbyPartnersQueryHandlerTestSuite) SetupSuite() {
	suite.postgresQuerySuite.SetupSuite()
	suite.handler = queries.NewNearbyPartnersQueryHandler(suite.db)
}

func (suite *NearbyPartnersQueryHandlerTestSuite) placePartner(name string, lat, lng float64, dispatchable bool) *partner.DeliveryPartner {
	aggregate := suite.newPartner(name)
	point, err := kernel.NewGeoPoint(lat, lng)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.RecordLocation(point))
	if dispatchable {
		aggregate.MarkVerified()
		aggregate.SetOnline(true)
	}
	suite.savePartner(aggregate)
	return aggregate
}

func (suite *NearbyPartnersQueryHandlerTestSuite) TestHandle_ClosestFirstWithinRadius() {
	center, err := kernel.NewGeoPoint(28.6139, 77.2090)
	suite.Require().NoError(err)

	// Roughly 1.2km and 3.5km from the center; Mumbai is far outside.
	near := suite.placePartner("Near Partner", 28.6239, 77.2140, true)
	far := suite.placePartner("Far Partner", 28.6439, 77.2190, true)
	suite.placePartner("Mumbai Partner", 19.0760, 72.8777, true)

	query, err := queries.NewNearbyPartnersQuery(center, 5)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 2)
	suite.True(near.ID().IsEqual(result[0].ID))
	suite.True(far.ID().IsEqual(result[1].ID))
	suite.Less(result[0].DistanceKm, result[1].DistanceKm)
	suite.Positive(result[0].EtaMinutes)
	suite.LessOrEqual(result[0].EtaMinutes, result[1].EtaMinutes)
}

func (suite *NearbyPartnersQueryHandlerTestSuite) TestHandle_ExcludesNonDispatchable() {
	center, err := kernel.NewGeoPoint(28.6139, 77.2090)
	suite.Require().NoError(err)

	suite.placePartner("Sleeping Partner", 28.6150, 77.2100, false)

	offlineButVerified := suite.newPartner("Offline Partner")
	point, err := kernel.NewGeoPoint(28.6150, 77.2100)
	suite.Require().NoError(err)
	suite.Require().NoError(offlineButVerified.RecordLocation(point))
	offlineButVerified.MarkVerified()
	suite.savePartner(offlineButVerified)

	query, err := queries.NewNearbyPartnersQuery(center, 5)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *NearbyPartnersQueryHandlerTestSuite) TestHandle_DefaultRadiusApplies() {
	center, err := kernel.NewGeoPoint(28.6139, 77.2090)
	suite.Require().NoError(err)

	suite.placePartner("Near Partner", 28.6239, 77.2140, true)
	// ~11km north, outside the 5km default.
	suite.placePartner("Edge Partner", 28.7139, 77.2090, true)

	query, err := queries.NewNearbyPartnersQuery(center, 0)
	suite.Require().NoError(err)
	suite.InDelta(5, query.RadiusKm(), 0.001)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.Equal("Near Partner", result[0].Name)
}

func (suite *NearbyPartnersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.NearbyPartnersQuery{})

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewNearbyPartnersQuery constructor")
}

func TestNearbyPartnersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(NearbyPartnersQueryHandlerTestSuite))
}
