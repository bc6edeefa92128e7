package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"foodgo/internal/adapters/out/postgres/orderrepo"
	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/order"
	"foodgo/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id string, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for the order
// repository using a PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(customerID kernel.UUID) *order.Order {
	restaurantPoint, err := kernel.NewGeoPoint(28.6139, 77.2090)
	suite.Require().NoError(err)
	dropPoint, err := kernel.NewGeoPoint(28.7041, 77.1025)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		customerID,
		order.Restaurant{
			Name:        "Saravana Bhavan",
			Address:     "Connaught Place, New Delhi",
			Phone:       "+91-9812345678",
			Coordinates: &restaurantPoint,
			Platform:    order.PlatformSwiggy,
		},
		[]order.Item{
			{Name: "Masala Dosa", Quantity: 2, Price: 120, Customizations: []string{"extra chutney"}},
			{Name: "Filter Coffee", Quantity: 1, Price: 60},
		},
		order.Pricing{Subtotal: 300, DeliveryFee: 40, Taxes: 15, Discount: 20, Total: 335},
		order.DeliveryAddress{
			Street:      "14 Ring Road",
			City:        "New Delhi",
			State:       "Delhi",
			ZipCode:     "110001",
			Coordinates: &dropPoint,
			Landmark:    "opposite metro gate 2",
		},
		order.PaymentMethodUPI,
		"ring the bell twice",
		"SWG-88412",
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	aggregate := suite.newOrder(customerID)

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.True(aggregate.ID().IsEqual(restored.ID()))
	suite.True(customerID.IsEqual(restored.CustomerID()))
	suite.Equal(order.StatusPlaced, restored.Status())
	suite.Equal(aggregate.Restaurant().Name, restored.Restaurant().Name)
	suite.Equal(aggregate.Items(), restored.Items())
	suite.InDelta(335, restored.Pricing().Total, 0.001)
	suite.Equal(order.PaymentStatusPending, restored.Payment().Status)
	suite.Len(restored.History(), 1)
	suite.Equal(1, restored.Version())
	suite.Equal("ring the bell twice", restored.SpecialInstructions())
	suite.Equal("SWG-88412", restored.PlatformOrderID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewOrderID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsAcceptedState() {
	ctx := context.Background()
	aggregate := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	partnerID := kernel.NewUUID()
	suite.Require().NoError(aggregate.Accept(partnerID))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Equal(order.StatusConfirmed, restored.Status())
	suite.Require().NotNil(restored.PartnerID())
	suite.True(partnerID.IsEqual(*restored.PartnerID()))
	suite.Len(restored.History(), 2)
	suite.Equal(2, restored.Version(), "stored version is bumped on update")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersionConflicts() {
	ctx := context.Background()
	aggregate := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	// Two handlers load the same row; the slower write must lose.
	first, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Accept(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Accept(kernel.NewUUID()))
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(first.PartnerID().IsEqual(*restored.PartnerID()), "first claim stands")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllUnassigned_ClaimableOldestFirst() {
	ctx := context.Background()

	older := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, older))

	time.Sleep(10 * time.Millisecond)
	newer := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, newer))

	claimed := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(claimed.Accept(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Add(ctx, claimed))

	cancelled := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(cancelled.Cancel())
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	unassigned, err := suite.repository.GetAllUnassigned(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(unassigned, 2)
	suite.True(older.ID().IsEqual(unassigned[0].ID()))
	suite.True(newer.ID().IsEqual(unassigned[1].ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllActiveByPartner_ExcludesTerminal() {
	ctx := context.Background()
	partnerID := kernel.NewUUID()

	active := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(active.Accept(partnerID))
	suite.Require().NoError(suite.repository.Add(ctx, active))

	finished := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(finished.Accept(partnerID))
	for _, s := range []order.Status{
		order.StatusPreparing, order.StatusReadyForPickup, order.StatusPickedUp,
		order.StatusOnTheWay, order.StatusDelivered,
	} {
		suite.Require().NoError(finished.UpdateStatus(s, nil))
	}
	suite.Require().NoError(suite.repository.Add(ctx, finished))

	other := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(other.Accept(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Add(ctx, other))

	orders, err := suite.repository.GetAllActiveByPartner(ctx, partnerID)
	suite.Require().NoError(err)

	suite.Require().Len(orders, 1)
	suite.True(active.ID().IsEqual(orders[0].ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsRatingsAndRoute() {
	ctx := context.Background()
	partnerID := kernel.NewUUID()
	aggregate := suite.newOrder(kernel.NewUUID())
	suite.Require().NoError(aggregate.Accept(partnerID))
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	point, err := kernel.NewGeoPoint(28.65, 77.18)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.RecordPartnerLocation(point))

	for _, s := range []order.Status{
		order.StatusPreparing, order.StatusReadyForPickup, order.StatusPickedUp,
		order.StatusOnTheWay, order.StatusDelivered,
	} {
		suite.Require().NoError(aggregate.UpdateStatus(s, nil))
	}
	suite.Require().NoError(aggregate.RecordCustomerRating(order.RatingEntry{Rating: 5, Comment: "hot and fast"}))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Equal(order.StatusDelivered, restored.Status())
	suite.Require().NotNil(restored.ActualDeliveryTime())
	suite.Require().NotNil(restored.CustomerRating())
	suite.Equal(5, restored.CustomerRating().Rating)
	suite.Equal("hot and fast", restored.CustomerRating().Comment)
	suite.Require().Len(restored.Route(), 1)
	suite.Require().NotNil(restored.CurrentLocation())
	suite.InDelta(28.65, restored.CurrentLocation().Point.Latitude(), 0.000001)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
