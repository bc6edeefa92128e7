package queries_test

import (
	"context"
	"fmt"
	"time"

	"foodgo/internal/adapters/out/postgres/orderrepo"
	"foodgo/internal/adapters/out/postgres/partnerrepo"
	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/order"
	"foodgo/internal/core/domain/model/partner"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker is a no-op tracker; query tests only need repositories
// to seed rows.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ string, _ any) {}

// postgresQuerySuite is the shared base for query handler suites: one
// PostgreSQL container, a migrated schema and seeding helpers that go through
// the write-side repositories.
type postgresQuerySuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (s *postgresQuerySuite) SetupSuite() {
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
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &partnerrepo.PartnerDTO{}))
}

func (s *postgresQuerySuite) TearDownSuite() {
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *postgresQuerySuite) SetupTest() {
	s.Require().NoError(s.db.Exec("TRUNCATE TABLE orders, delivery_partners").Error)
}

func (s *postgresQuerySuite) newOrder(customerID kernel.UUID) *order.Order {
	restaurantPoint, err := kernel.NewGeoPoint(28.6139, 77.2090)
	s.Require().NoError(err)
	dropPoint, err := kernel.NewGeoPoint(28.7041, 77.1025)
	s.Require().NoError(err)

	aggregate, err := order.NewOrder(
		customerID,
		order.Restaurant{
			Name:        "Saravana Bhavan",
			Address:     "Connaught Place, New Delhi",
			Coordinates: &restaurantPoint,
			Platform:    order.PlatformSwiggy,
		},
		[]order.Item{
			{Name: "Masala Dosa", Quantity: 2, Price: 120},
			{Name: "Filter Coffee", Quantity: 1, Price: 60},
		},
		order.Pricing{Subtotal: 300, DeliveryFee: 40, Taxes: 15, Discount: 20, Total: 335},
		order.DeliveryAddress{
			Street:      "14 Ring Road",
			City:        "New Delhi",
			State:       "Delhi",
			Coordinates: &dropPoint,
		},
		order.PaymentMethodUPI,
		"",
		"SWG-88412",
	)
	s.Require().NoError(err)
	return aggregate
}

func (s *postgresQuerySuite) saveOrder(aggregate *order.Order) {
	repo := orderrepo.NewGormOrderRepository(s.db, &mockAggregateTracker{})
	s.Require().NoError(repo.Add(context.Background(), aggregate))
}

func (s *postgresQuerySuite) updateOrder(aggregate *order.Order) {
	repo := orderrepo.NewGormOrderRepository(s.db, &mockAggregateTracker{})
	s.Require().NoError(repo.Update(context.Background(), aggregate))
}

func (s *postgresQuerySuite) newPartner(name string) *partner.DeliveryPartner {
	id := kernel.NewUUID()
	aggregate, err := partner.NewDeliveryPartner(
		id,
		name,
		fmt.Sprintf("%s@fooddelivery.test", id.String()),
		fmt.Sprintf("+91-%s", id.String()[:10]),
		partner.Vehicle{Type: partner.VehicleBike},
	)
	s.Require().NoError(err)
	return aggregate
}

func (s *postgresQuerySuite) savePartner(aggregate *partner.DeliveryPartner) {
	repo := partnerrepo.NewGormPartnerRepository(s.db, &mockAggregateTracker{})
	s.Require().NoError(repo.Add(context.Background(), aggregate))
}

func (s *postgresQuerySuite) deliverOrder(aggregate *order.Order) {
	for _, st := range []order.Status{
		order.StatusPreparing, order.StatusReadyForPickup, order.StatusPickedUp,
		order.StatusOnTheWay, order.StatusDelivered,
	} {
		s.Require().NoError(aggregate.UpdateStatus(st, nil))
	}
}
