package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodgo/internal/core/application/events"
	"foodgo/internal/core/application/usecases/commands"
	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/order"
	"foodgo/internal/core/domain/model/partner"
	"foodgo/internal/core/ports"
)

// Shared mocks for every command handler test in this package.

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllUnassigned(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllActiveByPartner(ctx context.Context, partnerID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockPartnerRepository struct{ mock.Mock }

func (m *MockPartnerRepository) Add(ctx context.Context, p *partner.DeliveryPartner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) Update(ctx context.Context, p *partner.DeliveryPartner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.DeliveryPartner), args.Error(1)
}

func (m *MockPartnerRepository) GetAllDispatchable(ctx context.Context) ([]*partner.DeliveryPartner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.DeliveryPartner), args.Error(1)
}

func (m *MockPartnerRepository) GetAllOnline(ctx context.Context) ([]*partner.DeliveryPartner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.DeliveryPartner), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PartnerRepository() ports.PartnerRepository {
	args := m.Called()
	return args.Get(0).(ports.PartnerRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// Narrower factories reuse MockUoW through interface satisfaction.

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPartnerUoWFactory struct{ mock.Mock }

func (m *MockPartnerUoWFactory) Create() commands.PartnerUoW {
	args := m.Called()
	return args.Get(0).(commands.PartnerUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, evts ...events.Event) error {
	callArgs := make([]any, 0, len(evts)+1)
	callArgs = append(callArgs, ctx)
	for _, e := range evts {
		callArgs = append(callArgs, e)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Charge(ctx context.Context, orderID string, amount float64, method string) (ports.PaymentCharge, error) {
	args := m.Called(ctx, orderID, amount, method)
	return args.Get(0).(ports.PaymentCharge), args.Error(1)
}

// Fixtures.

func testRestaurant(t *testing.T) order.Restaurant {
	t.Helper()
	coords, err := kernel.NewGeoPoint(28.6139, 77.2090)
	require.NoError(t, err)
	return order.Restaurant{
		Name:        "Spice Garden",
		Address:     "12 Connaught Place",
		Coordinates: &coords,
		Platform:    order.PlatformSwiggy,
	}
}

func testAddress(t *testing.T) order.DeliveryAddress {
	t.Helper()
	coords, err := kernel.NewGeoPoint(28.7041, 77.1025)
	require.NoError(t, err)
	return order.DeliveryAddress{
		Street:      "44 Rohini Sector 7",
		City:        "Delhi",
		Coordinates: &coords,
	}
}

func testItems() []order.Item {
	return []order.Item{{Name: "Masala Dosa", Quantity: 1, Price: 180}}
}

func testPricing() order.Pricing {
	return order.Pricing{Subtotal: 180, DeliveryFee: 30, Taxes: 9, Total: 219}
}

func placedOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(customerID, testRestaurant(t), testItems(), testPricing(),
		testAddress(t), order.PaymentMethodUPI, "", "")
	require.NoError(t, err)
	return o
}

func deliveredOrder(t *testing.T, customerID, partnerID kernel.UUID) *order.Order {
	t.Helper()
	o := placedOrder(t, customerID)
	require.NoError(t, o.Accept(partnerID))
	for _, s := range []order.Status{
		order.StatusPreparing, order.StatusReadyForPickup,
		order.StatusPickedUp, order.StatusOnTheWay, order.StatusDelivered,
	} {
		require.NoError(t, o.UpdateStatus(s, nil))
	}
	return o
}

func testPartner(t *testing.T, id kernel.UUID) *partner.DeliveryPartner {
	t.Helper()
	p, err := partner.NewDeliveryPartner(id, "Ravi Kumar", "ravi@example.com", "+919876543210",
		partner.Vehicle{Type: partner.VehicleBike})
	require.NoError(t, err)
	p.SetOnline(true)
	p.MarkVerified()
	return p
}
