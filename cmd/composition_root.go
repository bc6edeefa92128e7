package cmd

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	httpin "foodgo/internal/adapters/in/http"
	"foodgo/internal/adapters/in/ws"
	"foodgo/internal/adapters/out/kafka"
	"foodgo/internal/adapters/out/paymentgw"
	"foodgo/internal/adapters/out/postgres"
	"foodgo/internal/core/application/events"
	"foodgo/internal/core/application/usecases/commands"
	"foodgo/internal/core/application/usecases/queries"
	"foodgo/internal/core/ports"
	"foodgo/internal/jobs"
	"foodgo/internal/realtime"
)

// CompositionRoot wires adapters into application handlers. All construction
// decisions live here; the rest of the codebase only sees interfaces.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	hub        *realtime.Hub
	publisher  ports.EventPublisher
	gateway    ports.PaymentGateway
	kafkaSink  *kafka.Publisher
	logger     *slog.Logger
}

// NewCompositionRoot assembles the object graph. When KafkaBrokers is set the
// realtime hub's events are also mirrored to the Kafka topic.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	hub := realtime.NewHub(0, logger)

	var (
		publisher ports.EventPublisher = hub
		kafkaSink *kafka.Publisher
	)
	if config.KafkaBrokers != "" {
		sink, err := kafka.NewPublisher(strings.Split(config.KafkaBrokers, ","), config.KafkaTopic)
		if err != nil {
			return nil, err
		}
		kafkaSink = sink
		publisher = multiPublisher{hub, sink}
	}

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:        hub,
		publisher:  publisher,
		gateway:    paymentgw.NewGateway(0),
		kafkaSink:  kafkaSink,
		logger:     logger,
	}, nil
}

// Close releases the root's long-lived resources.
func (c *CompositionRoot) Close() error {
	if c.kafkaSink != nil {
		return c.kafkaSink.Close()
	}
	return nil
}

// Hub exposes the realtime hub for the websocket transport.
func (c *CompositionRoot) Hub() *realtime.Hub {
	return c.hub
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) partnerUoWFactory() commands.PartnerUoWFactory {
	return FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) crossUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.crossUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateRateOrderCommandHandler() commands.RateOrderCommandHandler {
	return commands.NewRateOrderCommandHandler(c.crossUoWFactory())
}

func (c *CompositionRoot) CreateProcessPaymentCommandHandler() commands.ProcessPaymentCommandHandler {
	return commands.NewProcessPaymentCommandHandler(c.orderUoWFactory(), c.gateway)
}

func (c *CompositionRoot) CreateOverridePartnerCommandHandler() commands.OverridePartnerCommandHandler {
	return commands.NewOverridePartnerCommandHandler(c.crossUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateSetPartnerOnlineCommandHandler() commands.SetPartnerOnlineCommandHandler {
	return commands.NewSetPartnerOnlineCommandHandler(c.partnerUoWFactory())
}

func (c *CompositionRoot) CreateUpdatePartnerLocationCommandHandler() commands.UpdatePartnerLocationCommandHandler {
	return commands.NewUpdatePartnerLocationCommandHandler(c.crossUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateAdjustEarningsCommandHandler() commands.AdjustEarningsCommandHandler {
	return commands.NewAdjustEarningsCommandHandler(c.partnerUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateAvailableOrdersQueryHandler() queries.AvailableOrdersQueryHandler {
	return queries.NewAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateNearbyPartnersQueryHandler() queries.NearbyPartnersQueryHandler {
	return queries.NewNearbyPartnersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreatePartnerDashboardQueryHandler() queries.PartnerDashboardQueryHandler {
	return queries.NewPartnerDashboardQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the REST server over all handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAcceptOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateRateOrderCommandHandler(),
		c.CreateProcessPaymentCommandHandler(),
		c.CreateOverridePartnerCommandHandler(),
		c.CreateSetPartnerOnlineCommandHandler(),
		c.CreateUpdatePartnerLocationCommandHandler(),
		c.CreateAdjustEarningsCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateAvailableOrdersQueryHandler(),
		c.CreateNearbyPartnersQueryHandler(),
		c.CreatePartnerDashboardQueryHandler(),
	)
}

// CreateWSHandler builds the websocket transport over the hub.
func (c *CompositionRoot) CreateWSHandler() *ws.Handler {
	return ws.NewHandler(c.hub, []byte(c.config.JWTSecret), c.logger)
}

// CreateJobManager builds the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewOfferRebroadcastJob(c.uowFactory, c.publisher, c.config.RebroadcastSpec, c.logger),
		jobs.NewPresenceSweepJob(c.uowFactory, c.config.PresenceSweepSpec, c.config.PresenceStaleAfter, c.logger),
	)
}

// multiPublisher fans a publish out to several sinks; every sink sees every
// event and failures are joined rather than short-circuiting.
type multiPublisher []ports.EventPublisher

func (m multiPublisher) Publish(ctx context.Context, evts ...events.Event) error {
	var errList []error
	for _, publisher := range m {
		if err := publisher.Publish(ctx, evts...); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

// Func adapters let the single gorm unit-of-work factory satisfy the
// commands package's narrower factory interfaces.

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPartnerUoWFactory func() commands.PartnerUoW

func (f FuncPartnerUoWFactory) Create() commands.PartnerUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
