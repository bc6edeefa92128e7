// Package http is the inbound REST adapter: an echo server translating HTTP
// requests into commands and queries. Authorization beyond role gating lives
// in the application core; this layer only authenticates and maps errors to
// statuses.
package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"foodgo/internal/core/application/usecases/commands"
	"foodgo/internal/core/application/usecases/queries"
	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/order"
)

// Server holds the application handlers behind the REST surface.
type Server struct {
	createOrderHandler     commands.CreateOrderCommandHandler
	acceptOrderHandler     commands.AcceptOrderCommandHandler
	updateStatusHandler    commands.UpdateOrderStatusCommandHandler
	cancelOrderHandler     commands.CancelOrderCommandHandler
	rateOrderHandler       commands.RateOrderCommandHandler
	processPaymentHandler  commands.ProcessPaymentCommandHandler
	overridePartnerHandler commands.OverridePartnerCommandHandler
	setOnlineHandler       commands.SetPartnerOnlineCommandHandler
	updateLocationHandler  commands.UpdatePartnerLocationCommandHandler
	adjustEarningsHandler  commands.AdjustEarningsCommandHandler

	getOrderHandler        queries.GetOrderQueryHandler
	listOrdersHandler      queries.ListOrdersQueryHandler
	availableOrdersHandler queries.AvailableOrdersQueryHandler
	nearbyPartnersHandler  queries.NearbyPartnersQueryHandler
	dashboardHandler       queries.PartnerDashboardQueryHandler
}

// NewServer creates the REST server over the given handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	rateOrderHandler commands.RateOrderCommandHandler,
	processPaymentHandler commands.ProcessPaymentCommandHandler,
	overridePartnerHandler commands.OverridePartnerCommandHandler,
	setOnlineHandler commands.SetPartnerOnlineCommandHandler,
	updateLocationHandler commands.UpdatePartnerLocationCommandHandler,
	adjustEarningsHandler commands.AdjustEarningsCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	availableOrdersHandler queries.AvailableOrdersQueryHandler,
	nearbyPartnersHandler queries.NearbyPartnersQueryHandler,
	dashboardHandler queries.PartnerDashboardQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		acceptOrderHandler:     acceptOrderHandler,
		updateStatusHandler:    updateStatusHandler,
		cancelOrderHandler:     cancelOrderHandler,
		rateOrderHandler:       rateOrderHandler,
		processPaymentHandler:  processPaymentHandler,
		overridePartnerHandler: overridePartnerHandler,
		setOnlineHandler:       setOnlineHandler,
		updateLocationHandler:  updateLocationHandler,
		adjustEarningsHandler:  adjustEarningsHandler,
		getOrderHandler:        getOrderHandler,
		listOrdersHandler:      listOrdersHandler,
		availableOrdersHandler: availableOrdersHandler,
		nearbyPartnersHandler:  nearbyPartnersHandler,
		dashboardHandler:       dashboardHandler,
	}
}

// RegisterRoutes mounts the authenticated API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret []byte) {
	api := e.Group("/api/v1", AuthMiddleware(jwtSecret))

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/available", s.AvailableOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/accept", s.AcceptOrder)
	api.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/rating", s.RateOrder)
	api.POST("/orders/:id/payment", s.ProcessPayment)
	api.PUT("/orders/:id/partner", s.OverridePartner)

	api.GET("/partners/nearby", s.NearbyPartners)
	api.PUT("/partners/me/online", s.SetOnline)
	api.PUT("/partners/me/location", s.UpdateLocation)
	api.POST("/partners/me/earnings", s.AdjustEarnings)
	api.GET("/partners/me/dashboard", s.Dashboard)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	identity, ok := identityFrom(c)
	if !ok {
		return respondForbidden(c, "no identity")
	}
	if identity.Role != kernel.RoleCustomer {
		return respondForbidden(c, "only customers place orders")
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}

	restaurant, items, pricing, address, err := req.toCommandInput()
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		identity.UserID,
		restaurant,
		items,
		pricing,
		address,
		order.PaymentMethod(req.PaymentMethod),
		req.SpecialInstructions,
		req.PlatformOrderID,
	)
	if err != nil {
		return respondError(c, err)
	}

	orderID, err := s.createOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, createOrderResponse{OrderID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	identity, ok := identityFrom(c)
	if !ok {
		return respondForbidden(c, "no identity")
	}

	orderID, err := kernel.OrderIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, identity.UserID, identity.Role)
	if err != nil {
		return respondError(c, err)
	}

	response, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderResponse(*response))
}

// ListOrders handles GET /api/v1/orders with optional status, limit and
// offset query parameters.
func (s *Server) ListOrders(c echo.Context) error {
	identity, ok := identityFrom(c)
	if !ok {
		return respondForbidden(c, "no identity")
	}

	var status *order.Status
	if raw := c.QueryParam("status"); raw != "" {
		parsed := order.Status(raw)
		status = &parsed
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	query, err := queries.NewListOrdersQuery(identity.UserID, identity.Role, status, limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	rows, err := s.listOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderSummaryResponses(rows))
}

// AvailableOrders handles GET /api/v1/orders/available - the claimable pool
// shown to delivery partners.
func (s *Server) AvailableOrders(c echo.Context) error {
	identity, ok := identityFrom(c)
	if !ok {
		return respondForbidden(c, "no identity")
	}
	if identity.Role != kernel.RoleDeliveryPartner && identity.Role != kernel.RoleAdmin {
		return respondForbidden(c, "partners only")
	}

	rows, err := s.availableOrdersHandler.Handle(c.Request().Context(), queries.NewAvailableOrdersQuery())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAvailableOrderResponses(rows))
}

// AcceptOrder handles POST /api/v1/orders/:id/accept - first claim wins.
func (s *Server) AcceptOrder(c echo.Context) error {
	identity, ok := identityFrom(c)
	if !ok {
		return respondForbidden(c, "no identity")
	}
	if identity.Role != kernel.RoleDeliveryPartner {
		return respondForbidden(c, "only partners claim orders")
	}

	orderID, err := kernel.OrderIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, identity.UserID)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.acceptOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	identity, ok := identityFrom(c)
	if !ok {
		return respondForbidden(c, "no identity")
	}
	if identity.Role != kernel.RoleDeliveryPartner {
		return respondForbidden(c, "only the assigned partner updates status")
	}

	orderID, err := kernel.OrderIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	var req updateStatusRequest
	if err = c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}

	location, err := req.Location.toDomain()
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(
		orderID,
		identity.UserID,
		order.Status(req.Status),
		location,
	)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.updateStatusHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	identity, ok := identityFrom(c)
	if !ok {
		return respondForbidden(c, "no identity")
	}

	orderID, err := kernel.OrderIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, identity.UserID, identity.Role)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.cancelOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RateOrder handles POST /api/v1/orders/:id/rating.
func (s *Server) RateOrder(c echo.Context) error {
	identity, ok := identityFrom(c)
	if !ok {
		return respondForbidden(c, "no identity")
	}

	orderID, err := kernel.OrderIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	var req rateOrderRequest
	if err = c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}

	cmd, err := commands.NewRateOrderCommand(
		orderID,
		identity.UserID,
		identity.Role,
		req.Rating,
		req.Comment,
	)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.rateOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ProcessPayment handles POST /api/v1/orders/:id/payment.
func (s *Server) ProcessPayment(c echo.Context) error {
	identity, ok := identityFrom(c)
	if !ok {
		return respondForbidden(c, "no identity")
	}
	if identity.Role != kernel.RoleCustomer {
		return respondForbidden(c, "only the customer pays")
	}

	orderID, err := kernel.OrderIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewProcessPaymentCommand(orderID, identity.UserID)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.processPaymentHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// OverridePartner handles PUT /api/v1/orders/:id/partner - admin reassignment.
func (s *Server) OverridePartner(c echo.Context) error {
	identity, ok := identityFrom(c)
	if !ok {
		return respondForbidden(c, "no identity")
	}

	orderID, err := kernel.OrderIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	var req overridePartnerRequest
	if err = c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}

	partnerID, err := kernel.UUIDFromString(req.PartnerID)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewOverridePartnerCommand(orderID, partnerID, identity.Role)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.overridePartnerHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// NearbyPartners handles GET /api/v1/partners/nearby?lat=&lng=&radiusKm=.
func (s *Server) NearbyPartners(c echo.Context) error {
	if _, ok := identityFrom(c); !ok {
		return respondForbidden(c, "no identity")
	}

	lat, latErr := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if latErr != nil || lngErr != nil {
		return respondBadRequest(c, "lat and lng are required")
	}
	radiusKm, _ := strconv.ParseFloat(c.QueryParam("radiusKm"), 64)

	center, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewNearbyPartnersQuery(center, radiusKm)
	if err != nil {
		return respondError(c, err)
	}

	rows, err := s.nearbyPartnersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toNearbyPartnerResponses(rows))
}

// SetOnline handles PUT /api/v1/partners/me/online.
func (s *Server) SetOnline(c echo.Context) error {
	identity, ok := identityFrom(c)
	if !ok {
		return respondForbidden(c, "no identity")
	}
	if identity.Role != kernel.RoleDeliveryPartner {
		return respondForbidden(c, "partners only")
	}

	var req setOnlineRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}

	cmd, err := commands.NewSetPartnerOnlineCommand(identity.UserID, req.Online)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.setOnlineHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateLocation handles PUT /api/v1/partners/me/location. Besides stamping
// the partner's position this streams it to every order the partner is
// currently carrying.
func (s *Server) UpdateLocation(c echo.Context) error {
	identity, ok := identityFrom(c)
	if !ok {
		return respondForbidden(c, "no identity")
	}
	if identity.Role != kernel.RoleDeliveryPartner {
		return respondForbidden(c, "partners only")
	}

	var req updateLocationRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}

	point, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewUpdatePartnerLocationCommand(identity.UserID, point)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.updateLocationHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AdjustEarnings handles POST /api/v1/partners/me/earnings.
func (s *Server) AdjustEarnings(c echo.Context) error {
	identity, ok := identityFrom(c)
	if !ok {
		return respondForbidden(c, "no identity")
	}
	if identity.Role != kernel.RoleDeliveryPartner {
		return respondForbidden(c, "partners only")
	}

	var req adjustEarningsRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}

	cmd, err := commands.NewAdjustEarningsCommand(
		identity.UserID,
		commands.EarningsAdjustment(req.Adjustment),
		req.Amount,
	)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.adjustEarningsHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Dashboard handles GET /api/v1/partners/me/dashboard.
func (s *Server) Dashboard(c echo.Context) error {
	identity, ok := identityFrom(c)
	if !ok {
		return respondForbidden(c, "no identity")
	}
	if identity.Role != kernel.RoleDeliveryPartner {
		return respondForbidden(c, "partners only")
	}

	query, err := queries.NewPartnerDashboardQuery(identity.UserID)
	if err != nil {
		return respondError(c, err)
	}

	response, err := s.dashboardHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toDashboardResponse(*response))
}
