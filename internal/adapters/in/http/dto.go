package http

import (
	"time"

	"foodgo/internal/core/application/usecases/queries"
	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/order"
)

// Request bodies.

type geoPointDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (g *geoPointDTO) toDomain() (*kernel.GeoPoint, error) {
	if g == nil {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(g.Latitude, g.Longitude)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

type restaurantDTO struct {
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Phone       string       `json:"phone"`
	Coordinates *geoPointDTO `json:"coordinates"`
	Platform    string       `json:"platform"`
}

type orderItemDTO struct {
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	Price          float64  `json:"price"`
	Customizations []string `json:"customizations"`
}

type pricingDTO struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Taxes       float64 `json:"taxes"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
}

type deliveryAddressDTO struct {
	Street       string       `json:"street"`
	City         string       `json:"city"`
	State        string       `json:"state"`
	ZipCode      string       `json:"zipCode"`
	Coordinates  *geoPointDTO `json:"coordinates"`
	Landmark     string       `json:"landmark"`
	Instructions string       `json:"instructions"`
}

type createOrderRequest struct {
	Restaurant          restaurantDTO      `json:"restaurant"`
	Items               []orderItemDTO     `json:"items"`
	Pricing             pricingDTO         `json:"pricing"`
	DeliveryAddress     deliveryAddressDTO `json:"deliveryAddress"`
	PaymentMethod       string             `json:"paymentMethod"`
	SpecialInstructions string             `json:"specialInstructions"`
	PlatformOrderID     string             `json:"platformOrderId"`
}

type updateStatusRequest struct {
	Status   string       `json:"status"`
	Location *geoPointDTO `json:"location"`
}

type rateOrderRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type overridePartnerRequest struct {
	PartnerID string `json:"partnerId"`
}

type setOnlineRequest struct {
	Online bool `json:"online"`
}

type updateLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type adjustEarningsRequest struct {
	Adjustment string  `json:"adjustment"`
	Amount     float64 `json:"amount"`
}

// Response bodies. The query layer returns plain read models; these wrap them
// in the wire shape the clients consume.

type createOrderResponse struct {
	OrderID string `json:"orderId"`
}

type orderResponse struct {
	ID         string  `json:"id"`
	CustomerID string  `json:"customerId"`
	PartnerID  *string `json:"partnerId,omitempty"`

	RestaurantName    string `json:"restaurantName"`
	RestaurantAddress string `json:"restaurantAddress"`
	Platform          string `json:"platform"`

	Items []queries.OrderItemResponse `json:"items"`

	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Taxes       float64 `json:"taxes"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`

	DropStreet string `json:"dropStreet"`
	DropCity   string `json:"dropCity"`
	DropState  string `json:"dropState"`

	Status string `json:"status"`

	PaymentMethod string `json:"paymentMethod"`
	PaymentStatus string `json:"paymentStatus"`

	EstimatedDeliveryTime time.Time  `json:"estimatedDeliveryTime"`
	ActualDeliveryTime    *time.Time `json:"actualDeliveryTime,omitempty"`

	CurrentLat *float64 `json:"currentLat,omitempty"`
	CurrentLng *float64 `json:"currentLng,omitempty"`

	SpecialInstructions string    `json:"specialInstructions,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

func toOrderResponse(r queries.GetOrderQueryResponse) orderResponse {
	return orderResponse{
		ID:                    r.ID,
		CustomerID:            r.CustomerID,
		PartnerID:             r.PartnerID,
		RestaurantName:        r.RestaurantName,
		RestaurantAddress:     r.RestaurantAddress,
		Platform:              r.Platform,
		Items:                 r.Items,
		Subtotal:              r.Subtotal,
		DeliveryFee:           r.DeliveryFee,
		Taxes:                 r.Taxes,
		Discount:              r.Discount,
		Total:                 r.Total,
		DropStreet:            r.DropStreet,
		DropCity:              r.DropCity,
		DropState:             r.DropState,
		Status:                r.Status,
		PaymentMethod:         r.PaymentMethod,
		PaymentStatus:         r.PaymentStatus,
		EstimatedDeliveryTime: r.EstimatedDeliveryTime,
		ActualDeliveryTime:    r.ActualDeliveryTime,
		CurrentLat:            r.CurrentLat,
		CurrentLng:            r.CurrentLng,
		SpecialInstructions:   r.SpecialInstructions,
		CreatedAt:             r.CreatedAt,
	}
}

type orderSummaryResponse struct {
	ID                    string    `json:"id"`
	CustomerID            string    `json:"customerId"`
	PartnerID             *string   `json:"partnerId,omitempty"`
	RestaurantName        string    `json:"restaurantName"`
	Status                string    `json:"status"`
	Total                 float64   `json:"total"`
	PaymentStatus         string    `json:"paymentStatus"`
	EstimatedDeliveryTime time.Time `json:"estimatedDeliveryTime"`
	CreatedAt             time.Time `json:"createdAt"`
}

func toOrderSummaryResponses(rows []queries.ListOrdersQueryResponse) []orderSummaryResponse {
	summaries := make([]orderSummaryResponse, len(rows))
	for i, r := range rows {
		summaries[i] = orderSummaryResponse{
			ID:                    r.ID,
			CustomerID:            r.CustomerID,
			PartnerID:             r.PartnerID,
			RestaurantName:        r.RestaurantName,
			Status:                r.Status,
			Total:                 r.Total,
			PaymentStatus:         r.PaymentStatus,
			EstimatedDeliveryTime: r.EstimatedDeliveryTime,
			CreatedAt:             r.CreatedAt,
		}
	}
	return summaries
}

type availableOrderResponse struct {
	ID             string    `json:"id"`
	RestaurantName string    `json:"restaurantName"`
	RestaurantLat  *float64  `json:"restaurantLat,omitempty"`
	RestaurantLng  *float64  `json:"restaurantLng,omitempty"`
	DropStreet     string    `json:"dropStreet"`
	DropCity       string    `json:"dropCity"`
	DropLat        *float64  `json:"dropLat,omitempty"`
	DropLng        *float64  `json:"dropLng,omitempty"`
	Status         string    `json:"status"`
	Total          float64   `json:"total"`
	DeliveryFee    float64   `json:"deliveryFee"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toAvailableOrderResponses(rows []queries.AvailableOrdersQueryResponse) []availableOrderResponse {
	offers := make([]availableOrderResponse, len(rows))
	for i, r := range rows {
		offers[i] = availableOrderResponse{
			ID:             r.ID,
			RestaurantName: r.RestaurantName,
			RestaurantLat:  r.RestaurantLat,
			RestaurantLng:  r.RestaurantLng,
			DropStreet:     r.DropStreet,
			DropCity:       r.DropCity,
			DropLat:        r.DropLat,
			DropLng:        r.DropLng,
			Status:         r.Status,
			Total:          r.Total,
			DeliveryFee:    r.DeliveryFee,
			CreatedAt:      r.CreatedAt,
		}
	}
	return offers
}

type nearbyPartnerResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	VehicleType   string  `json:"vehicleType"`
	RatingAverage float64 `json:"ratingAverage"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	DistanceKm    float64 `json:"distanceKm"`
	EtaMinutes    int     `json:"etaMinutes"`
}

func toNearbyPartnerResponses(rows []queries.NearbyPartnersQueryResponse) []nearbyPartnerResponse {
	partners := make([]nearbyPartnerResponse, len(rows))
	for i, r := range rows {
		partners[i] = nearbyPartnerResponse{
			ID:            r.ID.String(),
			Name:          r.Name,
			VehicleType:   r.VehicleType,
			RatingAverage: r.RatingAverage,
			Latitude:      r.Location.Latitude(),
			Longitude:     r.Location.Longitude(),
			DistanceKm:    r.DistanceKm,
			EtaMinutes:    r.EtaMinutes,
		}
	}
	return partners
}

type dashboardResponse struct {
	PartnerID       string  `json:"partnerId"`
	Name            string  `json:"name"`
	IsOnline        bool    `json:"isOnline"`
	RatingAverage   float64 `json:"ratingAverage"`
	RatingCount     int     `json:"ratingCount"`
	EarningsTotal   float64 `json:"earningsTotal"`
	EarningsPending float64 `json:"earningsPending"`
	TotalOrders     int     `json:"totalOrders"`
	DeliveredOrders int     `json:"deliveredOrders"`
	TodaysOrders    int     `json:"todaysOrders"`
	TodaysEarnings  float64 `json:"todaysEarnings"`
}

func toDashboardResponse(r queries.PartnerDashboardQueryResponse) dashboardResponse {
	return dashboardResponse{
		PartnerID:       r.PartnerID.String(),
		Name:            r.Name,
		IsOnline:        r.IsOnline,
		RatingAverage:   r.RatingAverage,
		RatingCount:     r.RatingCount,
		EarningsTotal:   r.EarningsTotal,
		EarningsPending: r.EarningsPending,
		TotalOrders:     r.TotalOrders,
		DeliveredOrders: r.DeliveredOrders,
		TodaysOrders:    r.TodaysOrders,
		TodaysEarnings:  r.TodaysEarnings,
	}
}

func (req createOrderRequest) toCommandInput() (
	order.Restaurant,
	[]order.Item,
	order.Pricing,
	order.DeliveryAddress,
	error,
) {
	restaurantPoint, err := req.Restaurant.Coordinates.toDomain()
	if err != nil {
		return order.Restaurant{}, nil, order.Pricing{}, order.DeliveryAddress{}, err
	}
	dropPoint, err := req.DeliveryAddress.Coordinates.toDomain()
	if err != nil {
		return order.Restaurant{}, nil, order.Pricing{}, order.DeliveryAddress{}, err
	}

	items := make([]order.Item, len(req.Items))
	for i, item := range req.Items {
		items[i] = order.Item{
			Name:           item.Name,
			Quantity:       item.Quantity,
			Price:          item.Price,
			Customizations: item.Customizations,
		}
	}

	restaurant := order.Restaurant{
		Name:        req.Restaurant.Name,
		Address:     req.Restaurant.Address,
		Phone:       req.Restaurant.Phone,
		Coordinates: restaurantPoint,
		Platform:    order.Platform(req.Restaurant.Platform),
	}

	pricing := order.Pricing{
		Subtotal:    req.Pricing.Subtotal,
		DeliveryFee: req.Pricing.DeliveryFee,
		Taxes:       req.Pricing.Taxes,
		Discount:    req.Pricing.Discount,
		Total:       req.Pricing.Total,
	}

	address := order.DeliveryAddress{
		Street:       req.DeliveryAddress.Street,
		City:         req.DeliveryAddress.City,
		State:        req.DeliveryAddress.State,
		ZipCode:      req.DeliveryAddress.ZipCode,
		Coordinates:  dropPoint,
		Landmark:     req.DeliveryAddress.Landmark,
		Instructions: req.DeliveryAddress.Instructions,
	}

	return restaurant, items, pricing, address, nil
}
