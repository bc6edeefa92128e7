// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain snapshots and the relational schema.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// jsonColumn stores a JSON document in a jsonb column. GORM maps []byte to
// bytea by default, so the Valuer hands the bytes over as text.
type jsonColumn []byte

func (j jsonColumn) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j *jsonColumn) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
	return nil
}

// GormDataType tells GORM migrations to create a jsonb column.
func (jsonColumn) GormDataType() string {
	return "jsonb"
}

// OrderDTO represents the database structure for persisting order aggregates.
// Scalar attributes are flattened into columns so read models can query them
// directly; the variable-length collections (items, history, route) live in
// jsonb columns.
type OrderDTO struct {
	ID         string     `gorm:"primaryKey"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index"`
	PartnerID  *uuid.UUID `gorm:"type:uuid;index"`

	RestaurantName     string
	RestaurantAddress  string
	RestaurantPhone    string
	RestaurantLat      *float64
	RestaurantLng      *float64
	RestaurantPlatform string

	Items jsonColumn

	Subtotal    float64
	DeliveryFee float64
	Taxes       float64
	Discount    float64
	Total       float64

	DropStreet       string
	DropCity         string
	DropState        string
	DropZipCode      string
	DropLat          *float64
	DropLng          *float64
	DropLandmark     string
	DropInstructions string

	Status  string `gorm:"index"`
	History jsonColumn

	PaymentMethod        string
	PaymentStatus        string
	PaymentTransactionID string
	PaymentAmount        float64

	EstimatedDeliveryTime time.Time
	ActualDeliveryTime    *time.Time

	CustomerRating        *int
	CustomerRatingComment string
	PartnerRating         *int
	PartnerRatingComment  string

	CurrentLat        *float64
	CurrentLng        *float64
	CurrentReportedAt *time.Time

	Route jsonColumn

	SpecialInstructions string
	PlatformOrderID     string
	IsAggregated        bool

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

type itemJSON struct {
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	Price          float64  `json:"price"`
	Customizations []string `json:"customizations,omitempty"`
}

type statusChangeJSON struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
}

type routePointJSON struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

func pointColumns(p *kernel.GeoPoint) (lat, lng *float64) {
	if p == nil {
		return nil, nil
	}
	la, ln := p.Latitude(), p.Longitude()
	return &la, &ln
}

func columnsPoint(lat, lng *float64) (*kernel.GeoPoint, error) {
	if lat == nil || lng == nil {
		return nil, nil
	}
	p, err := kernel.NewGeoPoint(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	s := aggregate.Snapshot()

	var partnerID *uuid.UUID
	if s.PartnerID != nil {
		raw := s.PartnerID.Bytes()
		partnerID = &raw
	}

	items := make([]itemJSON, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, itemJSON{
			Name:           item.Name,
			Quantity:       item.Quantity,
			Price:          item.Price,
			Customizations: item.Customizations,
		})
	}
	itemsRaw, err := json.Marshal(items)
	if err != nil {
		return OrderDTO{}, err
	}

	history := make([]statusChangeJSON, 0, len(s.History))
	for _, change := range s.History {
		lat, lng := pointColumns(change.Location)
		history = append(history, statusChangeJSON{
			Status:    change.Status.String(),
			Timestamp: change.Timestamp,
			Lat:       lat,
			Lng:       lng,
		})
	}
	historyRaw, err := json.Marshal(history)
	if err != nil {
		return OrderDTO{}, err
	}

	route := make([]routePointJSON, 0, len(s.Route))
	for _, point := range s.Route {
		route = append(route, routePointJSON{
			Lat:       point.Point.Latitude(),
			Lng:       point.Point.Longitude(),
			Timestamp: point.Timestamp,
		})
	}
	routeRaw, err := json.Marshal(route)
	if err != nil {
		return OrderDTO{}, err
	}

	restaurantLat, restaurantLng := pointColumns(s.Restaurant.Coordinates)
	dropLat, dropLng := pointColumns(s.Address.Coordinates)

	dto := OrderDTO{
		ID:         s.ID.String(),
		CustomerID: s.CustomerID.Bytes(),
		PartnerID:  partnerID,

		RestaurantName:     s.Restaurant.Name,
		RestaurantAddress:  s.Restaurant.Address,
		RestaurantPhone:    s.Restaurant.Phone,
		RestaurantLat:      restaurantLat,
		RestaurantLng:      restaurantLng,
		RestaurantPlatform: s.Restaurant.Platform.String(),

		Items: itemsRaw,

		Subtotal:    s.Pricing.Subtotal,
		DeliveryFee: s.Pricing.DeliveryFee,
		Taxes:       s.Pricing.Taxes,
		Discount:    s.Pricing.Discount,
		Total:       s.Pricing.Total,

		DropStreet:       s.Address.Street,
		DropCity:         s.Address.City,
		DropState:        s.Address.State,
		DropZipCode:      s.Address.ZipCode,
		DropLat:          dropLat,
		DropLng:          dropLng,
		DropLandmark:     s.Address.Landmark,
		DropInstructions: s.Address.Instructions,

		Status:  s.Status.String(),
		History: historyRaw,

		PaymentMethod:        s.Payment.Method.String(),
		PaymentStatus:        s.Payment.Status.String(),
		PaymentTransactionID: s.Payment.TransactionID,
		PaymentAmount:        s.Payment.Amount,

		EstimatedDeliveryTime: s.EstimatedDeliveryTime,
		ActualDeliveryTime:    s.ActualDeliveryTime,

		Route: routeRaw,

		SpecialInstructions: s.SpecialInstructions,
		PlatformOrderID:     s.PlatformOrderID,
		IsAggregated:        s.IsAggregated,

		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Version:   s.Version,
	}

	if s.CustomerRating != nil {
		rating := s.CustomerRating.Rating
		dto.CustomerRating = &rating
		dto.CustomerRatingComment = s.CustomerRating.Comment
	}
	if s.PartnerRating != nil {
		rating := s.PartnerRating.Rating
		dto.PartnerRating = &rating
		dto.PartnerRatingComment = s.PartnerRating.Comment
	}
	if s.CurrentLocation != nil {
		lat, lng := s.CurrentLocation.Point.Latitude(), s.CurrentLocation.Point.Longitude()
		reportedAt := s.CurrentLocation.Timestamp
		dto.CurrentLat = &lat
		dto.CurrentLng = &lng
		dto.CurrentReportedAt = &reportedAt
	}

	return dto, nil
}

// toDomain converts a database DTO back to an order aggregate via RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.OrderIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.PartnerID != nil {
		pID, partnerErr := kernel.UUIDFromBytes((*dto.PartnerID)[:])
		if partnerErr != nil {
			return nil, partnerErr
		}
		partnerID = &pID
	}

	restaurantPoint, err := columnsPoint(dto.RestaurantLat, dto.RestaurantLng)
	if err != nil {
		return nil, err
	}
	dropPoint, err := columnsPoint(dto.DropLat, dto.DropLng)
	if err != nil {
		return nil, err
	}

	var itemsRaw []itemJSON
	if len(dto.Items) > 0 {
		if err = json.Unmarshal(dto.Items, &itemsRaw); err != nil {
			return nil, err
		}
	}
	items := make([]order.Item, 0, len(itemsRaw))
	for _, item := range itemsRaw {
		items = append(items, order.Item{
			Name:           item.Name,
			Quantity:       item.Quantity,
			Price:          item.Price,
			Customizations: item.Customizations,
		})
	}

	var historyRaw []statusChangeJSON
	if len(dto.History) > 0 {
		if err = json.Unmarshal(dto.History, &historyRaw); err != nil {
			return nil, err
		}
	}
	history := make([]order.StatusChange, 0, len(historyRaw))
	for _, change := range historyRaw {
		location, locErr := columnsPoint(change.Lat, change.Lng)
		if locErr != nil {
			return nil, locErr
		}
		history = append(history, order.StatusChange{
			Status:    order.Status(change.Status),
			Timestamp: change.Timestamp,
			Location:  location,
		})
	}

	var routeRaw []routePointJSON
	if len(dto.Route) > 0 {
		if err = json.Unmarshal(dto.Route, &routeRaw); err != nil {
			return nil, err
		}
	}
	route := make([]order.RoutePoint, 0, len(routeRaw))
	for _, point := range routeRaw {
		geo, geoErr := kernel.NewGeoPoint(point.Lat, point.Lng)
		if geoErr != nil {
			return nil, geoErr
		}
		route = append(route, order.RoutePoint{Point: geo, Timestamp: point.Timestamp})
	}

	s := order.Snapshot{
		ID:         id,
		CustomerID: customerID,
		PartnerID:  partnerID,

		Restaurant: order.Restaurant{
			Name:        dto.RestaurantName,
			Address:     dto.RestaurantAddress,
			Phone:       dto.RestaurantPhone,
			Coordinates: restaurantPoint,
			Platform:    order.Platform(dto.RestaurantPlatform),
		},
		Items: items,
		Pricing: order.Pricing{
			Subtotal:    dto.Subtotal,
			DeliveryFee: dto.DeliveryFee,
			Taxes:       dto.Taxes,
			Discount:    dto.Discount,
			Total:       dto.Total,
		},
		Address: order.DeliveryAddress{
			Street:       dto.DropStreet,
			City:         dto.DropCity,
			State:        dto.DropState,
			ZipCode:      dto.DropZipCode,
			Coordinates:  dropPoint,
			Landmark:     dto.DropLandmark,
			Instructions: dto.DropInstructions,
		},

		Status:  order.Status(dto.Status),
		History: history,

		Payment: order.Payment{
			Method:        order.PaymentMethod(dto.PaymentMethod),
			Status:        order.PaymentStatus(dto.PaymentStatus),
			TransactionID: dto.PaymentTransactionID,
			Amount:        dto.PaymentAmount,
		},

		EstimatedDeliveryTime: dto.EstimatedDeliveryTime,
		ActualDeliveryTime:    dto.ActualDeliveryTime,

		Route: route,

		SpecialInstructions: dto.SpecialInstructions,
		PlatformOrderID:     dto.PlatformOrderID,
		IsAggregated:        dto.IsAggregated,

		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
		Version:   dto.Version,
	}

	if dto.CustomerRating != nil {
		s.CustomerRating = &order.RatingEntry{
			Rating:  *dto.CustomerRating,
			Comment: dto.CustomerRatingComment,
		}
	}
	if dto.PartnerRating != nil {
		s.PartnerRating = &order.RatingEntry{
			Rating:  *dto.PartnerRating,
			Comment: dto.PartnerRatingComment,
		}
	}
	if dto.CurrentLat != nil && dto.CurrentLng != nil && dto.CurrentReportedAt != nil {
		geo, geoErr := kernel.NewGeoPoint(*dto.CurrentLat, *dto.CurrentLng)
		if geoErr != nil {
			return nil, geoErr
		}
		s.CurrentLocation = &order.RoutePoint{Point: geo, Timestamp: *dto.CurrentReportedAt}
	}

	return order.RestoreOrder(s)
}
