package service

import (
	"context"
	"strings"

	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/repository"
	"github.com/ratna-shop/internal/shipping/shiprocket"
)

// ShippingService creates and tracks courier shipments for paid orders.
type ShippingService struct {
	orderRepo repository.OrderRepository
	courier   *shiprocket.Client // nil when the provider is not configured
}

// NewShippingService creates the shipping service.
func NewShippingService(orderRepo repository.OrderRepository, courier *shiprocket.Client) *ShippingService {
	return &ShippingService{
		orderRepo: orderRepo,
		courier:   courier,
	}
}

// CreateShipment registers a paid order with the courier and stores
// the returned handles on the order. One shipment per order.
func (s *ShippingService) CreateShipment(ctx context.Context, orderID uint) (*models.Order, error) {
	if s.courier == nil {
		return nil, ErrShippingProviderDisabled
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPaid {
		return nil, ErrOrderStatusConflict
	}
	if order.ShipmentID != "" {
		return nil, ErrShipmentExists
	}

	items := make([]shiprocket.ShipmentItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, shiprocket.ShipmentItem{
			Name:  item.Title,
			SKU:   item.SKUCode,
			Units: item.Quantity,
			Price: item.UnitPrice.String(),
		})
	}

	result, err := s.courier.CreateShipment(ctx, shiprocket.CreateShipmentInput{
		OrderNo:        order.OrderNo,
		OrderDate:      order.CreatedAt,
		RecipientName:  order.RecipientName,
		RecipientPhone: order.RecipientPhone,
		AddressLine1:   order.AddressLine1,
		AddressLine2:   order.AddressLine2,
		City:           order.City,
		State:          order.State,
		Pincode:        order.Pincode,
		Country:        order.Country,
		PaymentMethod:  shipmentPaymentMethod(order.PaymentMode),
		SubTotal:       order.TotalAmount.String(),
		Items:          items,
	})
	if err != nil {
		return nil, err
	}

	order.ShipmentOrderID = result.OrderID
	order.ShipmentID = result.ShipmentID
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Track fetches the courier tracking state for an order's shipment
// and refreshes the AWB and courier name on the order.
func (s *ShippingService) Track(ctx context.Context, orderID uint) (*shiprocket.TrackResult, error) {
	if s.courier == nil {
		return nil, ErrShippingProviderDisabled
	}
	order, err := s.shippedOrder(orderID)
	if err != nil {
		return nil, err
	}

	result, err := s.courier.Track(ctx, order.ShipmentID)
	if err != nil {
		return nil, err
	}

	if result.AWBCode != "" && (order.AWBCode != result.AWBCode || order.CourierName != result.CourierName) {
		order.AWBCode = result.AWBCode
		order.CourierName = result.CourierName
		if err := s.orderRepo.Update(order); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Label fetches the printable shipping label for an order's shipment.
func (s *ShippingService) Label(ctx context.Context, orderID uint) (*shiprocket.LabelResult, error) {
	if s.courier == nil {
		return nil, ErrShippingProviderDisabled
	}
	order, err := s.shippedOrder(orderID)
	if err != nil {
		return nil, err
	}
	return s.courier.Label(ctx, order.ShipmentID)
}

func (s *ShippingService) shippedOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if strings.TrimSpace(order.ShipmentID) == "" {
		return nil, ErrShipmentMissing
	}
	return order, nil
}

func shipmentPaymentMethod(paymentMode string) string {
	if paymentMode == constants.PaymentModeCOD {
		return "COD"
	}
	return "Prepaid"
}
