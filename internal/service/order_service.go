package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/logger"
	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/queue"
	"github.com/ratna-shop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService handles checkout and the order lifecycle.
type OrderService struct {
	db             *gorm.DB
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	addressRepo    repository.AddressRepository
	couponService  *CouponService
	settingService *SettingService
	queueClient    *queue.Client
	expireMinutes  int
}

// NewOrderService creates the order service.
func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository, productRepo repository.ProductRepository, addressRepo repository.AddressRepository, couponService *CouponService, settingService *SettingService, queueClient *queue.Client, expireMinutes int) *OrderService {
	return &OrderService{
		db:             db,
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		addressRepo:    addressRepo,
		couponService:  couponService,
		settingService: settingService,
		queueClient:    queueClient,
		expireMinutes:  expireMinutes,
	}
}

// CreateOrderInput is the checkout payload.
type CreateOrderInput struct {
	UserID      uint
	AddressID   uint
	PaymentMode string
	CouponCode  string
	Items       []CreateOrderItem
}

// CreateOrderItem is one checkout line.
type CreateOrderItem struct {
	ProductID uint
	Quantity  int
}

var allowedOrderTransitions = map[string]map[string]bool{
	constants.OrderStatusPendingPayment: {
		constants.OrderStatusPaid:     true,
		constants.OrderStatusCanceled: true,
	},
	constants.OrderStatusPaid: {
		constants.OrderStatusShipped:  true,
		constants.OrderStatusCanceled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
	},
	constants.OrderStatusDelivered: {
		constants.OrderStatusCompleted: true,
	},
}

// CreateOrder places an order: snapshots the address and product
// lines, applies the coupon, reserves stock and schedules the payment
// timeout. COD orders skip the payment step and start out confirmed.
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if input.UserID == 0 || len(input.Items) == 0 {
		return nil, ErrOrderEmpty
	}
	paymentMode, err := normalizePaymentMode(input.PaymentMode)
	if err != nil {
		return nil, err
	}

	address, err := s.addressRepo.GetByID(input.AddressID)
	if err != nil {
		return nil, err
	}
	if address == nil || address.UserID != input.UserID {
		return nil, ErrAddressNotFound
	}

	items, subtotal, err := s.buildOrderItems(input.Items)
	if err != nil {
		return nil, err
	}

	discount := decimal.Zero
	var coupon *models.Coupon
	couponCode := strings.TrimSpace(input.CouponCode)
	if couponCode != "" {
		// hidden codes are redeemable, they are just not listed
		applied, matched, err := s.couponService.ApplyCoupon(couponCode, models.NewMoneyFromDecimal(subtotal), true)
		if err != nil {
			return nil, err
		}
		discount = applied.Decimal
		coupon = matched
	}

	shipping, err := s.settingService.ShippingCharge(models.NewMoneyFromDecimal(subtotal))
	if err != nil {
		return nil, err
	}

	total := subtotal.Sub(discount).Add(shipping.Decimal)
	if total.IsNegative() {
		total = decimal.Zero
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:        generateOrderNo(),
		UserID:         input.UserID,
		Status:         constants.OrderStatusPendingPayment,
		Currency:       s.settingService.SiteCurrency(),
		PaymentMode:    paymentMode,
		RecipientName:  address.RecipientName,
		RecipientPhone: address.RecipientPhone,
		AddressLine1:   address.AddressLine1,
		AddressLine2:   address.AddressLine2,
		City:           address.City,
		State:          address.State,
		Pincode:        address.Pincode,
		Country:        address.Country,
		Subtotal:       models.NewMoneyFromDecimal(subtotal),
		DiscountAmount: models.NewMoneyFromDecimal(discount),
		ShippingAmount: shipping,
		TotalAmount:    models.NewMoneyFromDecimal(total),
		Items:          items,
	}
	if coupon != nil {
		order.CouponID = &coupon.ID
		order.CouponCode = coupon.Code
	}

	expireMinutes := s.resolveExpireMinutes()
	if paymentMode == constants.PaymentModePrepaid {
		expiresAt := now.Add(time.Duration(expireMinutes) * time.Minute)
		order.ExpiresAt = &expiresAt
	} else {
		order.Status = constants.OrderStatusPaid
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		for _, item := range order.Items {
			affected, err := productRepo.DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrOutOfStock
			}
		}
		return s.orderRepo.WithTx(tx).Create(order)
	})
	if err != nil {
		return nil, err
	}

	if paymentMode == constants.PaymentModePrepaid {
		if err := s.queueClient.EnqueueOrderTimeoutCancel(queue.OrderTimeoutCancelPayload{
			OrderID: order.ID,
		}, time.Duration(expireMinutes)*time.Minute); err != nil {
			logger.Warnw("order_enqueue_timeout_cancel_failed",
				"order_id", order.ID,
				"error", err,
			)
		}
	} else {
		s.enqueueStatusNotify(order.ID, order.Status)
	}
	return order, nil
}

// MarkPaid transitions an order to paid after a captured payment.
func (s *OrderService) MarkPaid(orderID uint, paidAt time.Time) (*models.Order, error) {
	affected, err := s.orderRepo.UpdateStatus(orderID, constants.OrderStatusPendingPayment, constants.OrderStatusPaid)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrOrderStatusConflict
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	order.PaidAt = &paidAt
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	s.enqueueStatusNotify(order.ID, order.Status)
	return order, nil
}

// CancelOrder cancels a user's own unpaid order and restocks its lines.
func (s *OrderService) CancelOrder(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPendingPayment {
		return nil, ErrOrderNotCancellable
	}
	if err := s.cancelOrder(order); err != nil {
		return nil, err
	}
	s.enqueueStatusNotify(order.ID, order.Status)
	return order, nil
}

// CancelExpiredOrder cancels an order whose payment window lapsed.
// Orders that were paid in the meantime are left alone.
func (s *OrderService) CancelExpiredOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPendingPayment {
		return order, nil
	}
	if order.ExpiresAt == nil || order.ExpiresAt.After(time.Now()) {
		return order, nil
	}
	if err := s.cancelOrder(order); err != nil {
		return nil, err
	}
	s.enqueueStatusNotify(order.ID, order.Status)
	return order, nil
}

// UpdateOrderStatus moves an order through the admin lifecycle.
func (s *OrderService) UpdateOrderStatus(orderID uint, targetStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	target := strings.ToLower(strings.TrimSpace(targetStatus))
	if !allowedOrderTransitions[order.Status][target] {
		return nil, ErrOrderStatusConflict
	}

	if target == constants.OrderStatusCanceled {
		if err := s.cancelOrder(order); err != nil {
			return nil, err
		}
	} else {
		affected, err := s.orderRepo.UpdateStatus(order.ID, order.Status, target)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, ErrOrderStatusConflict
		}
		now := time.Now()
		order.Status = target
		switch target {
		case constants.OrderStatusPaid:
			order.PaidAt = &now
		case constants.OrderStatusShipped:
			order.ShippedAt = &now
		}
		if err := s.orderRepo.Update(order); err != nil {
			return nil, err
		}
	}

	s.enqueueStatusNotify(order.ID, order.Status)
	return order, nil
}

// GetOrderByUser returns an order scoped to its owner.
func (s *OrderService) GetOrderByUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListUserOrders returns a user's order history page.
func (s *OrderService) ListUserOrders(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.List(repository.OrderListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
}

// ListAdmin returns the back-office order list.
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// GetAdminByID returns an order for the back office.
func (s *OrderService) GetAdminByID(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// CountByStatus returns order counts per status for the dashboard.
func (s *OrderService) CountByStatus() (map[string]int64, error) {
	return s.orderRepo.CountByStatus()
}

// cancelOrder flips the order to canceled and restocks its lines in
// one transaction. The guarded status update keeps a concurrent
// payment capture from racing the cancel.
func (s *OrderService) cancelOrder(order *models.Order) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		affected, err := orderRepo.UpdateStatus(order.ID, order.Status, constants.OrderStatusCanceled)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrOrderStatusConflict
		}

		productRepo := s.productRepo.WithTx(tx)
		for _, item := range order.Items {
			if err := productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		now := time.Now()
		order.Status = constants.OrderStatusCanceled
		order.CanceledAt = &now
		return orderRepo.Update(order)
	})
}

func (s *OrderService) buildOrderItems(inputs []CreateOrderItem) ([]models.OrderItem, decimal.Decimal, error) {
	items := make([]models.OrderItem, 0, len(inputs))
	subtotal := decimal.Zero
	for _, input := range inputs {
		if input.Quantity <= 0 {
			return nil, decimal.Zero, ErrOrderItemInvalid
		}
		product, err := s.productRepo.GetByID(input.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if product == nil || !product.IsActive {
			return nil, decimal.Zero, ErrProductNotFound
		}
		if product.StockQuantity < input.Quantity {
			return nil, decimal.Zero, ErrOutOfStock
		}

		lineTotal := product.PriceAmount.Decimal.Mul(decimal.NewFromInt(int64(input.Quantity)))
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Title:     product.Title,
			SKUCode:   product.SKUCode,
			UnitPrice: product.PriceAmount,
			Quantity:  input.Quantity,
			Total:     models.NewMoneyFromDecimal(lineTotal),
		})
		subtotal = subtotal.Add(lineTotal)
	}
	return items, subtotal, nil
}

func (s *OrderService) enqueueStatusNotify(orderID uint, status string) {
	if err := s.queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Warnw("order_enqueue_status_notify_failed",
			"order_id", orderID,
			"status", status,
			"error", err,
		)
	}
}

func (s *OrderService) resolveExpireMinutes() int {
	if s.expireMinutes <= 0 {
		return 30
	}
	return s.expireMinutes
}

func normalizePaymentMode(raw string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	switch mode {
	case "", constants.PaymentModePrepaid:
		return constants.PaymentModePrepaid, nil
	case constants.PaymentModeCOD:
		return constants.PaymentModeCOD, nil
	default:
		return "", ErrOrderItemInvalid
	}
}

func generateOrderNo() string {
	return fmt.Sprintf("RS%s%s", time.Now().Format("20060102150405"), randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
