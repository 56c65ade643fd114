package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/logger"
	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/payment/razorpay"
	"github.com/ratna-shop/internal/repository"

	"github.com/shopspring/decimal"
)

// PaymentService handles Razorpay payments against orders.
type PaymentService struct {
	paymentRepo  repository.PaymentRepository
	orderService *OrderService
	gateway      *razorpay.Client // nil when the provider is not configured
}

// NewPaymentService creates the payment service.
func NewPaymentService(paymentRepo repository.PaymentRepository, orderService *OrderService, gateway *razorpay.Client) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		orderService: orderService,
		gateway:      gateway,
	}
}

// PaymentIntent is what the storefront needs to open the Razorpay
// checkout widget.
type PaymentIntent struct {
	PaymentNo       string `json:"payment_no"`
	ProviderOrderID string `json:"provider_order_id"`
	KeyID           string `json:"key_id"`
	AmountPaise     int64  `json:"amount_paise"`
	Currency        string `json:"currency"`
}

// CapturePaymentInput is the storefront capture callback payload.
type CapturePaymentInput struct {
	ProviderOrderID   string
	ProviderPaymentID string
	Signature         string
}

// InitiatePayment registers a provider order for a pending prepaid
// order and records the payment attempt.
func (s *PaymentService) InitiatePayment(ctx context.Context, orderID, userID uint) (*PaymentIntent, error) {
	if s.gateway == nil {
		return nil, ErrPaymentProviderDisabled
	}
	order, err := s.orderService.GetOrderByUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order.Status != constants.OrderStatusPendingPayment || order.PaymentMode != constants.PaymentModePrepaid {
		return nil, ErrOrderNotPayable
	}

	amountPaise := order.TotalAmount.Decimal.Mul(decimal.NewFromInt(100)).IntPart()
	result, err := s.gateway.CreateOrder(ctx, razorpay.CreateOrderInput{
		AmountPaise: amountPaise,
		Currency:    order.Currency,
		Receipt:     order.OrderNo,
		Notes:       map[string]string{"order_no": order.OrderNo},
	})
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		PaymentNo:       generatePaymentNo(),
		OrderID:         order.ID,
		Provider:        constants.PaymentProviderRazorpay,
		Status:          constants.PaymentStatusInitiated,
		Amount:          order.TotalAmount,
		Currency:        order.Currency,
		ProviderOrderID: result.OrderID,
		RawJSON:         models.JSON(result.Raw),
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	return &PaymentIntent{
		PaymentNo:       payment.PaymentNo,
		ProviderOrderID: result.OrderID,
		KeyID:           s.gateway.KeyID(),
		AmountPaise:     amountPaise,
		Currency:        payment.Currency,
	}, nil
}

// CapturePayment verifies the checkout signature and transitions the
// order to paid. A capture that already succeeded is idempotent.
func (s *PaymentService) CapturePayment(ctx context.Context, input CapturePaymentInput) (*models.Payment, error) {
	if s.gateway == nil {
		return nil, ErrPaymentProviderDisabled
	}
	payment, err := s.paymentRepo.GetByProviderOrderID(input.ProviderOrderID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Status == constants.PaymentStatusSuccess {
		return payment, nil
	}

	if err := s.gateway.VerifyPaymentSignature(input.ProviderOrderID, input.ProviderPaymentID, input.Signature); err != nil {
		payment.Status = constants.PaymentStatusFailed
		if updateErr := s.paymentRepo.Update(payment); updateErr != nil {
			logger.Warnw("payment_mark_failed_error",
				"payment_no", payment.PaymentNo,
				"error", updateErr,
			)
		}
		return nil, ErrPaymentSignatureInvalid
	}

	return s.settlePayment(payment, input.ProviderPaymentID, input.Signature, nil)
}

// HandleWebhook processes a Razorpay webhook delivery. Only
// payment.captured moves state; other events are acknowledged as-is.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if s.gateway == nil {
		return ErrPaymentProviderDisabled
	}
	if err := s.gateway.VerifyWebhookSignature(body, signature); err != nil {
		return ErrPaymentSignatureInvalid
	}

	var event struct {
		Event   string `json:"event"`
		Payload struct {
			Payment struct {
				Entity struct {
					ID      string `json:"id"`
					OrderID string `json:"order_id"`
				} `json:"entity"`
			} `json:"payment"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}
	if event.Event != "payment.captured" {
		return nil
	}

	payment, err := s.paymentRepo.GetByProviderOrderID(event.Payload.Payment.Entity.OrderID)
	if err != nil {
		return err
	}
	if payment == nil {
		return ErrPaymentNotFound
	}
	if payment.Status == constants.PaymentStatusSuccess {
		return nil
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err == nil {
		_, err = s.settlePayment(payment, event.Payload.Payment.Entity.ID, signature, raw)
		return err
	}
	_, err = s.settlePayment(payment, event.Payload.Payment.Entity.ID, signature, nil)
	return err
}

// ListByOrder returns the payment attempts against an order.
func (s *PaymentService) ListByOrder(orderID uint) ([]models.Payment, error) {
	return s.paymentRepo.ListByOrderID(orderID)
}

// settlePayment records a verified capture and marks the order paid.
// An order already moved on (say timeout-canceled a moment earlier)
// surfaces as a status conflict with the capture still recorded.
func (s *PaymentService) settlePayment(payment *models.Payment, providerPaymentID, signature string, raw map[string]interface{}) (*models.Payment, error) {
	now := time.Now()
	payment.Status = constants.PaymentStatusSuccess
	payment.ProviderPaymentID = providerPaymentID
	payment.ProviderSignature = signature
	payment.PaidAt = &now
	if raw != nil {
		payment.RawJSON = models.JSON(raw)
	}
	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, err
	}

	if _, err := s.orderService.MarkPaid(payment.OrderID, now); err != nil {
		if errors.Is(err, ErrOrderStatusConflict) {
			logger.Warnw("payment_captured_but_order_moved",
				"payment_no", payment.PaymentNo,
				"order_id", payment.OrderID,
			)
			return payment, err
		}
		return nil, err
	}
	return payment, nil
}

func generatePaymentNo() string {
	return fmt.Sprintf("PAY%s%s", time.Now().Format("20060102150405"), randNumeric(6))
}
