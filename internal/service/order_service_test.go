package service

import (
	"errors"
	"testing"
	"time"

	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/queue"
	"github.com/ratna-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type orderTestEnv struct {
	db          *gorm.DB
	svc         *OrderService
	productRepo repository.ProductRepository
	userID      uint
	addressID   uint
	productID   uint
}

func setupOrderTest(t *testing.T) *orderTestEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.Category{}, &models.Product{}, &models.User{}, &models.Address{},
		&models.Coupon{}, &models.Order{}, &models.OrderItem{}, &models.Setting{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	user := models.User{Email: "buyer@example.com", PasswordHash: "x", Status: constants.UserStatusActive}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	address := models.Address{
		UserID:         user.ID,
		RecipientName:  "Asha Rao",
		RecipientPhone: "+919876543210",
		AddressLine1:   "12 MG Road",
		City:           "Bengaluru",
		State:          "Karnataka",
		Pincode:        "560001",
		Country:        "India",
	}
	if err := db.Create(&address).Error; err != nil {
		t.Fatalf("create address: %v", err)
	}
	product := models.Product{
		CategoryID:    1,
		Slug:          "gold-ring",
		SKUCode:       "RNG-001",
		Title:         "Gold Ring",
		PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(1000)),
		StockQuantity: 3,
		IsActive:      true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client: %v", err)
	}
	productRepo := repository.NewProductRepository(db)
	svc := NewOrderService(
		db,
		repository.NewOrderRepository(db),
		productRepo,
		repository.NewAddressRepository(db),
		NewCouponService(repository.NewCouponRepository(db)),
		NewSettingService(repository.NewSettingRepository(db)),
		queueClient,
		30,
	)
	return &orderTestEnv{
		db:          db,
		svc:         svc,
		productRepo: productRepo,
		userID:      user.ID,
		addressID:   address.ID,
		productID:   product.ID,
	}
}

func (env *orderTestEnv) stock(t *testing.T) int {
	t.Helper()
	product, err := env.productRepo.GetByID(env.productID)
	if err != nil || product == nil {
		t.Fatalf("reload product: %v", err)
	}
	return product.StockQuantity
}

func TestCreateOrderSnapshotsAddressAndReservesStock(t *testing.T) {
	env := setupOrderTest(t)

	order, err := env.svc.CreateOrder(CreateOrderInput{
		UserID:    env.userID,
		AddressID: env.addressID,
		Items:     []CreateOrderItem{{ProductID: env.productID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.Status != constants.OrderStatusPendingPayment {
		t.Fatalf("expected pending_payment, got %q", order.Status)
	}
	if order.ExpiresAt == nil {
		t.Fatal("expected payment expiry on prepaid order")
	}
	if order.OrderNo == "" || order.RecipientName != "Asha Rao" || order.Pincode != "560001" {
		t.Fatalf("address snapshot incomplete: %+v", order)
	}
	if !order.Subtotal.Decimal.Equal(decimal.NewFromInt(2000)) || !order.TotalAmount.Decimal.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("unexpected totals: subtotal=%s total=%s", order.Subtotal, order.TotalAmount)
	}
	if len(order.Items) != 1 || order.Items[0].SKUCode != "RNG-001" {
		t.Fatalf("unexpected items: %+v", order.Items)
	}
	if got := env.stock(t); got != 1 {
		t.Fatalf("expected stock 1 after reserve, got %d", got)
	}
}

func TestCreateOrderAppliesCouponAndShipping(t *testing.T) {
	env := setupOrderTest(t)

	coupon := models.Coupon{
		Code:       "SAVE10",
		Type:       constants.CouponTypePercent,
		Value:      models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Visibility: constants.CouponVisibilityPublic,
		IsActive:   true,
	}
	if err := env.db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon: %v", err)
	}
	settingSvc := NewSettingService(repository.NewSettingRepository(env.db))
	if _, err := settingSvc.Update(constants.SettingKeyShipping, map[string]interface{}{
		"flat_rate":  float64(99),
		"free_above": float64(5000),
	}); err != nil {
		t.Fatalf("update shipping setting: %v", err)
	}

	order, err := env.svc.CreateOrder(CreateOrderInput{
		UserID:     env.userID,
		AddressID:  env.addressID,
		CouponCode: "save10",
		Items:      []CreateOrderItem{{ProductID: env.productID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// 2000 - 10% + 99 shipping
	if !order.DiscountAmount.Decimal.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("unexpected discount %s", order.DiscountAmount)
	}
	if !order.ShippingAmount.Decimal.Equal(decimal.NewFromInt(99)) {
		t.Fatalf("unexpected shipping %s", order.ShippingAmount)
	}
	if !order.TotalAmount.Decimal.Equal(decimal.NewFromInt(1899)) {
		t.Fatalf("unexpected total %s", order.TotalAmount)
	}
	if order.CouponID == nil || order.CouponCode != "SAVE10" {
		t.Fatalf("coupon snapshot missing: %+v", order)
	}
}

func TestCreateOrderRejectsOversell(t *testing.T) {
	env := setupOrderTest(t)

	_, err := env.svc.CreateOrder(CreateOrderInput{
		UserID:    env.userID,
		AddressID: env.addressID,
		Items:     []CreateOrderItem{{ProductID: env.productID, Quantity: 4}},
	})
	if !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
	if got := env.stock(t); got != 3 {
		t.Fatalf("stock must be untouched, got %d", got)
	}
}

func TestCreateOrderRejectsForeignAddress(t *testing.T) {
	env := setupOrderTest(t)

	other := models.User{Email: "other@example.com", PasswordHash: "x", Status: constants.UserStatusActive}
	if err := env.db.Create(&other).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	_, err := env.svc.CreateOrder(CreateOrderInput{
		UserID:    other.ID,
		AddressID: env.addressID,
		Items:     []CreateOrderItem{{ProductID: env.productID, Quantity: 1}},
	})
	if !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
}

func TestCODOrderSkipsPaymentWindow(t *testing.T) {
	env := setupOrderTest(t)

	order, err := env.svc.CreateOrder(CreateOrderInput{
		UserID:      env.userID,
		AddressID:   env.addressID,
		PaymentMode: constants.PaymentModeCOD,
		Items:       []CreateOrderItem{{ProductID: env.productID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.Status != constants.OrderStatusPaid {
		t.Fatalf("expected cod order to enter fulfilment as paid, got %q", order.Status)
	}
	if order.ExpiresAt != nil {
		t.Fatal("cod order must not carry a payment expiry")
	}
}

func TestCancelOrderRestocksAndGuardsStatus(t *testing.T) {
	env := setupOrderTest(t)

	order, err := env.svc.CreateOrder(CreateOrderInput{
		UserID:    env.userID,
		AddressID: env.addressID,
		Items:     []CreateOrderItem{{ProductID: env.productID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	canceled, err := env.svc.CancelOrder(order.ID, env.userID)
	if err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	if canceled.Status != constants.OrderStatusCanceled || canceled.CanceledAt == nil {
		t.Fatalf("expected canceled order, got %+v", canceled)
	}
	if got := env.stock(t); got != 3 {
		t.Fatalf("expected stock restored to 3, got %d", got)
	}

	// a canceled order cannot be canceled again
	if _, err := env.svc.CancelOrder(order.ID, env.userID); !errors.Is(err, ErrOrderNotCancellable) {
		t.Fatalf("expected ErrOrderNotCancellable, got %v", err)
	}
}

func TestMarkPaidOnlyFromPendingPayment(t *testing.T) {
	env := setupOrderTest(t)

	order, err := env.svc.CreateOrder(CreateOrderInput{
		UserID:    env.userID,
		AddressID: env.addressID,
		Items:     []CreateOrderItem{{ProductID: env.productID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	paid, err := env.svc.MarkPaid(order.ID, time.Now())
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if paid.Status != constants.OrderStatusPaid || paid.PaidAt == nil {
		t.Fatalf("expected paid order, got %+v", paid)
	}

	if _, err := env.svc.MarkPaid(order.ID, time.Now()); !errors.Is(err, ErrOrderStatusConflict) {
		t.Fatalf("expected ErrOrderStatusConflict, got %v", err)
	}
}

func TestUpdateOrderStatusEnforcesTransitions(t *testing.T) {
	env := setupOrderTest(t)

	order, err := env.svc.CreateOrder(CreateOrderInput{
		UserID:    env.userID,
		AddressID: env.addressID,
		Items:     []CreateOrderItem{{ProductID: env.productID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// cannot ship an unpaid order
	if _, err := env.svc.UpdateOrderStatus(order.ID, constants.OrderStatusShipped); !errors.Is(err, ErrOrderStatusConflict) {
		t.Fatalf("expected ErrOrderStatusConflict, got %v", err)
	}

	if _, err := env.svc.MarkPaid(order.ID, time.Now()); err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	shipped, err := env.svc.UpdateOrderStatus(order.ID, constants.OrderStatusShipped)
	if err != nil {
		t.Fatalf("ship: %v", err)
	}
	if shipped.Status != constants.OrderStatusShipped || shipped.ShippedAt == nil {
		t.Fatalf("expected shipped order, got %+v", shipped)
	}
}

func TestCancelExpiredOrderIsLazyAndIdempotent(t *testing.T) {
	env := setupOrderTest(t)

	order, err := env.svc.CreateOrder(CreateOrderInput{
		UserID:    env.userID,
		AddressID: env.addressID,
		Items:     []CreateOrderItem{{ProductID: env.productID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// not expired yet, nothing happens
	untouched, err := env.svc.CancelExpiredOrder(order.ID)
	if err != nil {
		t.Fatalf("CancelExpiredOrder: %v", err)
	}
	if untouched.Status != constants.OrderStatusPendingPayment {
		t.Fatalf("unexpired order must stay pending, got %q", untouched.Status)
	}

	past := time.Now().Add(-time.Minute)
	if err := env.db.Model(&models.Order{}).Where("id = ?", order.ID).Update("expires_at", past).Error; err != nil {
		t.Fatalf("backdate expiry: %v", err)
	}
	canceled, err := env.svc.CancelExpiredOrder(order.ID)
	if err != nil {
		t.Fatalf("CancelExpiredOrder: %v", err)
	}
	if canceled.Status != constants.OrderStatusCanceled {
		t.Fatalf("expected canceled order, got %q", canceled.Status)
	}
	if got := env.stock(t); got != 3 {
		t.Fatalf("expected stock restored to 3, got %d", got)
	}

	// second run is a no-op on the already canceled order
	again, err := env.svc.CancelExpiredOrder(order.ID)
	if err != nil {
		t.Fatalf("CancelExpiredOrder again: %v", err)
	}
	if again.Status != constants.OrderStatusCanceled {
		t.Fatalf("expected canceled order, got %q", again.Status)
	}
	if got := env.stock(t); got != 3 {
		t.Fatalf("stock must not be restocked twice, got %d", got)
	}
}
