package service

import "errors"

// Coupon errors.
var (
	ErrCouponInvalid    = errors.New("coupon invalid")
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponInactive   = errors.New("coupon inactive")
	ErrCouponNotStarted = errors.New("coupon not started")
	ErrCouponExpired    = errors.New("coupon expired")
	ErrCouponMinAmount  = errors.New("order below coupon minimum")
	ErrCouponCodeExists = errors.New("coupon code already exists")
)

// Auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCaptchaInvalid     = errors.New("captcha invalid")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrPasswordTooWeak    = errors.New("password too weak")
	ErrAccountBlocked     = errors.New("account blocked")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrNotRegistered      = errors.New("account not registered")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrEmailTaken         = errors.New("email already registered")
)

// OTP errors.
var (
	ErrOTPTooFrequent         = errors.New("otp requested too frequently")
	ErrOTPInvalid             = errors.New("otp invalid or expired")
	ErrOTPMaxAttempts         = errors.New("otp attempt limit reached")
	ErrOTPDeliveryUnavailable = errors.New("otp delivery not configured")
	ErrInvalidPhone           = errors.New("invalid phone number")
)

// Catalog errors.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category still has products")
	ErrProductNotFound  = errors.New("product not found")
	ErrSlugTaken        = errors.New("slug already in use")
	ErrSKUTaken         = errors.New("sku already in use")
	ErrPriceInvalid     = errors.New("price must be positive")
	ErrOutOfStock       = errors.New("insufficient stock")
)

// Order errors.
var (
	ErrOrderNotFound            = errors.New("order not found")
	ErrOrderNotCancellable      = errors.New("order cannot be canceled")
	ErrOrderNotPayable          = errors.New("order cannot be paid")
	ErrOrderStatusConflict      = errors.New("order status transition conflict")
	ErrOrderEmpty               = errors.New("order has no items")
	ErrOrderItemInvalid         = errors.New("order item invalid")
	ErrAddressNotFound          = errors.New("address not found")
	ErrShipmentExists           = errors.New("shipment already created")
	ErrShipmentMissing          = errors.New("order has no shipment")
	ErrShippingProviderDisabled = errors.New("shipping provider not configured")
)

// Payment errors.
var (
	ErrPaymentNotFound         = errors.New("payment not found")
	ErrPaymentSignatureInvalid = errors.New("payment signature invalid")
	ErrPaymentProviderDisabled = errors.New("payment provider not configured")
)

// Content errors.
var (
	ErrSettingKeyInvalid    = errors.New("setting key invalid")
	ErrPostNotFound         = errors.New("post not found")
	ErrPostTypeInvalid      = errors.New("post type invalid")
	ErrBannerNotFound       = errors.New("banner not found")
	ErrBannerInvalid        = errors.New("banner image required")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserStatusInvalid    = errors.New("user status invalid")
)
