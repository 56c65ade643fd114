package constants

// Order status constants.
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusShipped        = "shipped"
	OrderStatusDelivered      = "delivered"
	OrderStatusCompleted      = "completed"
	OrderStatusCanceled       = "canceled"
)

// Payment mode constants.
const (
	PaymentModePrepaid = "prepaid"
	PaymentModeCOD     = "cod"
)

// Payment status constants.
const (
	PaymentStatusInitiated = "initiated"
	PaymentStatusPending   = "pending"
	PaymentStatusSuccess   = "success"
	PaymentStatusFailed    = "failed"
	PaymentStatusExpired   = "expired"
)

// Payment provider constants.
const (
	PaymentProviderRazorpay = "razorpay"
	PaymentProviderCOD      = "cod"
)

// Coupon type constants.
const (
	CouponTypeFixed   = "fixed"
	CouponTypePercent = "percentage"
)

// Coupon visibility constants.
const (
	CouponVisibilityPublic = "public"
	CouponVisibilityHidden = "hidden"
)

// User account status constants.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusBlocked  = "blocked"
)

// External identity provider constants.
const (
	IdentityProviderGoogle   = "google"
	IdentityProviderFacebook = "facebook"
)

// OTP purpose constants.
const (
	OTPPurposeLogin  = "login"
	OTPPurposeSignup = "signup"
)

// Login log status constants.
const (
	LoginStatusSuccess = "success"
	LoginStatusFailed  = "failed"
)

// Login provider constants.
const (
	LoginProviderPassword = "password"
	LoginProviderOTP      = "otp"
)

// Login fail reason constants.
const (
	LoginFailReasonBadCredentials = "bad_credentials"
	LoginFailReasonBlocked        = "account_blocked"
	LoginFailReasonSuspended      = "account_suspended"
	LoginFailReasonNotRegistered  = "not_registered"
)

// Metal type constants for jewellery products.
const (
	MetalTypeGold     = "gold"
	MetalTypeSilver   = "silver"
	MetalTypePlatinum = "platinum"
)

// Post type constants.
const (
	PostTypePage = "page"
	PostTypeBlog = "blog"
)

// Notification kind constants.
const (
	NotificationKindOrderStatus = "order_status"
	NotificationKindContact     = "contact"
	NotificationKindLowStock    = "low_stock"
)

// Queue names.
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// Queue task names.
const (
	TaskOrderStatusNotify  = "order:status_notify"
	TaskOrderTimeoutCancel = "order:timeout_cancel"
	TaskWhatsAppSend       = "whatsapp:send"
)

// Setting keys.
const (
	SettingKeySite           = "site"
	SettingKeyContact        = "contact"
	SettingKeyShipping       = "shipping"
	SettingFieldSiteCurrency = "site_currency"
	SiteCurrencyDefault      = "INR"
)
