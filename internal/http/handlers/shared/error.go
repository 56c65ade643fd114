package shared

import (
	"errors"

	"github.com/ratna-shop/internal/http/response"
	"github.com/ratna-shop/internal/logger"
	"github.com/ratna-shop/internal/oauth"
	"github.com/ratna-shop/internal/payment/razorpay"
	"github.com/ratna-shop/internal/service"
	"github.com/ratna-shop/internal/shipping/shiprocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog returns a logger carrying the request_id field.
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError writes an error envelope and logs the underlying cause
// when there is one.
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// mappedServiceError pairs a service sentinel with its response.
type mappedServiceError struct {
	target error
	code   int
	msg    string
}

var serviceErrorTable = []mappedServiceError{
	{service.ErrCouponNotFound, response.CodeNotFound, "coupon not found"},
	{service.ErrCouponInactive, response.CodeBadRequest, "coupon is not active"},
	{service.ErrCouponNotStarted, response.CodeBadRequest, "coupon is not active yet"},
	{service.ErrCouponExpired, response.CodeBadRequest, "coupon has expired"},
	{service.ErrCouponMinAmount, response.CodeBadRequest, "order total is below the coupon minimum"},
	{service.ErrCouponCodeExists, response.CodeConflict, "coupon code already exists"},
	{service.ErrCouponInvalid, response.CodeBadRequest, "coupon is invalid"},

	{service.ErrInvalidCredentials, response.CodeUnauthorized, "invalid credentials"},
	{service.ErrCaptchaInvalid, response.CodeBadRequest, "captcha verification failed"},
	{service.ErrTokenInvalid, response.CodeUnauthorized, "session is invalid"},
	{service.ErrPasswordTooWeak, response.CodeBadRequest, "password does not meet the policy"},
	{service.ErrAccountBlocked, response.CodeForbidden, "account is blocked"},
	{service.ErrAccountSuspended, response.CodeForbidden, "account is suspended"},
	{service.ErrNotRegistered, response.CodeNotFound, "account is not registered"},
	{service.ErrAdminNotFound, response.CodeNotFound, "admin account not found"},
	{service.ErrEmailTaken, response.CodeConflict, "email is already registered"},

	{service.ErrOTPTooFrequent, response.CodeTooManyRequests, "code requested too frequently"},
	{service.ErrOTPInvalid, response.CodeBadRequest, "code is invalid or expired"},
	{service.ErrOTPMaxAttempts, response.CodeTooManyRequests, "too many failed attempts"},
	{service.ErrOTPDeliveryUnavailable, response.CodeBadRequest, "message delivery not configured"},
	{service.ErrInvalidPhone, response.CodeBadRequest, "phone number is invalid"},

	{service.ErrCategoryNotFound, response.CodeNotFound, "category not found"},
	{service.ErrCategoryInUse, response.CodeConflict, "category still has products"},
	{service.ErrProductNotFound, response.CodeNotFound, "product not found"},
	{service.ErrSlugTaken, response.CodeConflict, "slug is already in use"},
	{service.ErrSKUTaken, response.CodeConflict, "sku is already in use"},
	{service.ErrPriceInvalid, response.CodeBadRequest, "price must be positive"},
	{service.ErrOutOfStock, response.CodeConflict, "insufficient stock"},

	{service.ErrOrderNotFound, response.CodeNotFound, "order not found"},
	{service.ErrOrderNotCancellable, response.CodeConflict, "order can no longer be canceled"},
	{service.ErrOrderNotPayable, response.CodeConflict, "order can no longer be paid"},
	{service.ErrOrderStatusConflict, response.CodeConflict, "order status conflict"},
	{service.ErrOrderEmpty, response.CodeBadRequest, "order has no items"},
	{service.ErrOrderItemInvalid, response.CodeBadRequest, "order item is invalid"},
	{service.ErrAddressNotFound, response.CodeNotFound, "address not found"},
	{service.ErrShipmentExists, response.CodeConflict, "shipment already created"},
	{service.ErrShipmentMissing, response.CodeBadRequest, "order has no shipment"},
	{service.ErrShippingProviderDisabled, response.CodeBadRequest, "shipping provider not configured"},

	{service.ErrPaymentNotFound, response.CodeNotFound, "payment not found"},
	{service.ErrPaymentSignatureInvalid, response.CodeBadRequest, "payment signature verification failed"},
	{service.ErrPaymentProviderDisabled, response.CodeBadRequest, "payment provider not configured"},

	{service.ErrSettingKeyInvalid, response.CodeBadRequest, "setting key is invalid"},
	{service.ErrPostNotFound, response.CodeNotFound, "post not found"},
	{service.ErrPostTypeInvalid, response.CodeBadRequest, "post type is invalid"},
	{service.ErrBannerNotFound, response.CodeNotFound, "banner not found"},
	{service.ErrBannerInvalid, response.CodeBadRequest, "banner image is required"},
	{service.ErrNotificationNotFound, response.CodeNotFound, "notification not found"},
	{service.ErrUserNotFound, response.CodeNotFound, "user not found"},
	{service.ErrUserStatusInvalid, response.CodeBadRequest, "user status is invalid"},
}

// RespondServiceError maps a service error onto the envelope. Courier
// and payment gateway failures surface as bad gateway with the
// upstream body logged, never echoed.
func RespondServiceError(c *gin.Context, err error) {
	for _, mapped := range serviceErrorTable {
		if errors.Is(err, mapped.target) {
			response.Error(c, mapped.code, mapped.msg)
			return
		}
	}

	var providerErr *shiprocket.ProviderError
	if errors.As(err, &providerErr) {
		RequestLog(c).Errorw("courier_provider_error",
			"op", providerErr.Op,
			"status", providerErr.StatusCode,
			"body", providerErr.Body,
		)
		response.Error(c, response.CodeBadGateway, "courier request failed")
		return
	}
	if errors.Is(err, shiprocket.ErrAuthFailed) || errors.Is(err, shiprocket.ErrRequestFailed) || errors.Is(err, shiprocket.ErrResponseInvalid) {
		RequestLog(c).Errorw("courier_error", "error", err)
		response.Error(c, response.CodeBadGateway, "courier request failed")
		return
	}
	if errors.Is(err, razorpay.ErrRequestFailed) || errors.Is(err, razorpay.ErrResponseInvalid) {
		RequestLog(c).Errorw("payment_gateway_error", "error", err)
		response.Error(c, response.CodeBadGateway, "payment gateway request failed")
		return
	}
	if errors.Is(err, oauth.ErrTokenInvalid) || errors.Is(err, oauth.ErrAudienceInvalid) || errors.Is(err, oauth.ErrEmailMissing) {
		response.Error(c, response.CodeUnauthorized, "invalid credential")
		return
	}
	if errors.Is(err, oauth.ErrRequestFailed) {
		RequestLog(c).Errorw("oauth_provider_error", "error", err)
		response.Error(c, response.CodeBadGateway, "identity provider request failed")
		return
	}

	RespondError(c, response.CodeInternal, "internal error", err)
}
