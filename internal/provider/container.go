package provider

import (
	"github.com/ratna-shop/internal/authz"
	"github.com/ratna-shop/internal/cache"
	"github.com/ratna-shop/internal/config"
	"github.com/ratna-shop/internal/logger"
	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/notify/whatsapp"
	"github.com/ratna-shop/internal/oauth"
	"github.com/ratna-shop/internal/oauth/facebook"
	"github.com/ratna-shop/internal/oauth/google"
	"github.com/ratna-shop/internal/payment/razorpay"
	"github.com/ratna-shop/internal/queue"
	"github.com/ratna-shop/internal/repository"
	"github.com/ratna-shop/internal/service"
	"github.com/ratna-shop/internal/shipping/shiprocket"
)

// Container wires repositories, external clients and services together.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	RazorpayClient   *razorpay.Client
	ShiprocketClient *shiprocket.Client
	WhatsAppClient   *whatsapp.Client

	// Repositories
	AdminRepo        repository.AdminRepository
	UserRepo         repository.UserRepository
	UserIdentityRepo repository.UserIdentityRepository
	AddressRepo      repository.AddressRepository
	CategoryRepo     repository.CategoryRepository
	ProductRepo      repository.ProductRepository
	CouponRepo       repository.CouponRepository
	OrderRepo        repository.OrderRepository
	PaymentRepo      repository.PaymentRepository
	PostRepo         repository.PostRepository
	BannerRepo       repository.BannerRepository
	SettingRepo      repository.SettingRepository
	NotificationRepo repository.NotificationRepository
	UserLoginLogRepo repository.UserLoginLogRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	UserAuthService     *service.UserAuthService
	OAuthService        *service.OAuthService
	OTPService          *service.OTPService
	CaptchaService      *service.CaptchaService
	CategoryService     *service.CategoryService
	ProductService      *service.ProductService
	CouponService       *service.CouponService
	CouponAdminService  *service.CouponAdminService
	SettingService      *service.SettingService
	OrderService        *service.OrderService
	PaymentService      *service.PaymentService
	ShippingService     *service.ShippingService
	PostService         *service.PostService
	BannerService       *service.BannerService
	NotificationService *service.NotificationService
	UserService         *service.UserService
	UserLoginLogService *service.UserLoginLogService
	SitemapService      *service.SitemapService
}

// NewContainer initializes the dependency container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initClients()
	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initClients() {
	gateway, err := razorpay.NewClient(&razorpay.Config{
		KeyID:         c.Config.Razorpay.KeyID,
		KeySecret:     c.Config.Razorpay.KeySecret,
		BaseURL:       c.Config.Razorpay.BaseURL,
		WebhookSecret: c.Config.Razorpay.WebhookSecret,
		TimeoutMS:     c.Config.Razorpay.TimeoutMS,
	})
	if err != nil {
		logger.Warnw("provider_razorpay_disabled", "error", err)
	} else {
		c.RazorpayClient = gateway
	}

	courier, err := shiprocket.NewClient(&shiprocket.Config{
		BaseURL:        c.Config.Shiprocket.BaseURL,
		Email:          c.Config.Shiprocket.Email,
		Password:       c.Config.Shiprocket.Password,
		PickupLocation: c.Config.Shiprocket.PickupLocation,
		TimeoutMS:      c.Config.Shiprocket.TimeoutMS,
	})
	if err != nil {
		logger.Warnw("provider_shiprocket_disabled", "error", err)
	} else {
		c.ShiprocketClient = courier
	}

	if c.Config.WhatsApp.Enabled {
		sender, err := whatsapp.NewClient(&whatsapp.Config{
			AccountSID: c.Config.WhatsApp.AccountSID,
			AuthToken:  c.Config.WhatsApp.AuthToken,
			FromNumber: c.Config.WhatsApp.FromNumber,
			BaseURL:    c.Config.WhatsApp.BaseURL,
			TimeoutMS:  c.Config.WhatsApp.TimeoutMS,
		})
		if err != nil {
			logger.Warnw("provider_whatsapp_disabled", "error", err)
		} else {
			c.WhatsAppClient = sender
		}
	}
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.UserIdentityRepo = repository.NewUserIdentityRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.BannerRepo = repository.NewBannerRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
	c.UserLoginLogRepo = repository.NewUserLoginLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.OAuthService = service.NewOAuthService(
		models.DB,
		[]oauth.Verifier{
			google.NewVerifier(&c.Config.OAuth.Google),
			facebook.NewVerifier(&c.Config.OAuth.Facebook),
		},
		c.AdminRepo,
		c.UserRepo,
		c.UserIdentityRepo,
		c.AuthService,
		c.UserAuthService,
	)
	var otpDirect service.OTPDirectSender
	if c.WhatsAppClient != nil {
		otpDirect = c.WhatsAppClient
	}
	c.OTPService = service.NewOTPService(c.Config.WhatsApp.OTP, c.QueueClient, otpDirect)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo)
	c.CouponAdminService = service.NewCouponAdminService(c.CouponRepo)
	c.OrderService = service.NewOrderService(models.DB, c.OrderRepo, c.ProductRepo, c.AddressRepo, c.CouponService, c.SettingService, c.QueueClient, c.Config.Order.PaymentExpireMinutes)
	c.PaymentService = service.NewPaymentService(c.PaymentRepo, c.OrderService, c.RazorpayClient)
	c.ShippingService = service.NewShippingService(c.OrderRepo, c.ShiprocketClient)
	c.PostService = service.NewPostService(c.PostRepo)
	c.BannerService = service.NewBannerService(c.BannerRepo)
	c.NotificationService = service.NewNotificationService(c.NotificationRepo, c.OrderRepo)
	c.UserService = service.NewUserService(models.DB, c.UserRepo, c.UserIdentityRepo, c.AddressRepo)
	c.UserLoginLogService = service.NewUserLoginLogService(c.UserLoginLogRepo)
	c.SitemapService = service.NewSitemapService(c.Config.Sitemap, c.ProductRepo, c.PostRepo)
}
