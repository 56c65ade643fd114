package router

import (
	"fmt"
	"strings"

	"github.com/ratna-shop/internal/cache"
	"github.com/ratna-shop/internal/config"
	adminhandlers "github.com/ratna-shop/internal/http/handlers/admin"
	publichandlers "github.com/ratna-shop/internal/http/handlers/public"
	"github.com/ratna-shop/internal/logger"
	"github.com/ratna-shop/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP engine with all routes and middleware.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ratna"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}
	otpRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:otp", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.Static("/uploads", "./uploads")
	r.GET("/sitemap.xml", publicHandler.GetSitemap)

	apiV1 := r.Group("/api/v1")
	{
		// Storefront, no auth.
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:slug", publicHandler.GetProductBySlug)
			public.GET("/posts", publicHandler.GetPosts)
			public.GET("/posts/:slug", publicHandler.GetPostBySlug)
			public.GET("/banners", publicHandler.GetBanners)
			// Optional auth: signed-in shoppers may preview hidden codes.
			public.POST("/coupons/preview", OptionalUserJWTMiddleware(cfg.UserJWT.SecretKey, c.UserRepo), publicHandler.PreviewCoupon)
		}

		// Sign-in flows.
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
			auth.POST("/otp/request", RateLimitMiddleware(redisClient, otpRule, KeyByIPAndJSONField("phone")), publicHandler.RequestOTP)
			auth.POST("/otp/verify", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("phone")), publicHandler.VerifyOTP)
			auth.POST("/oauth/login", RateLimitMiddleware(redisClient, loginRule, KeyByIP), publicHandler.OAuthLogin)
			auth.POST("/oauth/signup", RateLimitMiddleware(redisClient, loginRule, KeyByIP), publicHandler.OAuthSignup)
		}

		// Gateway callbacks, signature verified in the service.
		apiV1.POST("/payments/capture", publicHandler.CapturePayment)
		apiV1.POST("/payments/webhook/razorpay", publicHandler.PaymentWebhook)

		// Signed-in storefront.
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetProfile)
			user.PUT("/me/profile", publicHandler.UpdateProfile)
			user.GET("/me/addresses", publicHandler.ListAddresses)
			user.POST("/me/addresses", publicHandler.CreateAddress)
			user.PUT("/me/addresses/:id", publicHandler.UpdateAddress)
			user.DELETE("/me/addresses/:id", publicHandler.DeleteAddress)
			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.GetOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.POST("/orders/:id/cancel", publicHandler.CancelOrder)
			user.POST("/orders/:id/payments", publicHandler.InitiatePayment)
			user.GET("/orders/:id/payments", publicHandler.GetOrderPayments)
			user.GET("/notifications", publicHandler.GetNotifications)
			user.GET("/notifications/unread-count", publicHandler.GetUnreadCount)
			user.POST("/notifications/mark-read", publicHandler.MarkNotificationsRead)
			user.DELETE("/notifications/:id", publicHandler.DeleteNotification)
			user.POST("/contact", publicHandler.SubmitContact)
		}

		// Back office.
		admin := apiV1.Group("/admin")
		{
			admin.GET("/captcha", adminHandler.GetCaptcha)
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.Login)
			admin.POST("/oauth/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.OAuthLogin)

			authorized := admin.Use(AdminJWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/dashboard", adminHandler.GetDashboard)
				authorized.PUT("/password", adminHandler.UpdatePassword)

				authorized.GET("/products", adminHandler.GetProducts)
				authorized.GET("/products/:id", adminHandler.GetProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				authorized.GET("/categories", adminHandler.GetCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)

				authorized.GET("/coupons", adminHandler.GetCoupons)
				authorized.GET("/coupons/:id", adminHandler.GetCoupon)
				authorized.POST("/coupons", adminHandler.CreateCoupon)
				authorized.PUT("/coupons/:id", adminHandler.UpdateCoupon)
				authorized.DELETE("/coupons/:id", adminHandler.DeleteCoupon)

				authorized.GET("/orders", adminHandler.GetOrders)
				authorized.GET("/orders/:id", adminHandler.GetOrder)
				authorized.PATCH("/orders/:id", adminHandler.UpdateOrderStatus)
				authorized.POST("/orders/:id/shipment", adminHandler.CreateShipment)
				authorized.GET("/orders/:id/shipment/track", adminHandler.TrackShipment)
				authorized.GET("/orders/:id/shipment/label", adminHandler.GetShipmentLabel)

				authorized.GET("/users", adminHandler.GetUsers)
				authorized.GET("/users/:id", adminHandler.GetUser)
				authorized.PATCH("/users/:id/status", adminHandler.UpdateUserStatus)
				authorized.DELETE("/users/:id", adminHandler.DeleteUser)
				authorized.GET("/user-login-logs", adminHandler.GetUserLoginLogs)

				authorized.GET("/posts", adminHandler.GetPosts)
				authorized.GET("/posts/:id", adminHandler.GetPost)
				authorized.POST("/posts", adminHandler.CreatePost)
				authorized.PUT("/posts/:id", adminHandler.UpdatePost)
				authorized.DELETE("/posts/:id", adminHandler.DeletePost)

				authorized.GET("/banners", adminHandler.GetBanners)
				authorized.POST("/banners", adminHandler.CreateBanner)
				authorized.PUT("/banners/:id", adminHandler.UpdateBanner)
				authorized.DELETE("/banners/:id", adminHandler.DeleteBanner)

				authorized.GET("/settings", adminHandler.GetSettings)
				authorized.PUT("/settings/:key", adminHandler.UpdateSetting)

				authorized.GET("/authz/roles", adminHandler.GetRoles)
				authorized.POST("/authz/roles", adminHandler.CreateRole)
				authorized.DELETE("/authz/roles/:role", adminHandler.DeleteRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetRolePolicies)
				authorized.POST("/authz/roles/:role/policies", adminHandler.GrantRolePolicy)
				authorized.DELETE("/authz/roles/:role/policies", adminHandler.RevokeRolePolicy)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAdminRoles)
				authorized.GET("/authz/role-seeds", adminHandler.GetBuiltinRoleSeeds)
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
