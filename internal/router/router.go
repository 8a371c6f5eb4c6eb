package router

import (
	"strings"

	"github.com/kitshop/internal/config"
	adminhandlers "github.com/kitshop/internal/http/handlers/admin"
	publichandlers "github.com/kitshop/internal/http/handlers/public"
	"github.com/kitshop/internal/logger"
	"github.com/kitshop/internal/metrics"
	"github.com/kitshop/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	throttler := NewThrottler(c.Cache)

	metricsPath := strings.TrimSpace(cfg.Metrics.Path)
	if metricsPath == "" {
		metricsPath = "/metrics"
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.Current()))
	if cfg.Metrics.Enabled {
		r.Use(metrics.GinMiddleware(metricsPath))
	}
	r.Use(CORSMiddleware(cfg.CORS))

	userAuth := UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserAuthService)
	roleAuthz := RoleAuthzMiddleware(c.Authorizer)

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/kits", publicHandler.GetKits)
			public.GET("/kits/:id", publicHandler.GetKit)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", throttler.Guard(LoginPolicy(cfg.Security)), publicHandler.UserLogin)
		}

		// 套件咨询：提交无需登录，列表需授权
		kitRequests := apiV1.Group("/kitrequests")
		{
			kitRequests.POST("/request-info", throttler.Guard(KitRequestPolicy(cfg.Security)), publicHandler.RequestKitInfo)
			kitRequests.GET("/requests", userAuth, roleAuthz, publicHandler.ListKitRequests)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(userAuth)
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.POST("/me/password", publicHandler.ChangeUserPassword)

			user.GET("/cart", publicHandler.GetCart)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/cart/add", publicHandler.AddCartItem)
			user.DELETE("/cart/:item_id", publicHandler.RemoveCartItem)
			user.POST("/cart/checkout", throttler.Guard(CheckoutPolicy(cfg.Security)), publicHandler.Checkout)

			user.GET("/orders/mine", publicHandler.ListMyOrders)
			user.GET("/orders/all", roleAuthz, publicHandler.ListAllOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
		}

		// 管理端接口（需鉴权 + 角色授权）
		admin := apiV1.Group("/admin")
		admin.Use(userAuth, roleAuthz)
		{
			admin.GET("/products", adminHandler.GetAdminProducts)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PATCH("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			admin.GET("/kits", adminHandler.GetAdminKits)
			admin.POST("/kits", adminHandler.CreateKit)
			admin.PATCH("/kits/:id", adminHandler.UpdateKit)
			admin.DELETE("/kits/:id", adminHandler.DeleteKit)

			admin.GET("/orders/:id", adminHandler.GetAdminOrder)
			admin.POST("/orders/:id/confirmation", adminHandler.ResendOrderConfirmation)

			admin.PATCH("/kit-requests/:id", adminHandler.UpdateKitRequestStatus)

			admin.GET("/authz/roles", adminHandler.ListRoles)
			admin.POST("/authz/roles", adminHandler.CreateRole)
			admin.GET("/authz/roles/:role/grants", adminHandler.ListRoleGrants)
			admin.POST("/authz/grants", adminHandler.GrantAccess)
			admin.DELETE("/authz/grants", adminHandler.RevokeAccess)
		}
	}

	if cfg.Metrics.Enabled {
		r.GET(metricsPath, gin.WrapH(metrics.Handler()))
	}

	// 健康检查
	r.GET("/health", func(ctx *gin.Context) {
		redisStatus := "disabled"
		if c.Cache.Enabled() {
			redisStatus = "ok"
			if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
				redisStatus = "down"
			}
		}
		ctx.JSON(200, gin.H{"status": "ok", "redis": redisStatus})
	})

	return r
}
