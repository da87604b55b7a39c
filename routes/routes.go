package routes

import (
	"net/http"
	"time"

	"qrmenu/configs"
	"qrmenu/controllers"
	"qrmenu/entity"
	"qrmenu/middlewares"
	"qrmenu/pkg/cache"
	"qrmenu/pkg/metrics"
	"qrmenu/repository"
	"qrmenu/services"
	"qrmenu/ws"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Deps คือของที่ main เตรียมไว้ให้
type Deps struct {
	DB     *gorm.DB
	Config *configs.Config
	Plans  configs.PlanCatalog
	Store  cache.Store
	Log    logrus.FieldLogger
}

// Server รวม engine กับส่วนที่ต้องรันเบื้องหลัง (hub, cron)
type Server struct {
	Engine          *gin.Engine
	Hub             *ws.Hub
	Subscriptions   *services.SubscriptionService
	FeedbackLimiter *middlewares.RateLimiter
}

// NewServer ประกอบ repository -> service -> controller แล้วผูก route
func NewServer(d Deps) *Server {
	cfg := d.Config
	db := d.DB

	// Repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	itemRepo := repository.NewItemRepository(db)
	catRepo := repository.NewTaxonomyRepository[entity.Category](db)
	typeRepo := repository.NewTaxonomyRepository[entity.ItemType](db)
	tagRepo := repository.NewTaxonomyRepository[entity.Tag](db)
	subRepo := repository.NewSubscriptionRepository(db)
	payRepo := repository.NewPaymentRepository(db)
	fbRepo := repository.NewFeedbackRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Services
	publicSvc := services.NewPublicMenuService(menuRepo, itemRepo, catRepo, typeRepo, tagRepo, d.Store, cfg.CacheTTL, d.Log)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	profileSvc := services.NewProfileService(profileRepo, publicSvc)
	hub := ws.NewHub(profileSvc, d.Log)
	subSvc := services.NewSubscriptionService(subRepo, menuRepo, itemRepo, d.Plans, publicSvc, hub)
	menuSvc := services.NewMenuService(menuRepo, profileSvc, subSvc, publicSvc, cfg.PublicMenuBaseURL)
	itemSvc := services.NewItemService(itemRepo, menuSvc, subSvc, catRepo, typeRepo, tagRepo, publicSvc)
	catSvc := services.NewTaxonomyService(catRepo, profileSvc, publicSvc)
	typeSvc := services.NewTaxonomyService(typeRepo, profileSvc, publicSvc)
	tagSvc := services.NewTaxonomyService(tagRepo, profileSvc, publicSvc)
	fbSvc := services.NewFeedbackService(fbRepo, profileSvc, publicSvc, hub)
	paySvc := services.NewPaymentService(payRepo, subSvc)
	ticketSvc := services.NewTicketService(ticketRepo, profileSvc, hub)
	adminSvc := services.NewAdminService(userRepo, analyticsRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc, cfg.CookieSecure)
	profileCtrl := controllers.NewProfileController(profileSvc)
	menuCtrl := controllers.NewMenuController(menuSvc)
	itemCtrl := controllers.NewItemController(itemSvc)
	catCtrl := controllers.NewTaxonomyController(catSvc)
	typeCtrl := controllers.NewTaxonomyController(typeSvc)
	tagCtrl := controllers.NewTaxonomyController(tagSvc)
	publicCtrl := controllers.NewPublicController(publicSvc, fbSvc)
	fbCtrl := controllers.NewFeedbackController(fbSvc)
	subCtrl := controllers.NewSubscriptionController(subSvc, profileSvc)
	supportCtrl := controllers.NewSupportController(ticketSvc)
	payCtrl := controllers.NewPaymentController(paySvc)
	adminCtrl := controllers.NewAdminController(adminSvc, profileSvc, subSvc, ticketSvc)

	limiter := middlewares.NewRateLimiter(cfg.FeedbackRPS, cfg.FeedbackBurst)

	r := gin.New()
	// rate limit ต่อ IP ใช้ ClientIP() จึงต้องจำกัดว่าเชื่อ proxy ไหน
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		d.Log.WithError(err).Error("❌ invalid TRUSTED_PROXIES, trusting no proxy")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(d.Log))
	r.Use(metrics.Middleware())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	auth := middlewares.AuthMiddleware(cfg.JWTSecret, cfg.CookieSecure)
	adminOnly := middlewares.AuthMiddleware(cfg.JWTSecret, cfg.CookieSecure, entity.RoleAdmin)

	// Auth (public)
	a := api.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.POST("/logout", authCtrl.Logout)
	}

	// Auth (protected)
	aAuth := a.Group("", auth)
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/me", authCtrl.UpdateMe)
		aAuth.POST("/change-password", authCtrl.ChangePassword)
	}

	// Public menu (สแกน QR)
	pub := api.Group("/public")
	{
		pub.GET("/menu/:id", publicCtrl.Menu)
		pub.POST("/menu/:id/feedback", limiter.Handler(), publicCtrl.SubmitFeedback)
	}

	// Live events ของ dashboard (browser ส่ง token ทาง query)
	api.GET("/profiles/:id/events", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.HandleEvents)

	// Owner dashboard
	o := api.Group("", auth)
	{
		o.GET("/profiles", profileCtrl.List)
		o.POST("/profiles", profileCtrl.Create)
		o.GET("/profiles/:id", profileCtrl.Get)
		o.PATCH("/profiles/:id", profileCtrl.Update)
		o.DELETE("/profiles/:id", profileCtrl.Delete)

		o.GET("/profiles/:id/categories", catCtrl.List)
		o.POST("/profiles/:id/categories", catCtrl.Create)
		o.PATCH("/profiles/:id/categories/:cid", catCtrl.Update)
		o.DELETE("/profiles/:id/categories/:cid", catCtrl.Delete)

		o.GET("/profiles/:id/types", typeCtrl.List)
		o.POST("/profiles/:id/types", typeCtrl.Create)
		o.PATCH("/profiles/:id/types/:cid", typeCtrl.Update)
		o.DELETE("/profiles/:id/types/:cid", typeCtrl.Delete)

		o.GET("/profiles/:id/tags", tagCtrl.List)
		o.POST("/profiles/:id/tags", tagCtrl.Create)
		o.PATCH("/profiles/:id/tags/:cid", tagCtrl.Update)
		o.DELETE("/profiles/:id/tags/:cid", tagCtrl.Delete)

		o.GET("/profiles/:id/menus", menuCtrl.List)
		o.POST("/profiles/:id/menus", menuCtrl.Create)
		o.GET("/menus/:id", menuCtrl.Get)
		o.PATCH("/menus/:id", menuCtrl.Update)
		o.DELETE("/menus/:id", menuCtrl.Delete)
		o.PATCH("/menus/:id/publish", menuCtrl.TogglePublish)
		o.GET("/menus/:id/qrcode", menuCtrl.QRCode)

		o.GET("/menus/:id/items", itemCtrl.List)
		o.POST("/menus/:id/items", itemCtrl.Create)
		o.GET("/items/:id", itemCtrl.Get)
		o.PATCH("/items/:id", itemCtrl.Update)
		o.DELETE("/items/:id", itemCtrl.Delete)
		o.PUT("/items/:id/translations", itemCtrl.ReplaceTranslations)
		o.PUT("/items/:id/tags", itemCtrl.ReplaceTags)

		o.GET("/profiles/:id/feedback", fbCtrl.List)
		o.PATCH("/feedback/:id", fbCtrl.UpdateState)

		o.GET("/subscription", subCtrl.Get)            // ?profileId=
		o.POST("/subscription/cancel", subCtrl.Cancel) // ?profileId=

		o.GET("/support", supportCtrl.List)
		o.POST("/support", supportCtrl.Create)
	}

	// Admin (admin only)
	ad := api.Group("/admin", adminOnly)
	{
		ad.GET("/analytics", adminCtrl.Analytics)

		ad.GET("/users", adminCtrl.Users)
		ad.PATCH("/users/:id/toggle", adminCtrl.ToggleUser)

		ad.GET("/profiles", adminCtrl.ListProfiles)
		ad.PATCH("/profiles/:id/toggle", adminCtrl.ToggleProfile)

		ad.GET("/subscriptions", adminCtrl.ListSubscriptions)
		ad.PATCH("/subscriptions/:id", adminCtrl.UpdateSubscription)
		ad.PATCH("/subscriptions/:id/toggle", adminCtrl.ToggleSubscription)

		ad.GET("/payments", payCtrl.List)
		ad.POST("/payments", payCtrl.Record)
		ad.PATCH("/payments/:id/status", payCtrl.UpdateStatus)

		ad.GET("/support", adminCtrl.ListTickets)
		ad.PATCH("/support/:id", adminCtrl.UpdateTicket)
	}

	return &Server{Engine: r, Hub: hub, Subscriptions: subSvc, FeedbackLimiter: limiter}
}
