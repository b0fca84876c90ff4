package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Tourism-Ease/booking-api/internal/api/handler"
	"github.com/Tourism-Ease/booking-api/internal/api/middleware"
	"github.com/Tourism-Ease/booking-api/internal/core/domain"
	"github.com/Tourism-Ease/booking-api/internal/core/ports"
	"github.com/Tourism-Ease/booking-api/internal/core/service"
	mongodb "github.com/Tourism-Ease/booking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/Tourism-Ease/booking-api/internal/infrastructure/db/redis"
	"github.com/Tourism-Ease/booking-api/internal/infrastructure/oauth"
	"github.com/Tourism-Ease/booking-api/internal/infrastructure/storage"
	"github.com/Tourism-Ease/booking-api/internal/pkg/config"
	"github.com/Tourism-Ease/booking-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, mailq ports.MailQueue, files *storage.LocalStore) *echo.Echo {
	log := logger.Component("http")

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowCredentials: true,
		AllowOriginFunc:  func(string) (bool, error) { return true, nil },
	}))
	e.Use(echoprometheus.NewMiddleware("booking"))

	// --- Infrastructure ---
	users := mongodb.NewUserRepository(db)
	trips := mongodb.NewTripRepository(db)
	bookings := mongodb.NewBookingRepository(db)
	destinations := mongodb.NewStore[domain.Destination](db, "destinations", "name", "country", "city")
	hotels := mongodb.NewStore[domain.Hotel](db, "hotels", "name", "address")
	transportations := mongodb.NewStore[domain.Transportation](db, "transportations", "company", "departureCity", "arrivalCity")
	packages := mongodb.NewStore[domain.Package](db, "packages", "name", "description")
	faqs := mongodb.NewStore[domain.FAQEntry](db, "faqs", "question", "answer")

	cache := redisdb.NewListCache(rdb, cfg.CacheTTL, log)
	resets := redisdb.NewResetStore(rdb)
	limiter := redisdb.NewResetLimiter(rdb)
	google := oauth.NewGoogleExchanger(oauth.GoogleConfig{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
	})

	// --- Services ---
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := service.NewAuthService(users, resets, limiter, google, mailq, tokens, log)
	userSvc := service.NewUserService(users, tokens, log)
	bookingSvc := service.NewBookingService(bookings, trips, users, cache, mailq, log)
	faqSvc := service.NewFAQService(faqs, log)

	destinationSvc := service.NewCatalogService[domain.Destination]("destinations", destinations, cache, false, log)
	hotelSvc := service.NewCatalogService[domain.Hotel]("hotels", hotels, cache, false, log)
	transportationSvc := service.NewCatalogService[domain.Transportation]("transportations", transportations, cache, true, log)
	packageSvc := service.NewCatalogService[domain.Package]("packages", packages, cache, false, log)
	tripSvc := service.NewCatalogService[domain.Trip]("trips", trips, cache, true, log)
	faqCrudSvc := service.NewCatalogService[domain.FAQEntry]("faqs", faqs, cache, false, log)

	// --- Middleware ---
	authMW := middleware.Auth(cfg.JWTSecret, users)
	adminMW := middleware.RequireRoles(domain.RoleAdmin)
	staffMW := middleware.RequireRoles(domain.RoleAdmin, domain.RoleEmployee)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authSvc, cfg.JWTSecret, cfg.TokenTTL, cfg.CookieSecure)
	userHandler := handler.NewUserHandler(userSvc, files, cfg.TokenTTL, cfg.CookieSecure)
	bookingHandler := handler.NewBookingHandler(bookingSvc)
	faqHandler := handler.NewFAQHandler(faqSvc)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Static uploads ---
	e.Static("/uploads", files.Dir())

	v2 := e.Group("/api/v2")

	// --- Auth routes ---
	auth := v2.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/google-login", authHandler.GoogleLogin)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/forgotPassword", authHandler.ForgotPassword)
	auth.POST("/verifyResetCode", authHandler.VerifyResetCode)
	auth.POST("/resetPassword", authHandler.ResetPassword)
	auth.POST("/reactivate", authHandler.Reactivate)

	// --- Profile routes (any authenticated account) ---
	me := v2.Group("/users", authMW)
	me.GET("/getMe", userHandler.GetMe)
	me.PATCH("/updateMe", userHandler.UpdateMe)
	me.PATCH("/changeMyPassword", userHandler.ChangeMyPassword)
	me.DELETE("/deactivateMe", userHandler.DeactivateMe)

	// --- Account administration ---
	me.GET("", userHandler.List, staffMW)
	me.GET("/:id", userHandler.Get, staffMW)
	me.POST("", userHandler.Create, adminMW)
	me.PUT("/:id", userHandler.Update, adminMW)
	me.DELETE("/:id", userHandler.Delete, adminMW)

	// --- Catalog resources: public reads, admin writes ---
	adminOnly := []echo.MiddlewareFunc{authMW, adminMW}
	handler.NewCrudHandler("destination", destinationSvc, files, func(d *domain.Destination, p string) { d.ImageURL = p }).
		Register(v2.Group("/destinations"), adminOnly...)
	handler.NewCrudHandler("hotel", hotelSvc, files, func(h *domain.Hotel, p string) { h.ImageURL = p }).
		Register(v2.Group("/hotels"), adminOnly...)
	handler.NewCrudHandler("transportation", transportationSvc, files, nil).
		Register(v2.Group("/transportations"), adminOnly...)
	handler.NewCrudHandler("package", packageSvc, files, func(pk *domain.Package, p string) { pk.ImageURL = p }).
		Register(v2.Group("/packages"), adminOnly...)
	handler.NewCrudHandler("trip", tripSvc, files, func(t *domain.Trip, p string) { t.ImageURL = p }).
		Register(v2.Group("/trips"), adminOnly...)
	handler.NewCrudHandler("faq", faqCrudSvc, files, nil).
		Register(v2.Group("/faq"), adminOnly...)

	// --- FAQ assistant (public) ---
	v2.POST("/faq/ask", faqHandler.Ask)

	// --- Bookings (session required) ---
	b := v2.Group("/bookings", authMW)
	b.POST("", bookingHandler.Create)
	b.GET("", bookingHandler.List)
	b.GET("/:id", bookingHandler.Get)
	b.DELETE("/:id", bookingHandler.Cancel)

	return e
}
