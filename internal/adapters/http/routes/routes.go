package routes

import (
	"driveline/internal/adapters/http/handlers"
	"driveline/internal/adapters/http/middleware"
	"driveline/internal/adapters/persistence/repositories"
	"driveline/internal/config"
	"driveline/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.CronService {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	offerRepo := repositories.NewOfferRepository(db)
	vehicleRepo := repositories.NewVehicleRepository(db)
	tradeRepo := repositories.NewTradeRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, sessionRepo, cfg)
	userService := services.NewUserService(userRepo)
	listingService := services.NewListingService(offerRepo, vehicleRepo, tradeRepo, userRepo)
	catalogService := services.NewCatalogService(catalogRepo)
	cronService := services.NewCronService(authService, cfg.Session.CleanupSchedule)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	offerHandler := handlers.NewOfferHandler(listingService)
	vehicleHandler := handlers.NewVehicleHandler(listingService)
	tradeHandler := handlers.NewTradeHandler(listingService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Check)

	api := app.Group("/api")

	// Auth routes (rate limited harder than the rest)
	auth := api.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)

	// Everything below requires a live session
	protected := api.Group("", middleware.AuthMiddleware(authService))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Profile
	protected.Get("/users/me", userHandler.GetProfile)
	protected.Patch("/users/me", userHandler.UpdateProfile)
	protected.Put("/users/me/password", userHandler.ChangePassword)
	protected.Delete("/users/me", userHandler.DeleteAccount)

	// Offers (members manage their own)
	protected.Post("/offers", offerHandler.Submit)
	protected.Get("/offers", offerHandler.ListMine)
	protected.Patch("/offers/:id", offerHandler.Update)
	protected.Delete("/offers/:id", offerHandler.Delete)

	// Inventory browse & purchase
	protected.Get("/vehicles", vehicleHandler.ListAvailable)
	protected.Get("/vehicles/:id", vehicleHandler.Get)
	protected.Post("/vehicles/:id/purchase", vehicleHandler.Purchase)
	protected.Get("/purchases", vehicleHandler.ListMyPurchases)

	// Reference data (read side)
	protected.Get("/makes", catalogHandler.ListMakes)
	protected.Get("/makes/:id", catalogHandler.GetMake)
	protected.Get("/models", catalogHandler.ListCarModels)
	protected.Get("/models/:id", catalogHandler.GetCarModel)

	// Operator routes
	admin := protected.Group("/admin", middleware.OperatorOnly())

	admin.Get("/users", userHandler.ListUsers)
	admin.Post("/users", userHandler.CreateUser)
	admin.Get("/users/:id", userHandler.GetUser)
	admin.Patch("/users/:id", userHandler.UpdateUser)
	admin.Delete("/users/:id", userHandler.DeleteUser)

	admin.Get("/offers", offerHandler.ListAll)
	admin.Post("/offers/:id/accept", offerHandler.Accept)

	admin.Get("/vehicles", vehicleHandler.ListAll)
	admin.Post("/vehicles", vehicleHandler.Add)
	admin.Patch("/vehicles/:id", vehicleHandler.Update)
	admin.Delete("/vehicles/:id", vehicleHandler.Delete)

	admin.Post("/makes", catalogHandler.CreateMake)
	admin.Put("/makes/:id", catalogHandler.UpdateMake)
	admin.Delete("/makes/:id", catalogHandler.DeleteMake)
	admin.Post("/models", catalogHandler.CreateCarModel)
	admin.Put("/models/:id", catalogHandler.UpdateCarModel)
	admin.Delete("/models/:id", catalogHandler.DeleteCarModel)

	admin.Get("/purchases", tradeHandler.ListPurchases)
	admin.Post("/purchases", tradeHandler.CreatePurchase)
	admin.Delete("/purchases/:id", tradeHandler.DeletePurchase)
	admin.Get("/sales", tradeHandler.ListSales)
	admin.Post("/sales", tradeHandler.CreateSale)
	admin.Delete("/sales/:id", tradeHandler.DeleteSale)

	return cronService
}
