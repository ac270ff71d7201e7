package main

import (
	_ "backend/api/swagger" // swagger docs
	"backend/internal/database"
	"backend/internal/handler"
	"backend/internal/mailer"
	"backend/internal/middleware"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/websocket"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Do Good Hub API
// @version         1.0
// @description     Donation platform backend connecting donors, NGOs and vendors.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	profileRepo := repository.NewProfileRepository(db)
	ngoRepo := repository.NewNGORepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	donationRepo := repository.NewDonationRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	invoiceRepo := repository.NewVendorInvoiceRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	donationPackageRepo := repository.NewDonationPackageRepository(db)

	notifier := mailer.New(settingsRepo)

	authService := service.NewAuthService(profileRepo, ngoRepo, vendorRepo, txManager, notifier)
	profileService := service.NewProfileService(profileRepo, txManager)
	ngoService := service.NewNGOService(ngoRepo, profileRepo, txManager, notifier)
	vendorService := service.NewVendorService(vendorRepo, profileRepo, txManager, notifier)
	packageService := service.NewPackageService(packageRepo, ngoRepo)
	donationService := service.NewDonationService(donationRepo, packageRepo, transactionRepo, txManager)
	transactionService := service.NewTransactionService(transactionRepo, packageRepo, vendorRepo, ngoRepo, txManager, wsHub)
	ticketService := service.NewTicketService(ticketRepo, transactionRepo, vendorRepo)
	invoiceService := service.NewVendorInvoiceService(invoiceRepo, transactionRepo, vendorRepo, txManager, notifier, wsHub)
	settingsService := service.NewSettingsService(settingsRepo)
	donationPackageService := service.NewDonationPackageService(donationPackageRepo, vendorRepo)
	dashboardService := service.NewDashboardService(transactionRepo, invoiceRepo, vendorRepo, ngoRepo, packageRepo, donationRepo)

	// Initialize Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(profileService)
	ngoHandler := handler.NewNGOHandler(ngoService, dashboardService)
	vendorHandler := handler.NewVendorHandler(vendorService, dashboardService, donationPackageService)
	packageHandler := handler.NewPackageHandler(packageService)
	donationHandler := handler.NewDonationHandler(donationService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	ticketHandler := handler.NewTicketHandler(ticketService)
	invoiceHandler := handler.NewVendorInvoiceHandler(invoiceService)
	adminHandler := handler.NewAdminHandler(ngoService, vendorService, settingsService, donationPackageService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	authHandler.RegisterRoutes(router.Group(""))
	userHandler.RegisterRoutes(router.Group(""))
	ngoHandler.RegisterRoutes(router.Group(""))
	vendorHandler.RegisterRoutes(router.Group(""))
	packageHandler.RegisterRoutes(router.Group(""))
	donationHandler.RegisterRoutes(router.Group(""))
	transactionHandler.RegisterRoutes(router.Group(""))
	ticketHandler.RegisterRoutes(router.Group(""))
	invoiceHandler.RegisterRoutes(router.Group(""))
	adminHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
