package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/agnivapalit/fixfinder/config"
	"github.com/agnivapalit/fixfinder/controllers"
	"github.com/agnivapalit/fixfinder/middleware"
	"github.com/agnivapalit/fixfinder/models"
	"github.com/agnivapalit/fixfinder/services"
)

func main() {
	log.Println("Starting FixFinder API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.TechnicianProfile{},
		&models.Listing{},
		&models.Bid{},
		&models.Offer{},
		&models.Review{},
		&models.ChatThread{},
		&models.Message{},
		&models.Ban{},
		&models.Favourite{},
		&models.Report{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	services.InitNotifier(cfg.NotifyWebhookURL)

	s3Service, err := services.InitS3Service()
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}
	services.InitImageService(s3Service)

	router := buildRouter()

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildRouter assembles the full route table
func buildRouter() *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  false,
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", healthCheck)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", controllers.Signup)
		auth.POST("/login", controllers.Login)
		auth.POST("/mock-verify-email", controllers.MockVerifyEmail)
		auth.POST("/mock-verify-phone", controllers.MockVerifyPhone)
	}

	router.GET("/me", middleware.RequireAuth(), controllers.Me)

	anyRole := middleware.RequireRole(models.RoleCustomer, models.RoleTechnician, models.RoleAdmin)

	listings := router.Group("/listings", middleware.RequireAuth())
	{
		listings.POST("", middleware.RequireRole(models.RoleCustomer), controllers.CreateListing)
		listings.GET("", anyRole, controllers.ListListings)
		listings.GET("/mine", middleware.RequireRole(models.RoleCustomer), controllers.MyListings)
		listings.GET("/:id", anyRole, controllers.GetListing)
		listings.POST("/:id/done", middleware.RequireRole(models.RoleTechnician, models.RoleAdmin), controllers.MarkJobDone)

		listings.POST("/:id/bids", middleware.RequireRole(models.RoleTechnician), controllers.PlaceBid)
		listings.GET("/:id/bids", anyRole, controllers.ListBids)

		listings.POST("/:id/offers", middleware.RequireRole(models.RoleTechnician), controllers.SendOffer)
		listings.GET("/:id/offers", anyRole, controllers.ListOffers)

		listings.POST("/:id/review", middleware.RequireRole(models.RoleCustomer), controllers.CreateReview)
		listings.GET("/:id/review", middleware.RequireRole(models.RoleCustomer, models.RoleAdmin), controllers.GetReview)

		listings.POST("/:id/report", middleware.RequireRole(models.RoleCustomer, models.RoleTechnician), controllers.CreateReport)
	}

	router.POST("/offers/:id/accept",
		middleware.RequireAuth(),
		middleware.RequireRole(models.RoleCustomer, models.RoleAdmin),
		controllers.AcceptOffer)

	chat := router.Group("/chat", middleware.RequireAuth(), anyRole)
	{
		chat.GET("/threads", controllers.ListThreads)
		chat.POST("/threads", controllers.CreateThread)
		chat.GET("/threads/:id/messages", controllers.ListMessages)
		chat.POST("/threads/:id/messages", controllers.SendMessage)
	}

	favourites := router.Group("/favourites", middleware.RequireAuth(), middleware.RequireRole(models.RoleTechnician))
	{
		favourites.GET("", controllers.ListFavourites)
		favourites.POST("/toggle/:id", controllers.ToggleFavourite)
	}

	technician := router.Group("/technician", middleware.RequireAuth(), middleware.RequireRole(models.RoleTechnician))
	{
		technician.GET("/jobs", controllers.TechnicianJobs)
		technician.GET("/my-reviews", controllers.MyReviews)
	}

	admin := router.Group("/admin", middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/technicians/pending", controllers.PendingTechnicians)
		admin.POST("/technicians/:id/approve", controllers.ApproveTechnician)
		admin.POST("/technicians/:id/reject", controllers.RejectTechnician)

		admin.GET("/listings", controllers.AdminListings)
		admin.DELETE("/listings/:id", controllers.DeleteListing)
		admin.GET("/bids", controllers.AdminBids)
		admin.POST("/bids/remove", controllers.RemoveBid)
		admin.GET("/offers", controllers.AdminOffers)
		admin.GET("/reports", controllers.AdminReports)

		admin.POST("/ban", controllers.CreateBan)
		admin.GET("/bans", controllers.ListBans)
		admin.POST("/bans/remove", controllers.RemoveBan)

		admin.GET("/stats", controllers.AdminStats)
	}

	uploads := router.Group("/uploads", middleware.RequireAuth())
	{
		uploads.POST("", controllers.UploadImage)
		uploads.GET("/url", controllers.GetImageURL)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "FixFinder API is running",
	})
}
