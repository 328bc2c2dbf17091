package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/SuparBat/CampusConnect/config"
	"github.com/SuparBat/CampusConnect/controllers"
	"github.com/SuparBat/CampusConnect/middleware"
	"github.com/SuparBat/CampusConnect/models"
	"github.com/SuparBat/CampusConnect/repositories"
	"github.com/SuparBat/CampusConnect/routes"
	"github.com/SuparBat/CampusConnect/services"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// newOTPStore returns a Redis-backed store when Redis is reachable,
// otherwise falls back to an in-process map.
func newOTPStore(client *redis.Client, kind string) repositories.OTPStore {
	if client != nil {
		return repositories.NewRedisOTPStore(client, kind)
	}
	return repositories.NewMemoryOTPStore()
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to Redis (optional, OTP codes fall back to process memory)
	redisClient := config.ConnectRedis()

	// Connect to database
	client := config.ConnectDB()
	db := config.GetDatabase(client)

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	customValidator := &CustomValidator{validator: validator.New()}
	e.Validator = customValidator

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "Campus Connect Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	// Initialize repositories
	dirs := repositories.NewDirectories(db)

	// OTP services, one store per flow so codes never collide across roles
	mailer := services.NewSMTPMailer()
	studentResetOTP := services.NewResetOTPService(newOTPStore(redisClient, "student"), mailer, "Password Reset OTP")
	companyResetOTP := services.NewResetOTPService(newOTPStore(redisClient, "company"), mailer, "Company Password Reset OTP")
	adminResetOTP := services.NewResetOTPService(newOTPStore(redisClient, "admin"), mailer, "Admin Password Reset OTP")
	registrationOTP := services.NewRegistrationOTPService(newOTPStore(redisClient, "registration"), mailer)

	// Initialize controllers
	authController := controllers.NewAuthController(dirs, registrationOTP)
	studentController := controllers.NewStudentController(db)
	companyController := controllers.NewCompanyController(db)
	adminController := controllers.NewAdminController(db)
	studentPasswordController := controllers.NewPasswordController(models.RoleStudent, dirs.Student, studentResetOTP)
	companyPasswordController := controllers.NewPasswordController(models.RoleCompany, dirs.Company, companyResetOTP)
	adminPasswordController := controllers.NewPasswordController(models.RoleAdmin, dirs.Admin, adminResetOTP)

	// Register routes
	routes.RegisterUserRoutes(e, authController, studentPasswordController, studentController)
	routes.RegisterCompanyRoutes(e, companyPasswordController, companyController)
	routes.RegisterAdminRoutes(e, adminController, adminPasswordController)

	// Ensure uploads directories exist
	os.MkdirAll("uploads/resumes", 0755)
	os.MkdirAll("uploads/logos", 0755)
	os.MkdirAll("uploads/logos/thumbs", 0755)

	e.Static("/uploads", "uploads")

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
