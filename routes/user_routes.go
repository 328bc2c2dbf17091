package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/SuparBat/CampusConnect/controllers"
	"github.com/SuparBat/CampusConnect/middleware"
	"github.com/SuparBat/CampusConnect/models"
)

// RegisterUserRoutes sets up registration, login and student routes
func RegisterUserRoutes(e *echo.Echo, authController *controllers.AuthController, passwordController *controllers.PasswordController, studentController *controllers.StudentController) {
	g := e.Group("/api/users")

	// Public auth surface
	g.POST("/request-otp", authController.RequestOTP)
	g.POST("/register", authController.Register)
	g.POST("/login", authController.Login)
	g.POST("/forgot-password", passwordController.ForgotPassword)
	g.POST("/reset-password", passwordController.ResetPassword)

	// Protected student routes
	r := g.Group("")
	r.Use(middleware.JWTMiddleware())

	r.GET("/jobs", studentController.SearchJobs)
	r.POST("/jobs/:jobId/apply", studentController.ApplyToJob, middleware.RequireRole(models.RoleStudent))
	r.GET("/:studentId/profile", studentController.GetProfile)
	r.PUT("/:studentId/profile", studentController.UpdateProfile, middleware.RequireRole(models.RoleStudent))
	r.POST("/:userId/resume", studentController.UploadResume, middleware.RequireRole(models.RoleStudent))
	r.GET("/:studentId/applications", studentController.GetApplications)
}
