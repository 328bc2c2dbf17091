package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/SuparBat/CampusConnect/controllers"
	"github.com/SuparBat/CampusConnect/middleware"
	"github.com/SuparBat/CampusConnect/models"
)

// RegisterAdminRoutes sets up admin login and management routes
func RegisterAdminRoutes(e *echo.Echo, adminController *controllers.AdminController, passwordController *controllers.PasswordController) {
	g := e.Group("/api/admin")

	g.POST("/login", adminController.Login)
	g.POST("/forgot-password", passwordController.ForgotPassword)
	g.POST("/reset-password", passwordController.ResetPassword)

	r := g.Group("")
	r.Use(middleware.JWTMiddleware())
	r.Use(middleware.RequireRole(models.RoleAdmin))

	r.GET("/dashboard", adminController.GetDashboardData)
	r.GET("/students", adminController.GetAllStudents)
	r.GET("/companies", adminController.GetAllCompanies)
	r.DELETE("/students/:studentId", adminController.DeleteStudent)
	r.DELETE("/companies/:companyId", adminController.DeleteCompany)
}
