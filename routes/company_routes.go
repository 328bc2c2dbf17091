package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/SuparBat/CampusConnect/controllers"
	"github.com/SuparBat/CampusConnect/middleware"
	"github.com/SuparBat/CampusConnect/models"
)

// RegisterCompanyRoutes sets up company profile and job management routes
func RegisterCompanyRoutes(e *echo.Echo, passwordController *controllers.PasswordController, companyController *controllers.CompanyController) {
	g := e.Group("/api/company")

	g.POST("/forgot-password", passwordController.ForgotPassword)
	g.POST("/reset-password", passwordController.ResetPassword)

	r := g.Group("")
	r.Use(middleware.JWTMiddleware())
	r.Use(middleware.RequireRole(models.RoleCompany))

	r.GET("/:companyId/profile", companyController.GetProfile)
	r.PUT("/:companyId/profile", companyController.UpdateProfile)
	r.POST("/:companyId/logo", companyController.UploadLogo)
	r.POST("/:companyId/jobs", companyController.AddJob)
	r.GET("/:companyId/jobs", companyController.GetJobs)
	r.DELETE("/:companyId/jobs/:jobId", companyController.DeleteJob)
	r.GET("/:companyId/jobs/:jobId/applicants", companyController.GetApplicants)
}
