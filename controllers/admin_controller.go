// controllers/admin_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SuparBat/CampusConnect/middleware"
	"github.com/SuparBat/CampusConnect/models"
	"github.com/SuparBat/CampusConnect/utils"
)

// AdminController handles admin login and platform management
type AdminController struct {
	db     *mongo.Database
	logger *log.Logger
}

// NewAdminController creates a new admin controller
func NewAdminController(db *mongo.Database) *AdminController {
	return &AdminController{
		db:     db,
		logger: log.New(os.Stdout, "[ADMIN] ", log.LstdFlags),
	}
}

// Login authenticates an admin and issues a short-lived token
func (ac *AdminController) Login(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	var admin models.Admin
	err := ac.db.Collection("admins").FindOne(ctx, bson.M{"email": req.Email}).Decode(&admin)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Admin not found",
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve admin",
		})
	}

	if !utils.CheckPasswordHash(req.Password, admin.Password) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid credentials",
		})
	}

	token, err := middleware.GenerateJWT(admin.ID.Hex(), admin.Email, models.RoleAdmin, adminTokenValidity)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	admin.Password = ""
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"admin": admin,
	})
}

// GetDashboardData returns platform counts and listings
func (ac *AdminController) GetDashboardData(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	students, err := ac.listStudents(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve students",
		})
	}

	companies, err := ac.listCompanies(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve companies",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"studentsCount":  len(students),
		"companiesCount": len(companies),
		"students":       students,
		"companies":      companies,
	})
}

// GetAllStudents lists every student account
func (ac *AdminController) GetAllStudents(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	students, err := ac.listStudents(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve students",
		})
	}

	return c.JSON(http.StatusOK, students)
}

// GetAllCompanies lists every company account
func (ac *AdminController) GetAllCompanies(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	companies, err := ac.listCompanies(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve companies",
		})
	}

	return c.JSON(http.StatusOK, companies)
}

// DeleteStudent removes a student account
func (ac *AdminController) DeleteStudent(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	studentID, err := primitive.ObjectIDFromHex(c.Param("studentId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid student ID",
		})
	}

	result, err := ac.db.Collection("students").DeleteOne(ctx, bson.M{"_id": studentID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete student",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Student not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Student deleted successfully",
	})
}

// DeleteCompany removes a company account
func (ac *AdminController) DeleteCompany(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	companyID, err := primitive.ObjectIDFromHex(c.Param("companyId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid company ID",
		})
	}

	result, err := ac.db.Collection("companies").DeleteOne(ctx, bson.M{"_id": companyID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete company",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Company not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Company deleted successfully",
	})
}

func (ac *AdminController) listStudents(ctx context.Context) ([]models.Student, error) {
	cursor, err := ac.db.Collection("students").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	students := []models.Student{}
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	for i := range students {
		students[i].Password = ""
	}
	return students, nil
}

func (ac *AdminController) listCompanies(ctx context.Context) ([]models.Company, error) {
	cursor, err := ac.db.Collection("companies").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	companies := []models.Company{}
	if err := cursor.All(ctx, &companies); err != nil {
		return nil, err
	}
	for i := range companies {
		companies[i].Password = ""
	}
	return companies, nil
}
