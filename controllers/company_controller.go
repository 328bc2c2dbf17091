// controllers/company_controller.go
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

	"github.com/SuparBat/CampusConnect/models"
	"github.com/SuparBat/CampusConnect/utils"
)

// CompanyController handles company profiles, job postings and
// applicant tracking.
type CompanyController struct {
	db     *mongo.Database
	logger *log.Logger
}

// NewCompanyController creates a new company controller
func NewCompanyController(db *mongo.Database) *CompanyController {
	return &CompanyController{
		db:     db,
		logger: log.New(os.Stdout, "[COMPANY] ", log.LstdFlags),
	}
}

// GetProfile returns a company profile without the password hash
func (cc *CompanyController) GetProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	companyID, err := primitive.ObjectIDFromHex(c.Param("companyId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid company ID",
		})
	}

	var company models.Company
	err = cc.db.Collection("companies").FindOne(ctx, bson.M{"_id": companyID}).Decode(&company)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Company not found",
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve company",
		})
	}

	company.Password = ""
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Company profile retrieved",
		Data:    company,
	})
}

// UpdateProfile updates the editable company profile fields
func (cc *CompanyController) UpdateProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	companyID, err := primitive.ObjectIDFromHex(c.Param("companyId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid company ID",
		})
	}

	var req models.CompanyProfileUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		update["name"] = utils.SanitizeInput(req.Name)
	}
	if req.Phone != "" {
		update["phone"] = utils.SanitizeInput(req.Phone)
	}
	if req.Website != "" {
		update["website"] = utils.SanitizeInput(req.Website)
	}
	if req.Location != "" {
		update["location"] = utils.SanitizeInput(req.Location)
	}
	if req.FoundingYear != "" {
		update["foundingYear"] = utils.SanitizeInput(req.FoundingYear)
	}
	if req.CompanySize != "" {
		update["companySize"] = utils.SanitizeInput(req.CompanySize)
	}
	if req.Industry != "" {
		update["industry"] = utils.SanitizeInput(req.Industry)
	}
	if req.Bio != "" {
		update["bio"] = utils.SanitizeInput(req.Bio)
	}
	if req.Mission != "" {
		update["mission"] = utils.SanitizeInput(req.Mission)
	}
	if req.Values != nil {
		update["values"] = utils.SanitizeStringArray(req.Values)
	}
	if req.Benefits != nil {
		update["benefits"] = utils.SanitizeStringArray(req.Benefits)
	}

	result, err := cc.db.Collection("companies").UpdateOne(
		ctx,
		bson.M{"_id": companyID},
		bson.M{"$set": update},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update company profile",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Company not found",
		})
	}

	var company models.Company
	if err := cc.db.Collection("companies").FindOne(ctx, bson.M{"_id": companyID}).Decode(&company); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve updated profile",
		})
	}
	company.Password = ""

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Company profile updated",
		Data:    company,
	})
}

// UploadLogo stores a company logo and its thumbnail
func (cc *CompanyController) UploadLogo(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	companyID, err := primitive.ObjectIDFromHex(c.Param("companyId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid company ID",
		})
	}

	file, err := c.FormFile("logo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "No file uploaded",
		})
	}

	logoPath, thumbPath, err := utils.SaveCompanyLogo(file)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	result, err := cc.db.Collection("companies").UpdateOne(
		ctx,
		bson.M{"_id": companyID},
		bson.M{"$set": bson.M{"logo": logoPath, "logoThumb": thumbPath, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save logo path",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Company not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Logo uploaded successfully",
		Data:    map[string]string{"logo": logoPath, "logoThumb": thumbPath},
	})
}

// AddJob creates a job posting under a company
func (cc *CompanyController) AddJob(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	companyID, err := primitive.ObjectIDFromHex(c.Param("companyId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid company ID",
		})
	}

	var req models.JobRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Job title is required",
		})
	}

	now := time.Now()
	job := models.Job{
		ID:           primitive.NewObjectID(),
		Title:        utils.SanitizeInput(req.Title),
		Department:   utils.SanitizeInput(req.Department),
		Location:     utils.SanitizeInput(req.Location),
		Type:         req.Type,
		Salary:       utils.SanitizeInput(req.Salary),
		Experience:   req.Experience,
		Description:  req.Description,
		Requirements: req.Requirements,
		Skills:       req.Skills,
		PostedDate:   now,
		Deadline:     req.Deadline,
		Status:       req.Status,
		CompanyID:    companyID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if job.Type == "" {
		job.Type = models.JobTypeFullTime
	}
	if job.Experience == "" {
		job.Experience = "Entry Level"
	}
	if job.Status == "" {
		job.Status = models.JobStatusActive
	}
	if job.Requirements == nil {
		job.Requirements = []string{}
	}
	if job.Skills == nil {
		job.Skills = []string{}
	}

	if _, err := cc.db.Collection("jobs").InsertOne(ctx, job); err != nil {
		cc.logger.Printf("Failed to create job for company %s: %v", companyID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create job",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Job created",
		Data:    job,
	})
}

// GetJobs lists a company's job postings
func (cc *CompanyController) GetJobs(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	companyID, err := primitive.ObjectIDFromHex(c.Param("companyId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid company ID",
		})
	}

	cursor, err := cc.db.Collection("jobs").Find(ctx, bson.M{"company": companyID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve jobs",
		})
	}

	jobs := []models.Job{}
	if err := cursor.All(ctx, &jobs); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode jobs",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Jobs retrieved",
		Data:    jobs,
	})
}

// DeleteJob removes a job posting
func (cc *CompanyController) DeleteJob(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jobID, err := primitive.ObjectIDFromHex(c.Param("jobId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid job ID",
		})
	}

	result, err := cc.db.Collection("jobs").DeleteOne(ctx, bson.M{"_id": jobID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete job",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Job not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Job deleted successfully",
	})
}

// GetApplicants returns the student profiles that applied to a job
func (cc *CompanyController) GetApplicants(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jobID, err := primitive.ObjectIDFromHex(c.Param("jobId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid job ID",
		})
	}

	var job models.Job
	err = cc.db.Collection("jobs").FindOne(ctx, bson.M{"_id": jobID}).Decode(&job)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Job not found",
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve job",
		})
	}

	applicants := []models.Student{}
	if len(job.Applicants) > 0 {
		cursor, err := cc.db.Collection("students").Find(ctx, bson.M{"_id": bson.M{"$in": job.Applicants}})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to retrieve applicants",
			})
		}
		if err := cursor.All(ctx, &applicants); err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to decode applicants",
			})
		}
		for i := range applicants {
			applicants[i].Password = ""
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Applicants retrieved",
		Data:    applicants,
	})
}
