// controllers/student_controller.go
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

// StudentController handles student profiles, resumes and job search
type StudentController struct {
	db     *mongo.Database
	logger *log.Logger
}

// NewStudentController creates a new student controller
func NewStudentController(db *mongo.Database) *StudentController {
	return &StudentController{
		db:     db,
		logger: log.New(os.Stdout, "[STUDENT] ", log.LstdFlags),
	}
}

// GetProfile returns a student profile without the password hash
func (sc *StudentController) GetProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	studentID, err := primitive.ObjectIDFromHex(c.Param("studentId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid student ID",
		})
	}

	var student models.Student
	err = sc.db.Collection("students").FindOne(ctx, bson.M{"_id": studentID}).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Student not found",
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve student",
		})
	}

	student.Password = ""
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Student profile retrieved",
		Data:    student,
	})
}

// UpdateProfile updates the editable profile fields, including the
// education and certificate arrays.
func (sc *StudentController) UpdateProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	studentID, err := primitive.ObjectIDFromHex(c.Param("studentId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid student ID",
		})
	}

	var req models.StudentProfileUpdate
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
	if req.Headline != "" {
		update["headline"] = utils.SanitizeInput(req.Headline)
	}
	if req.Bio != "" {
		update["bio"] = utils.SanitizeInput(req.Bio)
	}
	if req.Skills != nil {
		update["skills"] = utils.SanitizeStringArray(req.Skills)
	}
	if req.Education != nil {
		update["education"] = req.Education
	}
	if req.Certificates != nil {
		update["certificates"] = req.Certificates
	}

	result, err := sc.db.Collection("students").UpdateOne(
		ctx,
		bson.M{"_id": studentID},
		bson.M{"$set": update},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update profile",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Student not found",
		})
	}

	var student models.Student
	if err := sc.db.Collection("students").FindOne(ctx, bson.M{"_id": studentID}).Decode(&student); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve updated profile",
		})
	}
	student.Password = ""

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Profile updated",
		Data:    student,
	})
}

// UploadResume stores an uploaded resume file and records its path on
// the student document.
func (sc *StudentController) UploadResume(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	studentID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid student ID",
		})
	}

	count, err := sc.db.Collection("students").CountDocuments(ctx, bson.M{"_id": studentID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve student",
		})
	}
	if count == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "No file uploaded",
		})
	}

	path, err := utils.SaveResumeFile(file)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	_, err = sc.db.Collection("students").UpdateOne(
		ctx,
		bson.M{"_id": studentID},
		bson.M{"$set": bson.M{"resume": path, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save resume path",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Resume uploaded successfully",
		Data:    map[string]string{"path": path},
	})
}

// SearchJobs lists active job postings from all companies
func (sc *StudentController) SearchJobs(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := sc.db.Collection("jobs").Find(ctx, bson.M{"status": models.JobStatusActive})
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

// ApplyToJob adds the authenticated student to a job's applicant list.
// Applying twice is a no-op.
func (sc *StudentController) ApplyToJob(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jobID, err := primitive.ObjectIDFromHex(c.Param("jobId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid job ID",
		})
	}

	studentID, err := utils.GetAccountIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	result, err := sc.db.Collection("jobs").UpdateOne(
		ctx,
		bson.M{"_id": jobID, "status": models.JobStatusActive},
		bson.M{
			"$addToSet": bson.M{"applicants": studentID},
			"$set":      bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to submit application",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Job not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Application submitted",
	})
}

// GetApplications lists the jobs a student has applied to
func (sc *StudentController) GetApplications(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	studentID, err := primitive.ObjectIDFromHex(c.Param("studentId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid student ID",
		})
	}

	cursor, err := sc.db.Collection("jobs").Find(ctx, bson.M{"applicants": studentID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve applications",
		})
	}

	jobs := []models.Job{}
	if err := cursor.All(ctx, &jobs); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode applications",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Applications retrieved",
		Data:    jobs,
	})
}
