// models/job.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Job posting types
const (
	JobTypeFullTime   = "Full-time"
	JobTypePartTime   = "Part-time"
	JobTypeInternship = "Internship"
	JobTypeContract   = "Contract"
)

// Job posting statuses
const (
	JobStatusActive = "active"
	JobStatusDraft  = "draft"
	JobStatusClosed = "closed"
)

// Job model. Applicants holds the IDs of students who applied.
type Job struct {
	ID           primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Title        string               `json:"title" bson:"title"`
	Department   string               `json:"department,omitempty" bson:"department,omitempty"`
	Location     string               `json:"location,omitempty" bson:"location,omitempty"`
	Type         string               `json:"type" bson:"type"`
	Salary       string               `json:"salary,omitempty" bson:"salary,omitempty"`
	Experience   string               `json:"experience" bson:"experience"`
	Description  string               `json:"description,omitempty" bson:"description,omitempty"`
	Requirements []string             `json:"requirements" bson:"requirements"`
	Skills       []string             `json:"skills" bson:"skills"`
	PostedDate   time.Time            `json:"postedDate" bson:"postedDate"`
	Deadline     *time.Time           `json:"deadline,omitempty" bson:"deadline,omitempty"`
	Status       string               `json:"status" bson:"status"`
	Applicants   []primitive.ObjectID `json:"applicants,omitempty" bson:"applicants,omitempty"`
	CompanyID    primitive.ObjectID   `json:"company" bson:"company"`
	CreatedAt    time.Time            `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt    time.Time            `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// JobRequest is the payload for creating a job posting
type JobRequest struct {
	Title        string     `json:"title" validate:"required"`
	Department   string     `json:"department"`
	Location     string     `json:"location"`
	Type         string     `json:"type"`
	Salary       string     `json:"salary"`
	Experience   string     `json:"experience"`
	Description  string     `json:"description"`
	Requirements []string   `json:"requirements"`
	Skills       []string   `json:"skills"`
	Deadline     *time.Time `json:"deadline"`
	Status       string     `json:"status"`
}
