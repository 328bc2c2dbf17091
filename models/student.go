// models/student.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Education is a single education history entry on a student profile
type Education struct {
	Institution string `json:"institution" bson:"institution"`
	Degree      string `json:"degree,omitempty" bson:"degree,omitempty"`
	Field       string `json:"field,omitempty" bson:"field,omitempty"`
	StartYear   string `json:"startYear,omitempty" bson:"startYear,omitempty"`
	EndYear     string `json:"endYear,omitempty" bson:"endYear,omitempty"`
	GPA         string `json:"gpa,omitempty" bson:"gpa,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Certificate is a professional certificate entry on a student profile
type Certificate struct {
	Name         string     `json:"name" bson:"name"`
	Issuer       string     `json:"issuer,omitempty" bson:"issuer,omitempty"`
	IssueDate    *time.Time `json:"issueDate,omitempty" bson:"issueDate,omitempty"`
	ExpiryDate   *time.Time `json:"expiryDate,omitempty" bson:"expiryDate,omitempty"`
	CredentialID string     `json:"credentialId,omitempty" bson:"credentialId,omitempty"`
	URL          string     `json:"url,omitempty" bson:"url,omitempty"`
	Description  string     `json:"description,omitempty" bson:"description,omitempty"`
}

// Student model
type Student struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	Password     string             `json:"password,omitempty" bson:"password"`
	Role         string             `json:"role" bson:"role"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Headline     string             `json:"headline,omitempty" bson:"headline,omitempty"`
	Bio          string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Skills       []string           `json:"skills,omitempty" bson:"skills,omitempty"`
	Resume       string             `json:"resume,omitempty" bson:"resume,omitempty"` // file path under uploads/
	Education    []Education        `json:"education,omitempty" bson:"education,omitempty"`
	Certificates []Certificate      `json:"certificates,omitempty" bson:"certificates,omitempty"`
	CreatedAt    time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt    time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// StudentProfileUpdate carries the fields a student may change about
// themselves. Email and password are managed by the auth flows only.
type StudentProfileUpdate struct {
	Name         string        `json:"name,omitempty"`
	Phone        string        `json:"phone,omitempty"`
	Headline     string        `json:"headline,omitempty"`
	Bio          string        `json:"bio,omitempty"`
	Skills       []string      `json:"skills,omitempty"`
	Education    []Education   `json:"education,omitempty"`
	Certificates []Certificate `json:"certificates,omitempty"`
}
