// models/company.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Company model
type Company struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	Password     string             `json:"password,omitempty" bson:"password"`
	Role         string             `json:"role" bson:"role"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Website      string             `json:"website,omitempty" bson:"website,omitempty"`
	Location     string             `json:"location,omitempty" bson:"location,omitempty"`
	FoundingYear string             `json:"foundingYear,omitempty" bson:"foundingYear,omitempty"`
	CompanySize  string             `json:"companySize,omitempty" bson:"companySize,omitempty"`
	Industry     string             `json:"industry,omitempty" bson:"industry,omitempty"`
	Bio          string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Mission      string             `json:"mission,omitempty" bson:"mission,omitempty"`
	Values       []string           `json:"values,omitempty" bson:"values,omitempty"`
	Benefits     []string           `json:"benefits,omitempty" bson:"benefits,omitempty"`
	Logo         string             `json:"logo,omitempty" bson:"logo,omitempty"`
	LogoThumb    string             `json:"logoThumb,omitempty" bson:"logoThumb,omitempty"`
	CreatedAt    time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt    time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// CompanyProfileUpdate carries the editable company profile fields
type CompanyProfileUpdate struct {
	Name         string   `json:"name,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Website      string   `json:"website,omitempty"`
	Location     string   `json:"location,omitempty"`
	FoundingYear string   `json:"foundingYear,omitempty"`
	CompanySize  string   `json:"companySize,omitempty"`
	Industry     string   `json:"industry,omitempty"`
	Bio          string   `json:"bio,omitempty"`
	Mission      string   `json:"mission,omitempty"`
	Values       []string `json:"values,omitempty"`
	Benefits     []string `json:"benefits,omitempty"`
}
