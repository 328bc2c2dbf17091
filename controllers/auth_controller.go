// controllers/auth_controller.go
package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SuparBat/CampusConnect/middleware"
	"github.com/SuparBat/CampusConnect/models"
	"github.com/SuparBat/CampusConnect/repositories"
	"github.com/SuparBat/CampusConnect/services"
	"github.com/SuparBat/CampusConnect/utils"
)

const (
	tokenValidity      = 30 * 24 * time.Hour
	adminTokenValidity = 24 * time.Hour
)

// AuthController handles registration and login for all roles
type AuthController struct {
	dirs            *repositories.Directories
	registrationOTP *services.OTPService
	logger          *log.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(dirs *repositories.Directories, registrationOTP *services.OTPService) *AuthController {
	return &AuthController{
		dirs:            dirs,
		registrationOTP: registrationOTP,
		logger:          log.New(os.Stdout, "[AUTH] ", log.LstdFlags),
	}
}

// RequestOTP mails a registration verification code to the given email.
// The account does not exist yet, so there is nothing to look up; a
// repeated request simply replaces the pending code.
func (ac *AuthController) RequestOTP(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.RequestOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email is required",
		})
	}

	if err := ac.registrationOTP.RequestRegistration(ctx, req.Email); err != nil {
		ac.logger.Printf("Failed to send registration OTP to %s: %v", req.Email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Error sending OTP",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "OTP sent to email",
	})
}

// Register verifies the emailed code and creates an account in the
// role's directory. The code gates creation but duplicate emails are
// still rejected per directory.
func (ac *AuthController) Register(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid registration data",
		})
	}

	dir, err := ac.dirs.ForRole(req.Role)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid role",
		})
	}

	if err := ac.registrationOTP.Verify(ctx, req.Email, req.OTP); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNoPendingCode), errors.Is(err, services.ErrInvalidCode):
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid or expired OTP",
			})
		case errors.Is(err, services.ErrCodeExpired):
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "OTP expired. Please request a new one",
			})
		default:
			ac.logger.Printf("OTP verification failed for %s: %v", req.Email, err)
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to verify OTP",
			})
		}
	}

	// Duplicate check within the role's directory only; the same email
	// may exist under a different role
	if _, err := dir.FindByEmail(ctx, req.Email); err == nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "User already exists",
		})
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to check existing account",
		})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to hash password",
		})
	}

	account, err := dir.Create(ctx, &models.Account{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "User already exists",
			})
		}
		ac.logger.Printf("Failed to create %s account for %s: %v", req.Role, req.Email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create account",
		})
	}

	// Clear the code only after the account exists
	if err := ac.registrationOTP.Consume(ctx, req.Email); err != nil {
		ac.logger.Printf("Failed to clear registration OTP for %s: %v", req.Email, err)
	}

	token, err := middleware.GenerateJWT(account.ID.Hex(), account.Email, req.Role, tokenValidity)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"_id":   account.ID.Hex(),
		"name":  account.Name,
		"email": account.Email,
		"role":  req.Role,
		"token": token,
	})
}

// Login authenticates against the role's directory
func (ac *AuthController) Login(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	dir, err := ac.dirs.ForRole(req.Role)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid role",
		})
	}

	account, err := dir.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "User not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve account",
		})
	}

	if account.Password == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "No password set for this account",
		})
	}

	if !utils.CheckPasswordHash(req.Password, account.Password) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid password",
		})
	}

	validity := tokenValidity
	if req.Role == models.RoleAdmin {
		validity = adminTokenValidity
	}

	token, err := middleware.GenerateJWT(account.ID.Hex(), account.Email, req.Role, validity)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": echo.Map{
			"_id":   account.ID.Hex(),
			"name":  account.Name,
			"email": account.Email,
			"role":  req.Role,
			"token": token,
		},
	})
}
