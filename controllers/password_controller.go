// controllers/password_controller.go
package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SuparBat/CampusConnect/models"
	"github.com/SuparBat/CampusConnect/repositories"
	"github.com/SuparBat/CampusConnect/services"
)

// PasswordController handles the OTP password reset flow for one role.
// One instance exists per role, each bound to its own directory and OTP
// store.
type PasswordController struct {
	role   string
	dir    repositories.AccountDirectory
	otp    *services.OTPService
	logger *log.Logger
}

// NewPasswordController creates a password controller for a role
func NewPasswordController(role string, dir repositories.AccountDirectory, otp *services.OTPService) *PasswordController {
	return &PasswordController{
		role:   role,
		dir:    dir,
		otp:    otp,
		logger: log.New(os.Stdout, "[PASSWORD] ", log.LstdFlags),
	}
}

func (pc *PasswordController) notFoundMessage() string {
	switch pc.role {
	case models.RoleCompany:
		return "Company not found"
	case models.RoleAdmin:
		return "Admin not found"
	default:
		return "User not found"
	}
}

// ForgotPassword initiates the password reset process: generate a code
// for an existing account, store it and mail it. Repeating the request
// replaces the pending code.
func (pc *PasswordController) ForgotPassword(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.ForgotPasswordRequest
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

	if err := pc.otp.RequestReset(ctx, pc.dir, req.Email); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: pc.notFoundMessage(),
			})
		}
		pc.logger.Printf("Failed to send reset OTP to %s %s: %v", pc.role, req.Email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to send OTP email",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "OTP sent to your email",
	})
}

// ResetPassword completes the reset: verify the code, hash the new
// password, write it through the directory and consume the code.
func (pc *PasswordController) ResetPassword(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email, OTP and new password are required",
		})
	}
	if len(req.NewPassword) < 8 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Password must be at least 8 characters long",
		})
	}

	if err := pc.otp.ResetPassword(ctx, pc.dir, req.Email, req.OTP, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNoPendingCode):
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "No OTP found. Request again.",
			})
		case errors.Is(err, services.ErrCodeExpired):
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "OTP expired",
			})
		case errors.Is(err, services.ErrInvalidCode):
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid OTP",
			})
		case errors.Is(err, repositories.ErrNotFound):
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: pc.notFoundMessage(),
			})
		default:
			pc.logger.Printf("Failed to reset password for %s %s: %v", pc.role, req.Email, err)
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to update password",
			})
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Password reset successful. Please login again.",
	})
}
