package v1

import (
	"net/http"

	"github.com/taskhive/backend/internal/domain"
	"github.com/taskhive/backend/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initAuthRoutes(v1 *gin.RouterGroup) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/verify-email", h.verifyEmail)
		auth.POST("/regenerate-otp", h.regenerateOTP)
		auth.POST("/login", h.login)
		auth.POST("/password-reset-request", h.passwordResetRequest)
		auth.POST("/password-reset-confirm", h.passwordResetConfirm)
		auth.DELETE("/delete-all-users", h.userIdentityMiddleware, h.requirePermissions(isAdmin), h.deleteAllUsers)
	}
}

type registerRequest struct {
	Username    string `json:"username" binding:"required,min=2,max=255"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=64"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,phonenumber"`
	AccountType string `json:"account_type" binding:"omitempty,oneof=user tasksmith"`
}

// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param input body registerRequest true "account info"
// @Success 201 {object} response
// @Failure 400 {object} validationErrorsResponse
// @Failure 409 {object} response
// @Router /api/v1/auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationResponse(c, err)
		return
	}

	user, err := h.services.Users.SignUp(c.Request.Context(), service.SignUpInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		AccountType: domain.AccountType(req.AccountType),
	})
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusCreated, "registration successful, a verification code was sent to your email", newUserResponse(user))
}

type verifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,otp"`
}

// @Summary Verify email with an OTP code
// @Tags auth
// @Accept json
// @Produce json
// @Param input body verifyEmailRequest true "email and code"
// @Success 200 {object} response
// @Failure 400 {object} response
// @Failure 404 {object} response
// @Router /api/v1/auth/verify-email [post]
func (h *Handler) verifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationResponse(c, err)
		return
	}

	if err := h.services.Users.VerifyEmail(c.Request.Context(), req.Email, req.OTP); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "email verified successfully", nil)
}

type regenerateOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// @Summary Send a fresh verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param input body regenerateOTPRequest true "account email"
// @Success 200 {object} response
// @Failure 404 {object} response
// @Failure 409 {object} response
// @Router /api/v1/auth/regenerate-otp [post]
func (h *Handler) regenerateOTP(c *gin.Context) {
	var req regenerateOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationResponse(c, err)
		return
	}

	if err := h.services.Users.RegenerateOTP(c.Request.Context(), req.Email); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "a new verification code was sent to your email", nil)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "credentials"
// @Success 200 {object} response
// @Failure 401 {object} response
// @Failure 404 {object} response
// @Router /api/v1/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationResponse(c, err)
		return
	}

	tokens, user, err := h.services.Users.SignIn(c.Request.Context(), service.SignInInput{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IP:        c.ClientIP(),
	})
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "login successful", gin.H{
		"user": newUserResponse(user),
		"tokens": tokenResponse{
			AccessToken:           tokens.AccessToken,
			AccessTokenExpiresIn:  int64(tokens.AccessTTL.Seconds()),
			RefreshToken:          tokens.RefreshToken.String(),
			RefreshTokenExpiresIn: int64(tokens.RefreshTTL.Seconds()),
		},
	})
}

type passwordResetRequestRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// @Summary Request a password reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param input body passwordResetRequestRequest true "account email"
// @Success 200 {object} response
// @Failure 404 {object} response
// @Router /api/v1/auth/password-reset-request [post]
func (h *Handler) passwordResetRequest(c *gin.Context) {
	var req passwordResetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationResponse(c, err)
		return
	}

	if err := h.services.Users.PasswordResetRequest(c.Request.Context(), req.Email); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "a password reset code was sent to your email", nil)
}

type passwordResetConfirmRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,otp"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=64"`
}

// @Summary Confirm a password reset with an OTP code
// @Tags auth
// @Accept json
// @Produce json
// @Param input body passwordResetConfirmRequest true "email, code and new password"
// @Success 200 {object} response
// @Failure 400 {object} response
// @Failure 404 {object} response
// @Router /api/v1/auth/password-reset-confirm [post]
func (h *Handler) passwordResetConfirm(c *gin.Context) {
	var req passwordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationResponse(c, err)
		return
	}

	if err := h.services.Users.PasswordResetConfirm(c.Request.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "password reset successful", nil)
}

// @Summary Delete every user account
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response
// @Failure 401 {object} response
// @Failure 403 {object} response
// @Router /api/v1/auth/delete-all-users [delete]
func (h *Handler) deleteAllUsers(c *gin.Context) {
	deleted, err := h.services.Users.DeleteAllUsers(c.Request.Context())
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "all users deleted", gin.H{"deleted": deleted})
}
