package v1

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/taskhive/backend/internal/domain"
	"github.com/taskhive/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) initProfileRoutes(v1 *gin.RouterGroup) {
	profile := v1.Group("/profile", h.userIdentityMiddleware)
	{
		profile.GET("/get-profile", h.getProfile)
		profile.PATCH("/edit-profile/:user_id", h.editProfile)
		profile.POST("/change-password", h.changePassword)
	}
}

type userResponse struct {
	ID            uuid.UUID            `json:"id"`
	Username      string               `json:"username"`
	Email         string               `json:"email"`
	PhoneNumber   *string              `json:"phone_number"`
	AccountType   domain.AccountType   `json:"account_type"`
	IsVerified    bool                 `json:"is_verified"`
	IsActive      bool                 `json:"is_active"`
	FullName      *string              `json:"full_name"`
	FirstName     *string              `json:"first_name"`
	LastName      *string              `json:"last_name"`
	Bio           *string              `json:"bio"`
	Location      *string              `json:"location"`
	Country       *string              `json:"country"`
	State         *string              `json:"state"`
	PostalCode    *string              `json:"postal_code"`
	Image         *string              `json:"image"`
	Website       *string              `json:"website"`
	Company       *string              `json:"company"`
	IsPaid        bool                 `json:"is_paid"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	WalletBalance float64              `json:"wallet_balance"`
	Specialties   []string             `json:"specialties"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func newUserResponse(user *domain.User) userResponse {
	specialties := make([]string, 0, len(user.Specialties))
	for _, specialty := range user.Specialties {
		specialties = append(specialties, specialty.Name)
	}

	return userResponse{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		PhoneNumber:   nullableString(user.PhoneNumber),
		AccountType:   user.AccountType,
		IsVerified:    user.IsVerified,
		IsActive:      user.IsActive,
		FullName:      nullableString(user.FullName),
		FirstName:     nullableString(user.FirstName),
		LastName:      nullableString(user.LastName),
		Bio:           nullableString(user.Bio),
		Location:      nullableString(user.Location),
		Country:       nullableString(user.Country),
		State:         nullableString(user.State),
		PostalCode:    nullableString(user.PostalCode),
		Image:         nullableString(user.Image),
		Website:       nullableString(user.Website),
		Company:       nullableString(user.Company),
		IsPaid:        user.IsPaid,
		PaymentStatus: user.PaymentStatus,
		WalletBalance: user.WalletBalance,
		Specialties:   specialties,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

func nullableString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	s := value.String
	return &s
}

// @Summary Get the authenticated user's profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response
// @Failure 401 {object} response
// @Router /api/v1/profile/get-profile [get]
func (h *Handler) getProfile(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	profile, err := h.services.Profiles.Get(c.Request.Context(), user.ID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "profile retrieved", newUserResponse(profile))
}

type editProfileRequest struct {
	Username    *string   `json:"username" form:"username" binding:"omitempty,min=2,max=255"`
	FullName    *string   `json:"full_name" form:"full_name" binding:"omitempty,max=255"`
	FirstName   *string   `json:"first_name" form:"first_name" binding:"omitempty,max=150"`
	LastName    *string   `json:"last_name" form:"last_name" binding:"omitempty,max=150"`
	PhoneNumber *string   `json:"phone_number" form:"phone_number" binding:"omitempty,phonenumber"`
	Bio         *string   `json:"bio" form:"bio" binding:"omitempty,max=1000"`
	Location    *string   `json:"location" form:"location" binding:"omitempty,max=100"`
	Country     *string   `json:"country" form:"country" binding:"omitempty,max=100"`
	State       *string   `json:"state" form:"state" binding:"omitempty,max=100"`
	PostalCode  *string   `json:"postal_code" form:"postal_code" binding:"omitempty,max=20"`
	Website     *string   `json:"website" form:"website" binding:"omitempty,url,max=255"`
	Company     *string   `json:"company" form:"company" binding:"omitempty,max=255"`
	Specialties *[]string `json:"specialties" form:"specialties" binding:"omitempty,dive,min=1,max=100"`
}

// @Summary Edit a user profile
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Accept mpfd
// @Produce json
// @Param user_id path string true "user id"
// @Param input body editProfileRequest true "fields to change"
// @Success 200 {object} response
// @Failure 400 {object} validationErrorsResponse
// @Failure 403 {object} response
// @Router /api/v1/profile/edit-profile/{user_id} [patch]
func (h *Handler) editProfile(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	targetID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid user id")
		return
	}

	var req editProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		validationResponse(c, err)
		return
	}

	input := service.UpdateProfileInput{
		Username:    req.Username,
		FullName:    req.FullName,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Bio:         req.Bio,
		Location:    req.Location,
		Country:     req.Country,
		State:       req.State,
		PostalCode:  req.PostalCode,
		Website:     req.Website,
		Company:     req.Company,
		Specialties: req.Specialties,
	}

	// The image arrives only on multipart requests. A JSON body simply has
	// no file part.
	if fileHeader, err := c.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "cannot read uploaded image")
			return
		}
		defer file.Close()

		input.ImageFileName = fileHeader.Filename
		input.Image = file
	}

	updated, err := h.services.Profiles.Update(c.Request.Context(), user, targetID, input)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "profile updated successfully", newUserResponse(updated))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=64"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// @Summary Change the authenticated user's password
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body changePasswordRequest true "current and new password"
// @Success 200 {object} response
// @Failure 400 {object} response
// @Failure 401 {object} response
// @Router /api/v1/profile/change-password [post]
func (h *Handler) changePassword(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationResponse(c, err)
		return
	}

	if err := h.services.Profiles.ChangePassword(c.Request.Context(), user, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "password changed successfully", nil)
}
