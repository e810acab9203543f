package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pmihealth/cardiology-api/internal/models"
	"github.com/pmihealth/cardiology-api/internal/repository"
	"github.com/pmihealth/cardiology-api/internal/utils"
	"github.com/pmihealth/cardiology-api/internal/validation"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AddressRequest struct {
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

type SignupRequest struct {
	FirstName   string         `json:"firstName" binding:"required"`
	LastName    string         `json:"lastName" binding:"required"`
	Email       string         `json:"email" binding:"required,email"`
	Phone       string         `json:"phone" binding:"required"`
	CountryCode string         `json:"countryCode" binding:"required"`
	DateOfBirth string         `json:"dateOfBirth" binding:"required,isodate"`
	Gender      string         `json:"gender" binding:"required,oneof=male female other prefer-not-to-say"`
	Address     AddressRequest `json:"address" binding:"required"`
}

// Login authenticates the admin. The singleton admin record is bootstrapped
// lazily on the first login: a user holding the reserved admin email is
// promoted, otherwise a default admin is inserted. Both paths run as one
// atomic upsert.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validation.RespondViolations(c, err)
		return
	}

	ctx := c.Request.Context()
	admin, err := h.Users.FindAdmin(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		admin, err = h.bootstrapAdmin(c)
		if err != nil {
			h.serverError(c, "Failed to create admin user", err)
			return
		}
	} else if err != nil {
		h.serverError(c, "Server error during login", err)
		return
	}

	if req.Username != h.Cfg.AdminUsername || !utils.CheckPasswordHash(req.Password, admin.Password) {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid admin credentials")
		return
	}

	token, err := h.Tokens.Generate(admin.ID.Hex())
	if err != nil {
		h.serverError(c, "Could not generate token", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Admin login successful", gin.H{
		"token": token,
		"user":  admin.Summary(),
	})
}

func (h *Handler) bootstrapAdmin(c *gin.Context) (*models.User, error) {
	hashed, err := utils.HashPassword(h.Cfg.AdminPassword)
	if err != nil {
		return nil, err
	}
	defaults := &models.User{
		FirstName:   "PMI",
		LastName:    "Admin",
		Email:       h.Cfg.AdminEmail,
		Phone:       "+973 12345678",
		CountryCode: "+973",
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:      "male",
		Password:    hashed,
	}
	return h.Users.PromoteOrCreateAdmin(c.Request.Context(), defaults)
}

// Signup registers a website user. Registrants must be at least 18 and the
// email must not already be taken.
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validation.RespondViolations(c, err)
		return
	}

	dob, err := validation.ParseISODate(req.DateOfBirth)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Please enter a valid date of birth")
		return
	}
	if ageAt(dob, time.Now()) < 18 {
		utils.JSONError(c, http.StatusBadRequest, "You must be at least 18 years old to register")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	ctx := c.Request.Context()

	if _, err := h.Users.FindByEmail(ctx, email); err == nil {
		utils.JSONError(c, http.StatusBadRequest, "User with this email already exists")
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		h.serverError(c, "Server error during registration", err)
		return
	}

	user := &models.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       email,
		Phone:       req.Phone,
		CountryCode: req.CountryCode,
		DateOfBirth: dob,
		Gender:      req.Gender,
		Address: models.Address{
			Street:     req.Address.Street,
			City:       req.Address.City,
			State:      req.Address.State,
			PostalCode: req.Address.PostalCode,
			Country:    req.Address.Country,
		},
		Role:       models.RoleUser,
		Status:     models.StatusRegistered,
		SignupTime: time.Now().UTC(),
	}

	if err := h.Users.Create(ctx, user); err != nil {
		// The unique index is the backstop for racing signups; translate
		// the conflict into the same clean 400 the pre-check produces.
		if mongo.IsDuplicateKeyError(err) {
			utils.JSONError(c, http.StatusBadRequest, "User with this email already exists")
			return
		}
		h.serverError(c, "Server error during registration", err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, "User registered successfully", gin.H{
		"user": user,
	})
}

// ageAt computes full years between birth and now, day-accurate.
func ageAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// Verify validates a bearer token and returns its principal. Works for both
// admin and user tokens.
func (h *Handler) Verify(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := h.Tokens.Validate(token)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid token.")
		return
	}

	user, err := h.Users.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		utils.JSONError(c, http.StatusForbidden, "Access denied. User not found.")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Token is valid", gin.H{
		"userId": user.ID,
		"user":   user.Summary(),
	})
}
