package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/homecare-scheduler/internal/middleware"
	"github.com/harentsoaR/homecare-scheduler/internal/models"
	"github.com/harentsoaR/homecare-scheduler/internal/store"
	"github.com/harentsoaR/homecare-scheduler/internal/utils"
)

type RegisterUserRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterUser creates a coordinator account. A coordinator leads a team of
// their own; viewers are added by a coordinator through AddViewer.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := primitive.NewObjectID()
	h.createUser(c, req, models.RoleCoordinator, id, id.Hex())
}

// AddViewer creates a read-only account on the caller's team.
func (h *Handler) AddViewer(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.createUser(c, req, models.RoleViewer, primitive.NewObjectID(), teamOf(c)) {
		h.record(c, "team.viewer.add", strings.ToLower(req.Email))
	}
}

// createUser answers the request and reports whether the account was stored.
func (h *Handler) createUser(c *gin.Context, req RegisterUserRequest, role string, id primitive.ObjectID, teamID string) bool {
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("register: hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return false
	}

	user := models.User{
		ID:       id,
		FullName: req.FullName,
		Email:    strings.ToLower(req.Email),
		Password: hashedPassword,
		Role:     role,
		TeamID:   teamID,
	}
	if err := h.Users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
			return false
		}
		log.Error().Err(err).Msg("register: create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return false
	}
	log.Info().Str("user_id", user.ID.Hex()).Str("role", role).Str("team_id", teamID).Msg("user registered")

	c.JSON(http.StatusCreated, user)
	return true
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.Users.FindByEmail(c.Request.Context(), strings.ToLower(req.Email))
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Error().Err(err).Msg("login: find user")
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role, user.Team())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// GetCurrentUser returns the profile of the authenticated user.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	user, err := h.Users.FindByID(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Error().Err(err).Msg("profile: find user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateCurrentUser lets a user change their own display name.
func (h *Handler) UpdateCurrentUser(c *gin.Context) {
	var req struct {
		FullName string `json:"fullName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	req.FullName = strings.TrimSpace(req.FullName)
	if req.FullName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No update fields provided"})
		return
	}

	err := h.Users.UpdateFullName(c.Request.Context(), c.GetString(middleware.UserIDKey), req.FullName)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Error().Err(err).Msg("profile: update user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
