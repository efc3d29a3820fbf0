package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fleet_booking/internal/config"
	"fleet_booking/internal/middleware"
	"fleet_booking/internal/models"
	"fleet_booking/internal/workflow"
)

// Login verifies credentials and returns a session token plus the user
// profile. Failures stay deliberately vague so the endpoint does not reveal
// which accounts exist.
func Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, workflow.Validation(err.Error()))
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			unauthorized(c)
		} else {
			respondError(c, workflow.Internal("database error during login: "+err.Error()))
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		unauthorized(c)
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		respondError(c, workflow.Internal("could not generate token"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// VerifyToken resolves the bearer token (already validated by RequireAuth)
// to the current user profile.
func VerifyToken(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// CreateUser registers an account (admin only). Self-service signup is not
// offered; accounts are provisioned by an administrator.
func CreateUser(c *gin.Context) {
	var input struct {
		Name       string `json:"name" binding:"required"`
		Email      string `json:"email" binding:"required,email"`
		Password   string `json:"password" binding:"required,min=8"`
		Role       string `json:"role"`
		Department string `json:"department"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, workflow.Validation(err.Error()))
		return
	}

	if input.Role == "" {
		input.Role = models.RoleEmployee
	}
	if !models.ValidRole(input.Role) {
		respondError(c, workflow.Validation("invalid role"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, workflow.Internal("could not hash password"))
		return
	}

	user := models.User{
		Name:       input.Name,
		Email:      input.Email,
		Password:   string(hashed),
		Role:       input.Role,
		Department: input.Department,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(c, workflow.Conflict("email already in use"))
			return
		}
		respondError(c, workflow.Internal("could not create user: "+err.Error()))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// ListUsers returns a page of user accounts (admin only).
func ListUsers(c *gin.Context) {
	params, err := parsePageParams(c)
	if err != nil {
		respondError(c, err)
		return
	}

	q := config.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, workflow.Internal("could not count users: "+err.Error()))
		return
	}

	var users []models.User
	if err := q.Order("id").Offset(params.offset()).Limit(params.Limit).Find(&users).Error; err != nil {
		respondError(c, workflow.Internal("could not list users: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      users,
		"pagination": newPaginationMeta(params, total),
	})
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error":   string(workflow.KindUnauthorized),
		"message": "invalid email or password",
	})
}

// currentUser loads the full user record behind the token claims. Handlers
// that only need the role can read it straight from the context instead.
func currentUser(c *gin.Context) (*models.User, error) {
	idIfc, exists := c.Get("user_id")
	if !exists {
		return nil, &workflow.Error{Kind: workflow.KindUnauthorized, Message: "not authenticated"}
	}
	idF, ok := idIfc.(float64) // JWT numeric claims decode as float64
	if !ok {
		return nil, &workflow.Error{Kind: workflow.KindUnauthorized, Message: "invalid token claims"}
	}

	var user models.User
	if err := config.DB.First(&user, uint(idF)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &workflow.Error{Kind: workflow.KindUnauthorized, Message: "user no longer exists"}
		}
		return nil, workflow.Internal("could not load user: " + err.Error())
	}
	return &user, nil
}
