package auth

import (
	"errors"
	"fmt"
	"net/http"

	cartControllers "github.com/Mamba6389/Kassua-marketplace/controllers/cart"
	"github.com/Mamba6389/Kassua-marketplace/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	GuestID  string `json:"guest_id"` // optional: anonymous cart to promote
}

type LoginInput struct {
	Login    string `json:"login" binding:"required"` // username or email
	Password string `json:"password" binding:"required"`
	GuestID  string `json:"guest_id"`
}

// Register creates an account after checking that neither the username nor
// the email is taken.
func Register(db *gorm.DB, input RegisterInput) (*models.User, error) {
	var count int64
	if err := db.Model(&models.User{}).
		Where("username = ? OR email = ?", input.Username, input.Email).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("%w: check account: %v", models.ErrPersistence, err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: %s / %s", models.ErrDuplicateAccount, input.Username, input.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("%w: create user: %v", models.ErrPersistence, err)
	}
	return &user, nil
}

// Authenticate matches a username or email against its password.
func Authenticate(db *gorm.DB, login, password string) (*models.User, error) {
	var user models.User
	err := db.Where("username = ? OR email = ?", login, login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: account %s", models.ErrNotFound, login)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetch user: %v", models.ErrPersistence, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: account %s", models.ErrNotFound, login)
	}
	return &user, nil
}

// POST /auth/register
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user, err := Register(db, input)
		if err != nil {
			if errors.Is(err, models.ErrDuplicateAccount) {
				c.JSON(http.StatusConflict, gin.H{"error": "Username or email already registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Registration logs the user straight in, so an anonymous cart is
		// promoted here exactly as it is at login.
		if input.GuestID != "" {
			if err := cartControllers.MergeCarts(db, input.GuestID, user.Username); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}

		token, err := IssueToken(user.Username, "user")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
	}
}

// POST /auth/login
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user, err := Authenticate(db, input.Login, input.Password)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if input.GuestID != "" {
			if err := cartControllers.MergeCarts(db, input.GuestID, user.Username); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}

		token, err := IssueToken(user.Username, "user")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}
