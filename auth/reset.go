package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Mamba6389/Kassua-marketplace/mailer"
	"github.com/Mamba6389/Kassua-marketplace/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenLifetime = time.Hour

type ResetRequestInput struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetConfirmInput struct {
	Email    string `json:"email" binding:"required,email"`
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// GenerateResetToken issues a fresh one-hour token for the account behind
// the email, replacing any previous one.
func GenerateResetToken(db *gorm.DB, email string) (string, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("%w: account for %s", models.ErrNotFound, email)
	}
	if err != nil {
		return "", fmt.Errorf("%w: fetch user: %v", models.ErrPersistence, err)
	}

	token := uuid.NewString()
	expires := time.Now().Add(resetTokenLifetime)
	user.ResetToken = &token
	user.ResetExpires = &expires
	if err := db.Save(&user).Error; err != nil {
		return "", fmt.Errorf("%w: store token: %v", models.ErrPersistence, err)
	}
	return token, nil
}

// ResetPassword replaces the password when the token matches and has not
// expired yet; the token is accepted up to and including its expiry instant.
func ResetPassword(db *gorm.DB, email, token, newPassword string) error {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: account for %s", models.ErrNotFound, email)
	}
	if err != nil {
		return fmt.Errorf("%w: fetch user: %v", models.ErrPersistence, err)
	}

	if user.ResetToken == nil || *user.ResetToken != token ||
		user.ResetExpires == nil || user.ResetExpires.Before(time.Now()) {
		return models.ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.ResetToken = nil
	user.ResetExpires = nil
	if err := db.Save(&user).Error; err != nil {
		return fmt.Errorf("%w: store password: %v", models.ErrPersistence, err)
	}
	return nil
}

// POST /auth/reset-request
func ResetRequestHandler(db *gorm.DB, m *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ResetRequestInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		token, err := GenerateResetToken(db, input.Email)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "No account for this email"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if m.Enabled() {
			if err := m.SendResetToken(input.Email, token); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send reset email"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Reset token sent by email"})
			return
		}

		// No SMTP configured: hand the token back directly. Development
		// behavior only; production deployments configure the mailer.
		c.JSON(http.StatusOK, gin.H{
			"message": "Reset token generated",
			"token":   token,
		})
	}
}

// POST /auth/reset-confirm
func ResetConfirmHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ResetConfirmInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		err := ResetPassword(db, input.Email, input.Token, input.Password)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"message": "Password reset"})
		case errors.Is(err, models.ErrInvalidToken):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired reset token"})
		case errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No account for this email"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}
