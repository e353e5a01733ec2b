package controllers

import (
	"net/http"

	"warbler/api/mailer"
	"warbler/api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ForgotPassword emails a one-time reset link to the given address.
func (server *Server) ForgotPassword(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot parse request body"})
		return
	}

	user.Prepare()
	errorMessages := user.Validate("forgotpassword")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	err := server.DB.Model(models.User{}).Where("email = ?", user.Email).Take(&user).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sorry, no user found with that email"})
		return
	}

	resetPassword := models.ResetPassword{
		Email: user.Email,
		Token: uuid.New().String(),
	}
	resetPassword.Prepare()
	details, err := resetPassword.SaveDetails(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again later"})
		return
	}

	if err := mailer.SendResetPassword(details.Email, details.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not send the reset email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Success, please check your email",
	})
}

type resetPasswordRequest struct {
	Token          string `json:"token"`
	NewPassword    string `json:"new_password"`
	RetypePassword string `json:"retype_password"`
}

// ResetPassword consumes a reset token and updates the stored hash.
func (server *Server) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot parse request body"})
		return
	}

	if req.NewPassword == "" || req.RetypePassword == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Please fill in all fields"})
		return
	}
	if len(req.NewPassword) < 6 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Password should be at least 6 characters"})
		return
	}
	if req.NewPassword != req.RetypePassword {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Passwords do not match"})
		return
	}

	resetPassword := models.ResetPassword{}
	details, err := resetPassword.FindByToken(server.DB, req.Token)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid link, please try again"})
		return
	}

	user := models.User{
		Email:    details.Email,
		Password: req.NewPassword,
	}
	if err := user.UpdatePassword(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again later"})
		return
	}

	if _, err := details.DeleteDetails(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again later"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Password updated, please login",
	})
}
