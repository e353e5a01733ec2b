package controllers

import (
	"net/http"

	"warbler/api/auth"
	"warbler/api/models"
	"warbler/api/security"
	"warbler/api/utils/formaterror"
	"warbler/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// userToResponse strips the password hash from outbound user payloads.
func userToResponse(user *models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":               user.ID,
		"username":         user.Username,
		"email":            user.Email,
		"image_url":        user.ImageURL,
		"header_image_url": user.HeaderImageURL,
		"bio":              user.Bio,
		"location":         user.Location,
		"created_at":       user.CreatedAt,
		"updated_at":       user.UpdatedAt,
	}
}

// CreateUser handles signup. A duplicate username or email leaves the table
// unchanged and is reported as a user-facing message. On success the new user
// is logged in immediately.
func (server *Server) CreateUser(c *gin.Context) {
	var user models.User

	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user.Prepare()
	errorMessages := user.Validate("")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	userCreated, err := user.SaveUser(server.DB)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  formattedError,
		})
		return
	}

	sid, err := server.Sessions.Create(c.Request.Context(), userCreated.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not open session",
		})
		return
	}
	setSessionCookie(c, sid)

	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": userToResponse(userCreated),
	})
}

// GetUsers lists users; a "q" query parameter narrows by case-insensitive
// username substring.
func (server *Server) GetUsers(c *gin.Context) {
	user := models.User{}

	var users *[]models.User
	var err error
	if q := c.Query("q"); q != "" {
		users, err = user.SearchUsers(server.DB, q)
	} else {
		users, err = user.FindAllUsers(server.DB)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No users found"})
		return
	}

	userResponses := make([]map[string]interface{}, len(*users))
	for i := range *users {
		userResponses[i] = userToResponse(&(*users)[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userResponses,
	})
}

// GetUser retrieves a user by ID or username.
func (server *Server) GetUser(c *gin.Context) {
	userGotten, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userToResponse(userGotten),
	})
}

type profileEditRequest struct {
	Bio            string `json:"bio"`
	Location       string `json:"location"`
	HeaderImageURL string `json:"header_image_url"`
	ImageURL       string `json:"image_url"`
	Email          string `json:"email"`
	NewUsername    string `json:"new_username"`
	Password       string `json:"password"`
}

// UpdateProfile lets a user edit their own profile. Applying the edit requires
// re-authentication by password.
func (server *Server) UpdateProfile(c *gin.Context) {
	target, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	actorID, ok := httpctx.CurrentUserID(c)
	if !ok || actorID != target.ID {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	var req profileEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot parse request body"})
		return
	}

	formerUser := models.User{}
	if err := server.DB.Model(&models.User{}).Where("id = ?", actorID).Take(&formerUser).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := security.VerifyPassword(formerUser.Password, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	newUser := models.User{
		Username:       req.NewUsername,
		Email:          req.Email,
		Bio:            req.Bio,
		Location:       req.Location,
		ImageURL:       req.ImageURL,
		HeaderImageURL: req.HeaderImageURL,
	}
	if newUser.Username == "" {
		newUser.Username = formerUser.Username
	}
	if newUser.Email == "" {
		newUser.Email = formerUser.Email
	}
	newUser.Prepare()
	errorMessages := newUser.Validate("update")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	updatedUser, err := newUser.UpdateProfile(server.DB, actorID)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  formattedError,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userToResponse(updatedUser),
	})
}

// DeleteUser removes the actor's own account along with their messages, likes,
// and follow edges in both directions, in one transaction.
func (server *Server) DeleteUser(c *gin.Context) {
	target, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	actorID, ok := httpctx.CurrentUserID(c)
	if !ok || actorID != target.ID {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	err = server.DB.Transaction(func(tx *gorm.DB) error {
		like := models.Like{}
		if _, err := like.DeleteLikesOnUserMessages(tx, actorID); err != nil {
			return err
		}
		if _, err := like.DeleteUserLikes(tx, actorID); err != nil {
			return err
		}
		message := models.Message{}
		if _, err := message.DeleteUserMessages(tx, actorID); err != nil {
			return err
		}
		follow := models.Follow{}
		if _, err := follow.DeleteUserFollows(tx, actorID); err != nil {
			return err
		}
		user := models.User{}
		if _, err := user.DeleteAUser(tx, actorID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again later"})
		return
	}

	if cookie, err := c.Cookie(auth.SessionCookie); err == nil && cookie != "" {
		_ = server.Sessions.Delete(c.Request.Context(), cookie)
	}
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "User deleted",
	})
}
