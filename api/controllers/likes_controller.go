package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"warbler/api/models"
	"warbler/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ToggleLike records a like on a message for the authenticated user, or
// removes it if one already exists: like, like again, and the message has
// zero likes from that user.
func (server *Server) ToggleLike(c *gin.Context) {
	actorID, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	mid, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	// The liked message must exist.
	message := models.Message{}
	if err := server.DB.Model(models.Message{}).Where("id = ?", uint(mid)).Take(&message).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	like := models.Like{
		UserID:    actorID,
		MessageID: message.ID,
	}
	liked, err := like.ToggleLike(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again later"})
		return
	}

	if liked {
		c.JSON(http.StatusCreated, gin.H{
			"status":   http.StatusCreated,
			"response": like,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Like removed",
	})
}

// GetUserLikes lists the messages a user has liked.
func (server *Server) GetUserLikes(c *gin.Context) {
	target, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading user"})
		return
	}

	like := models.Like{}
	messages, err := like.FindUserLikes(server.DB, target.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching likes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": messages,
	})
}
