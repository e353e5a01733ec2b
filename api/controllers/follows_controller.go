package controllers

import (
	"errors"
	"net/http"

	"warbler/api/models"
	"warbler/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FollowUser adds a follow edge from the authenticated user to the target.
// Following someone already followed is not an error.
func (server *Server) FollowUser(c *gin.Context) {
	actorID, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	target, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if actorID == target.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}

	follow := models.Follow{
		FollowerID: actorID,
		FollowedID: target.ID,
	}
	created, err := follow.SaveFollow(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error following user"})
		return
	}

	status := http.StatusOK
	message := "Already following user"
	if created {
		status = http.StatusCreated
		message = "User followed successfully"
	}
	c.JSON(status, gin.H{"status": status, "response": message})
}

// UnfollowUser removes the edge if present; unfollowing twice is a no-op.
func (server *Server) UnfollowUser(c *gin.Context) {
	actorID, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	target, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if actorID == target.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot unfollow yourself"})
		return
	}

	follow := models.Follow{
		FollowerID: actorID,
		FollowedID: target.ID,
	}
	if _, err := follow.DeleteFollow(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error unfollowing user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": "User unfollowed successfully"})
}

// GetFollowers lists the users following the target.
func (server *Server) GetFollowers(c *gin.Context) {
	target, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading user"})
		return
	}

	follow := models.Follow{}
	users, err := follow.FindFollowers(server.DB, target.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching followers"})
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

// GetFollowing lists the users the target follows.
func (server *Server) GetFollowing(c *gin.Context) {
	target, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading user"})
		return
	}

	follow := models.Follow{}
	users, err := follow.FindFollowing(server.DB, target.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching following"})
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

// GetRelationship reports the follow flags between the authenticated user and
// a target user.
func (server *Server) GetRelationship(c *gin.Context) {
	actorID, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	target, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if actorID == target.ID {
		c.JSON(http.StatusOK, gin.H{
			"following":   false,
			"followed_by": false,
			"mutual":      false,
		})
		return
	}

	var rel struct {
		Following  bool `json:"following"`
		FollowedBy bool `json:"followed_by"`
	}
	if err := server.DB.Raw(
		`SELECT
			EXISTS(SELECT 1 FROM follows WHERE follower_id = ? AND followed_id = ?) AS following,
			EXISTS(SELECT 1 FROM follows WHERE follower_id = ? AND followed_id = ?) AS followed_by`,
		actorID, target.ID, target.ID, actorID,
	).Scan(&rel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking relationship"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"following":   rel.Following,
		"followed_by": rel.FollowedBy,
		"mutual":      rel.Following && rel.FollowedBy,
	})
}
