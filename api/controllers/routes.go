package controllers

import (
	"warbler/api/middlewares"

	"github.com/gin-gonic/gin"
)

func (s *Server) initializeRoutes() {
	authRequired := middlewares.SessionAuthMiddleware(s.DB, s.Sessions)

	v1 := s.Router.Group("/api/v1")
	{
		// Auth routes
		v1.POST("/login", s.Login)
		v1.POST("/logout", s.Logout)
		v1.POST("/password/forgot", s.ForgotPassword)
		v1.POST("/password/reset", s.ResetPassword)

		// Users routes
		v1.POST("/users", s.CreateUser)
		v1.GET("/users", s.GetUsers)
		v1.GET("/users/:id", s.GetUser)
		v1.PUT("/users/:id", authRequired, s.UpdateProfile)
		v1.DELETE("/users/:id", authRequired, s.DeleteUser)

		// Follow routes
		v1.POST("/users/:id/follow", authRequired, s.FollowUser)
		v1.DELETE("/users/:id/follow", authRequired, s.UnfollowUser)
		v1.GET("/users/:id/followers", s.GetFollowers)
		v1.GET("/users/:id/following", s.GetFollowing)
		v1.GET("/users/:id/relationship", authRequired, s.GetRelationship)

		// Message routes
		v1.POST("/messages", authRequired, s.CreateMessage)
		v1.GET("/messages/:id", s.GetMessage)
		v1.DELETE("/messages/:id", authRequired, s.DeleteMessage)
		v1.GET("/users/:id/messages", s.GetUserMessages)
		v1.GET("/feed", authRequired, s.GetFeed)

		// Like routes
		v1.POST("/messages/:id/like", authRequired, s.ToggleLike)
		v1.GET("/users/:id/likes", s.GetUserLikes)
	}
}

// RegisterRoutes wires all routes onto the given engine; used by tests that
// build their own router.
func (s *Server) RegisterRoutes(router *gin.Engine) {
	s.Router = router
	s.initializeRoutes()
}
