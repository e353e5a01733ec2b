package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"warbler/api/auth"
	"warbler/api/models"
	"warbler/api/security"

	"github.com/gin-gonic/gin"
)

// ErrAuthenticationFailed is the sentinel outcome for a login attempt with an
// unknown username or a wrong password. It is a normal, reportable result,
// never distinguished between the two cases.
var ErrAuthenticationFailed = errors.New("incorrect details")

// Login authenticates with username and password and opens a session.
func (server *Server) Login(c *gin.Context) {

	//clear previous error if any
	errList = map[string]string{}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Unable to get request",
		})
		return
	}
	user := models.User{}
	err = json.Unmarshal(body, &user)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}
	user.Prepare()
	errorMessages := user.Validate("login")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	loggedUser, err := server.SignIn(user.Username, user.Password)
	if err != nil {
		errList["Incorrect_details"] = "Incorrect Details"
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	sid, err := server.Sessions.Create(c.Request.Context(), loggedUser.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Could not open session",
		})
		return
	}
	setSessionCookie(c, sid)

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userToResponse(loggedUser),
	})
}

// SignIn looks the user up by username and verifies the password against the
// stored hash. Both an unknown user and a wrong password yield the same
// failure sentinel.
func (server *Server) SignIn(username, password string) (*models.User, error) {
	user := models.User{}

	err := server.DB.Model(models.User{}).
		Where("username = ?", strings.ToLower(username)).
		Take(&user).Error
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	if err := security.VerifyPassword(user.Password, password); err != nil {
		return nil, ErrAuthenticationFailed
	}
	return &user, nil
}

// Logout closes the session, if any, and expires the cookie.
func (server *Server) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(auth.SessionCookie); err == nil && cookie != "" {
		_ = server.Sessions.Delete(c.Request.Context(), cookie)
	}
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Logged out",
	})
}

func setSessionCookie(c *gin.Context, sid string) {
	c.SetCookie(auth.SessionCookie, sid, int(auth.SessionTTL.Seconds()), "/", "", false, true)
}
