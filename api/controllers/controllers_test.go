package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"warbler/api/auth"
	"warbler/api/controllers"
	"warbler/api/middlewares"
	"warbler/api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) (*controllers.Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Message{},
		&models.Like{},
		&models.ResetPassword{},
	))

	server := &controllers.Server{
		DB:       db,
		Sessions: auth.NewMemorySessions(),
	}

	router := gin.New()
	router.Use(middlewares.NoCacheMiddleware())
	server.RegisterRoutes(router)
	return server, router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == auth.SessionCookie && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

// signupUser registers a user and returns its id together with the session
// cookie opened by signup.
func signupUser(t *testing.T, router *gin.Engine, username, email, password string) (uint, *http.Cookie) {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/api/v1/users", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	id := uint(body["response"].(map[string]interface{})["id"].(float64))
	return id, sessionCookie(t, w)
}

func postMessage(t *testing.T, router *gin.Engine, cookie *http.Cookie, text string) uint {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/api/v1/messages", map[string]string{"text": text}, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	return uint(body["response"].(map[string]interface{})["id"].(float64))
}
