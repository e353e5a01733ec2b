package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"warbler/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndDuplicates(t *testing.T) {
	server, router := newTestServer(t)

	signupUser(t, router, "ana", "ana@example.com", "password123")

	var count int64
	require.NoError(t, server.DB.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Same username, different email.
	w := doRequest(t, router, http.MethodPost, "/api/v1/users", map[string]string{
		"username": "ana",
		"email":    "other@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Username Already Taken")

	// Same email, different username.
	w = doRequest(t, router, http.MethodPost, "/api/v1/users", map[string]string{
		"username": "notana",
		"email":    "ana@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Email Already Taken")

	// Neither attempt created a row.
	require.NoError(t, server.DB.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSignupValidation(t *testing.T) {
	_, router := newTestServer(t)

	cases := []map[string]string{
		{"username": "", "email": "a@example.com", "password": "password123"},
		{"username": "ana", "email": "", "password": "password123"},
		{"username": "ana", "email": "not-an-email", "password": "password123"},
		{"username": "ana", "email": "a@example.com", "password": "short"},
	}
	for _, payload := range cases {
		w := doRequest(t, router, http.MethodPost, "/api/v1/users", payload)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	}
}

func TestLogin(t *testing.T) {
	_, router := newTestServer(t)

	signupUser(t, router, "ana", "ana@example.com", "password123")

	// Correct credentials.
	w := doRequest(t, router, http.MethodPost, "/api/v1/login", map[string]string{
		"username": "ana",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)
	assert.NotEmpty(t, cookie.Value)

	// Every invalid combination yields the same failure, never a user.
	for _, payload := range []map[string]string{
		{"username": "ana", "password": "wrongpassword"},
		{"username": "nobody", "password": "password123"},
		{"username": "nobody", "password": "wrongpassword"},
	} {
		w := doRequest(t, router, http.MethodPost, "/api/v1/login", payload)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "Incorrect Details")
	}
}

func TestLogoutEndsSession(t *testing.T) {
	_, router := newTestServer(t)

	_, cookie := signupUser(t, router, "ana", "ana@example.com", "password123")

	w := doRequest(t, router, http.MethodPost, "/api/v1/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// The old cookie no longer authenticates.
	w = doRequest(t, router, http.MethodGet, "/api/v1/feed", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfileRequiresPassword(t *testing.T) {
	_, router := newTestServer(t)

	anaID, cookie := signupUser(t, router, "ana", "ana@example.com", "password123")

	// Wrong password: rejected.
	w := doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", anaID), map[string]string{
		"bio":      "chirp",
		"password": "wrongpassword",
	}, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Correct password: applied.
	w = doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", anaID), map[string]string{
		"bio":      "chirp",
		"location": "the treetops",
		"password": "password123",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	response := body["response"].(map[string]interface{})
	assert.Equal(t, "chirp", response["bio"])
	assert.Equal(t, "the treetops", response["location"])
}

func TestUpdateProfileOnlySelf(t *testing.T) {
	_, router := newTestServer(t)

	_, anaCookie := signupUser(t, router, "ana", "ana@example.com", "password123")
	boID, _ := signupUser(t, router, "bo", "bo@example.com", "password123")

	w := doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", boID), map[string]string{
		"bio":      "hijacked",
		"password": "password123",
	}, anaCookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteUserCascades(t *testing.T) {
	server, router := newTestServer(t)

	anaID, anaCookie := signupUser(t, router, "ana", "ana@example.com", "password123")
	boID, boCookie := signupUser(t, router, "bo", "bo@example.com", "password123")

	anaMsg := postMessage(t, router, anaCookie, "ana's warble")
	boMsg := postMessage(t, router, boCookie, "bo's warble")

	// Edges in both directions, likes in both directions.
	doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", boID), nil, anaCookie)
	doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", anaID), nil, boCookie)
	doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/messages/%d/like", boMsg), nil, anaCookie)
	doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/messages/%d/like", anaMsg), nil, boCookie)

	w := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", anaID), nil, anaCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	require.NoError(t, server.DB.Model(&models.Message{}).Where("author_id = ?", anaID).Count(&count).Error)
	assert.Equal(t, int64(0), count, "ana's messages should be gone")

	require.NoError(t, server.DB.Model(&models.Follow{}).
		Where("follower_id = ? OR followed_id = ?", anaID, anaID).Count(&count).Error)
	assert.Equal(t, int64(0), count, "edges in both directions should be gone")

	require.NoError(t, server.DB.Model(&models.Like{}).Where("user_id = ?", anaID).Count(&count).Error)
	assert.Equal(t, int64(0), count, "ana's likes should be gone")

	require.NoError(t, server.DB.Model(&models.Like{}).Where("message_id = ?", anaMsg).Count(&count).Error)
	assert.Equal(t, int64(0), count, "likes on ana's messages should be gone")

	// bo is untouched.
	require.NoError(t, server.DB.Model(&models.Message{}).Where("author_id = ?", boID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The deleted account is treated as logged out on the next request.
	w = doRequest(t, router, http.MethodGet, "/api/v1/feed", nil, anaCookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSearchUsers(t *testing.T) {
	_, router := newTestServer(t)

	signupUser(t, router, "warblerfan", "fan@example.com", "password123")
	signupUser(t, router, "birdwatcher", "bird@example.com", "password123")

	w := doRequest(t, router, http.MethodGet, "/api/v1/users?q=ARBLER", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	results := body["response"].([]interface{})
	require.Len(t, results, 1)
	assert.Equal(t, "warblerfan", results[0].(map[string]interface{})["username"])
}

func TestGetUserNotFound(t *testing.T) {
	_, router := newTestServer(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/users/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
