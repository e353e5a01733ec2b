package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"warbler/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeToggleRoundTrip(t *testing.T) {
	server, router := newTestServer(t)

	_, anaCookie := signupUser(t, router, "ana", "ana@example.com", "password123")
	_, boCookie := signupUser(t, router, "bo", "bo@example.com", "password123")
	msgID := postMessage(t, router, boCookie, "like me")

	// First like records the like.
	w := doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/messages/%d/like", msgID), nil, anaCookie)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var count int64
	require.NoError(t, server.DB.Model(&models.Like{}).Where("message_id = ?", msgID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Liking again removes it: the round trip leaves zero likes.
	w = doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/messages/%d/like", msgID), nil, anaCookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Like removed")

	require.NoError(t, server.DB.Model(&models.Like{}).Where("message_id = ?", msgID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestTwoUsersCanLikeSameMessage(t *testing.T) {
	server, router := newTestServer(t)

	_, anaCookie := signupUser(t, router, "ana", "ana@example.com", "password123")
	_, boCookie := signupUser(t, router, "bo", "bo@example.com", "password123")
	_, carlCookie := signupUser(t, router, "carl", "carl@example.com", "password123")
	msgID := postMessage(t, router, boCookie, "popular warble")

	w := doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/messages/%d/like", msgID), nil, anaCookie)
	assert.Equal(t, http.StatusCreated, w.Code)
	w = doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/messages/%d/like", msgID), nil, carlCookie)
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	require.NoError(t, server.DB.Model(&models.Like{}).Where("message_id = ?", msgID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestGetUserLikes(t *testing.T) {
	_, router := newTestServer(t)

	anaID, anaCookie := signupUser(t, router, "ana", "ana@example.com", "password123")
	_, boCookie := signupUser(t, router, "bo", "bo@example.com", "password123")

	first := postMessage(t, router, boCookie, "first")
	second := postMessage(t, router, boCookie, "second")

	doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/messages/%d/like", first), nil, anaCookie)
	doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/messages/%d/like", second), nil, anaCookie)

	w := doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/users/%d/likes", anaID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	liked := decodeBody(t, w)["response"].([]interface{})
	require.Len(t, liked, 2)
	// Newest message first.
	assert.Equal(t, "second", liked[0].(map[string]interface{})["text"])
	assert.Equal(t, "first", liked[1].(map[string]interface{})["text"])
}

func TestLikeUnknownMessage(t *testing.T) {
	_, router := newTestServer(t)

	_, anaCookie := signupUser(t, router, "ana", "ana@example.com", "password123")

	w := doRequest(t, router, http.MethodPost, "/api/v1/messages/999/like", nil, anaCookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikeRequiresAuthentication(t *testing.T) {
	_, router := newTestServer(t)

	_, boCookie := signupUser(t, router, "bo", "bo@example.com", "password123")
	msgID := postMessage(t, router, boCookie, "warble")

	w := doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/messages/%d/like", msgID), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
