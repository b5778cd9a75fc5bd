package controllers_test

import (
	"net/http"
	"testing"

	"evolv/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedChallengeHTTP(t *testing.T, app *fiber.App, owner, text, duration string) models.Challenge {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/challenges/add", map[string]string{
		"username":  owner,
		"challenge": text,
		"duration":  duration,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ch models.Challenge
	decodeBody(t, resp, &ch)
	require.NotEmpty(t, ch.ID)
	return ch
}

func TestAddChallengeForcesDefaults(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp := doJSON(t, app, http.MethodPost, "/api/challenges/add", map[string]interface{}{
		"username":  "alice",
		"challenge": "meditate daily",
		"duration":  "2 weeks",
		"applause":  99,
		"completed": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ch models.Challenge
	decodeBody(t, resp, &ch)
	assert.Equal(t, 0, ch.Applause)
	assert.False(t, ch.Completed)
	assert.NotNil(t, ch.ApplaudedBy)
	assert.Empty(t, ch.ApplaudedBy)
	assert.False(t, ch.CreatedAt.IsZero())
}

func TestAddChallengeValidation(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp := doJSON(t, app, http.MethodPost, "/api/challenges/add", map[string]string{
		"username": "alice",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "username, challenge and duration are required", readBody(t, resp))
}

func TestApplauseLifecycle(t *testing.T) {
	app, _ := newTestApp(t, nil)
	seedChallengeHTTP(t, app, "alice", "meditate daily", "2 weeks")

	applaud := func(user string) *http.Response {
		return doJSON(t, app, http.MethodPut, "/api/challenges/applause", map[string]string{
			"username":      user,
			"usernameOwner": "alice",
			"challenge":     "meditate daily",
		})
	}

	resp := applaud("bob")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Applause updated", readBody(t, resp))

	resp = applaud("bob")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "You have already applauded this challenge", readBody(t, resp))

	resp = applaud("alice")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Cannot applaud your own challenge", readBody(t, resp))

	// hasApplauded reflects the requesting user, not a stored column.
	resp = doJSON(t, app, http.MethodPost, "/api/challenges/", map[string]string{"username": "bob"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []models.Challenge
	decodeBody(t, resp, &all)
	require.Len(t, all, 1)
	assert.True(t, all[0].HasApplauded)
	assert.Equal(t, 1, all[0].Applause)

	resp = doJSON(t, app, http.MethodPost, "/api/challenges/", map[string]string{"username": "carol"})
	decodeBody(t, resp, &all)
	assert.False(t, all[0].HasApplauded)
}

func TestApplauseUnknownChallenge(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp := doJSON(t, app, http.MethodPut, "/api/challenges/applause", map[string]string{
		"username":      "bob",
		"usernameOwner": "alice",
		"challenge":     "does not exist",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Challenge not found", readBody(t, resp))
}

func TestIsChallengeActive(t *testing.T) {
	app, _ := newTestApp(t, nil)
	seedChallengeHTTP(t, app, "alice", "meditate daily", "2 weeks")

	resp := doJSON(t, app, http.MethodPost, "/api/challenges/active", map[string]string{"username": "alice"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]bool
	decodeBody(t, resp, &body)
	assert.True(t, body["active"])

	resp = doJSON(t, app, http.MethodPost, "/api/challenges/active", map[string]string{"username": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.False(t, body["active"])
}

func TestUploadProofAndProgress(t *testing.T) {
	app, db := newTestApp(t, nil)
	ch := seedChallengeHTTP(t, app, "alice", "meditate daily", "2 weeks")

	resp := doJSON(t, app, http.MethodPost, "/api/challenges/"+ch.ID+"/uploadProof",
		map[string]string{"imageUrl": "https://img.example/proof.jpg"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Proof image URL added", readBody(t, resp))

	resp = doJSON(t, app, http.MethodPost, "/api/challenges/"+ch.ID+"/uploadProof",
		map[string]string{"imageUrl": "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/challenges/"+ch.ID+"/progress",
		map[string]string{"date": "2025-06-10", "report": "done"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Progress entry added", readBody(t, resp))

	resp = doJSON(t, app, http.MethodPost, "/api/challenges/"+ch.ID+"/progress",
		map[string]string{"date": "10/06/2025", "report": "done"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid date format, expected YYYY-MM-DD", readBody(t, resp))

	var stored models.Challenge
	require.NoError(t, db.Where("id = ?", ch.ID).First(&stored).Error)
	assert.Len(t, stored.ProofImageUrls, 1)
	assert.Len(t, stored.ProgressEntries, 1)
}

func TestGetCurrentStreakEndpoint(t *testing.T) {
	app, _ := newTestApp(t, nil)
	ch := seedChallengeHTTP(t, app, "alice", "meditate daily", "2 weeks")

	resp := doJSON(t, app, http.MethodPost, "/api/challenges/"+ch.ID+"/streak", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var streak struct {
		Streak  int `json:"streak"`
		Entries int `json:"entries"`
		Points  int `json:"points"`
	}
	decodeBody(t, resp, &streak)
	assert.Equal(t, 0, streak.Streak)
	assert.Equal(t, 0, streak.Entries)

	resp = doJSON(t, app, http.MethodPost, "/api/challenges/missing/streak", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMarkCompletedEndpoint(t *testing.T) {
	app, _ := newTestApp(t, nil)
	ch := seedChallengeHTTP(t, app, "alice", "meditate daily", "2 weeks")

	resp := doJSON(t, app, http.MethodPut, "/api/challenges/"+ch.ID+"/markCompleted", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Challenge marked completed", readBody(t, resp))

	resp = doJSON(t, app, http.MethodPut, "/api/challenges/"+ch.ID+"/markCompleted", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Challenge already completed", readBody(t, resp))
}
