package controllers_test

import (
	"net/http"
	"testing"

	"evolv/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedQuiz(t *testing.T, db *gorm.DB, profession string) *models.Quiz {
	t.Helper()
	quiz := &models.Quiz{
		Profession: profession,
		Questions: models.QuestionList{
			{
				Question:    "Which layer caches query plans?",
				Options:     []string{"parser", "planner", "executor", "storage"},
				Answer:      "planner",
				Explanation: "Plans are cached after planning.",
			},
		},
		Leaderboard: models.ScoreMap{},
	}
	require.NoError(t, db.Create(quiz).Error)
	return quiz
}

func TestGetQuizByProfession(t *testing.T) {
	app, db := newTestApp(t, nil)
	seedQuiz(t, db, "engineer")

	resp := doJSON(t, app, http.MethodPost, "/api/quizzes/", map[string]string{
		"profession": "  Engineer ",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var quiz models.Quiz
	decodeBody(t, resp, &quiz)
	assert.Equal(t, "engineer", quiz.Profession)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "planner", quiz.Questions[0].Answer)
}

func TestGetQuizByProfessionMissing(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp := doJSON(t, app, http.MethodPost, "/api/quizzes/", map[string]string{
		"profession": "astronaut",
	})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestSubmitScoreKeepsHighest(t *testing.T) {
	app, db := newTestApp(t, nil)
	seedQuiz(t, db, "engineer")

	submit := func(score int) models.ScoreMap {
		resp := doJSON(t, app, http.MethodPost, "/api/quizzes/score", map[string]interface{}{
			"username":   "alice",
			"profession": "engineer",
			"score":      score,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var board models.ScoreMap
		decodeBody(t, resp, &board)
		return board
	}

	assert.Equal(t, models.ScoreMap{"alice": 70}, submit(70))
	// Lower score never overwrites.
	assert.Equal(t, models.ScoreMap{"alice": 70}, submit(40))
	assert.Equal(t, models.ScoreMap{"alice": 90}, submit(90))
}

func TestSubmitScoreUnknownQuiz(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp := doJSON(t, app, http.MethodPost, "/api/quizzes/score", map[string]interface{}{
		"username":   "alice",
		"profession": "astronaut",
		"score":      80,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Quiz not found", readBody(t, resp))
}

func TestSubmitScoreValidation(t *testing.T) {
	app, db := newTestApp(t, nil)
	seedQuiz(t, db, "engineer")

	resp := doJSON(t, app, http.MethodPost, "/api/quizzes/score", map[string]interface{}{
		"username":   "",
		"profession": "engineer",
		"score":      80,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/quizzes/score", map[string]interface{}{
		"username":   "alice",
		"profession": "engineer",
		"score":      -5,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetLeaderboard(t *testing.T) {
	app, db := newTestApp(t, nil)
	quiz := seedQuiz(t, db, "engineer")
	quiz.UpdateLeaderboard("alice", 85)
	require.NoError(t, db.Save(quiz).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/quizzes/leaderboard?profession=Engineer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var board models.ScoreMap
	decodeBody(t, resp, &board)
	assert.Equal(t, models.ScoreMap{"alice": 85}, board)

	resp = doJSON(t, app, http.MethodGet, "/api/quizzes/leaderboard?profession=astronaut", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
