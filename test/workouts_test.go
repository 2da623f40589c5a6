//go:build integration_test || all_tests

package test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUsername() string {
	return strings.ToLower(gofakeit.FirstName()) + gofakeit.DigitN(6)
}

func (s *IntegrationTestSuite) TestAnonymousIsSentToLogin() {
	t := s.T()
	b := newBrowser(t)

	for _, path := range []string{"/", "/profile", "/download_csv", "/admin"} {
		resp, _ := b.get(path)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}

	resp, body := b.get("/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)
}

func (s *IntegrationTestSuite) TestBadLogin() {
	t := s.T()
	b := newBrowser(t)
	username := newUsername()
	b.register(username, "secret-pass")

	other := newBrowser(t)
	resp, body := other.post("/login", url.Values{"username": {username}, "password": {"wrong-pass"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid username or password")

	resp, body = other.post("/login", url.Values{"username": {"nobody-" + username}, "password": {"wrong-pass"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid username or password")

	// duplicate registration is shown inline
	resp, body = other.post("/register", url.Values{
		"username": {username}, "email": {"other-" + username + "@example.com"},
		"password": {"secret-pass"}, "confirm_password": {"secret-pass"},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.NotEmpty(t, body)
}

func (s *IntegrationTestSuite) TestWorkoutFlow() {
	t := s.T()
	b := newBrowser(t)
	username := newUsername()
	b.register(username, "secret-pass")

	// no workout without a session
	resp, _ := b.post("/submit", url.Values{
		"muscle_group": {"Chest"}, "exercise": {"Bench Press"},
		"set_1_reps": {"5"}, "set_1_weight": {"60"},
	})
	body := b.follow(resp, "/")
	assert.Contains(t, body, "Please start a session first.")

	resp, _ = b.post("/start_session", nil)
	body = b.follow(resp, "/")
	assert.Contains(t, body, "Session started.")
	assert.Contains(t, body, "Session in progress since")

	resp, _ = b.post("/start_session", nil)
	body = b.follow(resp, "/")
	assert.Contains(t, body, "A session is already in progress.")

	resp, _ = b.post("/submit", url.Values{
		"muscle_group": {"Chest"}, "exercise": {"Bench Press"},
		"set_1_reps": {"5"}, "set_1_weight": {"50"},
		"set_2_reps": {"0"}, "set_2_weight": {"0"},
		"set_3_reps": {"3"}, "set_3_weight": {"40"},
	})
	body = b.follow(resp, "/?submitted=1")
	assert.Contains(t, body, "Bench Press")
	assert.Contains(t, body, "#1: 5 x 50 kg")
	assert.Contains(t, body, "#3: 3 x 40 kg")

	resp, _ = b.post("/submit", url.Values{"muscle_group": {"Core"}, "exercise": {"Plank"}})
	b.follow(resp, "/?submitted=1")

	resp, _ = b.post("/end_session", nil)
	body = b.follow(resp, "/")
	assert.Contains(t, body, "Session ended after")
	assert.NotContains(t, body, "Session in progress since")

	resp, body = b.get("/exercises/Legs")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var exercises struct {
		Exercises []string `json:"exercises"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &exercises))
	assert.Contains(t, exercises.Exercises, "Squats")

	resp, body = b.get("/download_csv")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="workouts.csv"`, resp.Header.Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Date,Time,Muscle Group,Exercise,Set Number,Reps,Weight (kg)", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ",Core,Plank,,,"), lines[1])
	assert.True(t, strings.HasSuffix(lines[2], ",Chest,Bench Press,1,5,50"), lines[2])
	assert.True(t, strings.HasSuffix(lines[3], ",Chest,Bench Press,3,3,40"), lines[3])

	resp, body = b.get("/profile")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Chest")

	// non admins never reach the admin pages
	resp, _ = b.get("/admin")
	body = b.follow(resp, "/")
	assert.Contains(t, body, "Access denied")

	resp, _ = b.get("/logout")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp, _ = b.get("/")
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}
