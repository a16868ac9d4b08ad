package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/kaushik360/counsy/internal"
	"github.com/kaushik360/counsy/internal/advisor"
	"github.com/kaushik360/counsy/internal/api"
	"github.com/kaushik360/counsy/internal/storage"
)

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	repos, err := storage.NewFileRepositories(t.TempDir(), internal.NopLogger{})
	assert.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	r := gin.New()
	api.RegisterRoutes(r, api.NewApp(internal.NopLogger{}, repos, advisor.NewLocalAdvisor()))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	}
	return w, parsed
}

func register(t *testing.T, r *gin.Engine) {
	t.Helper()
	w, _ := doJSON(t, r, "POST", "/api/auth/register",
		`{"name":"Alex Doe","email":"a@x.com","username":"alex","password":"pw12"}`)
	assert.Equal(t, 200, w.Code)
}

func TestRegisterAndDuplicates(t *testing.T) {
	r := setupRouter(t)
	register(t, r)

	// Case-different email is still a duplicate.
	w, body := doJSON(t, r, "POST", "/api/auth/register",
		`{"name":"Other","email":"A@X.COM","username":"other","password":"pw12"}`)
	assert.Equal(t, 409, w.Code)
	assert.NotNil(t, body["error"])

	// Same for username.
	w, _ = doJSON(t, r, "POST", "/api/auth/register",
		`{"name":"Other","email":"b@x.com","username":"ALEX","password":"pw12"}`)
	assert.Equal(t, 409, w.Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	r := setupRouter(t)

	w, _ := doJSON(t, r, "GET", "/api/me", "")
	assert.Equal(t, 401, w.Code)

	register(t, r)
	w, body := doJSON(t, r, "GET", "/api/me", "")
	assert.Equal(t, 200, w.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "alex", data["username"])
	_, hasPassword := data["password"]
	assert.False(t, hasPassword, "password never leaves the API")

	w, _ = doJSON(t, r, "POST", "/api/auth/logout", "")
	assert.Equal(t, 200, w.Code)
	w, _ = doJSON(t, r, "GET", "/api/me", "")
	assert.Equal(t, 401, w.Code)
}

func TestLoginFlow(t *testing.T) {
	r := setupRouter(t)
	register(t, r)
	doJSON(t, r, "POST", "/api/auth/logout", "")

	w, _ := doJSON(t, r, "POST", "/api/auth/login", `{"identifier":"Alex","password":"pw12"}`)
	assert.Equal(t, 200, w.Code)

	doJSON(t, r, "POST", "/api/auth/logout", "")
	w, _ = doJSON(t, r, "POST", "/api/auth/login", `{"identifier":"alex","password":"nope"}`)
	assert.Equal(t, 401, w.Code)
}

func TestUsernameAvailable(t *testing.T) {
	r := setupRouter(t)
	register(t, r)

	w, body := doJSON(t, r, "GET", "/api/auth/username-available?username=taylor", "")
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, true, body["meta"].(map[string]any)["available"])

	w, body = doJSON(t, r, "GET", "/api/auth/username-available?username=ALEX", "")
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, false, body["meta"].(map[string]any)["available"])

	w, _ = doJSON(t, r, "GET", "/api/auth/username-available", "")
	assert.Equal(t, 400, w.Code)
}

func TestMoodCheckIn(t *testing.T) {
	r := setupRouter(t)
	register(t, r)

	w, body := doJSON(t, r, "POST", "/api/moods", `{"mood":"Anxious","note":"exam week"}`)
	assert.Equal(t, 200, w.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Anxious", data["mood"])
	assert.NotEmpty(t, data["aiInsight"])
	streaks := body["meta"].(map[string]any)["streaks"].(map[string]any)
	assert.Equal(t, float64(1), streaks["moodStreak"])
	assert.Equal(t, float64(1), streaks["currentStreak"])

	// Invalid label is rejected before anything persists.
	w, _ = doJSON(t, r, "POST", "/api/moods", `{"mood":"Grumpy"}`)
	assert.Equal(t, 400, w.Code)

	w, body = doJSON(t, r, "GET", "/api/moods", "")
	assert.Equal(t, 200, w.Code)
	assert.Len(t, body["data"].([]any), 1)
}

func TestJournalFlow(t *testing.T) {
	r := setupRouter(t)
	register(t, r)

	w, body := doJSON(t, r, "POST", "/api/journals",
		`{"content":"Got through the reading list.","tags":["study"],"mood":"Focused","isLocked":true}`)
	assert.Equal(t, 200, w.Code)
	data := body["data"].(map[string]any)
	analysis := data["aiAnalysis"].(map[string]any)
	assert.NotEmpty(t, analysis["moodSummary"])
	assert.NotEmpty(t, analysis["recommendations"])

	w, _ = doJSON(t, r, "POST", "/api/journals", `{"tags":["study"]}`)
	assert.Equal(t, 400, w.Code)
}

func TestChatDoesNotFeedStreaks(t *testing.T) {
	r := setupRouter(t)
	register(t, r)

	w, body := doJSON(t, r, "POST", "/api/chat", `{"text":"hello"}`)
	assert.Equal(t, 200, w.Code)
	reply := body["data"].(map[string]any)
	assert.Equal(t, "model", reply["role"])
	assert.NotEmpty(t, reply["text"])

	w, body = doJSON(t, r, "GET", "/api/streaks", "")
	assert.Equal(t, 200, w.Code)
	streaks := body["data"].(map[string]any)
	assert.Equal(t, float64(0), streaks["currentStreak"])

	w, body = doJSON(t, r, "GET", "/api/chat", "")
	assert.Equal(t, 200, w.Code)
	assert.Len(t, body["data"].([]any), 2)

	w, _ = doJSON(t, r, "DELETE", "/api/chat", "")
	assert.Equal(t, 200, w.Code)
	w, body = doJSON(t, r, "GET", "/api/chat", "")
	assert.Equal(t, 200, w.Code)
	assert.Empty(t, body["data"])
}

func TestFocusComplete(t *testing.T) {
	r := setupRouter(t)
	register(t, r)

	w, body := doJSON(t, r, "POST", "/api/focus/complete", "")
	assert.Equal(t, 200, w.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["focusStreak"])
	assert.Equal(t, float64(1), data["currentStreak"])

	achievements := data["achievements"].([]any)
	assert.Contains(t, achievements, internal.AchievementCalmStarter)

	// Same-day repeat is idempotent.
	w, body = doJSON(t, r, "POST", "/api/focus/complete", "")
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, float64(1), body["data"].(map[string]any)["focusStreak"])
}

func TestUpdateProfile(t *testing.T) {
	r := setupRouter(t)
	register(t, r)

	w, body := doJSON(t, r, "PUT", "/api/me", `{"name":"Alexandra Doe","avatarUrl":"https://example.com/a.png"}`)
	assert.Equal(t, 200, w.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Alexandra Doe", data["name"])
	assert.Equal(t, "a@x.com", data["email"])

	w, _ = doJSON(t, r, "PUT", "/api/me", `{"avatarUrl":"https://example.com/a.png"}`)
	assert.Equal(t, 400, w.Code)
}
