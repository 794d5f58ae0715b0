package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"aiva/config"
	"aiva/routes"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	os.Setenv("SECRET_KEY", "test-secret")
}

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.AutoMigrate(db))

	router := gin.New()
	routes.SetupRoutes(router, db, nil)
	return router, db
}

// stubCompletion points the completion client at a local endpoint that
// always answers with the given reply.
func stubCompletion(t *testing.T, reply string) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": reply}},
			},
		})
		w.Write(body)
	}))
	t.Cleanup(server.Close)

	os.Setenv("COMPLETION_API_URL", server.URL)
	os.Setenv("COMPLETION_API_KEY", "test-key")
	t.Cleanup(func() {
		os.Unsetenv("COMPLETION_API_URL")
		os.Unsetenv("COMPLETION_API_KEY")
	})
}

func stubCompletionFailure(t *testing.T) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	os.Setenv("COMPLETION_API_URL", server.URL)
	os.Setenv("COMPLETION_API_KEY", "test-key")
	t.Cleanup(func() {
		os.Unsetenv("COMPLETION_API_URL")
		os.Unsetenv("COMPLETION_API_KEY")
	})
}

func doJSON(router *gin.Engine, method, path string, body interface{}, cookie string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router *gin.Engine, username, email string) string {
	t.Helper()

	w := doJSON(router, http.MethodPost, "/register", gin.H{
		"username": username,
		"email":    email,
		"password": "pw123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(router, http.MethodPost, "/login", gin.H{
		"username": username,
		"password": "pw123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	for _, c := range cookies {
		if c.Name == "access_token" {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("no access_token cookie set on login")
	return ""
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRegisterDuplicateReturns400(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(router, http.MethodPost, "/register", gin.H{
		"username": "alice", "email": "a@x.com", "password": "pw123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/register", gin.H{
		"username": "alice", "email": "other@x.com", "password": "pw123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w), "error")

	w = doJSON(router, http.MethodPost, "/register", gin.H{
		"username": "bob", "email": "a@x.com", "password": "pw123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRequiresJSON(t *testing.T) {
	router, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString("username=alice"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	router, _ := newTestServer(t)
	registerAndLogin(t, router, "alice", "a@x.com")

	w := doJSON(router, http.MethodPost, "/login", gin.H{
		"username": "alice", "password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(router, http.MethodGet, "/api/chats", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodGet, "/api/chats", nil, "access_token=garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChatTurnAndListing(t *testing.T) {
	stubCompletion(t, "I'm fine, thanks!")
	router, _ := newTestServer(t)
	cookie := registerAndLogin(t, router, "alice", "a@x.com")

	w := doJSON(router, http.MethodPost, "/api/chat", gin.H{
		"message": "Hello, how are you?",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "I'm fine, thanks!", body["reply"])
	chatID := body["chat_id"].(float64)
	assert.NotZero(t, chatID)

	// second turn lands in the same chat
	w = doJSON(router, http.MethodPost, "/api/chat", gin.H{
		"message": "Tell me more",
		"chat_id": chatID,
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/chats", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var chats []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chats))
	require.Len(t, chats, 1)
	assert.Equal(t, "Hello, how are you?...", chats[0]["title"])
	assert.Equal(t, "general", chats[0]["category"])
	assert.Equal(t, false, chats[0]["is_favorite"])
	assert.Contains(t, chats[0], "created_at")

	w = doJSON(router, http.MethodGet, fmt.Sprintf("/api/chat/%.0f", chatID), nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decodeBody(t, w)
	messages := detail["messages"].([]interface{})
	assert.Len(t, messages, 4)
}

func TestChatUpstreamFailureKeepsUserMessage(t *testing.T) {
	stubCompletionFailure(t)
	router, _ := newTestServer(t)
	cookie := registerAndLogin(t, router, "alice", "a@x.com")

	w := doJSON(router, http.MethodPost, "/api/chat", gin.H{
		"message": "anyone there?",
	}, cookie)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decodeBody(t, w), "error")

	w = doJSON(router, http.MethodGet, "/api/chats", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var chats []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chats))
	require.Len(t, chats, 1)

	chatID := chats[0]["id"].(float64)
	w = doJSON(router, http.MethodGet, fmt.Sprintf("/api/chat/%.0f", chatID), nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decodeBody(t, w)
	messages := detail["messages"].([]interface{})
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]interface{})
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "anyone there?", msg["content"])
}

func TestCrossUserAccessForbidden(t *testing.T) {
	stubCompletion(t, "hello alice")
	router, _ := newTestServer(t)
	aliceCookie := registerAndLogin(t, router, "alice", "a@x.com")
	bobCookie := registerAndLogin(t, router, "bob", "b@x.com")

	w := doJSON(router, http.MethodPost, "/api/chat", gin.H{"message": "secret"}, aliceCookie)
	require.Equal(t, http.StatusOK, w.Code)
	chatID := decodeBody(t, w)["chat_id"].(float64)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, fmt.Sprintf("/api/chat/%.0f", chatID)},
		{http.MethodPost, fmt.Sprintf("/api/chat/%.0f/favorite", chatID)},
		{http.MethodDelete, fmt.Sprintf("/api/chat/%.0f", chatID)},
	}
	for _, p := range paths {
		w := doJSON(router, p.method, p.path, nil, bobCookie)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", p.method, p.path)
		assert.Equal(t, "Unauthorized", decodeBody(t, w)["error"])
	}

	// the owner still has full access afterwards
	w = doJSON(router, http.MethodGet, fmt.Sprintf("/api/chat/%.0f", chatID), nil, aliceCookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFavoriteToggleAndDelete(t *testing.T) {
	stubCompletion(t, "ok")
	router, _ := newTestServer(t)
	cookie := registerAndLogin(t, router, "alice", "a@x.com")

	w := doJSON(router, http.MethodPost, "/api/chat", gin.H{"message": "keep this"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	chatID := decodeBody(t, w)["chat_id"].(float64)

	w = doJSON(router, http.MethodPost, fmt.Sprintf("/api/chat/%.0f/favorite", chatID), nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["is_favorite"])

	w = doJSON(router, http.MethodDelete, fmt.Sprintf("/api/chat/%.0f", chatID), nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeBody(t, w), "message")

	w = doJSON(router, http.MethodGet, fmt.Sprintf("/api/chat/%.0f", chatID), nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreferencesRoundTrip(t *testing.T) {
	router, _ := newTestServer(t)
	cookie := registerAndLogin(t, router, "alice", "a@x.com")

	w := doJSON(router, http.MethodGet, "/api/preferences", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	prefs := decodeBody(t, w)
	assert.Equal(t, "dark", prefs["theme"])
	assert.Equal(t, "en", prefs["language"])
	assert.Equal(t, "mistral-small", prefs["model_preference"])
	assert.Equal(t, false, prefs["voice_response"])
	assert.Equal(t, true, prefs["notification_enabled"])

	w = doJSON(router, http.MethodPut, "/api/preferences", gin.H{
		"theme":          "light",
		"voice_response": true,
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/preferences", nil, cookie)
	prefs = decodeBody(t, w)
	assert.Equal(t, "light", prefs["theme"])
	assert.Equal(t, true, prefs["voice_response"])
	assert.Equal(t, "en", prefs["language"])
}

func TestPreferencesIgnoresUnknownKeys(t *testing.T) {
	router, _ := newTestServer(t)
	cookie := registerAndLogin(t, router, "alice", "a@x.com")

	w := doJSON(router, http.MethodPut, "/api/preferences", gin.H{"bogus": 1}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeBody(t, w), "message")

	w = doJSON(router, http.MethodGet, "/api/preferences", nil, cookie)
	prefs := decodeBody(t, w)
	assert.Equal(t, "dark", prefs["theme"])
	assert.Equal(t, false, prefs["voice_response"])
	assert.Equal(t, "en", prefs["language"])
	assert.Equal(t, true, prefs["notification_enabled"])
	assert.Equal(t, "mistral-small", prefs["model_preference"])
}

func TestPreferencesRejectsUnknownModel(t *testing.T) {
	router, _ := newTestServer(t)
	cookie := registerAndLogin(t, router, "alice", "a@x.com")

	w := doJSON(router, http.MethodPut, "/api/preferences", gin.H{
		"model_preference": "mistral-smal",
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "mistral-small")
}

func TestLogoutClearsSession(t *testing.T) {
	router, _ := newTestServer(t)
	cookie := registerAndLogin(t, router, "alice", "a@x.com")

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.Header.Set("Cookie", cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "access_token" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "logout must drop the session cookie")
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(router, http.MethodGet, "/no/such/route", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decodeBody(t, w), "error")
}
