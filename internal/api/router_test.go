package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rohits-web03/meshvault/internal/api/services"
	"github.com/rohits-web03/meshvault/internal/config"
	"github.com/rohits-web03/meshvault/internal/models"
	"github.com/rohits-web03/meshvault/internal/repositories"
	"github.com/rohits-web03/meshvault/internal/storage"
	"github.com/rohits-web03/meshvault/internal/testutil"
)

type testServer struct {
	handler  http.Handler
	db       *gorm.DB
	store    *storage.MemoryStore
	sessions *services.SessionManager
	category *models.Category
	u1, u2   *models.User
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zap.NewNop()
	db := testutil.NewDB(t)
	clock := testutil.NewClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), time.Second)
	store := storage.NewMemoryStore("https://cdn.example.com")

	cfg := &config.Config{
		Environment:    "development",
		BaseURL:        "http://api.example.com",
		FrontendURL:    "http://app.example.com",
		JWTSecret:      "router-secret",
		SessionSecret:  "router-state-secret",
		SessionMaxAge:  time.Hour,
		AllowedOrigins: []string{"http://app.example.com"},
	}

	sessionManager := services.NewSessionManager(cfg.JWTSecret, cfg.SessionMaxAge, clock)
	users := repositories.NewUserRepository(db)
	modelRepo := repositories.NewModelRepository(db)
	categories := repositories.NewCategoryRepository(db)
	uploader := services.NewUploader(store, modelRepo, clock, log)

	handler := SetupRouter(Dependencies{
		Config:      cfg,
		Log:         log,
		Sessions:    sessionManager,
		Identity:    services.NewIdentityService(users, sessionManager, log),
		Provider:    services.NewGoogleProvider(cfg),
		Models:      services.NewModelService(modelRepo, categories, uploader, clock, log),
		Categories:  services.NewCategoryService(categories),
		Uploader:    uploader,
		CookieStore: sessions.NewCookieStore([]byte(cfg.SessionSecret)),
	})

	return &testServer{
		handler:  handler,
		db:       db,
		store:    store,
		sessions: sessionManager,
		category: testutil.SeedCategory(t, db, "Furniture", "furniture", 1),
		u1:       testutil.SeedUser(t, db, "u1@example.com", "u1"),
		u2:       testutil.SeedUser(t, db, "u2@example.com", "u2"),
	}
}

func (s *testServer) do(t *testing.T, req *http.Request, as *models.User) *httptest.ResponseRecorder {
	t.Helper()
	if as != nil {
		token, _, err := s.sessions.Issue(as)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: services.SessionCookieName, Value: token})
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) doJSON(t *testing.T, method, path string, body any, as *models.User) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return s.do(t, req, as)
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env
}

// createModel uploads a file and registers a model for owner, returning its id.
func (s *testServer) createModel(t *testing.T, owner *models.User, title string, public bool) string {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("type", "model"))
	part, err := mw.CreateFormFile("file", "chair.glb")
	require.NoError(t, err)
	_, err = part.Write([]byte("glTF-binary"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/models/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := s.do(t, req, owner)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var upload struct {
		Key  string `json:"key"`
		URL  string `json:"url"`
		Size int64  `json:"size"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &upload))

	rr = s.doJSON(t, http.MethodPost, "/api/models", map[string]any{
		"title":        title,
		"categoryId":   s.category.ID.String(),
		"isPublic":     public,
		"modelFileKey": upload.Key,
		"modelFileUrl": upload.URL,
		"fileSize":     upload.Size,
		"fileFormat":   "glb",
		"tags":         []string{"wood"},
	}, owner)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &created))
	return created.ID
}

func viewCount(t *testing.T, rr *httptest.ResponseRecorder) int64 {
	t.Helper()
	var detail struct {
		ViewCount int64 `json:"viewCount"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &detail))
	return detail.ViewCount
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rr := s.do(t, httptest.NewRequest(http.MethodGet, "/health", nil), nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestCategoriesArePublic(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/categories", "/api/categories/"} {
		rr := s.do(t, httptest.NewRequest(http.MethodGet, path, nil), nil)
		require.Equal(t, http.StatusOK, rr.Code, path)
		assert.Contains(t, string(decode(t, rr).Data), `"slug":"furniture"`)
	}

	rr := s.do(t, httptest.NewRequest(http.MethodGet, "/api/categories/unknown/fields", nil), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	s := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/models"},
		{http.MethodPost, "/api/models"},
		{http.MethodPost, "/api/models/upload"},
		{http.MethodDelete, "/api/models/3f9c1e0a-6f7b-4a57-9a0e-0b8b6f1c2d3e"},
	} {
		rr := s.do(t, httptest.NewRequest(tc.method, tc.path, nil), nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, tc.path)
		assert.Equal(t, "Unauthorized", decode(t, rr).Error)
	}

	rr := s.do(t, httptest.NewRequest(http.MethodGet, "/dashboard", nil), nil)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "/login?callbackUrl=")
}

func TestSessionEndpoint(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, httptest.NewRequest(http.MethodGet, "/api/auth/session", nil), s.u1)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, string(decode(t, rr).Data), s.u1.Email)
}

func TestVisibilityAndViewCounting(t *testing.T) {
	s := newTestServer(t)
	id := s.createModel(t, s.u1, "Chair", false)

	rr := s.do(t, httptest.NewRequest(http.MethodGet, "/api/models/"+id, nil), s.u2)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = s.do(t, httptest.NewRequest(http.MethodGet, "/api/models/"+id, nil), nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = s.doJSON(t, http.MethodPut, "/api/models/"+id, map[string]any{"isPublic": true}, s.u2)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = s.doJSON(t, http.MethodPut, "/api/models/"+id, map[string]any{"isPublic": true}, s.u1)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = s.do(t, httptest.NewRequest(http.MethodGet, "/api/models/"+id, nil), s.u2)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 1, viewCount(t, rr))

	rr = s.do(t, httptest.NewRequest(http.MethodGet, "/api/models/"+id, nil), s.u1)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 1, viewCount(t, rr))

	rr = s.do(t, httptest.NewRequest(http.MethodGet, "/api/models/public?category=furniture", nil), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, string(decode(t, rr).Data), id)

	rr = s.do(t, httptest.NewRequest(http.MethodGet, "/api/models/"+id+"/download", nil), s.u2)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, string(decode(t, rr).Data), `"filename":"Chair.glb"`)
}

func TestListMineWithoutTrailingSlash(t *testing.T) {
	s := newTestServer(t)
	id := s.createModel(t, s.u1, "Lamp", true)

	for _, path := range []string{"/api/models", "/api/models/"} {
		rr := s.do(t, httptest.NewRequest(http.MethodGet, path, nil), s.u1)
		require.Equal(t, http.StatusOK, rr.Code, path)
		assert.Contains(t, string(decode(t, rr).Data), id, path)
	}

	rr := s.do(t, httptest.NewRequest(http.MethodGet, "/api/models", nil), s.u2)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, string(decode(t, rr).Data), id)
}

func TestOversizedUploadIsRejected(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/models/upload", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	req.ContentLength = 150 << 20
	rr := s.do(t, req, s.u1)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "File size exceeds 100MB limit", decode(t, rr).Error)
	assert.Zero(t, s.store.Len())
}

func TestDeleteWithMissingThumbnail(t *testing.T) {
	s := newTestServer(t)
	model := testutil.SeedModel(t, s.db, s.u1, s.category, testutil.ModelFixture{
		Title:        "Table",
		ThumbnailKey: "thumbnails/gone.png",
	})
	id := model.ID.String()

	rr := s.do(t, httptest.NewRequest(http.MethodDelete, "/api/models/"+id, nil), s.u2)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = s.do(t, httptest.NewRequest(http.MethodDelete, "/api/models/"+id, nil), s.u1)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "Model deleted successfully", decode(t, rr).Message)

	rr = s.do(t, httptest.NewRequest(http.MethodGet, "/api/models/"+id, nil), s.u1)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPreflightIsAllowed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/models", nil)
	req.Header.Set("Origin", "http://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := s.do(t, req, nil)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}
