package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rohits-web03/meshvault/internal/api/middleware"
	"github.com/rohits-web03/meshvault/internal/api/services"
	"github.com/rohits-web03/meshvault/internal/repositories"
	"github.com/rohits-web03/meshvault/internal/storage"
	"github.com/rohits-web03/meshvault/internal/testutil"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeProvider struct {
	identity *services.Identity
	err      error
	codes    []string
}

func (f *fakeProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/o/oauth2/auth?state=" + url.QueryEscape(state)
}

func (f *fakeProvider) Exchange(_ context.Context, code string) (*services.Identity, error) {
	f.codes = append(f.codes, code)
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

var _ services.IdentityProvider = (*fakeProvider)(nil)

var errExchange = errors.New("invalid_grant")

func newUploadHandler(t *testing.T) (*UploadHandler, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore("https://cdn.example.com")
	repo := repositories.NewModelRepository(testutil.NewDB(t))
	uploader := services.NewUploader(store, repo, testutil.NewClock(epoch, time.Second), zap.NewNop())
	return NewUploadHandler(uploader, zap.NewNop()), store
}

// multipartBody builds an upload form. An empty filename omits the file part.
func multipartBody(t *testing.T, fields map[string]string, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func withCaller(r *http.Request, id uuid.UUID) *http.Request {
	return r.WithContext(middleware.WithPrincipal(r.Context(), &services.Principal{ID: id}))
}

func decodePayload(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}

// zeroReader yields an endless stream of zero bytes.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

var _ io.Reader = zeroReader{}
