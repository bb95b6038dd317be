package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/posawiki/posawiki/internal/profile"
	"github.com/posawiki/posawiki/server/auth"
	apiv1 "github.com/posawiki/posawiki/server/router/api/v1"
	"github.com/posawiki/posawiki/server/service/tagauthority"
	"github.com/posawiki/posawiki/store"
	"github.com/posawiki/posawiki/store/test"
)

const testSecret = "test-secret"

type testAPI struct {
	echo  *echo.Echo
	store *store.Store
}

func newTestAPI(ctx context.Context, t *testing.T) *testAPI {
	ts := test.NewTestingStore(ctx, t)
	svc, err := tagauthority.NewService(ctx, ts)
	require.NoError(t, err)

	e := echo.New()
	apiv1.NewAPIV1Service(testSecret, &profile.Profile{Mode: "dev"}, ts, svc).RegisterRoutes(e)
	return &testAPI{echo: e, store: ts}
}

func (api *testAPI) request(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	api.echo.ServeHTTP(rec, req)
	return rec
}

func mintToken(t *testing.T, role auth.Role) string {
	token, err := auth.GenerateToken("tester", role, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func TestCreateAuthorityRequiresEditor(t *testing.T) {
	ctx := context.Background()
	api := newTestAPI(ctx, t)

	body := `{"canonicalName":"Fishing","category":"activity"}`

	rec := api.request(t, http.MethodPost, "/api/v1/authorities", body, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.request(t, http.MethodPost, "/api/v1/authorities", body, mintToken(t, auth.RoleEditor))
	require.Equal(t, http.StatusCreated, rec.Code)

	payload := &apiv1.AuthorityPayload{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), payload))
	require.Equal(t, "Fishing", payload.CanonicalName)
	require.NotEmpty(t, payload.UID)
	require.Len(t, payload.Aliases, 1) // implicit canonical alias
}

func TestCreateAuthorityConflicts(t *testing.T) {
	ctx := context.Background()
	api := newTestAPI(ctx, t)
	token := mintToken(t, auth.RoleEditor)

	body := `{"canonicalName":"Fishing","category":"activity"}`
	rec := api.request(t, http.MethodPost, "/api/v1/authorities", body, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.request(t, http.MethodPost, "/api/v1/authorities", body, token)
	require.Equal(t, http.StatusConflict, rec.Code)

	// Alias claimed by a different authority names the claimant.
	body = `{"canonicalName":"Angling","category":"activity","aliases":[{"text":"Fishing"}]}`
	rec = api.request(t, http.MethodPost, "/api/v1/authorities", body, token)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "Fishing")
}

func TestDeactivateRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	api := newTestAPI(ctx, t)

	rec := api.request(t, http.MethodPost, "/api/v1/authorities",
		`{"canonicalName":"Fishing","category":"activity"}`, mintToken(t, auth.RoleEditor))
	require.Equal(t, http.StatusCreated, rec.Code)
	payload := &apiv1.AuthorityPayload{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), payload))

	rec = api.request(t, http.MethodPost, "/api/v1/authorities/"+payload.UID+"/deactivate", "", mintToken(t, auth.RoleEditor))
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.request(t, http.MethodPost, "/api/v1/authorities/"+payload.UID+"/deactivate", "", mintToken(t, auth.RoleAdmin))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCoverageEndpoint(t *testing.T) {
	ctx := context.Background()
	api := newTestAPI(ctx, t)

	_, err := api.store.CreateVideo(ctx, &store.Video{
		UID: "v1", YoutubeID: "yt1", Title: "one", UploadDate: "2024-01-01",
		YoutubeTags: []string{"bwca", "fishing"},
	})
	require.NoError(t, err)

	rec := api.request(t, http.MethodGet, "/api/v1/coverage", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	report := &tagauthority.CoverageReport{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), report))
	require.Equal(t, 2, report.TotalInstances)
	require.Equal(t, 0.0, report.InstanceCoverage)
	require.Len(t, report.UnmatchedRanked, 2)
}

func TestListVideos(t *testing.T) {
	ctx := context.Background()
	api := newTestAPI(ctx, t)

	_, err := api.store.CreateVideo(ctx, &store.Video{
		UID: "v1", YoutubeID: "yt1", Title: "one", UploadDate: "2024-01-01",
		YoutubeTags: []string{"bwca"},
	})
	require.NoError(t, err)

	rec := api.request(t, http.MethodGet, "/api/v1/videos", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var videos []*apiv1.VideoPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &videos))
	require.Len(t, videos, 1)
	require.Equal(t, "one", videos[0].Title)

	rec = api.request(t, http.MethodGet, "/api/v1/videos/v1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.request(t, http.MethodGet, "/api/v1/videos/missing", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
