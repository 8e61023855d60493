package routes

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jsench/Project-Wheatley/src/config"
	"github.com/jsench/Project-Wheatley/src/db/dbtest"
	"github.com/jsench/Project-Wheatley/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	svc    *Services
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gdb := dbtest.Open(t)
	cfg := config.New(config.OptJWTSecret("router-secret"), config.OptTokenTTL(time.Hour))
	cfg.Mode = gin.TestMode
	svc := NewServices(gdb, cfg, zap.NewNop())

	title := models.TitleModel{Title: "The Tempest"}
	require.NoError(t, gdb.Create(&title).Error)
	edition := models.EditionModel{TitleID: title.ID}
	require.NoError(t, gdb.Create(&edition).Error)
	issue := models.IssueModel{EditionID: edition.ID, Year: "1623", StartDate: 1623, EndDate: 1623}
	require.NoError(t, gdb.Create(&issue).Error)
	oxford := models.LocationModel{Name: "Oxford Library"}
	require.NoError(t, gdb.Create(&oxford).Error)
	copies := []models.CopyModel{
		{CatalogNumber: "1", Verification: models.VerificationVerified, IssueID: &issue.ID, LocationID: &oxford.ID},
		{CatalogNumber: "2", Verification: models.VerificationFalse, IssueID: &issue.ID, LocationID: &oxford.ID},
	}
	require.NoError(t, gdb.Create(&copies).Error)

	return &testServer{router: NewRouter(cfg, zap.NewNop(), svc), db: gdb, svc: svc}
}

func (s *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	return s.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestPublicRoutes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		path   string
		status int
	}{
		{"/", http.StatusOK},
		{"/title/1", http.StatusOK},
		{"/title/99", http.StatusNotFound},
		{"/issue/1", http.StatusOK},
		{"/copy/2", http.StatusOK},
		{"/copy/abc", http.StatusBadRequest},
		{"/copydata/1", http.StatusOK},
		{"/wc/1", http.StatusOK},
		{"/wc/404", http.StatusNotFound},
		{"/about", http.StatusNotFound},
		{"/export/bogus/catalog_number/count", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := s.get(t, tt.path)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestSearchRoutes(t *testing.T) {
	s := newTestServer(t)

	body := decode(t, s.get(t, "/search?field=location&value=oxford"))
	assert.EqualValues(t, 1, body["total"])
	assert.Equal(t, "Location", body["displayField"])

	body = decode(t, s.get(t, "/search/ghosts/all"))
	assert.EqualValues(t, 1, body["total"])
	copies := body["copies"].([]interface{})
	assert.Equal(t, "2", copies[0].(map[string]interface{})["catalogNumber"])

	body = decode(t, s.get(t, "/search?field=nonsense&value=x"))
	assert.EqualValues(t, 0, body["total"])
	assert.Empty(t, body["copies"])
}

func TestCSVExport(t *testing.T) {
	s := newTestServer(t)

	w := s.get(t, "/location_copy_count_csv_export")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "census_location_copy_count.csv")
	assert.Equal(t, "Location,Number of Copies\nOxford Library,1\n", w.Body.String())
}

func TestInvalidExportHasNoCSV(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{
		"/export/password/id/count",
		"/export/location/password/count",
		"/export/location/id/avg",
	} {
		w := s.get(t, path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.NotContains(t, w.Header().Get("Content-Type"), "text/csv", path)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json", path)
		assert.Empty(t, w.Header().Get("Content-Disposition"), path)
		assert.NotEmpty(t, decode(t, w)["error"], path)
	}
}

func TestAutofillRoutes(t *testing.T) {
	s := newTestServer(t)

	body := decode(t, s.get(t, "/autofill/location/ox"))
	assert.Equal(t, []interface{}{"Oxford Library"}, body["matches"])

	body = decode(t, s.get(t, "/autofill/location"))
	assert.Empty(t, body["matches"])

	body = decode(t, s.get(t, "/autofill/collection"))
	assert.NotEmpty(t, body["matches"])
}

func TestAboutRoute(t *testing.T) {
	s := newTestServer(t)
	page := models.StaticPageTextModel{ViewName: "about", Content: "{copy_count} copies"}
	require.NoError(t, s.db.Create(&page).Error)

	w := s.get(t, "/about")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{"1 copies"}, decode(t, w)["blocks"])

	broken := models.StaticPageTextModel{ViewName: "broken", Content: "{nope}"}
	require.NoError(t, s.db.Create(&broken).Error)
	assert.Equal(t, http.StatusInternalServerError, s.get(t, "/about/broken").Code)
}

func login(t *testing.T, s *testServer) string {
	t.Helper()
	_, err := s.svc.Users.CreateUser(t.Context(), "curator", "s3cret")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"curator","password":"s3cret"}`))
	req.Header.Set("Content-Type", "application/json")
	w := s.do(t, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func authed(method, path, token string, body *bytes.Buffer) *http.Request {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestLoginLogout(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"curator","password":"bad"}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusUnauthorized, s.do(t, req).Code)

	token := login(t, s)
	assert.Equal(t, http.StatusOK, s.do(t, authed(http.MethodGet, "/admin/users", token, nil)).Code)
	assert.Equal(t, http.StatusOK, s.do(t, authed(http.MethodGet, "/logout", token, nil)).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, authed(http.MethodGet, "/admin/users", token, nil)).Code)
	assert.Equal(t, http.StatusUnauthorized, s.get(t, "/admin/users").Code)
}

func TestAdminUsers(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s)

	req := authed(http.MethodPost, "/admin/users", token, bytes.NewBufferString(`{"username":"editor","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	w := s.do(t, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := int(decode(t, w)["id"].(float64))

	req = authed(http.MethodPost, "/admin/users", token, bytes.NewBufferString(`{"username":"editor","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusConflict, s.do(t, req).Code)

	path := "/admin/users/" + strconv.Itoa(id)
	assert.Equal(t, http.StatusOK, s.do(t, authed(http.MethodDelete, path, token, nil)).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, authed(http.MethodDelete, path, token, nil)).Code)
}

func TestAdminImport(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "census.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("catalog_number,title,year,location\n3,The Tempest,1623,British Library\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/import", bytes.NewReader(buf.Bytes()))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	assert.Equal(t, http.StatusUnauthorized, s.do(t, req).Code)

	token := login(t, s)
	req = authed(http.MethodPost, "/admin/import", token, bytes.NewBuffer(buf.Bytes()))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := s.do(t, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, decode(t, w)["imported"])

	body := decode(t, s.get(t, "/search?field=location&value=british"))
	assert.EqualValues(t, 1, body["total"])

	req = authed(http.MethodPost, "/admin/import", token, bytes.NewBufferString(`{"url":"https://example.org/census.csv"}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, s.do(t, req).Code)
}
