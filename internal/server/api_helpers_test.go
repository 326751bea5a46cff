package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"prodtrack/internal/config"
	"prodtrack/internal/handlers"
	"prodtrack/internal/models"
	"prodtrack/internal/response"
	"prodtrack/internal/testutil"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type apiEnv struct {
	t      *testing.T
	db     *gorm.DB
	r      *gin.Engine
	studio *models.Organization
	admin  *models.Account
}

func newAPI(t *testing.T) *apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	cfg := &config.Config{
		JWTSecret:      "test-secret",
		AccessTokenTTL: time.Minute,
		CORSOrigins:    []string{"http://localhost:3000"},
	}
	studio := testutil.SeedOrganization(t, db, "Studio")
	admin := testutil.SeedAccount(t, db, studio.ID, "root", models.AccountAdmin)

	return &apiEnv{
		t:      t,
		db:     db,
		r:      NewRouter(cfg, db, testutil.Logger(t)),
		studio: studio,
		admin:  admin,
	}
}

func (e *apiEnv) login(accountName string) string {
	e.t.Helper()
	form := url.Values{"username": {accountName}, "password": {testutil.Password}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		e.t.Fatalf("login %s: status=%d body=%s", accountName, rec.Code, rec.Body.String())
	}
	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decodeInto(e.t, rec, &body)
	if body.TokenType != "bearer" || body.AccessToken == "" {
		e.t.Fatalf("login %s: unexpected body %s", accountName, rec.Body.String())
	}
	return body.AccessToken
}

func (e *apiEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			e.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.r.ServeHTTP(rec, req)
	return rec
}

// expect fails the test unless rec has the wanted status.
func expect(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status: want=%d got=%d body=%s", status, rec.Code, rec.Body.String())
	}
}

// expectError checks status, error code and reason of an error envelope.
func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code, reason string) {
	t.Helper()
	expect(t, rec, status)
	var env response.ErrorEnvelope
	decodeInto(t, rec, &env)
	if env.Error.Code != code || env.Error.Reason != reason {
		t.Fatalf("error: want code=%s reason=%q got %+v", code, reason, env.Error)
	}
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
}

func createdProject(t *testing.T, rec *httptest.ResponseRecorder) handlers.ProjectResponse {
	t.Helper()
	expect(t, rec, http.StatusCreated)
	var p handlers.ProjectResponse
	decodeInto(t, rec, &p)
	return p
}
