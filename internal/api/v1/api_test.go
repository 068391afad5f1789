package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/madhava-poojari/mentorship-api/internal/auth"
	"github.com/madhava-poojari/mentorship-api/internal/config"
	"github.com/madhava-poojari/mentorship-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	applicant  = &models.User{ID: "11111111-1111-4111-8111-111111111111", Email: "ana@example.com", Role: models.RoleUser}
	admin      = &models.User{ID: "22222222-2222-4222-8222-222222222222", Email: "ben@example.com", Role: models.RoleAdmin}
	superadmin = &models.User{ID: "33333333-3333-4333-8333-333333333333", Email: "cy@example.com", Role: models.RoleSuperadmin}
)

const (
	programID    = "44444444-4444-4444-8444-444444444444"
	enrollmentID = "55555555-5555-4555-8555-555555555555"
)

type testAPI struct {
	cfg         *config.Config
	programs    *mockPrograms
	forms       *mockForms
	uploads     *mockUploads
	enrollments *mockEnrollments
	users       *mockUsers
	superadmin  *mockSuperadmin
	tokens      *fakeTokens
	google      *fakeGoogle
	db          *fakePinger
	handler     http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ta := &testAPI{
		cfg: &config.Config{
			JWTSecret:       "test-secret",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
		},
		programs:    &mockPrograms{},
		forms:       &mockForms{},
		uploads:     &mockUploads{},
		enrollments: &mockEnrollments{},
		users:       &mockUsers{},
		superadmin:  &mockSuperadmin{},
		tokens:      newFakeTokens(applicant, admin, superadmin),
		google:      &fakeGoogle{},
		db:          &fakePinger{},
	}
	api := NewAPI(Deps{
		Config:      ta.cfg,
		Log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Programs:    ta.programs,
		Forms:       ta.forms,
		Uploads:     ta.uploads,
		Enrollments: ta.enrollments,
		Users:       ta.users,
		Superadmin:  ta.superadmin,
		Tokens:      ta.tokens,
		Google:      ta.google,
		DB:          ta.db,
	})
	ta.handler = api.Routes()
	t.Cleanup(func() {
		ta.programs.AssertExpectations(t)
		ta.forms.AssertExpectations(t)
		ta.uploads.AssertExpectations(t)
		ta.enrollments.AssertExpectations(t)
		ta.users.AssertExpectations(t)
		ta.superadmin.AssertExpectations(t)
	})
	return ta
}

// do sends a request as u (anonymous when nil) with an optional JSON body.
func (ta *testAPI) do(t *testing.T, u *models.User, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if u != nil {
		tok, err := auth.GenerateAccessToken(ta.cfg, u.ID, string(u.Role))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	ta.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   interface{}     `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestHealth(t *testing.T) {
	ta := newTestAPI(t)
	rec := ta.do(t, nil, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data map[string]string
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "connected", data["db"])
	assert.NotEmpty(t, data["timestamp"])
}

func TestHealthDatabaseDown(t *testing.T) {
	ta := newTestAPI(t)
	ta.db.err = errors.New("connection refused")
	rec := ta.do(t, nil, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "db unreachable", decodeEnvelope(t, rec).Message)
}

func TestRoutesRequireAuthentication(t *testing.T) {
	ta := newTestAPI(t)
	for _, path := range []string{"/programs", "/enrollments", "/users/me", "/superadmin/stats"} {
		rec := ta.do(t, nil, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestStaffRoutesRejectApplicants(t *testing.T) {
	ta := newTestAPI(t)
	rec := ta.do(t, applicant, http.MethodPost, "/programs", map[string]interface{}{"name": "x"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ta.do(t, applicant, http.MethodPut, "/enrollments/"+enrollmentID+"/accept", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSuperadminRoutesRejectAdmins(t *testing.T) {
	ta := newTestAPI(t)
	rec := ta.do(t, admin, http.MethodGet, "/superadmin/stats", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
