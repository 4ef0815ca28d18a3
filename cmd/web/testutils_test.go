package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"alhyra_organics/internal/models"
	"alhyra_organics/internal/notify"
	"alhyra_organics/internal/repository"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

const (
	adminEmail    = "admin@alhyra.com"
	adminPassword = "AlHyraAdmin786"
	businessPhone = "919751311724"
)

var testAddress = models.Address{
	FullName: "Ayesha Siddiqui",
	Phone:    "9876543210",
	Street:   "12 Market Road",
	City:     "Madurai",
	State:    "Tamil Nadu",
	ZipCode:  "625001",
}

func newTestApplication(t *testing.T) *application {
	t.Helper()

	store := models.NewMemoryDB()
	require.NoError(t, models.Seed(context.Background(), store, fixedNow))

	users, err := repository.NewUserRepository(store, adminEmail, adminPassword, "Al Hyra Admin", 0)
	require.NoError(t, err)

	app, err := newApplication(zap.NewNop(), store, users, scs.New(), notify.LogPublisher{Logger: zap.NewNop()}, businessPhone)
	require.NoError(t, err)
	app.now = func() time.Time { return fixedNow }
	return app
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	ts.Client().Jar = jar
	ts.Client().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &testServer{ts}
}

// do sends body as JSON and returns the status and raw response body.
func (ts *testServer) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(js)
	}
	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rs, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer rs.Body.Close()

	out, err := io.ReadAll(rs.Body)
	require.NoError(t, err)
	return rs.StatusCode, out
}

// field decodes one top-level key of a JSON object response into dst.
func field(t *testing.T, body []byte, key string, dst any) {
	t.Helper()
	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	raw, ok := env[key]
	require.True(t, ok, "missing %q in %s", key, body)
	require.NoError(t, json.Unmarshal(raw, dst))
}

func (ts *testServer) login(t *testing.T, email, password string) {
	t.Helper()
	code, body := ts.do(t, http.MethodPost, "/login", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, code, string(body))
}
