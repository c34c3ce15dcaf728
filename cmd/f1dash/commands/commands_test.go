package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiStub struct {
	mu    sync.Mutex
	calls []string
	body  map[string]any
}

func newAPIStub(t *testing.T) (*apiStub, *httptest.Server) {
	t.Helper()
	s := &apiStub{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /drivers", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		w.Header().Set("Content-Range", "drivers 0-1/857")
		w.Write([]byte(`[
			{"id":1,"forename":"Lewis","surname":"Hamilton","code":"HAM","number":44,"nationality":"British","dob":"1985-01-07"},
			{"id":2,"forename":"Nick","surname":"Heidfeld","code":"HEI","number":null,"nationality":"German","dob":"1977-05-10"}
		]`))
	})
	mux.HandleFunc("GET /drivers/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		w.Write([]byte(`{"id":1,"surname":"Hamilton","code":"HAM"}`))
	})
	mux.HandleFunc("POST /drivers", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		s.mu.Lock()
		s.body = body
		s.mu.Unlock()
		w.Write([]byte(`{"id":860}`))
	})
	mux.HandleFunc("PUT /drivers/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		s.mu.Lock()
		s.body = body
		s.mu.Unlock()
		w.Write([]byte(`{"id":1,"code":"LH"}`))
	})
	mux.HandleFunc("DELETE /drivers/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		w.Write([]byte(`{"id":860}`))
	})
	mux.HandleFunc("GET /dashboard/top_drivers_by_wins", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		w.Write([]byte(`[
			{"id":1,"full_name":"Lewis Hamilton","nationality":"British","number_of_wins":105},
			{"id":4,"full_name":"Fernando Alonso","nationality":"Spanish","number_of_wins":32}
		]`))
	})
	mux.HandleFunc("GET /my/my_constructor_standings", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		w.Write([]byte(`null`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return s, srv
}

func (s *apiStub) record(r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, r.Method+" "+r.URL.Path)
}

func (s *apiStub) snapshot() ([]string, map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...), s.body
}

func run(t *testing.T, srv *httptest.Server, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root, app := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(io.NopCloser(&bytes.Buffer{}))
	root.SetArgs(append([]string{
		"--api", srv.URL,
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"--log-level", "error",
	}, args...))
	err := execute(context.Background(), root, app)
	return out.String(), errOut.String(), err
}

func TestDriversList(t *testing.T) {
	stub, srv := newAPIStub(t)

	out, _, err := run(t, srv, "drivers", "list")
	require.NoError(t, err)

	assert.Contains(t, out, "Forename")
	assert.Contains(t, out, "Date of Birth")
	assert.Contains(t, out, "Hamilton")
	assert.Contains(t, out, "Heidfeld")
	assert.Contains(t, out, "Drivers 1-2 of 857")

	calls, _ := stub.snapshot()
	assert.Equal(t, []string{"GET /drivers"}, calls)
}

func TestDriversList_JSON(t *testing.T) {
	_, srv := newAPIStub(t)

	out, _, err := run(t, srv, "drivers", "list", "--json")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "HAM", records[0]["code"])
}

func TestDriversShow(t *testing.T) {
	_, srv := newAPIStub(t)

	out, _, err := run(t, srv, "drivers", "show", "1")
	require.NoError(t, err)
	assert.Equal(t, "code     HAM\nid       1\nsurname  Hamilton\n", out)
}

func TestDriversCreate(t *testing.T) {
	stub, srv := newAPIStub(t)

	out, _, err := run(t, srv, "drivers", "create", "--driver-ref", "doe", "--surname", "Doe", "--number", "7")
	require.NoError(t, err)
	assert.Equal(t, "Created drivers #860\n", out)

	_, body := stub.snapshot()
	assert.Equal(t, map[string]any{"driver_ref": "doe", "surname": "Doe", "number": float64(7)}, body)
}

func TestDriversCreate_NoFields(t *testing.T) {
	stub, srv := newAPIStub(t)

	_, _, err := run(t, srv, "drivers", "create")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no fields given")

	calls, _ := stub.snapshot()
	assert.Empty(t, calls)
}

func TestDriversUpdate(t *testing.T) {
	stub, srv := newAPIStub(t)

	out, _, err := run(t, srv, "drivers", "update", "1", "--code", "LH", "--number", "44")
	require.NoError(t, err)
	assert.Equal(t, "Updated drivers #1\n", out)

	calls, body := stub.snapshot()
	assert.Equal(t, []string{"PUT /drivers/1"}, calls)
	assert.Equal(t, map[string]any{"code": "LH", "number": float64(44)}, body, "only given fields are sent")
}

func TestDriversUpdate_NeedsFields(t *testing.T) {
	stub, srv := newAPIStub(t)

	_, _, err := run(t, srv, "drivers", "update", "1")
	require.Error(t, err)

	calls, _ := stub.snapshot()
	assert.Empty(t, calls)
}

func TestDriversDelete(t *testing.T) {
	stub, srv := newAPIStub(t)

	out, _, err := run(t, srv, "drivers", "delete", "860")
	require.NoError(t, err)
	assert.Equal(t, "Deleted drivers #860\n", out)

	calls, _ := stub.snapshot()
	assert.Equal(t, []string{"DELETE /drivers/860"}, calls)
}

func TestStandingsIsListOnly(t *testing.T) {
	_, srv := newAPIStub(t)

	_, _, err := run(t, srv, "standings", "create", "--name", "x")
	assert.Error(t, err)
}

func TestChart(t *testing.T) {
	_, srv := newAPIStub(t)

	out, _, err := run(t, srv, "chart", "wins", "--width", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "Top Drivers by Wins (All Time)")
	assert.Less(t, bytes.Index([]byte(out), []byte("Lewis Hamilton")), bytes.Index([]byte(out), []byte("Fernando Alonso")))

	out, errOut, err := run(t, srv, "chart", "points")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "no data")

	_, _, err = run(t, srv, "chart", "laps")
	assert.Error(t, err)
}

func TestFlagName(t *testing.T) {
	assert.Equal(t, "driver-ref", flagName("driver_ref"))
	assert.Equal(t, "name", flagName("name"))
}

func TestExecute_ReleasesOnFailure(t *testing.T) {
	stub, srv := newAPIStub(t)
	root, app := newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{
		"--api", srv.URL,
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"drivers", "create",
	})
	closed := false
	app.cleanup = append(app.cleanup, func(context.Context) error {
		closed = true
		return nil
	})

	err := execute(context.Background(), root, app)
	require.Error(t, err)
	assert.True(t, closed, "cleanup runs when the command fails")
	assert.Empty(t, app.cleanup)

	calls, _ := stub.snapshot()
	assert.Empty(t, calls)
}
