package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/playtally/internal/dashboard"
	"github.com/sadopc/playtally/internal/entry"
	"github.com/sadopc/playtally/internal/render"
)

func sampleEntries() []entry.Entry {
	return []entry.Entry{
		{Date: entry.NewDate(2025, 0, 1), Participant: "A", Category: "Chess"},
		{Date: entry.NewDate(2025, 0, 1), Participant: "B", Category: "Chess"},
		{Date: entry.NewDate(2025, 0, 3), Participant: "A", Category: "Go"},
	}
}

func testOptions() Options {
	return Options{
		Dashboard: dashboard.DefaultOptions(),
		Style:     render.DefaultStyle(),
		Radius:    160,
	}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	h := New(nil, nil, testOptions()).Handler()
	rec := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestPage(t *testing.T) {
	h := New(sampleEntries(), nil, testOptions()).Handler()

	rec := get(t, h, "/?participant=B")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `<option value="B" selected>B</option>`)
	assert.Contains(t, rec.Body.String(), "1 games from 1/1/2025 to 1/1/2025")
}

func TestChart(t *testing.T) {
	h := New(sampleEntries(), nil, testOptions()).Handler()

	for _, name := range render.ChartNames {
		rec := get(t, h, "/charts/"+name+".svg")
		require.Equal(t, http.StatusOK, rec.Code, name)
		assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
		assert.True(t, strings.HasPrefix(rec.Body.String(), "<svg"), name)
	}

	rec := get(t, h, "/charts/radar.svg")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestState(t *testing.T) {
	h := New(sampleEntries(), nil, testOptions()).Handler()

	rec := get(t, h, "/api/state")
	require.Equal(t, http.StatusOK, rec.Code)

	var got stateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "All", got.Participant)
	assert.Equal(t, []string{"All", "A", "B"}, got.Participants)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, "1/1/2025", got.First)
	assert.Equal(t, "1/3/2025", got.Last)
	require.Len(t, got.Days, 3)
	assert.Equal(t, 0, got.Days[1].Count)
	assert.Equal(t, 3, got.Cumulative[2].Total)
	require.NotNil(t, got.Calendar)
	assert.Equal(t, 5, got.Calendar.Rows)
	require.Len(t, got.Slices, 2)
	assert.NotNil(t, got.Slices[0].LabelElbow)
}

func TestStateEmpty(t *testing.T) {
	h := New(sampleEntries(), nil, testOptions()).Handler()

	rec := get(t, h, "/api/state?participant=Zed")
	require.Equal(t, http.StatusOK, rec.Code)

	var got stateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 0, got.Total)
	assert.Equal(t, dashboard.NoData, got.Placeholder)
	assert.Nil(t, got.Calendar)
	assert.Empty(t, got.Days)

	// Lists stay iterable when there is nothing in them.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	for _, field := range []string{"categories", "slices", "days", "cumulative", "by_entries", "by_days"} {
		assert.Equal(t, "[]", string(raw[field]), field)
	}
}

func TestLoadFailure(t *testing.T) {
	h := New(nil, errors.New("connection refused"), testOptions()).Handler()

	rec := get(t, h, "/api/state")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), dashboard.UnableToLoad)

	rec = get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), dashboard.UnableToLoad)
}

func TestHover(t *testing.T) {
	srv := New(sampleEntries(), nil, testOptions())
	h := srv.Handler()

	st, err := dashboard.Recompute(sampleEntries(), "All", testOptions().Dashboard)
	require.NoError(t, err)
	x := st.Axis.X.Center(1)

	rec := get(t, h, "/api/hover?x="+formatFloat(x))
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.EqualValues(t, 1, got["index"])
	assert.EqualValues(t, 2, got["day_index"])
	assert.EqualValues(t, 0, got["count"])
	assert.EqualValues(t, 2, got["total"])
	assert.Equal(t, "1/2/2025", got["date"])
	assert.Equal(t, "Day 2 (Jan 02): 0 played, 2 total", got["label"])
}

func TestHoverBadInput(t *testing.T) {
	h := New(sampleEntries(), nil, testOptions()).Handler()

	rec := get(t, h, "/api/hover?x=left")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, h, "/api/hover?x=10&participant=Zed")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestPieHover(t *testing.T) {
	h := New(sampleEntries(), nil, testOptions()).Handler()
	// Default ring runs from 80 to 128 for a 160 radius; straight up is Chess.
	rec := get(t, h, "/api/pie-hover?x=0&y=-100")
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Chess", got["key"])
	assert.EqualValues(t, 2, got["value"])
	assert.Equal(t, "Chess: 2", got["label"])

	rec = get(t, h, "/api/pie-hover?x=-100&y=0")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"key":"Go"`)

	rec = get(t, h, "/api/pie-hover?x=0&y=0")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = get(t, h, "/api/pie-hover?x=1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport(t *testing.T) {
	h := New(sampleEntries(), nil, testOptions()).Handler()

	rec := get(t, h, "/export.csv?participant=A")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Date,Person,Game\n1/1/2025,A,Chess\n1/3/2025,A,Go\n", rec.Body.String())

	rec = get(t, h, "/export.json")
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Participant string `json:"participant"`
		Count       int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "All", got.Participant)
	assert.Equal(t, 3, got.Count)

	rec = get(t, h, "/export.xml")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	h := New(nil, nil, testOptions()).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/state", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions()
	opts.AccessLog = &buf
	h := New(nil, nil, opts).Handler()

	get(t, h, "/health")
	assert.Contains(t, buf.String(), `"GET /health HTTP/1.1" 200`)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
