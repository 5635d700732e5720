package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fosdem/glquad/lib/config"
	"github.com/fosdem/glquad/lib/stats"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	mu        sync.Mutex
	colours   []mgl32.Vec4
	pauses    int
	shutdowns int
	busy      bool
}

func (f *fakeController) SetColour(c mgl32.Vec4) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return false
	}
	f.colours = append(f.colours, c)
	return true
}

func (f *fakeController) TogglePause() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
	return !f.busy
}

func (f *fakeController) RequestShutdown() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shutdowns++
}

func newTestApi(t *testing.T) (*Api, *fakeController) {
	t.Helper()
	ctrl := &fakeController{}
	s := stats.New()
	s.Update(mgl32.Vec4{1, 0, 0, 1}, false)
	return New(&config.ApiCfg{Bind: "127.0.0.1:0"}, ctrl, s), ctrl
}

func do(a *Api, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	return rec
}

func TestGetStats(t *testing.T) {
	a, _ := newTestApi(t)

	rec := do(a, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap stats.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, uint64(1), snap.Frames)
	assert.Equal(t, "#ff0000ff", snap.Colour)
}

func TestGetColour(t *testing.T) {
	a, _ := newTestApi(t)

	rec := do(a, http.MethodGet, "/api/colour", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"colour":"#ff0000ff"}`, rec.Body.String())
}

func TestPutColour(t *testing.T) {
	a, ctrl := newTestApi(t)

	rec := do(a, http.MethodPut, "/api/colour", `{"colour":"#00ff00ff"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, ctrl.colours, 1)
	assert.Equal(t, mgl32.Vec4{0, 1, 0, 1}, ctrl.colours[0])

	rec = do(a, http.MethodPut, "/api/colour", `{"colour":"green"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(a, http.MethodPut, "/api/colour", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, ctrl.colours, 1)

	ctrl.busy = true
	rec = do(a, http.MethodPut, "/api/colour", `{"colour":"#0000ffff"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPauseAndKill(t *testing.T) {
	a, ctrl := newTestApi(t)

	assert.Equal(t, http.StatusOK, do(a, http.MethodPost, "/api/pause", "").Code)
	assert.Equal(t, http.StatusOK, do(a, http.MethodPost, "/api/kill", "").Code)
	assert.Equal(t, 1, ctrl.pauses)
	assert.Equal(t, 1, ctrl.shutdowns)

	assert.Equal(t, http.StatusMethodNotAllowed, do(a, http.MethodGet, "/api/kill", "").Code)
}

func TestMetricsMounted(t *testing.T) {
	a, _ := newTestApi(t)

	rec := do(a, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "glquad_frames_rendered_total")
}

func TestProfilerOnlyWhenEnabled(t *testing.T) {
	a, _ := newTestApi(t)
	assert.Equal(t, http.StatusNotFound, do(a, http.MethodGet, "/prof", "").Code)
}

func TestWebsocketPushesStats(t *testing.T) {
	a, _ := newTestApi(t)
	a.pushInterval = 10 * time.Millisecond

	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	for range 2 {
		_, msg, err := ws.ReadMessage()
		require.NoError(t, err)

		var snap stats.Snapshot
		require.NoError(t, json.Unmarshal(msg, &snap))
		assert.Equal(t, "#ff0000ff", snap.Colour)
		assert.Equal(t, 1, snap.WsClients)
	}

	require.NoError(t, ws.Close())
	assert.Eventually(t, func() bool {
		return a.Stats.Snapshot().WsClients == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestSwaggerDoc(t *testing.T) {
	a, _ := newTestApi(t)

	rec := do(a, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Info  struct{ Title string }
		Paths map[string]json.RawMessage
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "glquad API", doc.Info.Title)
	assert.Contains(t, doc.Paths, "/api/colour")
	assert.Contains(t, doc.Paths, "/api/ws")
}
