// Package api is the HTTP control surface of glquad.
//
//	@title			glquad API
//	@version		1.0
//	@description	Live statistics and control of the quad render loop.
//	@BasePath		/
package api

//go:generate go tool swag init --parseDependency -g api.go -o docs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/pprof"
	"sync"
	"time"

	_ "github.com/fosdem/glquad/lib/api/docs"
	"github.com/fosdem/glquad/lib/config"
	"github.com/fosdem/glquad/lib/metrics"
	"github.com/fosdem/glquad/lib/stats"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Controller queues changes for the render loop. The bool results report
// whether the request was accepted.
type Controller interface {
	SetColour(c mgl32.Vec4) bool
	TogglePause() bool
	RequestShutdown()
}

type Api struct {
	srv   http.Server
	mux   *http.ServeMux
	cfg   *config.ApiCfg
	ctrl  Controller
	Stats *stats.Stats

	wsMu      sync.Mutex
	wsClients map[*websocket.Conn]bool

	pushInterval time.Duration
}

func New(cfg *config.ApiCfg, ctrl Controller, s *stats.Stats) *Api {
	a := &Api{
		mux:          http.NewServeMux(),
		cfg:          cfg,
		ctrl:         ctrl,
		Stats:        s,
		wsClients:    make(map[*websocket.Conn]bool),
		pushInterval: 2 * time.Second,
	}
	a.srv.Addr = cfg.Bind
	a.srv.Handler = a.mux
	a.routes()
	return a
}

func (a *Api) routes() {
	if a.cfg.EnableProfiler {
		a.mux.HandleFunc("GET /prof", a.profileCPU)
	}
	a.mux.HandleFunc("POST /api/kill", a.suicide)
	a.mux.HandleFunc("GET /api/stats", a.getStats)
	a.mux.HandleFunc("GET /api/colour", a.getColour)
	a.mux.HandleFunc("PUT /api/colour", a.putColour)
	a.mux.HandleFunc("POST /api/pause", a.togglePause)
	a.mux.HandleFunc("GET /api/ws", a.handleWebsocket)
	a.mux.Handle("GET /metrics", metrics.Handler())
	a.mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

// Handler exposes the routes without a listener.
func (a *Api) Handler() http.Handler {
	return a.mux
}

func (a *Api) Serve() error {
	return a.srv.ListenAndServe()
}

// ServeListener serves on an already bound listener.
func (a *Api) ServeListener(l net.Listener) error {
	return a.srv.Serve(l)
}

func (a *Api) Shutdown(ctx context.Context) error {
	a.wsMu.Lock()
	for ws := range a.wsClients {
		_ = ws.Close()
	}
	a.wsMu.Unlock()
	return a.srv.Shutdown(ctx)
}

// @Summary	Record a 10 second CPU profile
// @Router		/prof [get]
// @Tags		debug
// @Produce	octet-stream
// @Success	200
// @Failure	500	{string}	string	"Could not start CPU profile"
func (a *Api) profileCPU(w http.ResponseWriter, _ *http.Request) {
	err := pprof.StartCPUProfile(w)
	if err != nil {
		http.Error(w, fmt.Sprintf("Could not start CPU profile: %s", err), http.StatusInternalServerError)
		return
	}
	time.Sleep(10 * time.Second)
	pprof.StopCPUProfile()
}

// @Summary	Stop the render loop and exit
// @Router		/api/kill [post]
// @Tags		base
// @Success	200
func (a *Api) suicide(w http.ResponseWriter, _ *http.Request) {
	slog.Info("shutting down as per api request", slog.String("module", "api"))
	a.ctrl.RequestShutdown()
	writeOk(w)
}

// @Summary	Get render loop statistics
// @Router		/api/stats [get]
// @Tags		base
// @Produce	json
// @Success	200	{object}	stats.Snapshot
func (a *Api) getStats(w http.ResponseWriter, _ *http.Request) {
	writeJson(w, a.Stats.Snapshot())
}

func writeOk(w http.ResponseWriter) {
	_, err := fmt.Fprintf(w, "\"ok\"\n")
	if err != nil {
		slog.Warn(fmt.Sprintf("could not write response: %s", err), slog.String("module", "api"))
	}
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Warn(fmt.Sprintf("could not encode response: %s", err), slog.String("module", "api"))
	}
}

// ServeInBackground starts the API when cfg is set. A failing listener
// stops the render loop.
func ServeInBackground(cfg *config.ApiCfg, ctrl Controller, s *stats.Stats) *Api {
	if cfg == nil || cfg.Bind == "" {
		return nil
	}
	theApi := New(cfg, ctrl, s)

	slog.Info(fmt.Sprintf("starting web server on %s", cfg.Bind), slog.String("module", "api"))
	go func() {
		err := theApi.Serve()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error(fmt.Sprintf("could not start web server: %s", err), slog.String("module", "api"))
			ctrl.RequestShutdown()
		}
	}()
	return theApi
}
