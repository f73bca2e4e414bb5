// Package server serves the dashboard over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/sadopc/playtally/internal/dashboard"
	"github.com/sadopc/playtally/internal/entry"
	"github.com/sadopc/playtally/internal/export"
	"github.com/sadopc/playtally/internal/layout"
	"github.com/sadopc/playtally/internal/render"
	"github.com/sadopc/playtally/internal/stats"
)

// Options configures a Server.
type Options struct {
	Dashboard dashboard.Options
	Style     render.Style
	Radius    float64
	AccessLog io.Writer // nil disables the access log
}

// Server recomputes the dashboard per request from an immutable base entry set.
type Server struct {
	base    []entry.Entry
	loadErr error
	opts    Options
}

// New returns a server over base. A non-nil loadErr makes every chart show the
// "unable to load" placeholder.
func New(base []entry.Entry, loadErr error, opts Options) *Server {
	return &Server{base: base, loadErr: loadErr, opts: opts}
}

// Router returns the route table without the access log.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/", s.page).Methods(http.MethodGet)
	r.HandleFunc("/charts/{chart}.svg", s.chart).Methods(http.MethodGet)
	r.HandleFunc("/api/state", s.state).Methods(http.MethodGet)
	r.HandleFunc("/api/hover", s.hover).Methods(http.MethodGet)
	r.HandleFunc("/api/pie-hover", s.pieHover).Methods(http.MethodGet)
	r.HandleFunc("/export.{format:csv|json}", s.export).Methods(http.MethodGet)

	return r
}

// Handler is Router wrapped in the access log.
func (s *Server) Handler() http.Handler {
	if s.opts.AccessLog == nil {
		return s.Router()
	}
	return handlers.LoggingHandler(s.opts.AccessLog, s.Router())
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("serving dashboard", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) recompute(r *http.Request) (dashboard.State, error) {
	if s.loadErr != nil {
		return dashboard.Failed(s.loadErr, s.opts.Dashboard), nil
	}
	return dashboard.Recompute(s.base, r.URL.Query().Get("participant"), s.opts.Dashboard)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	st, err := s.recompute(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	var buf bytes.Buffer
	if err := render.Page(&buf, st, render.RenderCharts(st, s.opts.Radius, s.opts.Style)); err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) chart(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["chart"]
	st, err := s.recompute(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	svg, ok := render.RenderCharts(st, s.opts.Radius, s.opts.Style).Chart(name)
	if !ok {
		http.Error(w, "unknown chart "+strconv.Quote(name), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = io.WriteString(w, svg)
}

// stateResponse is the JSON summary of one filter.
type stateResponse struct {
	Participant  string                   `json:"participant"`
	Participants []string                 `json:"participants"`
	Total        int                      `json:"total"`
	Placeholder  string                   `json:"placeholder,omitempty"`
	First        string                   `json:"first,omitempty"`
	Last         string                   `json:"last,omitempty"`
	Categories   []stats.Count            `json:"categories"`
	Slices       []layout.Slice           `json:"slices"`
	Calendar     *layout.CalendarGrid     `json:"calendar,omitempty"`
	Days         []stats.DayBucket        `json:"days"`
	Cumulative   []stats.CumulativeBucket `json:"cumulative"`
	ByEntries    []stats.Count            `json:"by_entries"`
	ByDays       []stats.Count            `json:"by_days"`
}

func newStateResponse(st dashboard.State) stateResponse {
	resp := stateResponse{
		Participant:  st.Participant,
		Participants: st.Participants,
		Total:        st.Total(),
		Placeholder:  st.Placeholder(),
		Categories:   orEmpty(st.Categories),
		Slices:       orEmpty(st.Slices),
		Days:         orEmpty(st.Days),
		Cumulative:   orEmpty(st.Cumulative),
		ByEntries:    orEmpty(st.ByEntries),
		ByDays:       orEmpty(st.ByDays),
	}
	if !st.Empty {
		resp.First, resp.Last = st.First.Format(), st.Last.Format()
		resp.Calendar = &st.Calendar
	}
	return resp
}

// orEmpty keeps empty lists as [] in JSON.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	st, err := s.recompute(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(st))
}

type hoverResponse struct {
	dashboard.HoverLabel
	Date  string `json:"date"`
	Label string `json:"label"`
}

func (s *Server) hover(w http.ResponseWriter, r *http.Request) {
	x, err := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	if err != nil {
		http.Error(w, "x must be a number", http.StatusBadRequest)
		return
	}
	st, err := s.recompute(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	h, ok := st.Hover(x)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, hoverResponse{HoverLabel: h, Date: h.Date.Format(), Label: h.String()})
}

type pieHoverResponse struct {
	dashboard.SliceLabel
	Label string `json:"label"`
}

// pieHover takes x and y relative to the donut centre.
func (s *Server) pieHover(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil {
		http.Error(w, "x and y must be numbers", http.StatusBadRequest)
		return
	}
	st, err := s.recompute(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	l, ok := st.PieHover(layout.Point{X: x, Y: y})
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, pieHoverResponse{SliceLabel: l, Label: l.String()})
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	st, err := s.recompute(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	var buf bytes.Buffer
	switch mux.Vars(r)["format"] {
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		err = export.WriteCSV(&buf, st.Entries)
	default:
		w.Header().Set("Content-Type", "application/json")
		err = export.WriteJSON(&buf, st.Entries, st.Participant)
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	_, _ = buf.WriteTo(w)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	slog.Error("request failed", "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "err", err)
	}
}
