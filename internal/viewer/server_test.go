package viewer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gonum.org/v1/plot/vg"

	"trajviz/internal/loader"
	"trajviz/internal/plotdata"
	"trajviz/internal/render"
	"trajviz/internal/trajectory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	doc := `
- - name: tug
    reach: {exterior: [{x: -1, y: -1}, {x: 1, y: -1}, {x: 0, y: 1}], interiors: []}
    position: {x: 0, y: 0}
    velocity: {x: 1, y: 0}
    safety_x: 0.5
    order: 1
  - - [[{x: 0, y: 0, t: 0}, {x: 3, y: 0, t: 3}], Scheduled]
    - [[{x: 3, y: 0, t: 3}, {x: 3, y: 2, t: 4}], Evasive]
- [{name: broken}]
`
	res, err := loader.LoadReader(context.Background(), strings.NewReader(doc), loader.Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	opts := render.DefaultOptions()
	opts.Title = "Harbour"
	opts.Width, opts.Height = 3*vg.Inch, 2*vg.Inch
	return NewServer(res, opts, nil)
}

func TestHandleIndex(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status OK, got %v", resp.StatusCode)
	}
	body := w.Body.String()
	for _, want := range []string{"Harbour", "1 of 2 entries accepted", "<td>tug</td>", "#1 broken", "trajectory shape invalid"} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
}

func TestHandleSeries(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/series", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	var series []plotdata.PlotSeries
	if err := json.NewDecoder(w.Body).Decode(&series); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(series) != 1 || series[0].Name != "tug" {
		t.Fatalf("unexpected series %+v", series)
	}
	if len(series[0].Points) != 4 || len(series[0].Endpoints) != 2 {
		t.Fatalf("unexpected points: %d points, %d endpoints", len(series[0].Points), len(series[0].Endpoints))
	}
	if series[0].Endpoints[1].Kind != trajectory.Evasive {
		t.Fatalf("endpoint kind lost: %+v", series[0].Endpoints[1])
	}
}

func TestHandlePlot(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/plot.png", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status OK, got %v", w.Code)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("expected PNG body")
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/toggle-chaos", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx, "127.0.0.1:0") }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}
