package viewer

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"trajviz/internal/loader"
	"trajviz/internal/plotdata"
	"trajviz/internal/render"
	"trajviz/internal/trajectory"
)

//go:embed templates/index.html
var content embed.FS

// Server serves a loaded document over HTTP.
type Server struct {
	res  *loader.Result
	opts render.Options
	tpl  *template.Template
	log  *slog.Logger
}

// NewServer builds a viewer for res; a nil log uses slog.Default.
func NewServer(res *loader.Result, opts render.Options, log *slog.Logger) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	if log == nil {
		log = slog.Default()
	}
	return &Server{res: res, opts: opts, tpl: tpl, log: log}
}

// Handler returns the viewer routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /series", s.handleSeries)
	mux.HandleFunc("GET /plot.png", s.handlePlot)
	return mux
}

// Start listens on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	s.log.Info("viewer listening", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Title      string
		LoadID     string
		Accepted   int
		Total      int
		Agents     []trajectory.AgentTrajectory
		Rejections []loader.Rejection
	}{
		Title:      s.opts.Title,
		LoadID:     s.res.ID,
		Accepted:   s.res.Accepted(),
		Total:      s.res.Total(),
		Agents:     s.res.Trajectories,
		Rejections: s.res.Rejections,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.Execute(w, data); err != nil {
		s.log.Error("render index", slog.Any("err", err))
	}
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(plotdata.ExtractAll(s.res.Trajectories)); err != nil {
		s.log.Error("encode series", slog.Any("err", err))
	}
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	if err := render.WriteTo(w, "png", render.Agents(s.res.Trajectories), s.opts); err != nil {
		s.log.Error("render plot", slog.Any("err", err))
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}
