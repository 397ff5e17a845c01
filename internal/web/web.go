// Small read-only status server: a glance at what the frame is showing
// and how healthy the cache is, without walking over to the display.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/kdalquist/photoframe/internal/app"
)

var statusTemplate = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
<head><title>photoframe</title></head>
<body>
<h1>photoframe</h1>
<p>Showing: {{.Location}}</p>
<p>Photo changes: {{.Ticks}}</p>
{{if .CacheCap}}<p>Cache: {{.CacheLen}}/{{.CacheCap}}</p>{{end}}
<p>Up since {{.Started.Format "2006-01-02 15:04:05"}}</p>
<img src="/photo.jpg" alt="current photo" style="max-width:800px;">
</body>
</html>
`))

type Server struct {
	loop *app.Loop
	addr string
}

func NewServer(loop *app.Loop, addr string) *Server {
	return &Server{loop: loop, addr: addr}
}

// Start serves until ctx is done.  Serving errors are logged, not
// returned; the status page is a convenience, not the point.
func (s *Server) Start(ctx context.Context) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/photo.jpg", s.handlePhoto)

	srv := &http.Server{Addr: s.addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		log.Printf("web: status server on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("web: status server stopped: %v", err)
		}
	}()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if err := statusTemplate.Execute(w, s.loop.Snapshot()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.loop.Snapshot()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handlePhoto(w http.ResponseWriter, r *http.Request) {
	data, err := s.loop.CurrentJPEG()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	_, _ = w.Write(data)
}
