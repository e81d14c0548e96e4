// Package fixture serves deterministic web pages for driving the browser
// screens without network access.
package fixture

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// Asset describes one generated page.
type Asset struct {
	URL     string
	Title   string
	Content string
}

// Server is a local HTTP server for fixture pages.
type Server struct {
	srv *http.Server
	url string
	log zerolog.Logger
}

// Start listens on addr and serves fixture pages in the background. An
// empty addr picks a free loopback port.
func Start(addr string, log zerolog.Logger) (*Server, error) {
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("fixture listen %s: %w", addr, err)
	}

	s := &Server{
		url: "http://" + ln.Addr().String(),
		log: log,
	}
	s.srv = &http.Server{
		Handler:           Handler(log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("fixture server stopped")
		}
	}()

	log.Debug().Str("url", s.url).Msg("fixture server started")
	return s, nil
}

// URL returns the base URL, e.g. http://127.0.0.1:41234.
func (s *Server) URL() string {
	return s.url
}

// GenericAsset returns the n-th generic page served by this server.
func (s *Server) GenericAsset(n int) Asset {
	return Asset{
		URL:     fmt.Sprintf("%s/pages/generic%d.html", s.url, n),
		Title:   genericTitle(n),
		Content: genericContent(n),
	}
}

// Shutdown stops the server, waiting for in-flight requests up to ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Debug().Str("url", s.url).Msg("fixture server shutting down")
	return s.srv.Shutdown(ctx)
}

func genericTitle(n int) string {
	return fmt.Sprintf("Test_Page_%d", n)
}

func genericContent(n int) string {
	return fmt.Sprintf("Page content: %d", n)
}

// Handler returns the fixture routes wrapped in request logging.
func Handler(log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handleIndex)
	mux.HandleFunc("GET /pages/{name}", handlePage)
	mux.HandleFunc("GET /favicon.svg", handleFavicon)

	var h http.Handler = mux
	h = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("fixture request")
	})(h)
	h = hlog.NewHandler(log)(h)
	return h
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="icon" type="image/svg+xml" href="/favicon.svg">
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Content}}</p>
</body>
</html>
`))

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>Fixtures</title></head>
<body>
<ul>
{{range .}}<li><a href="/pages/generic{{.}}.html">generic{{.}}</a></li>
{{end}}</ul>
</body>
</html>
`))

func handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = indexTmpl.Execute(w, []int{1, 2, 3, 4, 5})
}

func handlePage(w http.ResponseWriter, r *http.Request) {
	n, ok := parseGenericName(r.PathValue("name"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, Asset{Title: genericTitle(n), Content: genericContent(n)}); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("render fixture page")
	}
}

// parseGenericName extracts n from "generic{n}.html".
func parseGenericName(name string) (int, bool) {
	if !strings.HasPrefix(name, "generic") || !strings.HasSuffix(name, ".html") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "generic"), ".html"))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

const faviconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 16 16"><rect width="16" height="16" fill="#4a90d9"/></svg>`

func handleFavicon(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write([]byte(faviconSVG))
}
