package web

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/chrisdamba/takeaway/internal/listing"
	"github.com/chrisdamba/takeaway/internal/models"
)

type listPage struct {
	Query   string
	SortKey string
	Choices []listing.Choice
	Rows    []listing.Row
}

type apiResponse struct {
	Sort        string        `json:"sort"`
	Query       string        `json:"query"`
	Restaurants []listing.Row `json:"restaurants"`
}

// Server renders one list screen. Requests take turns on it so each action
// runs its full reload, sort and filter cycle before the next starts.
type Server struct {
	mu             sync.Mutex
	screen         *listing.Screen
	listTmpl       *template.Template
	logger         *zap.Logger
	allowedOrigins []string
}

type Option func(*Server)

// WithAllowedOrigins limits cross-origin reads of the JSON API. Without it
// every origin may read.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) { s.allowedOrigins = origins }
}

func NewServer(screen *listing.Screen, logger *zap.Logger, opts ...Option) (*Server, error) {
	// A. Base Template (shared layout)
	base, err := template.New("base.html").ParseFS(GetTemplatesFS(), "templates/base.html")
	if err != nil {
		return nil, err
	}

	// B. List Template (= base + list.html)
	listTmpl, err := template.Must(base.Clone()).ParseFS(GetTemplatesFS(), "templates/list.html")
	if err != nil {
		return nil, err
	}

	s := &Server{screen: screen, listTmpl: listTmpl, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleList)
	mux.HandleFunc("POST /favorites", s.handleToggle)
	mux.HandleFunc("GET /api/restaurants", s.handleAPI)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	c := cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	return s.logRequests(c.Handler(mux))
}

// NewHTTPServer wraps the handler with the timeouts used in production.
func (s *Server) NewHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}

// apply brings the screen to the sort option and query of the request.
// An unknown or missing sort keeps the current one. Callers hold s.mu.
func (s *Server) apply(r *http.Request, values url.Values) {
	if raw := values.Get("sort"); raw != "" {
		opt, err := models.ParseSortOption(raw)
		if err != nil {
			s.logger.Debug("ignoring sort option", zap.String("sort", raw))
		} else if opt != s.screen.SortOption() {
			s.screen.SetSortOption(r.Context(), opt)
		}
	}
	s.screen.Search(r.Context(), values.Get("q"))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.apply(r, r.URL.Query())
	page := listPage{
		Query:   s.screen.Query(),
		SortKey: s.screen.SortOption().Key(),
		Choices: s.screen.SortChoices(),
		Rows:    s.screen.Rows(),
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.listTmpl.ExecuteTemplate(w, "base.html", page); err != nil {
		s.logger.Error("template error", zap.Error(err))
	}
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	name := r.PostForm.Get("name")
	if name == "" {
		http.Error(w, "missing restaurant name", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.apply(r, r.PostForm)
	// only rows the user can see can be toggled
	if !s.screen.Visible(name) {
		s.mu.Unlock()
		http.Error(w, "unknown restaurant", http.StatusNotFound)
		return
	}
	s.screen.ToggleFavorite(r.Context(), name)
	back := url.Values{}
	back.Set("sort", s.screen.SortOption().Key())
	if q := s.screen.Query(); q != "" {
		back.Set("q", q)
	}
	s.mu.Unlock()

	http.Redirect(w, r, "/?"+back.Encode(), http.StatusSeeOther)
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.apply(r, r.URL.Query())
	resp := apiResponse{
		Sort:        s.screen.SortOption().Key(),
		Query:       s.screen.Query(),
		Restaurants: s.screen.Rows(),
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}
