package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"news_reader/internal/browser"
	"news_reader/internal/feed"
	"news_reader/internal/logger"
	"news_reader/internal/metrics"
	"news_reader/internal/middleware"
	"news_reader/internal/models"
	"news_reader/internal/prefs"
	"news_reader/internal/screen"
)

// Server хранит зависимости HTTP-обработчиков: экран и метрики.
type Server struct {
	screen  *screen.Screen
	metrics *metrics.Metrics
}

// NewServer создаёт новый экземпляр Server.
func NewServer(sc *screen.Screen, m *metrics.Metrics) *Server {
	return &Server{screen: sc, metrics: m}
}

// NewsResponse — состояние экрана и строки списка.
type NewsResponse struct {
	State   screen.State  `json:"state"`
	Message string        `json:"message,omitempty"`
	Items   []models.News `json:"items"`
}

// Handler собирает маршруты и оборачивает их middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.HealthCheck)
	mux.HandleFunc("GET /api/news", s.GetNews)
	mux.HandleFunc("DELETE /api/news", s.ResetNews)
	mux.HandleFunc("GET /api/news/{pos}/open", s.OpenNews)
	mux.HandleFunc("POST /api/reload", s.Reload)
	mux.HandleFunc("GET /api/settings", s.GetSettings)
	mux.HandleFunc("PUT /api/settings", s.PutSettings)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	handler := middleware.RequestIDMiddleware(mux)
	return middleware.LoggingMiddleware(handler)
}

// HealthCheck всегда отвечает 200 OK.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// GetNews возвращает JSON с состоянием экрана и списком новостей.
func (s *Server) GetNews(w http.ResponseWriter, r *http.Request) {
	st, msg := s.screen.Status()
	items := s.screen.List.Items()
	if items == nil {
		items = []models.News{}
	}
	writeJSON(w, http.StatusOK, NewsResponse{State: st, Message: msg, Items: items})
}

// ResetNews очищает список и возвращает новое состояние экрана.
func (s *Server) ResetNews(w http.ResponseWriter, r *http.Request) {
	s.screen.Reset()
	s.GetNews(w, r)
}

// OpenNews перенаправляет на URL новости с номером строки pos (с единицы).
func (s *Server) OpenNews(w http.ResponseWriter, r *http.Request) {
	pos, err := strconv.Atoi(r.PathValue("pos"))
	if err != nil {
		http.Error(w, "invalid position", http.StatusBadRequest)
		return
	}

	n, err := s.screen.Link(pos - 1)
	switch {
	case errors.Is(err, feed.ErrOutOfRange):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, browser.ErrNoURL):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, n.URL, http.StatusFound)
}

// Reload перезагружает список и возвращает новое состояние.
func (s *Server) Reload(w http.ResponseWriter, r *http.Request) {
	s.screen.Reload(r.Context())
	s.GetNews(w, r)
}

// GetSettings возвращает текущие настройки.
func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	p, err := s.screen.Prefs().Load(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// PutSettings сохраняет настройки и перезагружает список.
func (s *Server) PutSettings(w http.ResponseWriter, r *http.Request) {
	var p prefs.Preferences
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.screen.Prefs().Save(r.Context(), p); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	logger.Log.WithFields(logger.Fields{
		"request_id": middleware.RequestID(r.Context()),
		"order_by":   p.OrderBy,
	}).Info("Settings updated")

	s.screen.Reload(r.Context())
	writeJSON(w, http.StatusOK, p)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorf("Failed to encode response: %v", err)
	}
}
