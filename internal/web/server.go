package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/guidoenr/streambars/internal/app"
	"github.com/guidoenr/streambars/internal/settings"
)

//go:embed index.html
var indexHTML []byte

const statusInterval = 500 * time.Millisecond

// AppInterface is the part of the application the server controls.
type AppInterface interface {
	Settings() *settings.Store
	Status() app.Status
}

// Server exposes the settings over HTTP and pushes status over websockets.
type Server struct {
	mu        sync.RWMutex
	app       AppInterface
	clients   map[*websocketClient]bool
	broadcast chan []byte
	upgrader  websocket.Upgrader
	log       *log.Logger
}

type websocketClient struct {
	conn   *websocket.Conn
	send   chan []byte
	server *Server
}

// SettingsResponse is the JSON form of the settings.
type SettingsResponse struct {
	Samples     int     `json:"samples"`
	MinDecibels float64 `json:"minDecibels"`
	MaxDecibels float64 `json:"maxDecibels"`
	Smoothing   float64 `json:"smoothing"`
	Background  string  `json:"background"`
	BarColor1   string  `json:"barColor1"`
	BarColor2   string  `json:"barColor2"`
	Gradient    bool    `json:"gradient"`
	BarSpacing  int     `json:"barSpacing"`
	Wrap        bool    `json:"wrap"`
}

// UpdateRequest is a partial settings update. Omitted fields are left alone.
type UpdateRequest struct {
	Samples     *int     `json:"samples,omitempty"`
	MinDecibels *float64 `json:"minDecibels,omitempty"`
	MaxDecibels *float64 `json:"maxDecibels,omitempty"`
	Smoothing   *float64 `json:"smoothing,omitempty"`
	Background  *string  `json:"background,omitempty"`
	BarColor1   *string  `json:"barColor1,omitempty"`
	BarColor2   *string  `json:"barColor2,omitempty"`
	Gradient    *bool    `json:"gradient,omitempty"`
	BarSpacing  *int     `json:"barSpacing,omitempty"`
	Wrap        *bool    `json:"wrap,omitempty"`
}

// StatusMessage is pushed to websocket clients.
type StatusMessage struct {
	Status   app.Status       `json:"status"`
	Settings SettingsResponse `json:"settings"`
}

// NewServer creates a server controlling a.
func NewServer(a AppInterface, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{
		app:       a,
		clients:   make(map[*websocketClient]bool),
		broadcast: make(chan []byte, 256),
		log:       logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/settings", s.handleSettings)
	mux.HandleFunc("/api/settings/wrap", s.handleWrap)
	mux.HandleFunc("/api/palette", s.handlePalette)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.startLoops(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.log.Printf("[web] settings page on http://%s", displayAddr(addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web: %w", err)
	}
	return nil
}

func (s *Server) startLoops(ctx context.Context) {
	go s.broadcastLoop(ctx)
	go s.statusUpdateLoop(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, settingsResponse(s.app.Settings().Snapshot()))
	case http.MethodPost:
		var req UpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.apply(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, settingsResponse(s.app.Settings().Snapshot()))
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleWrap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	wrap := s.app.Settings().ToggleEdgeWrap()
	writeJSON(w, map[string]bool{"wrap": wrap})
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	palette := make(map[string]string)
	for name, c := range settings.Palette() {
		palette[name] = settings.FormatColor(c)
	}
	writeJSON(w, palette)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.app.Status())
}

// apply checks the whole request against a copy of the settings before any
// setter runs, so a rejected request leaves the store untouched.
func (s *Server) apply(req UpdateRequest) error {
	store := s.app.Settings()
	next := store.Snapshot()

	if err := parseColor(req.Background, "background", &next.Background); err != nil {
		return err
	}
	if err := parseColor(req.BarColor1, "barColor1", &next.Bar1); err != nil {
		return err
	}
	if err := parseColor(req.BarColor2, "barColor2", &next.Bar2); err != nil {
		return err
	}
	if req.Samples != nil {
		next.SampleCount = *req.Samples
	}
	if req.MinDecibels != nil {
		next.MinDecibels = *req.MinDecibels
	}
	if req.MaxDecibels != nil {
		next.MaxDecibels = *req.MaxDecibels
	}
	if req.Smoothing != nil {
		next.Smoothing = *req.Smoothing
	}
	if req.Gradient != nil {
		next.Gradient = *req.Gradient
	}
	if req.BarSpacing != nil {
		next.BarSpacing = *req.BarSpacing
	}
	if err := next.Validate(); err != nil {
		return err
	}

	store.SetBackgroundColor(next.Background)
	store.SetBarColor1(next.Bar1)
	store.SetBarColor2(next.Bar2)
	store.SetGradient(next.Gradient)
	if err := store.SetBarSpacing(next.BarSpacing); err != nil {
		return err
	}
	if err := store.SetSampleCount(next.SampleCount); err != nil {
		return err
	}
	if err := store.SetDecibelRange(next.MinDecibels, next.MaxDecibels); err != nil {
		return err
	}
	if err := store.SetSmoothing(next.Smoothing); err != nil {
		return err
	}
	if req.Wrap != nil && *req.Wrap != store.Snapshot().WrapEdges {
		store.ToggleEdgeWrap()
	}
	return nil
}

func parseColor(value *string, field string, dst *color.RGBA) error {
	if value == nil {
		return nil
	}
	c, err := settings.ParseColor(*value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	*dst = c
	return nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("[web] websocket upgrade error: %v", err)
		return
	}

	client := &websocketClient{
		conn:   conn,
		send:   make(chan []byte, 256),
		server: s,
	}

	if data, err := s.statusMessage(); err == nil {
		client.send <- data
	}

	s.mu.Lock()
	s.clients[client] = true
	s.mu.Unlock()

	go client.writePump()
	go client.readPump()
}

func (s *Server) broadcastLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			for client := range s.clients {
				close(client.send)
				delete(s.clients, client)
			}
			s.mu.Unlock()
			return
		case message := <-s.broadcast:
			s.mu.Lock()
			for client := range s.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(s.clients, client)
				}
			}
			s.mu.Unlock()
		}
	}
}

// statusUpdateLoop pushes status every statusInterval and whenever the
// settings change.
func (s *Server) statusUpdateLoop(ctx context.Context) {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()
	changed := s.app.Settings().Subscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-changed:
		}

		data, err := s.statusMessage()
		if err != nil {
			continue
		}
		select {
		case s.broadcast <- data:
		default:
			// drop if channel full
		}
	}
}

func (s *Server) statusMessage() ([]byte, error) {
	return json.Marshal(StatusMessage{
		Status:   s.app.Status(),
		Settings: settingsResponse(s.app.Settings().Snapshot()),
	})
}

func (c *websocketClient) readPump() {
	defer func() {
		c.server.mu.Lock()
		if c.server.clients[c] {
			delete(c.server.clients, c)
			close(c.send)
		}
		c.server.mu.Unlock()
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *websocketClient) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func settingsResponse(st settings.Settings) SettingsResponse {
	return SettingsResponse{
		Samples:     st.SampleCount,
		MinDecibels: st.MinDecibels,
		MaxDecibels: st.MaxDecibels,
		Smoothing:   st.Smoothing,
		Background:  settings.FormatColor(st.Background),
		BarColor1:   settings.FormatColor(st.Bar1),
		BarColor2:   settings.FormatColor(st.Bar2),
		Gradient:    st.Gradient,
		BarSpacing:  st.BarSpacing,
		Wrap:        st.WrapEdges,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "0.0.0.0" + addr
	}
	return addr
}
