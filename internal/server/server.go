// Package server streams live simulation frames over a websocket and
// accepts pause/reset commands, so the demo can be watched from a browser.
package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fluidlab/damsim/internal/engine"
)

// maxStreamedPoints caps the per-frame payload; positions are strided down
// to stay under it.
const maxStreamedPoints = 2000

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type frameMsg struct {
	Type      string       `json:"type"`
	Time      float64      `json:"time"`
	Paused    bool         `json:"paused"`
	Positions [][3]float64 `json:"positions"`
}

type sceneMsg struct {
	Type       string       `json:"type"`
	FluidCount int          `json:"fluidCount"`
	Boundary   [][3]float64 `json:"boundary"`
}

type commandMsg struct {
	Paused *bool `json:"paused"`
	Reset  bool  `json:"reset"`
}

type Server struct {
	// mu guards the engine: the sim loop and every client's read loop run
	// on separate goroutines.
	mu  sync.Mutex
	eng *engine.Engine

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex

	fps int
}

func New(eng *engine.Engine, fps int) *Server {
	if fps <= 0 {
		fps = 30
	}
	return &Server{
		eng:     eng,
		clients: make(map[*websocket.Conn]*sync.Mutex),
		fps:     fps,
	}
}

// ListenAndServe starts the simulation loop and serves /ws on addr. It
// blocks until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	go s.simLoop()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	log.Printf("serving frames on ws://%s/ws", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) simLoop() {
	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		s.eng.Frame()
		frame := s.snapshot()
		s.mu.Unlock()

		s.broadcast(frame)
	}
}

// snapshot copies the current fluid positions into a frame message.
// Callers must hold mu.
func (s *Server) snapshot() frameMsg {
	pos := s.eng.Model().Positions()
	stride := len(pos)/maxStreamedPoints + 1

	out := make([][3]float64, 0, len(pos)/stride+1)
	for i := 0; i < len(pos); i += stride {
		out = append(out, [3]float64{pos[i].X(), pos[i].Y(), pos[i].Z()})
	}
	return frameMsg{
		Type:      "frame",
		Time:      s.eng.Clock().Time(),
		Paused:    s.eng.Paused,
		Positions: out,
	}
}

func (s *Server) broadcast(frame frameMsg) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	for conn, connMu := range s.clients {
		connMu.Lock()
		err := conn.WriteJSON(frame)
		connMu.Unlock()
		if err != nil {
			conn.Close()
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("websocket upgrade:", err)
		return
	}
	defer conn.Close()

	connMu := &sync.Mutex{}
	s.clientsMu.Lock()
	s.clients[conn] = connMu
	s.clientsMu.Unlock()
	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
	}()

	s.sendScene(conn, connMu)

	for {
		var cmd commandMsg
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}

		s.mu.Lock()
		if cmd.Paused != nil {
			s.eng.Paused = *cmd.Paused
		}
		if cmd.Reset {
			s.eng.Reset()
		}
		s.mu.Unlock()
	}
}

// sendScene pushes the static boundary geometry once per connection.
func (s *Server) sendScene(conn *websocket.Conn, connMu *sync.Mutex) {
	s.mu.Lock()
	bnd := s.eng.Model().BoundaryPositions()
	stride := len(bnd)/maxStreamedPoints + 1
	out := make([][3]float64, 0, len(bnd)/stride+1)
	for i := 0; i < len(bnd); i += stride {
		out = append(out, [3]float64{bnd[i].X(), bnd[i].Y(), bnd[i].Z()})
	}
	msg := sceneMsg{
		Type:       "scene",
		FluidCount: s.eng.Model().Count(),
		Boundary:   out,
	}
	s.mu.Unlock()

	connMu.Lock()
	defer connMu.Unlock()
	if err := conn.WriteJSON(msg); err != nil {
		log.Println("websocket write:", err)
	}
}
