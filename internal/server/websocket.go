package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	mcerror "github.com/msto63/mCALC/foundation/core/error"
	"github.com/msto63/mCALC/pkg/core/logging"
)

const wsReadTimeout = 120 * time.Second

// WebSocket upgrader with permissive settings for local development
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// WebSocketHandler evaluates expressions sent over a WebSocket connection.
// Frames are answered in the order they arrive.
type WebSocketHandler struct {
	server *Server
	logger *logging.Logger
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(s *Server) *WebSocketHandler {
	return &WebSocketHandler{
		server: s,
		logger: s.logger.With("component", "websocket"),
	}
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	ID      string          `json:"id,omitempty"` // Echoed in the response
	Type    string          `json:"type"`         // "eval", "ping"
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSEvalPayload represents the eval message payload
type WSEvalPayload struct {
	Expression string `json:"expression"`
}

// WSResponse represents a WebSocket response
type WSResponse struct {
	ID      string      `json:"id,omitempty"`
	Type    string      `json:"type"`              // "result", "error", "pong"
	Payload interface{} `json:"payload,omitempty"` // *EvalResponse or ErrorResponse
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	h.handleConnection(r.Context(), conn)
}

// handleConnection handles a single WebSocket connection
func (h *WebSocketHandler) handleConnection(parent context.Context, conn *websocket.Conn) {
	defer conn.Close()

	metrics := h.server.metrics
	metrics.wsConnections.Inc()
	defer metrics.wsConnections.Dec()

	h.logger.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	defer cancel()

	// Set read deadline for ping/pong
	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		return nil
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", "error", err)
			} else {
				h.logger.Info("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		if msg.ID == "" {
			msg.ID = newRequestID()
		}

		switch msg.Type {
		case "ping":
			h.sendResponse(conn, WSResponse{ID: msg.ID, Type: "pong"})

		case "eval":
			var payload WSEvalPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				h.sendError(conn, msg.ID, string(mcerror.CodeInvalidInput), "Invalid eval payload")
				continue
			}
			h.handleEval(ctx, conn, msg.ID, payload)

		default:
			h.sendError(conn, msg.ID, string(mcerror.CodeInvalidInput), "Unknown message type: "+msg.Type)
		}
	}
}

// handleEval evaluates one expression and answers with a result or error frame
func (h *WebSocketHandler) handleEval(ctx context.Context, conn *websocket.Conn, id string, payload WSEvalPayload) {
	resp, err := h.server.evaluate(ctx, payload.Expression)
	if err != nil {
		_, body := errorBody(err)
		h.sendResponse(conn, WSResponse{ID: id, Type: "error", Payload: body})
		return
	}
	h.sendResponse(conn, WSResponse{ID: id, Type: "result", Payload: resp})
}

// sendResponse sends a response message via WebSocket
func (h *WebSocketHandler) sendResponse(conn *websocket.Conn, resp WSResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		h.logger.Error("WebSocket send error", "error", err)
	}
}

// sendError sends an error response via WebSocket
func (h *WebSocketHandler) sendError(conn *websocket.Conn, id, code, message string) {
	h.sendResponse(conn, WSResponse{
		ID:   id,
		Type: "error",
		Payload: ErrorResponse{
			Code:    code,
			Message: message,
		},
	})
}
