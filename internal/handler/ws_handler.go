package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/kinderbook/internal/service"
	ws "github.com/stemsi/kinderbook/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams score changes to websocket clients.
type WSHandler struct {
	bookService *service.BookService
	hub         *ws.Hub
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(bookService *service.BookService, hub *ws.Hub, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		bookService: bookService,
		hub:         hub,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// ScoreStream godoc
// WS /ws/v1/scores
// Pushes a score_changed event for every enrollment and score change.
// Clients may send {"action":"filter","subject":"math"} to narrow the
// stream and {"action":"ping"}.
func (h *WSHandler) ScoreStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	client := h.hub.Register()
	wsLog := h.log.With().Str("client_id", client.ID).Logger()
	wsLog.Info().Msg("Score stream client connected")

	// Only the writer goroutine writes to conn; replies to client actions
	// are handed over through replies.
	replies := make(chan any, 8)
	done := make(chan struct{})
	writerDone := make(chan struct{})
	go h.writeLoop(conn, client, replies, done, writerDone, wsLog)

	reply := func(v any) {
		select {
		case replies <- v:
		case <-writerDone:
		}
	}

	defer func() {
		close(done)
		h.hub.Unregister(client)
		<-writerDone
		wsLog.Info().Msg("Score stream client disconnected")
	}()

	for {
		var raw json.RawMessage
		if err := ws.ReadJSON(conn, &raw); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		var env ws.RequestEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			reply(ws.ErrorResponse{Event: ws.EventError, Error: "invalid message"})
			continue
		}

		switch env.Action {
		case ws.ActionPing:
			reply(ws.PongResponse{Event: ws.EventPong})
		case ws.ActionFilter:
			reply(h.handleFilter(client, raw))
		default:
			wsLog.Warn().Str("action", string(env.Action)).Msg("Unknown action")
			reply(ws.ErrorResponse{Event: ws.EventError, Error: "unknown action: " + string(env.Action)})
		}
	}
}

// handleFilter narrows client to one subject. An empty subject clears
// the filter.
func (h *WSHandler) handleFilter(client *ws.Client, raw json.RawMessage) any {
	var req ws.FilterRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return ws.ErrorResponse{Event: ws.EventError, Error: "invalid filter request"}
	}

	if strings.TrimSpace(req.Subject) == "" {
		client.SetFilter("")
		return ws.FilteredResponse{Event: ws.EventFiltered}
	}

	name, _, err := h.bookService.SubjectScores(req.Subject)
	if err != nil {
		return ws.ErrorResponse{Event: ws.EventError, Error: err.Error()}
	}
	client.SetFilter(name)
	return ws.FilteredResponse{Event: ws.EventFiltered, Subject: name}
}

func (h *WSHandler) writeLoop(conn *websocket.Conn, client *ws.Client, replies <-chan any, done <-chan struct{}, writerDone chan<- struct{}, log zerolog.Logger) {
	defer close(writerDone)
	for {
		select {
		case <-done:
			return
		case reply := <-replies:
			if err := ws.WriteTyped(conn, reply); err != nil {
				log.Debug().Err(err).Msg("Reply write failed")
				return
			}
		case e, ok := <-client.Send:
			if !ok {
				return
			}
			if err := ws.WriteTyped(conn, e); err != nil {
				log.Debug().Err(err).Msg("Event write failed")
				return
			}
		}
	}
}
