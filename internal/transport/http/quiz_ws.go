package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"humorpedia-web/internal/app"
	"humorpedia-web/internal/logging"
	"humorpedia-web/internal/quiz"
)

// QuizWSHandler drives interactive quiz sessions over a websocket. The
// session itself lives in the session store, not on the connection, so a
// dropped socket can resume its run by presenting the session id again.
type QuizWSHandler struct {
	service  *app.QuizService
	log      *logging.Logger
	upgrader websocket.Upgrader
}

func NewQuizWSHandler(service *app.QuizService, log *logging.Logger) *QuizWSHandler {
	return &QuizWSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type startPayload struct {
	Session string `json:"session,omitempty"`
}

type selectPayload struct {
	Option int `json:"option"`
}

type inputPayload struct {
	Text string `json:"text"`
}

// Serve upgrades the request and runs the quiz message loop. The quiz slug
// comes from the query string; the client then steers the session with
// start, select, input, advance and restart messages.
func (h *QuizWSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("quiz")
	if slug == "" {
		http.Error(w, "missing quiz", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debugf("ws write error: %v", err)
				return
			}
		}
	}()

	var sessionID string
	for {
		var inbound wsMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}

		switch inbound.Type {
		case "start":
			var payload startPayload
			if len(inbound.Payload) > 0 {
				if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
					send <- errorReply("invalid start payload")
					continue
				}
			}
			state, err := h.service.StartSession(r.Context(), slug, payload.Session)
			if err != nil {
				send <- errorReply(err.Error())
				continue
			}
			sessionID = state.SessionID
			send <- stateReply(state)

		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorReply("invalid select payload")
				continue
			}
			h.reply(send, h.service.Select(r.Context(), sessionID, payload.Option))

		case "input":
			var payload inputPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorReply("invalid input payload")
				continue
			}
			h.reply(send, h.service.SetInput(r.Context(), sessionID, payload.Text))

		case "advance":
			h.reply(send, h.service.Advance(r.Context(), sessionID))

		case "restart":
			h.reply(send, h.service.Restart(r.Context(), sessionID))

		default:
			send <- errorReply("unsupported message type")
		}
	}

	// The session stays in the store so the client can resume after a
	// reconnect; expiry is the store's job.
	close(send)
	<-writerDone
}

func (h *QuizWSHandler) reply(send chan<- outboundMessage[any], state quiz.State, err error) {
	if err != nil {
		send <- errorReply(err.Error())
		return
	}
	send <- stateReply(state)
}

// stateReply labels scored snapshots distinctly so clients can switch to the
// result screen without inspecting the phase field.
func stateReply(state quiz.State) outboundMessage[any] {
	if state.Phase == quiz.PhaseScored {
		return outboundMessage[any]{Type: "scored", Payload: state}
	}
	return outboundMessage[any]{Type: "state", Payload: state}
}

func errorReply(message string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: message}}
}
