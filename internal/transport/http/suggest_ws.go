package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"humorpedia-web/internal/app"
	"humorpedia-web/internal/domain"
	"humorpedia-web/internal/logging"
)

const defaultSuggestDebounce = 300 * time.Millisecond

// SuggestWSHandler streams live search suggestions. Keystrokes arrive as
// query messages; the handler debounces them and pushes back suggestion
// lists, discarding results a newer query has made stale.
type SuggestWSHandler struct {
	service  *app.SearchService
	log      *logging.Logger
	delay    time.Duration
	upgrader websocket.Upgrader
}

func NewSuggestWSHandler(service *app.SearchService, log *logging.Logger, delay time.Duration) *SuggestWSHandler {
	if delay <= 0 {
		delay = defaultSuggestDebounce
	}
	return &SuggestWSHandler{
		service: service,
		log:     log,
		delay:   delay,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type queryPayload struct {
	Query string `json:"q"`
}

type suggestionsPayload struct {
	Query string              `json:"q"`
	Items []domain.Suggestion `json:"items"`
}

// Serve upgrades the request and runs the suggestion loop.
func (h *SuggestWSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	results := make(chan suggestionsPayload, 4)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	forwardDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debugf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(forwardDone)
		for {
			select {
			case res := <-results:
				select {
				case send <- outboundMessage[any]{Type: "suggestions", Payload: res}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	deb := newDebouncer(h.delay)

	for {
		var inbound wsMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if inbound.Type != "query" {
			send <- errorReply("unsupported message type")
			continue
		}
		var payload queryPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			send <- errorReply("invalid query payload")
			continue
		}

		query := payload.Query
		deb.Trigger(func(gen uint64) {
			items, err := h.service.Suggest(r.Context(), query)
			if err != nil && !errors.Is(err, domain.ErrQueryTooShort) {
				h.log.Warnf("suggest failed: %v", err)
				return
			}
			// A too-short query clears the dropdown instead of erroring.
			if items == nil {
				items = []domain.Suggestion{}
			}
			if !deb.Current(gen) {
				return
			}
			select {
			case results <- suggestionsPayload{Query: query, Items: items}:
			case <-closeSignals:
			}
		})
	}

	close(closeSignals)
	deb.Stop()
	<-forwardDone
	close(send)
	<-writerDone
}
