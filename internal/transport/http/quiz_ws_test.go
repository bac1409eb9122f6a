package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"humorpedia-web/internal/app"
	"humorpedia-web/internal/domain"
	"humorpedia-web/internal/infra/memory"
)

func quizEntity(t *testing.T) domain.Entity {
	t.Helper()
	questions, err := json.Marshal(domain.QuizQuestionsData{
		Questions: []domain.QuizQuestion{
			{
				Prompt: "Кто ведёт «Вечерний Ургант»?",
				Options: []domain.QuizOption{
					{Text: "Иван Ургант", Correct: true},
					{Text: "Максим Галкин"},
				},
			},
			{
				Prompt: "В каком году впервые вышел КВН?",
				Options: []domain.QuizOption{
					{Text: "1961", Correct: true},
					{Text: "1971"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("marshal questions: %v", err)
	}
	results, err := json.Marshal(domain.QuizResultsData{
		Results: []domain.QuizResultRange{
			{MinScore: 0, MaxScore: 50, Title: "Новичок"},
			{MinScore: 51, MaxScore: 100, Title: "Знаток"},
		},
	})
	if err != nil {
		t.Fatalf("marshal results: %v", err)
	}
	return domain.Entity{
		ID:          "q1",
		ContentType: domain.TypeQuiz,
		Title:       "Квиз о юморе",
		Slug:        "kviz-o-yumore",
		Status:      "published",
		Modules: []domain.Module{
			{Type: domain.ModuleQuizQuestions, Order: 1, Data: questions},
			{Type: domain.ModuleQuizResults, Order: 2, Data: results},
		},
	}
}

func newQuizServer(t *testing.T) *httptest.Server {
	t.Helper()
	entities := memory.NewEntityCache(memory.NewStaticLoader(quizEntity(t)), time.Minute)
	pages := app.NewPageService(entities, &staticSections{}, nil, nil, testLogger())
	search := app.NewSearchService(nil, 5)
	quizzes := app.NewQuizService(memory.NewSessionStore(time.Minute), entities)

	server := httptest.NewServer(testRouter(pages, search, quizzes))
	t.Cleanup(server.Close)
	return server
}

func dialWS(t *testing.T, server *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + path
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", path, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s (payload %v)", expect, msg.Type, msg.Payload)
	}
	return msg.Type, msg.Payload
}

func writeWS(conn *websocket.Conn, t *testing.T, msgType string, payload any) {
	t.Helper()
	msg := map[string]any{"type": msgType}
	if payload != nil {
		msg["payload"] = payload
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

func TestQuizWSFullRun(t *testing.T) {
	server := newQuizServer(t)
	conn := dialWS(t, server, "/ws/quiz?quiz=kviz-o-yumore")

	writeWS(conn, t, "start", nil)
	_, state := readNext(conn, t, "state")
	if state["phase"] != "in_progress" || state["total"] != float64(2) {
		t.Fatalf("unexpected start state: %v", state)
	}
	if state["session_id"] == "" {
		t.Fatalf("expected a session id")
	}

	writeWS(conn, t, "select", map[string]any{"option": 0})
	_, state = readNext(conn, t, "state")
	if state["answered"] != true {
		t.Fatalf("expected answered after select: %v", state)
	}

	writeWS(conn, t, "advance", nil)
	_, state = readNext(conn, t, "state")
	if state["index"] != float64(1) {
		t.Fatalf("expected second question: %v", state)
	}

	writeWS(conn, t, "select", map[string]any{"option": 1})
	readNext(conn, t, "state")

	writeWS(conn, t, "advance", nil)
	_, state = readNext(conn, t, "scored")
	outcome, ok := state["outcome"].(map[string]any)
	if !ok {
		t.Fatalf("expected outcome in scored state: %v", state)
	}
	score := outcome["score"].(map[string]any)
	if score["correct"] != float64(1) || score["percentage"] != float64(50) {
		t.Fatalf("unexpected score: %v", score)
	}
	result := outcome["result"].(map[string]any)
	if result["title"] != "Новичок" {
		t.Fatalf("unexpected result bucket: %v", result)
	}
}

func TestQuizWSResume(t *testing.T) {
	server := newQuizServer(t)

	conn := dialWS(t, server, "/ws/quiz?quiz=kviz-o-yumore")
	writeWS(conn, t, "start", nil)
	_, state := readNext(conn, t, "state")
	sessionID, _ := state["session_id"].(string)
	if sessionID == "" {
		t.Fatalf("expected a session id, got %v", state)
	}

	writeWS(conn, t, "select", map[string]any{"option": 0})
	readNext(conn, t, "state")
	writeWS(conn, t, "advance", nil)
	readNext(conn, t, "state")
	conn.Close()

	// A new socket picks the run back up mid-quiz.
	conn2 := dialWS(t, server, "/ws/quiz?quiz=kviz-o-yumore")
	writeWS(conn2, t, "start", map[string]any{"session": sessionID})
	_, state = readNext(conn2, t, "state")
	if state["session_id"] != sessionID {
		t.Fatalf("expected to resume session %s, got %v", sessionID, state)
	}
	if state["index"] != float64(1) {
		t.Fatalf("expected resume on second question: %v", state)
	}
}

func TestQuizWSRequiresSlug(t *testing.T) {
	server := newQuizServer(t)

	u := "ws" + server.URL[len("http"):] + "/ws/quiz"
	if _, _, err := websocket.DefaultDialer.Dial(u, nil); err == nil {
		t.Fatalf("expected handshake to fail without quiz slug")
	}
}

func TestQuizWSErrors(t *testing.T) {
	server := newQuizServer(t)
	conn := dialWS(t, server, "/ws/quiz?quiz=kviz-o-yumore")

	// Acting before start has no session to act on.
	writeWS(conn, t, "advance", nil)
	_, payload := readNext(conn, t, "error")
	if payload["message"] != "quiz session not found" {
		t.Fatalf("unexpected error: %v", payload)
	}

	writeWS(conn, t, "start", nil)
	readNext(conn, t, "state")

	writeWS(conn, t, "select", map[string]any{"option": 5})
	_, payload = readNext(conn, t, "error")
	if payload["message"] != "option index out of range" {
		t.Fatalf("unexpected error: %v", payload)
	}

	writeWS(conn, t, "advance", nil)
	_, payload = readNext(conn, t, "error")
	if payload["message"] != "current question not answered" {
		t.Fatalf("unexpected error: %v", payload)
	}

	writeWS(conn, t, "nonsense", nil)
	_, payload = readNext(conn, t, "error")
	if payload["message"] != "unsupported message type" {
		t.Fatalf("unexpected error: %v", payload)
	}
}

func TestQuizWSUnknownQuiz(t *testing.T) {
	server := newQuizServer(t)
	conn := dialWS(t, server, "/ws/quiz?quiz=missing")

	writeWS(conn, t, "start", nil)
	_, payload := readNext(conn, t, "error")
	if payload["message"] != "content not found" {
		t.Fatalf("unexpected error: %v", payload)
	}
}
