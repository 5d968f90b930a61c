package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"fogchess/internal/engine"
	"fogchess/internal/server/game"
)

func newTestServer(t *testing.T, debug bool) *Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Debug = debug
	srv := NewServer(cfg, game.NewManager(engine.NewEngine(5), zap.NewNop()), zap.NewNop())
	done := make(chan struct{})
	go srv.Hub().Run(done)
	t.Cleanup(func() { close(done) })
	return srv
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func newGame(t *testing.T, h http.Handler, mode, side string) NewGameResponse {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/new_game", NewGameRequest{Mode: mode, Side: side})
	if rec.Code != http.StatusOK {
		t.Fatalf("new_game status=%d body=%s", rec.Code, rec.Body.String())
	}
	return decode[NewGameResponse](t, rec)
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestServer(t, false), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestNewGameAndViews(t *testing.T) {
	srv := newTestServer(t, false)
	ng := newGame(t, srv, "two", "")
	if ng.GameID == "" {
		t.Fatalf("missing game id")
	}
	if len(ng.View.Board) != 8 || ng.View.Board[0] != "????????" || ng.View.Board[7] != "RNBQKBNR" {
		t.Fatalf("white start view: %v", ng.View.Board)
	}
	if len(ng.View.LegalMoves) != 20 || ng.View.Status != "ongoing" || ng.View.ToMove != "white" {
		t.Fatalf("start view: %+v", ng.View)
	}

	rec := do(t, srv, http.MethodPost, "/api/play", PlayRequest{GameID: ng.GameID, Side: "white", Move: "e2e4"})
	if rec.Code != http.StatusOK {
		t.Fatalf("play status=%d body=%s", rec.Code, rec.Body.String())
	}
	play := decode[PlayResponse](t, rec)
	if play.Move.UCI != "e2e4" || play.EngineMoved {
		t.Fatalf("play response: %+v", play)
	}
	if play.View.Board[4] != "....P..." {
		t.Fatalf("white rank 4: %q", play.View.Board[4])
	}

	rec = do(t, srv, http.MethodGet, "/api/games/"+ng.GameID+"?side=black", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("view status=%d", rec.Code)
	}
	black := decode[ViewDTO](t, rec)
	if black.Board[4] != "????????" || black.Board[0] != "rnbqkbnr" {
		t.Fatalf("black view leaks or misses: %v", black.Board)
	}
	if black.ToMove != "black" || len(black.LegalMoves) != 20 {
		t.Fatalf("black view: to_move=%s legal=%d", black.ToMove, len(black.LegalMoves))
	}
	if black.FullBoard != "" {
		t.Fatalf("full board must not leak without debug")
	}

	list := decode[GamesResponse](t, do(t, srv, http.MethodGet, "/api/games", nil))
	if len(list.Games) != 1 || list.Games[0] != ng.GameID {
		t.Fatalf("games: %v", list.Games)
	}
}

func TestPlayErrors(t *testing.T) {
	srv := newTestServer(t, false)
	ng := newGame(t, srv, "two", "")

	tests := []struct {
		name   string
		body   any
		status int
		reason string
	}{
		{"bad json", "{", http.StatusBadRequest, ""},
		{"unknown game", PlayRequest{GameID: "nope", Side: "white", Move: "e2e4"}, http.StatusNotFound, ""},
		{"bad side", PlayRequest{GameID: ng.GameID, Side: "red", Move: "e2e4"}, http.StatusBadRequest, ""},
		{"bad move text", PlayRequest{GameID: ng.GameID, Side: "white", Move: "e2"}, http.StatusBadRequest, ""},
		{"fog", PlayRequest{GameID: ng.GameID, Side: "white", Move: "a1a5"}, http.StatusUnprocessableEntity, "destination not visible"},
		{"out of turn", PlayRequest{GameID: ng.GameID, Side: "black", Move: "e7e5"}, http.StatusUnprocessableEntity, "not this side's turn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/api/play", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status: got=%d want=%d body=%s", rec.Code, tt.status, rec.Body.String())
			}
			if resp := decode[ErrorResponse](t, rec); resp.Reason != tt.reason {
				t.Fatalf("reason: got=%q want=%q", resp.Reason, tt.reason)
			}
		})
	}
}

func TestAIGameFlow(t *testing.T) {
	srv := newTestServer(t, false)
	ng := newGame(t, srv, "ai", "white")

	rec := do(t, srv, http.MethodPost, "/api/play", PlayRequest{GameID: ng.GameID, Side: "black", Move: "e7e5"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("engine seat status=%d", rec.Code)
	}

	rec = do(t, srv, http.MethodPost, "/api/play", PlayRequest{GameID: ng.GameID, Side: "white", Move: "d2d4"})
	if rec.Code != http.StatusOK {
		t.Fatalf("play status=%d body=%s", rec.Code, rec.Body.String())
	}
	play := decode[PlayResponse](t, rec)
	if !play.EngineMoved || play.View.ToMove != "white" || play.View.Plies != 2 {
		t.Fatalf("engine should have replied: %+v", play)
	}
}

func TestAIGameHidesEngineView(t *testing.T) {
	srv := newTestServer(t, false)
	ng := newGame(t, srv, "ai", "white")

	rec := do(t, srv, http.MethodGet, "/api/games/"+ng.GameID+"?side=black", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("engine view status=%d body=%s", rec.Code, rec.Body.String())
	}
	if v := decode[ErrorResponse](t, rec); v.Error == "" {
		t.Fatalf("missing error message")
	}

	rec = do(t, srv, http.MethodGet, "/api/games/"+ng.GameID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("default view status=%d", rec.Code)
	}
	if v := decode[ViewDTO](t, rec); v.Observer != "white" || v.Board[0] != "????????" {
		t.Fatalf("default view should be the human seat: %+v", v)
	}

	ts := httptest.NewServer(srv)
	defer ts.Close()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/" + ng.GameID + "?side=black"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatalf("ws dial for the engine side should fail")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("ws engine view response: %+v", resp)
	}

	dbg := newTestServer(t, true)
	ng = newGame(t, dbg, "ai", "black")
	rec = do(t, dbg, http.MethodGet, "/api/games/"+ng.GameID+"?side=white", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("debug server engine view status=%d", rec.Code)
	}
}

func TestResign(t *testing.T) {
	srv := newTestServer(t, false)
	ng := newGame(t, srv, "two", "")

	rec := do(t, srv, http.MethodPost, "/api/games/"+ng.GameID+"/resign", ResignRequest{Side: "white"})
	if rec.Code != http.StatusOK {
		t.Fatalf("resign status=%d body=%s", rec.Code, rec.Body.String())
	}
	v := decode[ViewDTO](t, rec)
	if v.Status != "resigned" || v.Winner != "black" || len(v.LegalMoves) != 0 {
		t.Fatalf("after resign: %+v", v)
	}

	rec = do(t, srv, http.MethodPost, "/api/play", PlayRequest{GameID: ng.GameID, Side: "white", Move: "e2e4"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("play after resign status=%d", rec.Code)
	}

	rec = do(t, srv, http.MethodDelete, "/api/games/"+ng.GameID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status=%d", rec.Code)
	}
	rec = do(t, srv, http.MethodGet, "/api/games/"+ng.GameID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status=%d", rec.Code)
	}
}

func TestDebugBoard(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		srv := newTestServer(t, enabled)
		ng := newGame(t, srv, "two", "")
		v := decode[ViewDTO](t, do(t, srv, http.MethodGet, "/api/games/"+ng.GameID+"?debug=1", nil))
		if enabled && !strings.HasPrefix(v.FullBoard, "rnbqkbnr/pppppppp/") {
			t.Fatalf("debug server should return full board, got %q", v.FullBoard)
		}
		if !enabled && v.FullBoard != "" {
			t.Fatalf("full board leaked without -debug")
		}
	}
}

func TestWebsocketPushesView(t *testing.T) {
	srv := newTestServer(t, false)
	ts := httptest.NewServer(srv)
	defer ts.Close()
	ng := newGame(t, srv, "two", "")

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/" + ng.GameID + "?side=black"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	read := func() ViewDTO {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		for {
			var msg wsMessage
			if err := conn.ReadJSON(&msg); err != nil {
				t.Fatalf("read: %v", err)
			}
			if msg.Type != "view" {
				continue
			}
			var v ViewDTO
			if err := json.Unmarshal(msg.Payload, &v); err != nil {
				t.Fatalf("payload: %v", err)
			}
			return v
		}
	}

	first := read()
	if first.Observer != "black" || first.Plies != 0 {
		t.Fatalf("initial push: %+v", first)
	}

	rec := do(t, srv, http.MethodPost, "/api/play", PlayRequest{GameID: ng.GameID, Side: "white", Move: "e2e4"})
	if rec.Code != http.StatusOK {
		t.Fatalf("play status=%d", rec.Code)
	}
	next := read()
	if next.Plies != 1 || next.ToMove != "black" {
		t.Fatalf("push after move: %+v", next)
	}
	if next.Board[4] != "????????" {
		t.Fatalf("black push leaks white's move: %v", next.Board)
	}
}
