package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess, err := s.mgr.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	side, err := s.observer(r, sess)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{gameID: sess.ID, observer: side, send: make(chan []byte, 16)}
	s.hub.Register(client)
	client.sendJSON(viewMessage(sess, side))
	s.log.Debug("ws connected",
		zap.String("game", sess.ID),
		zap.Stringer("observer", side),
		zap.Int("clients", s.hub.Clients(sess.ID)))

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send, s.cfg.WSPingInterval); err != nil {
			s.log.Debug("ws write stopped", zap.String("game", sess.ID), zap.Error(err))
		}
	}()

	// 客户端不发指令，读循环只用来发现断开
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.hub.Unregister(client)
			s.log.Debug("ws disconnected", zap.String("game", sess.ID), zap.Int("clients", s.hub.Clients(sess.ID)))
			return
		}
	}
}

func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	lastWrite := time.Now()
	pingPayload := mustMarshal(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < interval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, pingPayload); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
