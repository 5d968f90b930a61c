package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"fogchess/internal/fogchess"
	"fogchess/internal/server/game"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := ErrorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	var ime *fogchess.IllegalMoveError
	switch {
	case errors.As(err, &ime):
		status = http.StatusUnprocessableEntity
		resp.Reason = string(ime.Reason)
	case errors.Is(err, fogchess.ErrMalformedInput):
		status = http.StatusBadRequest
	case errors.Is(err, game.ErrGameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrWrongSeat):
		status = http.StatusForbidden
	case errors.Is(err, fogchess.ErrGameOver):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, resp)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(fogchess.ErrMalformedInput, err)
	}
	return nil
}

// observer 解析 ?side=，缺省为会话的默认视角。AI 模式下引擎一方只在 -debug 时可看。
func (s *Server) observer(r *http.Request, sess *game.Session) (fogchess.Side, error) {
	side := sess.DefaultObserver()
	if raw := r.URL.Query().Get("side"); raw != "" {
		var err error
		if side, err = fogchess.ParseSide(raw); err != nil {
			return fogchess.NoSide, err
		}
	}
	if err := sess.CheckObserver(side, s.cfg.Debug); err != nil {
		return fogchess.NoSide, err
	}
	return side, nil
}

func (s *Server) view(sess *game.Session, side fogchess.Side, debug bool) ViewDTO {
	v := snapshotToDTO(sess.View(side))
	if debug && s.cfg.Debug {
		b, toMove := sess.Board()
		v.FullBoard = fogchess.EncodeFEN(b, toMove)
	}
	return v
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	mode, err := game.ParseMode(req.Mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	human := fogchess.NoSide
	if mode == game.ModeAI {
		human = fogchess.White
		if req.Side != "" {
			if human, err = fogchess.ParseSide(req.Side); err != nil {
				s.writeError(w, r, err)
				return
			}
		}
	}

	sess, err := s.mgr.NewGame(r.Context(), mode, human)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	seat := human
	if seat == fogchess.NoSide {
		seat = fogchess.White
	}
	writeJSON(w, http.StatusOK, NewGameResponse{
		GameID: sess.ID,
		View:   s.view(sess, seat, false),
	})
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	sess, err := s.mgr.Get(req.GameID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	side, err := fogchess.ParseSide(req.Side)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := fogchess.ParseMove(req.Move)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := sess.Play(r.Context(), side, m)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PlayResponse{
		Move:        recordToDTO(res.Move),
		EngineMoved: res.Reply != nil,
		View:        s.view(sess, side, false),
	})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, GamesResponse{Games: s.mgr.List()})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
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
	if _, err := sess.Advance(r.Context()); err != nil {
		s.log.Warn("engine move deferred", zap.String("game", sess.ID), zap.Error(err))
	}
	writeJSON(w, http.StatusOK, s.view(sess, side, r.URL.Query().Get("debug") == "1"))
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.mgr.Delete(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResign(w http.ResponseWriter, r *http.Request) {
	sess, err := s.mgr.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req ResignRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	side, err := fogchess.ParseSide(req.Side)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := sess.Resign(side); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.view(sess, side, false))
}
