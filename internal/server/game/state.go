package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"fogchess/internal/engine"
	"fogchess/internal/fogchess"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrWrongSeat    = errors.New("side is played by the engine")
)

type Mode string

const (
	ModeAI        Mode = "ai"
	ModeTwoPlayer Mode = "two"
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ai":
		return ModeAI, nil
	case "two", "pvp", "human":
		return ModeTwoPlayer, nil
	}
	return "", fmt.Errorf("%w: mode %q", fogchess.ErrMalformedInput, s)
}

// Session 一局对局。所有对 GameState 的读写都在 mu 之下。
type Session struct {
	ID        string
	Mode      Mode
	Human     fogchess.Side // 仅 ModeAI 有意义
	CreatedAt time.Time

	mu        sync.Mutex
	game      *fogchess.GameState
	updatedAt time.Time

	eng      *engine.Engine
	log      *zap.Logger
	onChange func(id string)
}

// PlayResult 一次提交的结果：玩家那步，以及 AI 模式下引擎的应答（可能为空）。
type PlayResult struct {
	Move  fogchess.MoveRecord
	Reply *fogchess.MoveRecord
}

// Snapshot 某一方视角的会话状态，不含权威棋盘。
type Snapshot struct {
	ID         string
	Mode       Mode
	Observer   fogchess.Side
	ToMove     fogchess.Side
	Outcome    fogchess.Outcome
	View       fogchess.MaskedBoard
	LegalMoves []fogchess.Move
	Captured   []fogchess.Piece
	Plies      int
	UpdatedAt  time.Time
}

func (s *Session) engineSide() fogchess.Side {
	if s.Mode != ModeAI {
		return fogchess.NoSide
	}
	return s.Human.Opposite()
}

// CheckObserver AI 模式下只允许玩家一方取视角；引擎那一方的视角包含它全部棋子，
// 只在 allowEngine（调试模式）时放行。
func (s *Session) CheckObserver(side fogchess.Side, allowEngine bool) error {
	if side != fogchess.White && side != fogchess.Black {
		return fmt.Errorf("%w: side %d", fogchess.ErrMalformedInput, side)
	}
	if side == s.engineSide() && !allowEngine {
		return ErrWrongSeat
	}
	return nil
}

// DefaultObserver 未指定视角时使用的一方：AI 模式是玩家，双人模式是白方。
func (s *Session) DefaultObserver() fogchess.Side {
	if s.Mode == ModeAI {
		return s.Human
	}
	return fogchess.White
}

// Play 提交 side 的走法。AI 模式下只接受玩家那一方，随后引擎立即应答。
func (s *Session) Play(ctx context.Context, side fogchess.Side, m fogchess.Move) (PlayResult, error) {
	if side != fogchess.White && side != fogchess.Black {
		return PlayResult{}, fmt.Errorf("%w: side %d", fogchess.ErrMalformedInput, side)
	}
	s.mu.Lock()
	if side == s.engineSide() {
		s.mu.Unlock()
		return PlayResult{}, ErrWrongSeat
	}
	rec, err := s.game.ApplyMove(m, side)
	if err != nil {
		s.mu.Unlock()
		return PlayResult{}, err
	}
	s.updatedAt = time.Now()
	res := PlayResult{Move: rec}
	s.log.Debug("move applied",
		zap.String("game", s.ID),
		zap.Stringer("side", side),
		zap.Stringer("move", rec.Move()),
		zap.Stringer("outcome", s.game.Outcome()))

	reply, err := s.advanceLocked(ctx)
	if err != nil {
		s.log.Warn("engine reply deferred", zap.String("game", s.ID), zap.Error(err))
	}
	res.Reply = reply
	s.mu.Unlock()

	s.notify()
	return res, nil
}

// Advance 轮到引擎时让它走一步；否则什么也不做。
func (s *Session) Advance(ctx context.Context) (*fogchess.MoveRecord, error) {
	s.mu.Lock()
	rec, err := s.advanceLocked(ctx)
	s.mu.Unlock()
	if rec != nil {
		s.notify()
	}
	return rec, err
}

func (s *Session) advanceLocked(ctx context.Context) (*fogchess.MoveRecord, error) {
	side := s.engineSide()
	if side == fogchess.NoSide || !s.game.IsInProgress() || s.game.SideToMove() != side {
		return nil, nil
	}
	res, err := s.eng.Search(ctx, s.game.Board(), side, engine.SearchConfig{})
	if err != nil {
		return nil, err
	}
	rec, err := s.game.ApplyMove(res.BestMove, side)
	if err != nil {
		// 引擎只从 LegalMoves 里挑，走到这里说明规则层出了问题
		return nil, fmt.Errorf("%w: engine move %s: %v", fogchess.ErrInvariant, res.BestMove, err)
	}
	s.updatedAt = time.Now()
	s.log.Debug("engine moved",
		zap.String("game", s.ID),
		zap.Stringer("move", rec.Move()),
		zap.Int("candidates", res.Candidates),
		zap.Duration("took", res.TimeUsed))
	return &rec, nil
}

// View 生成 observer 视角的快照。合法走法只在轮到 observer 时给出。
func (s *Session) View(observer fogchess.Side) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:        s.ID,
		Mode:      s.Mode,
		Observer:  observer,
		ToMove:    s.game.SideToMove(),
		Outcome:   s.game.Outcome(),
		View:      s.game.View(observer),
		Captured:  s.game.Captured(observer),
		Plies:     len(s.game.History()),
		UpdatedAt: s.updatedAt,
	}
	if observer == snap.ToMove {
		snap.LegalMoves = s.game.LegalMoves()
	}
	return snap
}

// LegalMoves 轮到 side 时返回其合法走法，否则为空。
func (s *Session) LegalMoves(side fogchess.Side) []fogchess.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	if side != s.game.SideToMove() {
		return nil
	}
	return s.game.LegalMoves()
}

// Board 权威棋盘副本，仅供调试输出。
func (s *Session) Board() (*fogchess.Board, fogchess.Side) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Board(), s.game.SideToMove()
}

func (s *Session) Outcome() fogchess.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Outcome()
}

func (s *Session) Resign(side fogchess.Side) error {
	s.mu.Lock()
	if side == s.engineSide() {
		s.mu.Unlock()
		return ErrWrongSeat
	}
	err := s.game.Resign(side)
	if err == nil {
		s.updatedAt = time.Now()
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.log.Info("resigned", zap.String("game", s.ID), zap.Stringer("side", side))
	s.notify()
	return nil
}

func (s *Session) notify() {
	if s.onChange != nil {
		s.onChange(s.ID)
	}
}
