package fogchess

import "fmt"

const visCacheCap = 1 << 12

type visKey struct {
	hash uint64
	side Side
}

// GameState 持有权威棋盘与对局进程。只有 ApplyMove / Resign 会修改它。
type GameState struct {
	board    *Board
	toMove   Side
	captured [2][]Piece
	history  []MoveRecord
	outcome  Outcome

	visCache map[visKey]Bitboard
}

func NewGame() *GameState {
	return &GameState{
		board:    NewInitialBoard(),
		toMove:   White,
		outcome:  Outcome{Status: InProgress, Winner: NoSide},
		visCache: make(map[visKey]Bitboard),
	}
}

// NewGameFromBoard 从任意局面开局。双方必须各有且仅有一个王。
// 轮到走的一方若已无合法走法，直接判定结果。
func NewGameFromBoard(b *Board, toMove Side) (*GameState, error) {
	if toMove != White && toMove != Black {
		return nil, fmt.Errorf("%w: side to move %d", ErrInvariant, toMove)
	}
	for _, s := range []Side{White, Black} {
		if n := b.countKings(s); n != 1 {
			return nil, fmt.Errorf("%w: %s has %d kings", ErrInvariant, s, n)
		}
	}
	g := &GameState{
		board:    b.Clone(),
		toMove:   toMove,
		outcome:  Outcome{Status: InProgress, Winner: NoSide},
		visCache: make(map[visKey]Bitboard),
	}
	g.updateOutcome(toMove.Opposite())
	return g, nil
}

// Board 返回权威棋盘的副本。
func (g *GameState) Board() *Board { return g.board.Clone() }

func (g *GameState) SideToMove() Side { return g.toMove }

func (g *GameState) Outcome() Outcome { return g.outcome }

func (g *GameState) IsInProgress() bool { return g.outcome.Status == InProgress }

func (g *GameState) KingSquare(side Side) Square { return g.board.KingSquare(side) }

func (g *GameState) History() []MoveRecord {
	return append([]MoveRecord(nil), g.history...)
}

func (g *GameState) LastMove() *MoveRecord {
	if len(g.history) == 0 {
		return nil
	}
	last := g.history[len(g.history)-1]
	return &last
}

// Captured 返回 side 吃掉的对方棋子。
func (g *GameState) Captured(side Side) []Piece {
	if side != White && side != Black {
		return nil
	}
	return append([]Piece(nil), g.captured[side]...)
}

// Visible 带缓存的 VisibleSquares。键是棋盘哈希，任何修改都会换键。
func (g *GameState) Visible(side Side) Bitboard {
	if g.visCache == nil {
		g.visCache = make(map[visKey]Bitboard)
	}
	k := visKey{hash: g.board.Hash(), side: side}
	if vis, ok := g.visCache[k]; ok {
		return vis
	}
	if len(g.visCache) >= visCacheCap {
		g.visCache = make(map[visKey]Bitboard)
	}
	vis := VisibleSquares(g.board, side)
	g.visCache[k] = vis
	return vis
}

// View 返回 observer 视角的棋盘（含最近一步的揭示规则）。
func (g *GameState) View(observer Side) MaskedBoard {
	return Project(g.board, observer, g.LastMove())
}

// LegalMoves 轮到走的一方的合法走法；对局结束后为空。
func (g *GameState) LegalMoves() []Move {
	if !g.IsInProgress() {
		return nil
	}
	return LegalMoves(g.board, g.toMove)
}

// Validate 在当前局面上校验 side 的走法，不修改状态。
func (g *GameState) Validate(m Move, side Side) LegalityResult {
	if side != g.toMove {
		return illegal(m, ReasonOutOfTurn)
	}
	if !m.From.Valid() {
		return illegal(m, ReasonSourceOutOfBounds)
	}
	p := g.board.At(m.From)
	if p == NoPiece {
		return illegal(m, ReasonNoPiece)
	}
	if p.Side() != side {
		return illegal(m, ReasonWrongSide)
	}
	if !m.To.Valid() {
		return illegal(m, ReasonOutOfBounds)
	}
	return validateWith(g.board, m, side, g.Visible(side))
}

// ApplyMove 校验并落子。要么完整提交，要么状态完全不变。
func (g *GameState) ApplyMove(m Move, side Side) (MoveRecord, error) {
	if !g.IsInProgress() {
		return MoveRecord{}, ErrGameOver
	}
	if res := g.Validate(m, side); !res.Legal {
		return MoveRecord{}, res.Err()
	}

	p := g.board.At(m.From)
	placed := placedPiece(p, m)
	captured := g.board.move(m.From, m.To, placed)

	rec := MoveRecord{
		Side:         side,
		From:         m.From,
		To:           m.To,
		Piece:        p,
		WasCapture:   captured != NoPiece,
		Captured:     captured,
		WasPromotion: placed != p,
	}
	if rec.WasPromotion {
		rec.PromotedTo = placed.Kind()
	}
	if captured != NoPiece {
		g.captured[side] = append(g.captured[side], captured)
	}
	g.history = append(g.history, rec)
	g.toMove = side.Opposite()
	g.updateOutcome(side)
	return rec, nil
}

// updateOutcome 在 mover 落子后检查对方：无合法走法时，被将军为将死，否则为逼和。
func (g *GameState) updateOutcome(mover Side) {
	next := mover.Opposite()
	if HasLegalMove(g.board, next) {
		return
	}
	if IsInCheck(g.board, next) {
		g.outcome = Outcome{Status: Checkmate, Winner: mover}
		return
	}
	g.outcome = Outcome{Status: Stalemate, Winner: NoSide}
}

// Resign side 认输。
func (g *GameState) Resign(side Side) error {
	if !g.IsInProgress() {
		return ErrGameOver
	}
	if side != White && side != Black {
		return fmt.Errorf("%w: resigning side %d", ErrInvariant, side)
	}
	g.outcome = Outcome{Status: Resigned, Winner: side.Opposite()}
	return nil
}
