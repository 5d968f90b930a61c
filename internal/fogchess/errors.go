package fogchess

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove    = errors.New("illegal move")
	ErrMalformedInput = errors.New("malformed input")
	ErrInvalidFEN     = errors.New("invalid FEN")
	ErrInvariant      = errors.New("invariant violation")
	ErrGameOver       = errors.New("game is over")
)

// Reason 非法走子的原因标签。
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonOutOfTurn         Reason = "not this side's turn"
	ReasonSourceOutOfBounds Reason = "source out of bounds"
	ReasonNoPiece           Reason = "no piece of mover at source"
	ReasonWrongSide         Reason = "piece at source belongs to the opponent"
	ReasonOutOfBounds       Reason = "destination out of bounds"
	ReasonNotVisible        Reason = "destination not visible"
	ReasonOwnPiece          Reason = "destination holds own piece"
	ReasonBadShape          Reason = "piece cannot move that way"
	ReasonPathBlocked       Reason = "path is blocked"
	ReasonLeavesKingInCheck Reason = "would leave own king in check"
)

// IllegalMoveError 携带原因；errors.Is(err, ErrIllegalMove) 成立。
type IllegalMoveError struct {
	Move   Move
	Reason Reason
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %s", e.Move, e.Reason)
}

func (e *IllegalMoveError) Unwrap() error { return ErrIllegalMove }
