package fogchess

type Side int8

const (
	NoSide Side = -1
	White  Side = 0 // 先手
	Black  Side = 1 // 后手
)

func (s Side) Opposite() Side {
	switch s {
	case White:
		return Black
	case Black:
		return White
	}
	return NoSide
}

func (s Side) String() string {
	switch s {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

type PieceKind int8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

// Piece 0=空；>0 白；<0 黑；abs=PieceKind
type Piece int8

const NoPiece Piece = 0

func MakePiece(side Side, k PieceKind) Piece {
	if k == NoKind || side == NoSide {
		return NoPiece
	}
	if side == White {
		return Piece(k)
	}
	return -Piece(k)
}

func (p Piece) Kind() PieceKind {
	if p < 0 {
		return PieceKind(-p)
	}
	return PieceKind(p)
}

func (p Piece) Side() Side {
	if p == 0 {
		return NoSide
	}
	if p > 0 {
		return White
	}
	return Black
}

func (p Piece) IsEmpty() bool { return p == NoPiece }

// Move 是一次走子请求；只有成功应用后才进入历史。
type Move struct {
	From      Square    `json:"from"`
	To        Square    `json:"to"`
	Promotion PieceKind `json:"promotion,omitempty"`
}

// MoveRecord 记录最近一步的事实，供视野投影的揭示规则使用。
type MoveRecord struct {
	Side         Side      `json:"side"`
	From         Square    `json:"from"`
	To           Square    `json:"to"`
	Piece        Piece     `json:"piece"`
	WasCapture   bool      `json:"was_capture"`
	Captured     Piece     `json:"captured,omitempty"`
	WasPromotion bool      `json:"was_promotion"`
	PromotedTo   PieceKind `json:"promoted_to,omitempty"`
}

func (r MoveRecord) Move() Move {
	m := Move{From: r.From, To: r.To}
	if r.WasPromotion {
		m.Promotion = r.PromotedTo
	}
	return m
}

type Status int8

const (
	InProgress Status = iota
	Checkmate
	Stalemate
	Resigned
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Resigned:
		return "resigned"
	}
	return "unknown"
}

// Outcome: Winner 仅在 Checkmate / Resigned 时有意义，其余为 NoSide。
type Outcome struct {
	Status Status
	Winner Side
}

func (o Outcome) String() string {
	if o.Winner == NoSide {
		return o.Status.String()
	}
	return o.Status.String() + " (" + o.Winner.String() + " wins)"
}
