package httpserver

import (
	"fogchess/internal/fogchess"
	"fogchess/internal/server/game"
)

// 前端用的招法结构，坐标用 "e2" 这样的字符串
type MoveDTO struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
	UCI       string `json:"uci"`
}

type MoveRecordDTO struct {
	MoveDTO
	Side       string `json:"side"`
	Piece      string `json:"piece"`
	Capture    bool   `json:"capture"`
	Captured   string `json:"captured,omitempty"`
	PromotedTo string `json:"promoted_to,omitempty"`
}

// NewGame 请求
type NewGameRequest struct {
	Mode string `json:"mode"` // "ai" / "two"
	Side string `json:"side"` // AI 模式下玩家执哪一方
}

// Play 请求：move 用 "e2e4"，升变可带后缀 "e7e8n"
type PlayRequest struct {
	GameID string `json:"game_id"`
	Side   string `json:"side"`
	Move   string `json:"move"`
}

type ResignRequest struct {
	Side string `json:"side"`
}

// ViewDTO 某一方看到的对局。Board 从第 8 横线到第 1 横线，'?' 为迷雾。
type ViewDTO struct {
	GameID     string    `json:"game_id"`
	Mode       string    `json:"mode"`
	Observer   string    `json:"observer"`
	ToMove     string    `json:"to_move"`
	Status     string    `json:"status"`
	Winner     string    `json:"winner,omitempty"`
	Board      []string  `json:"board"`
	Visible    []string  `json:"visible"`
	LegalMoves []MoveDTO `json:"legal_moves"`
	Captured   []string  `json:"captured"`
	Plies      int       `json:"plies"`

	// 仅在服务端开启 debug 且请求 ?debug=1 时出现
	FullBoard string `json:"full_board,omitempty"`
}

// PlayResponse 不包含引擎应答的具体走法，只说明它走过了。
type PlayResponse struct {
	Move        MoveRecordDTO `json:"move"`
	EngineMoved bool          `json:"engine_moved"`
	View        ViewDTO       `json:"view"`
}

type NewGameResponse struct {
	GameID string  `json:"game_id"`
	View   ViewDTO `json:"view"`
}

type GamesResponse struct {
	Games []string `json:"games"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

func moveToDTO(m fogchess.Move) MoveDTO {
	d := MoveDTO{From: m.From.String(), To: m.To.String(), UCI: m.String()}
	if m.Promotion != fogchess.NoKind {
		d.Promotion = m.Promotion.String()
	}
	return d
}

func movesToDTO(ms []fogchess.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

func recordToDTO(r fogchess.MoveRecord) MoveRecordDTO {
	d := MoveRecordDTO{
		MoveDTO: moveToDTO(r.Move()),
		Side:    r.Side.String(),
		Piece:   r.Piece.Kind().String(),
		Capture: r.WasCapture,
	}
	if r.WasCapture {
		d.Captured = r.Captured.Kind().String()
	}
	if r.WasPromotion {
		d.PromotedTo = r.PromotedTo.String()
	}
	return d
}

func snapshotToDTO(s game.Snapshot) ViewDTO {
	v := ViewDTO{
		GameID:     s.ID,
		Mode:       string(s.Mode),
		Observer:   s.Observer.String(),
		ToMove:     s.ToMove.String(),
		Status:     s.Outcome.Status.String(),
		Board:      s.View.Rows(),
		LegalMoves: movesToDTO(s.LegalMoves),
		Captured:   make([]string, 0, len(s.Captured)),
		Plies:      s.Plies,
	}
	if s.Outcome.Winner != fogchess.NoSide {
		v.Winner = s.Outcome.Winner.String()
	}
	for _, sq := range s.View.Visible.Squares() {
		v.Visible = append(v.Visible, sq.String())
	}
	for _, p := range s.Captured {
		v.Captured = append(v.Captured, p.Kind().String())
	}
	return v
}
