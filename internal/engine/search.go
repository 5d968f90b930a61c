package engine

import (
	"context"
	"errors"
	"time"

	"fogchess/internal/fogchess"
)

var ErrNoMoves = errors.New("no legal moves")

// 搜索配置
type SearchConfig struct {
	ThinkDelay time.Duration // 落子前等待的时间（0 表示用引擎默认值）
}

// 搜索结果
type SearchResult struct {
	BestMove   fogchess.Move
	Candidates int           // 参与随机选择的合法走法数
	TimeUsed   time.Duration // 含思考延迟
}

// Search 从 side 的合法走法中随机挑一步。升变不指定棋子，应用时默认升后。
// 思考延迟期间 ctx 被取消时返回 ctx.Err()。
func (e *Engine) Search(ctx context.Context, b *fogchess.Board, side fogchess.Side, cfg SearchConfig) (SearchResult, error) {
	start := time.Now()

	moves := fogchess.LegalMoves(b, side)
	if len(moves) == 0 {
		return SearchResult{}, ErrNoMoves
	}
	pick := moves[e.intn(len(moves))]

	delay := cfg.ThinkDelay
	if delay == 0 {
		delay = e.ThinkDelay
	}
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return SearchResult{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return SearchResult{}, err
	}

	return SearchResult{
		BestMove:   pick,
		Candidates: len(moves),
		TimeUsed:   time.Since(start),
	}, nil
}
