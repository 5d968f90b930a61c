package engine

import (
	"math/rand"
	"sync"
	"time"
)

// Engine 是不带策略的对手：在合法走法中均匀随机选择。
// 可并发使用，随机源由互斥锁保护。
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand

	// 默认思考延迟，SearchConfig.ThinkDelay 为 0 时使用
	ThinkDelay time.Duration
}

// NewEngine 以 seed 初始化随机源；seed 为 0 时取当前时间。
func NewEngine(seed int64) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

func (e *Engine) intn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e.rng.Intn(n)
}
