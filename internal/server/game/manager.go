package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"fogchess/internal/engine"
	"fogchess/internal/fogchess"
)

type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	eng      *engine.Engine
	log      *zap.Logger
	onChange func(id string)
}

func NewManager(eng *engine.Engine, log *zap.Logger) *Manager {
	if eng == nil {
		eng = engine.NewEngine(0)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		eng:      eng,
		log:      log,
	}
}

// OnChange 注册状态变化回调，对之后创建的会话生效。
func (m *Manager) OnChange(fn func(id string)) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// NewGame 开一局。AI 模式下玩家执黑时引擎先走。
func (m *Manager) NewGame(ctx context.Context, mode Mode, human fogchess.Side) (*Session, error) {
	if mode == ModeAI && human != fogchess.White && human != fogchess.Black {
		return nil, fmt.Errorf("%w: human side %s", fogchess.ErrMalformedInput, human)
	}
	if mode == ModeTwoPlayer {
		human = fogchess.NoSide
	}

	m.mu.Lock()
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		Mode:      mode,
		Human:     human,
		CreatedAt: now,
		game:      fogchess.NewGame(),
		updatedAt: now,
		eng:       m.eng,
		log:       m.log,
		onChange:  m.onChange,
	}
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.log.Info("game created",
		zap.String("game", s.ID),
		zap.String("mode", string(mode)),
		zap.Stringer("human", human))

	if _, err := s.Advance(ctx); err != nil {
		m.log.Warn("engine opening move deferred", zap.String("game", s.ID), zap.Error(err))
	}
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return s, nil
}

// List 按 id 排序返回全部会话 id。
func (m *Manager) List() []string {
	m.mu.RLock()
	ids := maps.Keys(m.sessions)
	m.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	delete(m.sessions, id)
	m.log.Info("game deleted", zap.String("game", id))
	return nil
}
