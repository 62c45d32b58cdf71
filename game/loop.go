package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/automoto/stompgrid/shared/leveldata"
	"go.uber.org/zap"
)

// EventHandler receives the result of every tick.
type EventHandler func(TickResult)

// GameLoop drives a Session at a fixed tick rate.
type GameLoop struct {
	session  *Session
	tickRate int
	input    InputSource
	handler  EventHandler
	maxTicks uint64
	log      *zap.SugaredLogger

	ticks    uint64
	reloads  chan *leveldata.CollisionData
	stopChan chan struct{}
	stopOnce sync.Once
}

type LoopOption func(*GameLoop)

func WithInput(src InputSource) LoopOption {
	return func(g *GameLoop) { g.input = src }
}

func WithEventHandler(h EventHandler) LoopOption {
	return func(g *GameLoop) { g.handler = h }
}

// WithMaxTicks stops the loop after n ticks. Zero means no limit.
func WithMaxTicks(n uint64) LoopOption {
	return func(g *GameLoop) { g.maxTicks = n }
}

func WithLoopLogger(log *zap.SugaredLogger) LoopOption {
	return func(g *GameLoop) {
		if log != nil {
			g.log = log
		}
	}
}

func NewGameLoop(session *Session, tickRate int, opts ...LoopOption) *GameLoop {
	if tickRate <= 0 {
		tickRate = 60
	}
	g := &GameLoop{
		session:  session,
		tickRate: tickRate,
		input:    IdleInput{},
		handler:  func(TickResult) {},
		log:      zap.NewNop().Sugar(),
		reloads:  make(chan *leveldata.CollisionData, 1),
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run ticks in real time until the context is cancelled, Stop is called, the
// input runs out, the tick limit is reached or the game ends.
func (g *GameLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	g.log.Infof("Game loop started at %d ticks/second", g.tickRate)
	defer g.log.Info("Game loop stopped")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-g.stopChan:
			return nil
		case <-ticker.C:
			done, err := g.Step()
			if err != nil || done {
				return err
			}
		}
	}
}

// RunHeadless ticks as fast as possible with the same stop conditions as Run.
func (g *GameLoop) RunHeadless(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-g.stopChan:
			return nil
		default:
		}
		done, err := g.Step()
		if err != nil || done {
			return err
		}
	}
}

// Step applies a pending reload, then runs one tick with a fixed dt of one
// tick period. done reports whether the loop should stop.
func (g *GameLoop) Step() (done bool, err error) {
	g.applyReload()

	if g.maxTicks > 0 && g.ticks >= g.maxTicks {
		return true, nil
	}
	in, ok := g.input.Next()
	if !ok {
		return true, nil
	}

	res, err := g.session.Tick(in, 1/float64(g.tickRate))
	if err != nil {
		return true, fmt.Errorf("game loop: %w", err)
	}
	g.ticks++
	g.handler(res)

	if res.GameOver {
		g.log.Infow("game over", "tick", res.Tick, "score", res.Score)
		return true, nil
	}
	return g.maxTicks > 0 && g.ticks >= g.maxTicks, nil
}

// Reload queues a level swap for the next tick boundary. Only the most recent
// pending level is kept. Safe to call from any goroutine.
func (g *GameLoop) Reload(level *leveldata.CollisionData) {
	for {
		select {
		case g.reloads <- level:
			return
		default:
		}
		// Drop the stale pending level and retry.
		select {
		case <-g.reloads:
		default:
		}
	}
}

func (g *GameLoop) applyReload() {
	select {
	case level := <-g.reloads:
		if err := g.session.ReplaceLevel(level); err != nil {
			g.log.Warnf("Reload error: %v", err)
		}
	default:
	}
}

// Ticks is the number of ticks run so far.
func (g *GameLoop) Ticks() uint64 { return g.ticks }

// Stop ends Run. It may be called more than once.
func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() { close(g.stopChan) })
}
