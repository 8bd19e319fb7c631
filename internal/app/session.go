package app

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tilewave/internal/wfc"
)

// Action is a user command shared by the window and terminal front ends.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionStep
	ActionReset
	ActionReseed
	ActionFaster
	ActionSlower
)

const maxTicksPerFrame = 1024

// Session owns an engine plus the playback state the front ends share.
type Session struct {
	engine        *wfc.Engine
	paused        bool
	stepOnce      bool
	seed          int64
	ticksPerFrame int
	reportedDone  bool
}

// NewSession wraps e. ticksPerFrame below one is treated as one.
func NewSession(e *wfc.Engine, ticksPerFrame int) *Session {
	return &Session{
		engine:        e,
		seed:          e.Seed(),
		ticksPerFrame: max(1, min(ticksPerFrame, maxTicksPerFrame)),
	}
}

// Engine returns the wrapped engine.
func (s *Session) Engine() *wfc.Engine { return s.engine }

// Paused reports whether playback is halted.
func (s *Session) Paused() bool { return s.paused }

// TicksPerFrame returns the number of ticks one unpaused frame runs.
func (s *Session) TicksPerFrame() int { return s.ticksPerFrame }

// Apply performs a and reports whether the front end should exit.
func (s *Session) Apply(a Action) bool {
	switch a {
	case ActionQuit:
		return true
	case ActionPause:
		s.paused = !s.paused
	case ActionStep:
		s.stepOnce = true
	case ActionReset:
		s.reset(s.seed)
	case ActionReseed:
		s.reset(time.Now().UnixNano())
	case ActionFaster:
		s.ticksPerFrame = min(s.ticksPerFrame*2, maxTicksPerFrame)
	case ActionSlower:
		s.ticksPerFrame = max(s.ticksPerFrame/2, 1)
	}
	return false
}

func (s *Session) reset(seed int64) {
	s.engine.Reset(seed)
	s.seed = s.engine.Seed()
	s.stepOnce = false
	s.reportedDone = false
	slog.Debug("session reset", slog.Int64("seed", s.seed))
}

// Advance runs frames worth of ticks, or a single tick when paused with a
// pending step. It stops early once the engine is done and returns the
// number of ticks run.
func (s *Session) Advance(frames int) int {
	budget := frames * s.ticksPerFrame
	if s.paused {
		budget = 0
		if s.stepOnce {
			budget = 1
		}
	}
	s.stepOnce = false

	ran := 0
	for ran < budget && !s.engine.Done() {
		s.engine.Tick()
		ran++
	}
	if !s.reportedDone && s.engine.Done() {
		s.reportedDone = true
		st := s.engine.Stats()
		slog.Info("grid settled",
			slog.String("preset", s.engine.Name()), slog.Int64("seed", s.seed),
			slog.Int("ticks", st.Ticks), slog.Int("resolved", st.Resolved),
			slog.Int("contradicted", st.Contradicted), slog.Int("restarts", st.Restarts))
	}
	return ran
}

// Status renders a one-line summary for status bars and window titles.
func (s *Session) Status() string {
	st := s.engine.Stats()
	var b strings.Builder
	fmt.Fprintf(&b, "%s seed=%d ticks=%d resolved=%d/%d contradicted=%d",
		s.engine.Name(), s.seed, st.Ticks, st.Resolved, s.engine.Grid().Len(), st.Contradicted)
	if st.Restarts > 0 {
		fmt.Fprintf(&b, " restarts=%d", st.Restarts)
	}
	if s.ticksPerFrame > 1 {
		fmt.Fprintf(&b, " x%d", s.ticksPerFrame)
	}
	switch {
	case s.engine.Done():
		b.WriteString(" [done]")
	case s.paused:
		b.WriteString(" [paused]")
	}
	return b.String()
}
