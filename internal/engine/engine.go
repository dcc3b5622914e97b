// Package engine provides the tick-based simulation loop: one tick is one
// full trading day.
package engine

import (
	"log/slog"
	"time"
)

// Engine drives the simulation forward, one trading day per tick.
type Engine struct {
	Day      uint64        // Current day counter (monotonic, never resets)
	Speed    float64       // Multiplier: 1.0 = real-time, 0 = paused
	Interval time.Duration // Base tick interval
	Running  bool

	// OnDay runs the trading day. Populated during setup.
	OnDay func(day uint64)
}

// NewEngine creates an engine with default settings.
func NewEngine() *Engine {
	return &Engine{
		Speed:    1.0,
		Interval: time.Second,
	}
}

// Run starts the loop. Blocks until Stop is called.
func (e *Engine) Run() {
	e.Running = true
	slog.Info("simulation engine started", "day", e.Day, "speed", e.Speed)

	for e.Running {
		if e.Speed <= 0 {
			// Paused. Check again shortly.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		e.step()

		elapsed := time.Since(start)
		target := time.Duration(float64(e.Interval) / e.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("simulation engine stopped", "day", e.Day)
}

// Stop halts the loop after the current day completes.
func (e *Engine) Stop() {
	e.Running = false
}

func (e *Engine) step() {
	e.Day++
	if e.OnDay != nil {
		e.OnDay(e.Day)
	}
}
