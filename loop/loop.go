// Package loop runs the frame loop of sprig applications.
//
// A frame is: process events, start the frame, update, draw, present. Only
// ProcessEvents, Update and Draw are mandatory; applications opt into the
// other steps by implementing FrameStarter or Presenter.
//
package loop

import (
	"time"
)

// EventProcessor wraps the ProcessEvents method, called at the beginning of
// each frame. The loop exits when it returns true.
//
// It is up to the implementation to either poll events or wait for events.
// Applications using a wait-for-event model should only use the Simple loop.
//
type EventProcessor interface {
	ProcessEvents() (quit bool)
}

// FrameStarter is implemented by applications that want the time stamp at the
// beginning of each frame.
//
type FrameStarter interface {
	FrameStart(time.Time)
}

// Presenter is implemented by applications that need to do work once a frame
// has been drawn, typically flushing queued draw calls and swapping buffers.
//
type Presenter interface {
	Present()
}

// FixedStepUpdater is the interface implemented by applications run by a
// FixedStep loop.
//
// Update is called with a constant timestep, zero or more times per frame.
// Draw is called once per frame with the duration of the frame and the time
// left in the accumulator, which can be used to interpolate positions between
// the last two updates.
//
type FixedStepUpdater interface {
	EventProcessor
	Update(timestep time.Duration)
	Draw(frameTime, partialTimestep time.Duration)
}

type SimpleUpdater interface {
	EventProcessor
	Update()
	Draw()
}

// Stats holds counters about the last call to Run.
//
type Stats struct {
	Frames  uint64
	Updates uint64
	// Dropped is the frame time discarded by FixedStep when frames took
	// longer than MaxFT.
	Dropped time.Duration
}

type hooks struct {
	start   FrameStarter
	present Presenter
}

func hooksOf(a EventProcessor) hooks {
	var h hooks
	h.start, _ = a.(FrameStarter)
	h.present, _ = a.(Presenter)
	return h
}

func (h hooks) frameStart(t time.Time) {
	if h.start != nil {
		h.start.FrameStart(t)
	}
}

func (h hooks) frameEnd() {
	if h.present != nil {
		h.present.Present()
	}
}

// Simple runs one update per frame. It suits applications that use a
// wait-for-event model.
//
type Simple struct {
	// Clock returns the current time. Defaults to time.Now. It is ignored
	// when a minimum frame time is set.
	Clock func() time.Time

	ticker *time.Ticker
	minFT  time.Duration
	stats  Stats
}

// MinFrameTime sets the minimum frame time. A value <= 0 removes the limit.
//
func (l *Simple) MinFrameTime(t time.Duration) {
	if t == l.minFT {
		return
	}
	l.stopTicker()
	l.minFT = t
	if l.minFT > 0 {
		l.ticker = time.NewTicker(l.minFT)
	}
}

// Stats returns the counters of the last (or current) run.
//
func (l *Simple) Stats() Stats { return l.stats }

func (l *Simple) now() time.Time {
	switch {
	case l.ticker != nil:
		return <-l.ticker.C
	case l.Clock != nil:
		return l.Clock()
	}
	return time.Now()
}

func (l *Simple) stopTicker() {
	if l.ticker != nil {
		l.ticker.Stop()
		l.ticker = nil
	}
}

func (l *Simple) Run(a SimpleUpdater) {
	defer l.stopTicker()
	l.stats = Stats{}
	h := hooksOf(a)
	for !a.ProcessEvents() {
		h.frameStart(l.now())
		a.Update()
		a.Draw()
		h.frameEnd()
		l.stats.Updates++
		l.stats.Frames++
	}
}

// FixedStep updates game logic at a constant rate, independently of the frame
// rate.
//
type FixedStep struct {
	Simple
	MaxFT time.Duration // frame times are clamped to MaxFT
	DT    time.Duration // timestep
}

// Default timings for FixedStep.
//
const (
	DefaultDT    time.Duration = time.Second / 240
	DefaultMaxFT time.Duration = time.Second / 4
)

func (l *FixedStep) Run(a FixedStepUpdater) {
	defer l.stopTicker()
	if l.DT <= 0 {
		l.DT = DefaultDT
	}
	if l.MaxFT <= 0 {
		l.MaxFT = DefaultMaxFT
	}
	l.stats = Stats{}

	var (
		h     = hooksOf(a)
		tPrev = l.now()
		acc   time.Duration
	)
	for !a.ProcessEvents() {
		now := l.now()
		ft := now.Sub(tPrev)
		tPrev = now
		// no spiral of death after a long stall
		if ft > l.MaxFT {
			l.stats.Dropped += ft - l.MaxFT
			ft = l.MaxFT
		}
		acc += ft
		h.frameStart(now)
		for ; acc >= l.DT; acc -= l.DT {
			a.Update(l.DT)
			l.stats.Updates++
		}
		a.Draw(ft, acc)
		h.frameEnd()
		l.stats.Frames++
	}
}
